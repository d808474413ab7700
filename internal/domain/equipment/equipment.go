package equipment

import (
	"context"
	"time"
)

// Equipment represents a piece of gym equipment
type Equipment struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Status      string     `json:"status"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

// Equipment status
const (
	StatusAvailable   = "Available"
	StatusInUse       = "In Use"
	StatusMaintenance = "Maintenance"
	StatusRetired     = "Retired"
)

// Filter contains equipment filtering options
type Filter struct {
	Status   string
	Category string
}

// Repository defines the interface for equipment data access
type Repository interface {
	Create(ctx context.Context, e *Equipment) (int64, error)
	GetByID(ctx context.Context, id int64) (*Equipment, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id int64) error
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Equipment, int64, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// Service defines the interface for equipment business logic
type Service interface {
	Create(ctx context.Context, e *Equipment) (int64, error)
	GetByID(ctx context.Context, id int64) (*Equipment, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Equipment, int64, error)
	GetSummary(ctx context.Context) (map[string]int, error)
}
