package plan

import (
	"context"
	"time"
)

// Plan represents a membership plan
type Plan struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Repository defines the interface for plan data access
type Repository interface {
	Create(ctx context.Context, p *Plan) (int64, error)
	GetByID(ctx context.Context, id int64) (*Plan, error)
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Plan, error)
}

// Service defines the interface for plan business logic
type Service interface {
	Create(ctx context.Context, p *Plan) (int64, error)
	GetByID(ctx context.Context, id int64) (*Plan, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Plan, error)
}
