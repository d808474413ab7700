package feedback

import (
	"context"
	"time"
)

// Feedback represents a member feedback entry
type Feedback struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the interface for feedback data access
type Repository interface {
	Create(ctx context.Context, f *Feedback) (int64, error)
	GetByID(ctx context.Context, id int64) (*Feedback, error)
	Delete(ctx context.Context, id int64) error
	ListWithPagination(ctx context.Context, limit, offset int) ([]*Feedback, int64, error)
}

// Service defines the interface for feedback business logic
type Service interface {
	Create(ctx context.Context, f *Feedback) (int64, error)
	GetByID(ctx context.Context, id int64) (*Feedback, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Feedback, int64, error)
}
