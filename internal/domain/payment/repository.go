package payment

import "context"

// Repository defines the interface for payment data access
type Repository interface {
	// Create creates a new payment
	Create(ctx context.Context, p *Payment) (int64, error)

	// GetByID retrieves a payment by ID
	GetByID(ctx context.Context, id int64) (*Payment, error)

	// UpdateStatus updates a payment's status, setting paid_at/expires_at on approval
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete deletes a payment
	Delete(ctx context.Context, id int64) error

	// ListWithPagination retrieves payments with filters and pagination
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Payment, int64, error)
}

// Service defines the interface for payment business logic
type Service interface {
	Create(ctx context.Context, p *Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Payment, int64, error)
}
