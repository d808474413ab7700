package member

import "context"

// Service defines the interface for member business logic
type Service interface {
	// Create creates a new member
	Create(ctx context.Context, m *Member) (int64, error)

	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id int64) (*Member, error)

	// Update updates a member
	Update(ctx context.Context, id int64, updates map[string]interface{}) error

	// Delete deletes a member
	Delete(ctx context.Context, id int64) error

	// List retrieves members with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Member, int64, error)

	// GetSummary gets member counts by status
	GetSummary(ctx context.Context) (map[string]int, error)
}
