package member

import "context"

// Repository defines the interface for member data access
type Repository interface {
	// Create creates a new member
	Create(ctx context.Context, m *Member) (int64, error)

	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id int64) (*Member, error)

	// Update updates a member
	Update(ctx context.Context, m *Member) error

	// Delete deletes a member
	Delete(ctx context.Context, id int64) error

	// ListWithPagination retrieves members with filters and pagination
	ListWithPagination(ctx context.Context, filter Filter, limit, offset int) ([]*Member, int64, error)

	// CountByStatus counts members by status
	CountByStatus(ctx context.Context) (map[string]int, error)
}
