package admin

import "context"

// Repository defines the interface for admin data access
type Repository interface {
	// Create creates a new admin account
	Create(ctx context.Context, a *Admin) error

	// GetByID retrieves an admin by ID
	GetByID(ctx context.Context, id int64) (*Admin, error)

	// GetByEmail retrieves an admin by email
	GetByEmail(ctx context.Context, email string) (*Admin, error)

	// Update updates an admin account
	Update(ctx context.Context, a *Admin) error

	// TouchLastLogin records a successful login
	TouchLastLogin(ctx context.Context, id int64) error
}
