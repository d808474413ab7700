package admin

import (
	"context"

	"github.com/gymdesk/gymdesk/internal/auth"
)

// Service defines the interface for admin account business logic
type Service interface {
	// Register creates a new admin account with a hashed password
	Register(ctx context.Context, email, password, fullName string) (*Admin, error)

	// Login verifies credentials and mints a token pair
	Login(ctx context.Context, email, password string) (*Admin, auth.TokenPair, error)

	// Refresh mints a new token pair from a valid refresh token
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)

	// GetByID retrieves an admin by ID
	GetByID(ctx context.Context, id int64) (*Admin, error)
}
