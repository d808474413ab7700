package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gymdesk/gymdesk/internal/auth"
	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/domain/admin"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// AdminService implements admin.Service
type AdminService struct {
	repo   admin.Repository
	cfg    config.AuthConfig
	logger *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo admin.Repository, cfg config.AuthConfig, log *logger.Logger) admin.Service {
	return &AdminService{repo: repo, cfg: cfg, logger: log}
}

// Register creates a new admin account with a hashed password
func (s *AdminService) Register(ctx context.Context, email, password, fullName string) (*admin.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.BadRequest("email and password are required")
	}
	if len(password) < 8 {
		return nil, errors.BadRequest("password must be at least 8 characters")
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BCryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	a := &admin.Admin{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         admin.RoleStaff,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Infof("registered admin %s", email)
	return a, nil
}

// Login verifies credentials and mints a token pair
func (s *AdminService) Login(ctx context.Context, email, password string) (*admin.Admin, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Uniform error so login failures don't reveal which part was wrong.
		return nil, auth.TokenPair{}, errors.Unauthorized("invalid email or password")
	}
	if !a.IsActive {
		return nil, auth.TokenPair{}, errors.Unauthorized("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, auth.TokenPair{}, errors.Unauthorized("invalid email or password")
	}

	pair, err := auth.MintTokens(a.ID, a.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}

	if err := s.repo.TouchLastLogin(ctx, a.ID); err != nil {
		s.logger.WithError(err).Warn("failed to record last login")
	}

	return a, pair, nil
}

// Refresh mints a new token pair from a valid refresh token
func (s *AdminService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := auth.ParseClaims(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return auth.TokenPair{}, errors.Unauthorized("invalid refresh token")
	}

	a, err := s.repo.GetByID(ctx, claims.AdminID)
	if err != nil {
		return auth.TokenPair{}, errors.Unauthorized("invalid refresh token")
	}
	if !a.IsActive {
		return auth.TokenPair{}, errors.Unauthorized("account is disabled")
	}

	pair, err := auth.MintTokens(a.ID, a.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return auth.TokenPair{}, errors.Internal("Failed to mint tokens", err)
	}
	return pair, nil
}

// GetByID retrieves an admin by ID
func (s *AdminService) GetByID(ctx context.Context, id int64) (*admin.Admin, error) {
	return s.repo.GetByID(ctx, id)
}
