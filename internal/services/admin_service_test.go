package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/auth"
	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/repository/postgres"
	"github.com/gymdesk/gymdesk/internal/testutil"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		// Minimum cost keeps the hashing in tests fast.
		BCryptCost: 4,
	}
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("error is %T, want *errors.AppError", err)
	}
	return appErr.StatusCode
}

func TestAdminService_RegisterAndLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAdminService(postgres.NewAdminRepository(db), testAuthConfig(), testLogger())
	ctx := context.Background()

	a, err := svc.Register(ctx, "Owner@GymDesk.Test", "correct-horse", "The Owner")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if a.Email != "owner@gymdesk.test" {
		t.Errorf("Register() stored email %q, want lowercased", a.Email)
	}
	if a.PasswordHash == "correct-horse" {
		t.Error("Register() stored the plaintext password")
	}

	got, pair, err := svc.Login(ctx, "owner@gymdesk.test", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != a.ID {
		t.Errorf("Login() returned admin %d, want %d", got.ID, a.ID)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("Login() returned an empty token pair")
	}

	claims, err := auth.ParseClaims(pair.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.AdminID != a.ID || claims.Email != a.Email {
		t.Errorf("token claims = (%d, %q), want (%d, %q)", claims.AdminID, claims.Email, a.ID, a.Email)
	}
}

func TestAdminService_LoginFailuresAreUniform(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAdminService(postgres.NewAdminRepository(db), testAuthConfig(), testLogger())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "owner@gymdesk.test", "correct-horse", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, wrongPass := svc.Login(ctx, "owner@gymdesk.test", "wrong")
	_, _, noAccount := svc.Login(ctx, "nobody@gymdesk.test", "wrong")

	if wrongPass == nil || noAccount == nil {
		t.Fatal("Login() with bad credentials did not fail")
	}
	// Same message either way so the response doesn't leak which part was wrong.
	if wrongPass.Error() != noAccount.Error() {
		t.Errorf("login errors differ: %q vs %q", wrongPass, noAccount)
	}
	if statusCode(t, wrongPass) != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", statusCode(t, wrongPass))
	}
}

func TestAdminService_RegisterValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAdminService(postgres.NewAdminRepository(db), testAuthConfig(), testLogger())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "owner@gymdesk.test", "short", ""); err == nil {
		t.Error("Register() accepted a password under 8 characters")
	}

	if _, err := svc.Register(ctx, "owner@gymdesk.test", "correct-horse", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.Register(ctx, "owner@gymdesk.test", "correct-horse", "")
	if err == nil {
		t.Fatal("Register() accepted a duplicate email")
	}
	if statusCode(t, err) != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", statusCode(t, err))
	}
}

func TestAdminService_Refresh(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAdminService(postgres.NewAdminRepository(db), testAuthConfig(), testLogger())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "owner@gymdesk.test", "correct-horse", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, pair, err := svc.Login(ctx, "owner@gymdesk.test", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if fresh.AccessToken == "" {
		t.Error("Refresh() returned an empty access token")
	}

	if _, err := svc.Refresh(ctx, "not-a-token"); err == nil {
		t.Error("Refresh() accepted a garbage token")
	}
}
