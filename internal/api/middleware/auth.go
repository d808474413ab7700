package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gymdesk/gymdesk/internal/auth"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
)

type contextKey string

const (
	// AdminIDKey is the context key holding the authenticated admin's id
	AdminIDKey contextKey = "admin_id"
	// AdminEmailKey is the context key holding the authenticated admin's email
	AdminEmailKey contextKey = "admin_email"

	// AccessTokenCookie is the cookie the browser client stores the token in
	AccessTokenCookie = "accessToken"
)

// Auth validates the JWT from the access-token cookie or the Authorization
// header and puts the admin identity on the request context. Requests with no
// valid token get a 401 before any handler work.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utils.WriteError(w, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := auth.ParseClaims(token, secret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
			ctx = context.WithValue(ctx, AdminEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// AdminID returns the authenticated admin id from the context
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AdminIDKey).(int64)
	return id, ok
}

// AdminEmail returns the authenticated admin email from the context
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(AdminEmailKey).(string)
	return email
}
