package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gymdesk/gymdesk/internal/api/handlers"
	"github.com/gymdesk/gymdesk/internal/auth"
	"github.com/gymdesk/gymdesk/internal/config"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

type streamOnceService struct{}

func (s *streamOnceService) Stream(ctx context.Context, adminID int64, email string, sink feed.EventSink) error {
	return sink.Send("connected", map[string]interface{}{"admin_id": adminID})
}

func (s *streamOnceService) Evaluate(ctx context.Context, adminID int64) ([]feed.Alert, error) {
	return nil, nil
}

func (s *streamOnceService) UnreadCount(ctx context.Context, adminID int64) (int, error) {
	return 0, nil
}

func (s *streamOnceService) MarkRead(ctx context.Context, adminID int64, alertID, category string) (int, error) {
	return 0, nil
}

func (s *streamOnceService) MarkAllRead(ctx context.Context, adminID int64) error { return nil }
func (s *streamOnceService) ClearAll(ctx context.Context, adminID int64) error    { return nil }

// The stream must survive the whole middleware chain: every wrapper around the
// ResponseWriter has to keep http.Flusher reachable or the SSE handler refuses
// the connection.
func TestRouter_StreamThroughMiddlewareChain(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:3000", Environment: "development"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret"},
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	svc := &streamOnceService{}
	h := Handlers{
		Health: handlers.NewHealthHandler(nil),
		Stream: handlers.NewStreamHandler(svc, log),
	}
	r := New(cfg, log, h)

	pair, err := auth.MintTokens(1, "owner@gymdesk.test", "test-secret", time.Minute, time.Minute)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	if !strings.Contains(rec.Body.String(), "event: connected\n") {
		t.Errorf("body missing connected event frame:\n%s", rec.Body.String())
	}
}

func TestRouter_StreamRequiresAuth(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:3000", Environment: "development"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret"},
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	h := Handlers{
		Health: handlers.NewHealthHandler(nil),
		Stream: handlers.NewStreamHandler(&streamOnceService{}, log),
	}
	r := New(cfg, log, h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); strings.Contains(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want non-stream response", ct)
	}
}
