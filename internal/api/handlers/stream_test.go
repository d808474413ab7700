package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
)

func streamRequest(adminID int64, email string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream", nil)
	if adminID > 0 {
		ctx := context.WithValue(req.Context(), middleware.AdminIDKey, adminID)
		ctx = context.WithValue(ctx, middleware.AdminEmailKey, email)
		req = req.WithContext(ctx)
	}
	return req
}

func TestStreamHandler_Unauthenticated(t *testing.T) {
	h := NewStreamHandler(&stubFeedService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Stream(rec, streamRequest(0, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	// A 401 must stay a plain JSON response, never a half-open stream.
	if ct := rec.Header().Get("Content-Type"); strings.Contains(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want non-stream response", ct)
	}
}

func TestStreamHandler_Headers(t *testing.T) {
	h := NewStreamHandler(&stubFeedService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Stream(rec, streamRequest(1, "owner@gymdesk.test"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := map[string]string{
		"Content-Type":      "text/event-stream",
		"Cache-Control":     "no-cache",
		"X-Accel-Buffering": "no",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}
}

func TestStreamHandler_EventFraming(t *testing.T) {
	svc := &stubFeedService{
		streamFn: func(ctx context.Context, adminID int64, email string, sink feed.EventSink) error {
			if adminID != 1 || email != "owner@gymdesk.test" {
				t.Errorf("Stream called with (%d, %q)", adminID, email)
			}
			if err := sink.Send("connected", map[string]interface{}{"admin_id": adminID}); err != nil {
				return err
			}
			return sink.Send("count_update", map[string]int{"unread_count": 3})
		},
	}
	h := NewStreamHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Stream(rec, streamRequest(1, "owner@gymdesk.test"))

	body := rec.Body.String()
	if !strings.Contains(body, "event: connected\ndata: {\"admin_id\":1}\n\n") {
		t.Errorf("body missing connected event frame:\n%s", body)
	}
	if !strings.Contains(body, "event: count_update\ndata: {\"unread_count\":3}\n\n") {
		t.Errorf("body missing count_update event frame:\n%s", body)
	}
	if !rec.Flushed {
		t.Error("response was never flushed")
	}
}
