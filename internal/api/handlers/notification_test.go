package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// stubFeedService records the calls the handlers make.
type stubFeedService struct {
	markReadAdminID int64
	markReadAlertID string
	markReadCat     string
	markAllCalled   bool
	clearAllCalled  bool
	unreadCount     int
	err             error

	streamFn func(ctx context.Context, adminID int64, email string, sink feed.EventSink) error
}

func (s *stubFeedService) Stream(ctx context.Context, adminID int64, email string, sink feed.EventSink) error {
	if s.streamFn != nil {
		return s.streamFn(ctx, adminID, email, sink)
	}
	return s.err
}

func (s *stubFeedService) Evaluate(ctx context.Context, adminID int64) ([]feed.Alert, error) {
	return nil, s.err
}

func (s *stubFeedService) UnreadCount(ctx context.Context, adminID int64) (int, error) {
	return s.unreadCount, s.err
}

func (s *stubFeedService) MarkRead(ctx context.Context, adminID int64, alertID, category string) (int, error) {
	s.markReadAdminID = adminID
	s.markReadAlertID = alertID
	s.markReadCat = category
	return s.unreadCount, s.err
}

func (s *stubFeedService) MarkAllRead(ctx context.Context, adminID int64) error {
	s.markAllCalled = true
	return s.err
}

func (s *stubFeedService) ClearAll(ctx context.Context, adminID int64) error {
	s.clearAllCalled = true
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func formRequest(path string, form url.Values, adminID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if adminID > 0 {
		ctx := context.WithValue(req.Context(), middleware.AdminIDKey, adminID)
		req = req.WithContext(ctx)
	}
	return req
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	svc := &stubFeedService{unreadCount: 4}
	h := NewNotificationHandler(svc, testLogger())

	form := url.Values{}
	form.Set("notification_id", "pending_payments")
	form.Set("notification_type", "payment")

	rec := httptest.NewRecorder()
	h.MarkRead(rec, formRequest("/api/v1/notifications/read", form, 7))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dto.MarkReadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.UnreadCount != 4 || resp.NotificationID != "pending_payments" {
		t.Errorf("response = %+v, want success with unread_count 4", resp)
	}
	if svc.markReadAdminID != 7 || svc.markReadAlertID != "pending_payments" || svc.markReadCat != "payment" {
		t.Errorf("service called with (%d, %q, %q)", svc.markReadAdminID, svc.markReadAlertID, svc.markReadCat)
	}
}

func TestNotificationHandler_MarkRead_MissingID(t *testing.T) {
	h := NewNotificationHandler(&stubFeedService{}, testLogger())

	rec := httptest.NewRecorder()
	h.MarkRead(rec, formRequest("/api/v1/notifications/read", url.Values{}, 7))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp dto.MarkReadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("response = %+v, want failure with error message", resp)
	}
}

func TestNotificationHandler_MarkRead_Unauthenticated(t *testing.T) {
	h := NewNotificationHandler(&stubFeedService{}, testLogger())

	form := url.Values{}
	form.Set("notification_id", "pending_payments")

	rec := httptest.NewRecorder()
	h.MarkRead(rec, formRequest("/api/v1/notifications/read", form, 0))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestNotificationHandler_MarkRead_ServiceError(t *testing.T) {
	svc := &stubFeedService{err: errors.DatabaseError("query failed", nil)}
	h := NewNotificationHandler(svc, testLogger())

	form := url.Values{}
	form.Set("notification_id", "revenue")

	rec := httptest.NewRecorder()
	h.MarkRead(rec, formRequest("/api/v1/notifications/read", form, 7))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestNotificationHandler_Sync(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		wantStatus int
		wantMark   bool
		wantClear  bool
	}{
		{"mark all read", dto.SyncActionMarkAllRead, http.StatusOK, true, false},
		{"clear all", dto.SyncActionClearAll, http.StatusOK, false, true},
		{"unknown action", "nuke", http.StatusBadRequest, false, false},
		{"missing action", "", http.StatusBadRequest, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubFeedService{}
			h := NewNotificationHandler(svc, testLogger())

			form := url.Values{}
			if tt.action != "" {
				form.Set("action", tt.action)
			}

			rec := httptest.NewRecorder()
			h.Sync(rec, formRequest("/api/v1/notifications/sync", form, 7))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if svc.markAllCalled != tt.wantMark || svc.clearAllCalled != tt.wantClear {
				t.Errorf("calls = (markAll=%v, clearAll=%v), want (%v, %v)",
					svc.markAllCalled, svc.clearAllCalled, tt.wantMark, tt.wantClear)
			}

			if tt.wantStatus == http.StatusOK {
				var resp dto.SyncResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Success || resp.UnreadCount != 0 {
					t.Errorf("response = %+v, want success with unread_count 0", resp)
				}
			}
		})
	}
}
