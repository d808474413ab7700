package handlers

import (
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
)

// NotificationHandler serves the mark-read and sync endpoints. Both take
// form-encoded bodies; the browser client posts them from plain forms.
type NotificationHandler struct {
	service feed.Service
	logger  *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service feed.Service, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, logger: log}
}

// MarkRead handles POST /notifications/read with form fields notification_id
// and notification_type.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminID(r.Context())
	if !ok {
		utils.WriteError(w, errors.Unauthorized("authentication required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, dto.MarkReadResponse{
			Success: false,
			Error:   "invalid form body",
		})
		return
	}

	alertID := r.PostFormValue("notification_id")
	category := r.PostFormValue("notification_type")
	if alertID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, dto.MarkReadResponse{
			Success: false,
			Error:   "notification_id is required",
		})
		return
	}

	count, err := h.service.MarkRead(r.Context(), adminID, alertID, category)
	if err != nil {
		h.logger.WithError(err).Error("mark-read failed")
		utils.WriteJSON(w, http.StatusInternalServerError, dto.MarkReadResponse{
			Success:        false,
			NotificationID: alertID,
			Error:          "failed to mark notification read",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.MarkReadResponse{
		Success:        true,
		UnreadCount:    count,
		NotificationID: alertID,
	})
}

// Sync handles POST /notifications/sync with form field action set to
// mark_all_read or clear_all.
func (h *NotificationHandler) Sync(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminID(r.Context())
	if !ok {
		utils.WriteError(w, errors.Unauthorized("authentication required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, dto.SyncResponse{
			Success: false,
			Error:   "invalid form body",
		})
		return
	}

	var err error
	switch action := r.PostFormValue("action"); action {
	case dto.SyncActionMarkAllRead:
		err = h.service.MarkAllRead(r.Context(), adminID)
	case dto.SyncActionClearAll:
		err = h.service.ClearAll(r.Context(), adminID)
	default:
		utils.WriteJSON(w, http.StatusBadRequest, dto.SyncResponse{
			Success: false,
			Error:   "action must be mark_all_read or clear_all",
		})
		return
	}

	if err != nil {
		h.logger.WithError(err).Error("notification sync failed")
		utils.WriteJSON(w, http.StatusInternalServerError, dto.SyncResponse{
			Success: false,
			Error:   "sync failed",
		})
		return
	}

	// Both actions leave the admin with nothing unread: mark_all_read covers
	// every currently-true predicate, clear_all only matters on later ticks.
	utils.WriteJSON(w, http.StatusOK, dto.SyncResponse{
		Success:     true,
		UnreadCount: 0,
	})
}
