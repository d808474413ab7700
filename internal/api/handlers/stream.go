package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/middleware"
	"github.com/gymdesk/gymdesk/internal/domain/feed"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
)

// StreamHandler serves the SSE notification stream
type StreamHandler struct {
	service feed.Service
	logger  *logger.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(service feed.Service, log *logger.Logger) *StreamHandler {
	return &StreamHandler{service: service, logger: log}
}

// Stream handles GET /notifications/stream. Authentication is checked before
// any streaming header goes out, so unauthenticated clients get a plain 401.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminID(r.Context())
	if !ok {
		utils.WriteError(w, errors.Unauthorized("authentication required"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteError(w, errors.Internal("streaming unsupported", nil))
		return
	}

	// headers must be out before the first event
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := &sseSink{w: w, flusher: flusher}
	email := middleware.AdminEmail(r.Context())

	if err := h.service.Stream(r.Context(), adminID, email, sink); err != nil {
		h.logger.WithError(err).Debug("stream ended with error")
	}
}

// sseSink writes events in text/event-stream framing and flushes each one
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *sseSink) Send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
