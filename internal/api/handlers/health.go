package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gymdesk/gymdesk/internal/pkg/utils"
)

// Pinger reports backing-store liveness; *sql.DB satisfies it
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live always reports ok while the process is up
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports ok only when the database answers a ping
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
