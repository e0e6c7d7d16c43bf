package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ecompulse/pkg/contracts"
)

// HealthHandler serves liveness and build information.
type HealthHandler struct {
	info      contracts.VersionInfo
	startedAt time.Time
}

// NewHealthHandler creates a health handler
func NewHealthHandler(info contracts.VersionInfo) *HealthHandler {
	return &HealthHandler{info: info, startedAt: time.Now()}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":         "ok",
		"version":        h.info,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}
