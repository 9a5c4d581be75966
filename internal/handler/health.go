package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler reports liveness plus the state of each component.
type HealthHandler struct {
	db       Pinger
	presence PresenceSource
	projects ProjectsSource
}

func NewHealthHandler(db Pinger, presence PresenceSource, projects ProjectsSource) *HealthHandler {
	return &HealthHandler{db: db, presence: presence, projects: projects}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Presence string `json:"presence"`
	Projects string `json:"projects"`
}

// HandleHealth answers 200 while the database is reachable and 503
// otherwise. Widget failures are reported but never fail the check: the
// page still renders without them.
//
// HTTP: GET /healthz
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Presence: string(h.presence.State()),
		Projects: "pending",
	}
	if res, ok := h.projects.Peek(); ok {
		resp.Projects = "loaded"
		if res.Fallback {
			resp.Projects = "fallback"
		}
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
