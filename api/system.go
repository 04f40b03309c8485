package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/garnizeh/jobboard/pkg/repository"
)

type SystemHandler struct {
	store repository.Store
}

func NewSystemHandler(store repository.Store) *SystemHandler {
	return &SystemHandler{store: store}
}

// HealthHandler reports 503 when the store does not answer a ping.
func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Error("health check failed", slog.Any("err", err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "service": "jobboard"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "jobboard"})
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": version, "buildTime": buildTime})
	}
}
