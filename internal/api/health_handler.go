package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store Pinger
	cache Pinger
}

// NewHealthHandler takes the store, which gates readiness, and an optional
// cache that is only reported.
func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

type ReadinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready fails only when the store is unreachable. A cache outage degrades
// reads but does not take the service out of rotation.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Database: "ok", Cache: "disabled"}
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("Readiness check failed", "component", "database", "error", err)
		resp.Status, resp.Database = "unavailable", "down"
		code = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			slog.Warn("Cache is unreachable", "error", err)
			resp.Cache = "down"
		}
	}
	respondWithJSON(w, code, resp)
}
