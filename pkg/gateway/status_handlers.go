package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/DeBrosOfficial/marketplace/pkg/httputil"
)

// healthHandler reports liveness and the state of the contract store.
func (g *Gateway) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	store := map[string]any{"status": "ok"}
	if err := g.registry.Health(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		store = map[string]any{"status": "error", "error": err.Error()}
	}

	httputil.WriteJSON(w, code, map[string]any{
		"status":     status,
		"started_at": g.startedAt.UTC().Format(time.RFC3339),
		"uptime":     time.Since(g.startedAt).Round(time.Second).String(),
		"store":      store,
	})
}

func (g *Gateway) versionHandler(w http.ResponseWriter, r *http.Request) {
	version := g.cfg.Version
	if version == "" {
		version = "dev"
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"version": version,
	})
}
