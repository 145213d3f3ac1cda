package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"planets-catalog/internal/shared/response"
)

const pingTimeout = 2 * time.Second

// Dependency is a backing service whose reachability the health check reports.
// A nil Ping means the dependency is not configured.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
	Planets      *int              `json:"planets,omitempty"`
}

type HealthHandler struct {
	deps  []Dependency
	count func(ctx context.Context) (int, error)
}

// NewHealthHandler reports on deps; count, when set, adds the catalog size.
func NewHealthHandler(count func(ctx context.Context) (int, error), deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, count: count}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health", "remote_addr", r.RemoteAddr)
	logger.Debug("Health check requested")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().Format(time.RFC3339),
		Dependencies: make(map[string]string, len(h.deps)),
	}

	for _, dep := range h.deps {
		switch {
		case dep.Ping == nil:
			resp.Dependencies[dep.Name] = "disabled"
		case dep.Ping(ctx) != nil:
			resp.Dependencies[dep.Name] = "disconnected"
			resp.Status = "degraded"
			logger.Warn("Dependency ping failed", "dependency", dep.Name)
		default:
			resp.Dependencies[dep.Name] = "connected"
		}
	}

	if h.count != nil {
		if n, err := h.count(ctx); err == nil {
			resp.Planets = &n
		} else {
			logger.Warn("Planet count failed", "error", err)
		}
	}

	response.Success(w, http.StatusOK, resp)
}
