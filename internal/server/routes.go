package server

import (
	"log/slog"
	"net/http"

	"planets-catalog/internal/auth"
	authHandlers "planets-catalog/internal/auth/handlers"
	"planets-catalog/internal/middleware"
	"planets-catalog/internal/planet"
	planetHandlers "planets-catalog/internal/planet/handlers"
	serverHandlers "planets-catalog/internal/server/handlers"
	"planets-catalog/internal/shared/cookies"
)

type Routes struct {
	planetService *planet.Service
	tokens        *auth.TokenManager
	cookies       cookies.Options
	dependencies  []serverHandlers.Dependency
}

// NewRoutes wires the API. A nil token manager leaves writes unauthenticated
// and omits the session endpoints.
func NewRoutes(planetService *planet.Service, tokens *auth.TokenManager, cookieOpts cookies.Options, dependencies ...serverHandlers.Dependency) *Routes {
	return &Routes{
		planetService: planetService,
		tokens:        tokens,
		cookies:       cookieOpts,
		dependencies:  dependencies,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.planetService.Count, r.dependencies...)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	writeGuard := middleware.RequireWriteToken(r.tokens)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)

	// Reads are public; every other method needs a write token
	mux.Handle("/api/planets", writeGuard(http.HandlerFunc(planetHandler.Collection)))
	mux.Handle("/api/planets/{id}", writeGuard(http.HandlerFunc(planetHandler.Item)))
	mux.Handle("/api/planets/{id}/atmosphere", writeGuard(http.HandlerFunc(planetHandler.Atmosphere)))

	// Browser sessions
	if r.tokens != nil {
		sessionHandler := authHandlers.NewSessionHandler(r.tokens, r.cookies)
		mux.Handle("POST /api/auth/session", writeGuard(http.HandlerFunc(sessionHandler.Login)))
		mux.HandleFunc("DELETE /api/auth/session", sessionHandler.Logout)
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "GET /api/planets", "GET /api/planets/{id}"},
		"protected_endpoints", []string{"POST /api/planets", "PATCH|DELETE /api/planets/{id}", "PUT|DELETE /api/planets/{id}/atmosphere"},
		"session_endpoints", []string{"POST /api/auth/session", "DELETE /api/auth/session"},
		"auth_enabled", r.tokens != nil,
	)

	return mux
}
