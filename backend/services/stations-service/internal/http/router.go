package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/http/handlers"
	"stationhub/backend/services/stations-service/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers     *handlers.AuthHandlers
	StationsHandlers *handlers.StationsHandlers
	HealthHandler    http.HandlerFunc
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
	// Metrics receives per-request observations when set.
	Metrics middleware.RequestRecorder
	Logger  *zap.Logger
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}
	// Recovery sits innermost so recovered panics are still logged and counted as 500s.
	r.Use(middleware.RecoveryMiddleware(deps.Logger))

	r.Get("/health", deps.HealthHandler)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", deps.AuthHandlers.Register)
		r.Post("/login", deps.AuthHandlers.Login)
		r.Get("/me", deps.AuthHandlers.Me)
	})

	r.Route("/api/charging-stations", func(r chi.Router) {
		r.Get("/", deps.StationsHandlers.List)
		r.Post("/", deps.StationsHandlers.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", deps.StationsHandlers.Get)
			r.Put("/", deps.StationsHandlers.Update)
			r.Delete("/", deps.StationsHandlers.Delete)
		})
	})

	return r
}
