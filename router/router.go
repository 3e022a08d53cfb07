// router/router.go
package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/logging"
	"github.com/salihkiraz/lumen-theme/metrics"
	"github.com/salihkiraz/lumen-theme/middleware"
)

// New creates a chi.Router pre-wired with the standard middleware stack:
// - RequestID
// - RealIP
// - Recoverer (panic → 500)
// - security headers
// - CORS (from config)
// - body size limit (MaxRequestBodyBytes)
// - JSON Content-Type enforcement for requests with bodies
// - metrics HTTP middleware
// - response compression (if enabled)
// - request logging
// - NotFound / MethodNotAllowed JSON handlers
// It does NOT mount health, version, or the theme API; those are wired by the
// caller so tests can assemble routers without the full application.
func New(cfg *config.Config, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Request context & safety
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))
	r.Use(middleware.SecureDefaults())

	// CORS must run before any handler so preflight requests short-circuit.
	r.Use(middleware.CORSFromConfig(cfg))

	// Body size limit (if configured)
	r.Use(middleware.LimitBodySize(cfg.HTTP.MaxRequestBodyBytes))

	// Bodies must be JSON; body-less requests pass through.
	r.Use(middleware.RequireJSON())

	// Metrics
	r.Use(metrics.HTTPMetrics)

	// Compression (if enabled)
	r.Use(middleware.CompressFromConfig(cfg))

	// Access logging
	r.Use(logging.RequestLogger(logger))

	// NotFound / MethodNotAllowed JSON handlers
	r.NotFound(middleware.NotFoundHandler(logger))
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler(logger))

	return r
}
