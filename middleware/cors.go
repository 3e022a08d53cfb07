// middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/salihkiraz/lumen-theme/config"
)

// CORSFromConfig returns a middleware that applies CORS behavior based
// on the config's CORS section.
//
// If cfg.CORS.EnableCORS is false, it returns an identity middleware
// that does nothing. This makes it safe to unconditionally call:
//
//	r.Use(middleware.CORSFromConfig(cfg))
//
// and let config decide whether CORS is active.
func CORSFromConfig(cfg *config.Config) func(next http.Handler) http.Handler {
	if cfg == nil || !cfg.CORS.EnableCORS {
		// No-op middleware
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	opts := cors.Options{
		AllowedOrigins:   cfg.CORS.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORS.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORS.CORSAllowedHeaders,
		ExposedHeaders:   cfg.CORS.CORSExposedHeaders,
		AllowCredentials: cfg.CORS.CORSAllowCredentials,
		MaxAge:           cfg.CORS.CORSMaxAge,
	}

	return cors.Handler(opts)
}
