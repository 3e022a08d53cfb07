// health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/httputil"
)

// Check represents a single health probe. It should return nil if the
// dependency is healthy, or a non-nil error describing the problem.
type Check func(ctx context.Context) error

// checkTimeout bounds each probe so one hung dependency cannot stall the
// whole health response.
const checkTimeout = 5 * time.Second

// Response is the JSON structure returned by the health handler.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler returns an http.Handler that runs the provided checks on each
// request and returns a JSON response.
// If checks is nil or empty, it behaves as a simple liveness probe:
//
//	{ "status": "ok" }
//
// If any check returns an error, the handler responds with 503 and:
//
//	{ "status": "error", "checks": { "store": "error: ...", ... } }
func Handler(checks map[string]Check, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"})
			return
		}

		results := make(map[string]string, len(checks))
		anyErr := false

		for name, check := range checks {
			if check == nil {
				results[name] = "ok"
				continue
			}
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			err := check(ctx)
			cancel()
			if err != nil {
				anyErr = true
				msg := "error"
				if err.Error() != "" {
					msg = "error: " + err.Error()
				}
				results[name] = msg

				if logger != nil {
					logger.Warn("health check failed",
						zap.String("check", name),
						zap.Error(err),
					)
				}
			} else {
				results[name] = "ok"
			}
		}

		status := http.StatusOK
		resp := Response{Status: "ok", Checks: results}
		if anyErr {
			status = http.StatusServiceUnavailable
			resp.Status = "error"
		}
		httputil.WriteJSON(w, status, resp)
	})
}

// Mount attaches a /health route to the given chi.Router.
//
// Example:
//
//	checks := map[string]health.Check{
//	    "store": store.Ping,
//	}
//	health.Mount(r, checks, logger)
func Mount(r chi.Router, checks map[string]Check, logger *zap.Logger) {
	r.Method(http.MethodGet, "/health", Handler(checks, logger))
}

// MountAt is like Mount but allows specifying a custom path, e.g. "/ready".
func MountAt(r chi.Router, path string, checks map[string]Check, logger *zap.Logger) {
	r.Method(http.MethodGet, path, Handler(checks, logger))
}
