// middleware/notfound.go
package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/httputil"
)

// NotFoundHandler is the router's catch-all for paths outside the theme
// API. Unmatched requests are mostly probes and stale links, so they
// log at debug, tagged with the same request ID the access log carries.
func NotFoundHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if logger != nil {
			logger.Debug("unknown_route",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_ip", r.RemoteAddr),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		}

		httputil.JSONError(w, http.StatusNotFound,
			"unknown_route",
			r.URL.Path+" is not a theme service endpoint",
		)
	}
}

// MethodNotAllowedHandler handles a known route hit with the wrong
// verb, such as GET on an activation endpoint.
func MethodNotAllowedHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if logger != nil {
			logger.Debug("method_not_allowed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_ip", r.RemoteAddr),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		}

		httputil.JSONError(w, http.StatusMethodNotAllowed,
			"method_not_allowed",
			r.Method+" is not supported on "+r.URL.Path,
		)
	}
}
