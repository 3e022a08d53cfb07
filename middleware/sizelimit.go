// middleware/sizelimit.go
package middleware

import (
	"net/http"

	"github.com/salihkiraz/lumen-theme/httputil"
)

// LimitBodySize returns a middleware that limits the size of the
// request body to maxBytes. Requests that declare a larger
// Content-Length are rejected up front with 413; everything else is
// wrapped in http.MaxBytesReader so chunked bodies are cut off at the
// limit too. If maxBytes <= 0, it is a no-op.
//
// Apply it early in the middleware chain so handlers never see huge
// bodies.
func LimitBodySize(maxBytes int64) func(next http.Handler) http.Handler {
	if maxBytes <= 0 {
		// No limit: return identity middleware.
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				httputil.JSONError(w, http.StatusRequestEntityTooLarge,
					"request_too_large",
					"The request body exceeds the allowed size",
				)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
