// auth/apikey/apikey.go
package apikey

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/salihkiraz/lumen-theme/httputil"
)

// Options control how the API-key middleware behaves.
type Options struct {
	// Realm is used in the WWW-Authenticate header, e.g. "lumen-admin".
	Realm string
}

// Require returns a middleware that enforces a static API key.
// The presented key is compared against expected in constant time.
// Key lookup order:
//  1. Authorization: Bearer <token>
//  2. X-API-Key header
//  3. api_key query param
func Require(expected string, opts Options, logger *zap.Logger) func(next http.Handler) http.Handler {
	expected = strings.TrimSpace(expected)

	verify := func(key string) bool {
		return subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1
	}
	return require(expected == "", verify, opts, logger)
}

// RequireHash is like Require but compares the presented key against a
// bcrypt hash, so the plaintext key never has to appear in configuration.
func RequireHash(hash string, opts Options, logger *zap.Logger) func(next http.Handler) http.Handler {
	hash = strings.TrimSpace(hash)

	verify := func(key string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
	}
	return require(hash == "", verify, opts, logger)
}

func require(misconfigured bool, verify func(string) bool, opts Options, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if misconfigured {
				// Config validation should prevent this in prod, but don't panic at runtime.
				if logger != nil {
					logger.Warn("apikey middleware used with empty expected key")
				}
				httputil.JSONErrorSimple(w, http.StatusInternalServerError, "server misconfigured")
				return
			}

			key, ok := keyFromRequest(r)
			if !ok || !verify(key) {
				if logger != nil {
					logger.Warn("API key unauthorized",
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.String("remote_ip", r.RemoteAddr),
					)
				}
				realm := opts.Realm
				if strings.TrimSpace(realm) == "" {
					realm = "lumen"
				}
				w.Header().Set("WWW-Authenticate", `Bearer realm="`+realm+`"`)
				httputil.JSONErrorSimple(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// keyFromRequest extracts an API key from the request. It checks, in order:
//  1. Authorization: Bearer <token>
//  2. X-API-Key header
//  3. api_key query parameter
func keyFromRequest(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		token := strings.TrimSpace(auth[len("Bearer "):])
		if token != "" {
			return token, true
		}
	}

	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key, true
	}

	if key := strings.TrimSpace(r.URL.Query().Get("api_key")); key != "" {
		return key, true
	}

	return "", false
}
