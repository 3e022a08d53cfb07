// auth/auth.go
package auth

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/auth/apikey"
	"github.com/salihkiraz/lumen-theme/auth/jwtauth"
	"github.com/salihkiraz/lumen-theme/config"
)

// FromConfig picks the admin auth middleware from configuration.
// Precedence: JWT secret, then hashed API key, then plain API key. When none
// is configured the admin surface is left open and a warning is logged; that
// is acceptable for local development only.
func FromConfig(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	opts := apikey.Options{Realm: "lumen-admin"}

	switch {
	case cfg.Auth.AdminJWTSecret != "":
		return jwtauth.Require(cfg.Auth.AdminJWTSecret, logger)
	case cfg.Auth.AdminAPIKeyHash != "":
		return apikey.RequireHash(cfg.Auth.AdminAPIKeyHash, opts, logger)
	case cfg.Auth.AdminAPIKey != "":
		return apikey.Require(cfg.Auth.AdminAPIKey, opts, logger)
	default:
		if logger != nil {
			logger.Warn("no admin auth configured; theme API is open")
		}
		return func(next http.Handler) http.Handler { return next }
	}
}
