// auth/jwtauth/jwtauth.go
package jwtauth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/httputil"
)

type contextKey struct{}

// subjectKey carries the token subject through the request context.
var subjectKey = contextKey{}

// Require returns a middleware that enforces an HS256-signed bearer token.
// Expired or otherwise invalid tokens are rejected with 401. On success the
// token subject is stored in the request context; see Subject.
func Require(secret string, logger *zap.Logger) func(next http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(key) == 0 {
				if logger != nil {
					logger.Warn("jwt middleware used with empty secret")
				}
				httputil.JSONErrorSimple(w, http.StatusInternalServerError, "server misconfigured")
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, logger, r, "missing bearer token")
				return
			}

			token, err := jwt.Parse(raw,
				func(t *jwt.Token) (any, error) { return key, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				unauthorized(w, logger, r, "invalid token")
				return
			}

			sub, _ := token.Claims.GetSubject()
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey, sub)))
		})
	}
}

// Subject returns the token subject stored by Require, or "" when the
// request did not pass through the middleware.
func Subject(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

// Token mints an HS256-signed token for the given subject, valid for ttl.
// Intended for issuing admin tokens from the CLI and for tests.
func Token(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func unauthorized(w http.ResponseWriter, logger *zap.Logger, r *http.Request, reason string) {
	if logger != nil {
		logger.Warn("JWT unauthorized",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("reason", reason),
		)
	}
	w.Header().Set("WWW-Authenticate", `Bearer realm="lumen"`)
	httputil.JSONErrorSimple(w, http.StatusUnauthorized, "unauthorized")
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(auth[len("Bearer "):])
	return token, token != ""
}
