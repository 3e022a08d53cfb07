// middleware/compress.go
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/salihkiraz/lumen-theme/config"
)

// defaultCompressionLevel balances speed and ratio for JSON responses.
const defaultCompressionLevel = 5

// CompressFromConfig returns a compression middleware based on the
// config. If cfg.HTTP.EnableCompression is false, it returns an
// identity middleware that does nothing, so it is safe to apply
// unconditionally and let config decide.
//
// Compression supports gzip and deflate encodings based on the client's
// Accept-Encoding header.
func CompressFromConfig(cfg *config.Config) func(next http.Handler) http.Handler {
	if cfg == nil || !cfg.HTTP.EnableCompression {
		// No-op middleware
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return middleware.Compress(defaultCompressionLevel)
}

// Compress returns a compression middleware with the given level.
// Levels range from 1 (best speed) to 9 (best compression); values
// outside that range are clamped.
func Compress(level int) func(next http.Handler) http.Handler {
	if level < 1 {
		level = 1
	}
	if level > 9 {
		level = 9
	}
	return middleware.Compress(level)
}
