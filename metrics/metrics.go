// metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// reqDuration is a histogram of HTTP request durations in seconds, labeled
// by path, method, and status code.
var reqDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
		// buckets in seconds
		Buckets: []float64{0.01, 0.1, 0.3, 1.2, 5},
	},
	[]string{"path", "method", "status"},
)

// scansTotal counts registry scans, labeled by outcome ("ok" or "error").
var scansTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "theme_scans_total",
		Help: "Number of theme registry scans.",
	},
	[]string{"outcome"},
)

// scanDuration is a histogram of registry scan durations in seconds.
var scanDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "theme_scan_duration_seconds",
		Help:    "Duration of theme registry scans.",
		Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2},
	},
)

// activationsTotal counts theme activations, labeled by theme directory key.
var activationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "theme_activations_total",
		Help: "Number of theme activations.",
	},
	[]string{"theme"},
)

// themesRegistered is the number of themes currently in the registry.
var themesRegistered = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "themes_registered",
		Help: "Number of themes registered after the most recent scan.",
	},
)

// RegisterDefault registers the default Go runtime and process collectors,
// the HTTP request duration histogram, and the theme registry collectors.
// It is safe (and intended) to call this once at startup.
//
// This function will panic if registration fails for reasons other than
// the collector already being registered. This ensures configuration errors
// are caught early rather than silently ignored.
func RegisterDefault(logger *zap.Logger) {
	mustRegister(logger, "Go collector", collectors.NewGoCollector())
	mustRegister(logger, "process collector", collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mustRegister(logger, "HTTP request histogram", reqDuration)
	mustRegister(logger, "scan counter", scansTotal)
	mustRegister(logger, "scan histogram", scanDuration)
	mustRegister(logger, "activation counter", activationsTotal)
	mustRegister(logger, "registered gauge", themesRegistered)
}

// mustRegister attempts to register a Prometheus collector. If registration
// fails for a reason other than AlreadyRegisteredError, it logs a fatal error
// (which calls os.Exit) or panics if no logger is provided.
func mustRegister(logger *zap.Logger, name string, c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Already registered is fine - this can happen in tests or if
			// RegisterDefault is called multiple times.
			return
		}
		if logger != nil {
			logger.Fatal("failed to register "+name, zap.Error(err))
		} else {
			panic("metrics: failed to register " + name + ": " + err.Error())
		}
	}
}

// ObserveScan records one registry scan: its duration, whether it succeeded,
// and the number of themes registered afterwards.
func ObserveScan(d time.Duration, registered int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	scansTotal.WithLabelValues(outcome).Inc()
	scanDuration.Observe(d.Seconds())
	if err == nil {
		themesRegistered.Set(float64(registered))
	}
}

// ObserveActivation records one successful activation of the named theme.
func ObserveActivation(theme string) {
	activationsTotal.WithLabelValues(theme).Inc()
}

// maxPathLabelLength is the maximum length for the path label to prevent
// unbounded cardinality and memory issues in Prometheus.
const maxPathLabelLength = 256

// HTTPMetrics is a middleware that records request duration into the
// http_request_duration_seconds histogram.
//
// It uses the chi route pattern (e.g., "/themes/{dir}") instead of the actual
// request path (e.g., "/themes/dark") to prevent label cardinality explosion.
// Paths longer than 256 characters are truncated with "..." to prevent
// unbounded memory growth in the metrics registry.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		// Default to HTTP/1.x if ProtoMajor is invalid (e.g., malformed request).
		protoMajor := r.ProtoMajor
		if protoMajor < 1 {
			protoMajor = 1
		}
		ww := middleware.NewWrapResponseWriter(w, protoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		statusCode := ww.Status()
		// Status 0 means WriteHeader was never called, which net/http treats
		// as a 200. Place this middleware AFTER the recovery middleware so
		// panics are recorded with the 500 the recoverer writes.
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		// Clamp status code to valid HTTP range to prevent unbounded label cardinality.
		if statusCode < 100 || statusCode > 599 {
			statusCode = http.StatusInternalServerError
		}

		// Use route pattern to avoid cardinality explosion from path parameters.
		// Falls back to raw path if route context is unavailable (non-chi routers).
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		// Truncate extremely long paths without splitting multi-byte characters.
		if len(path) > maxPathLabelLength {
			truncateLen := maxPathLabelLength - 3
			if truncateLen < 1 {
				truncateLen = 1
			}
			path = truncateUTF8(path, truncateLen) + "..."
		}

		reqDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(statusCode),
		).Observe(duration)
	})
}

// Handler returns an http.Handler that exposes the Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// truncateUTF8 truncates s to at most maxBytes bytes without splitting
// multi-byte UTF-8 characters. If s is already <= maxBytes, it is returned
// unchanged. Otherwise, it truncates at the last valid rune boundary.
// If maxBytes <= 0, returns an empty string.
func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	// Work backwards from maxBytes to find a valid rune boundary.
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
