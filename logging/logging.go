// logging/logging.go
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BootstrapLogger returns a development-friendly logger for early startup.
// It's safe to use before config is loaded and logs to stderr.
func BootstrapLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	logger, err := cfg.Build()
	if err != nil {
		// If we can't even build a logger, fall back to a no-op logger to avoid panics.
		return zap.NewNop()
	}
	return logger
}

// ValidLogLevels lists all valid zap log levels for validation.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLogLevel checks if the given level string is a valid zap log level.
// Comparison is case-insensitive.
func IsValidLogLevel(level string) bool {
	level = strings.ToLower(level)
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// BuildLogger constructs the final logger from the configured log level
// and environment. "prod" selects the JSON production encoder; anything
// else gets the development config. Timestamps are ISO-8601 and output
// goes to stderr either way.
//
// An invalid level falls back to "info" with a warning on stderr so the
// misconfiguration is visible.
func BuildLogger(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if !IsValidLogLevel(level) {
		_, _ = os.Stderr.WriteString("WARNING: invalid log level \"" + level +
			"\"; valid levels are: " + strings.Join(ValidLogLevels, ", ") + ". Defaulting to \"info\".\n")
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else if err := cfg.Level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// MustBuildLogger is a convenience for main() that wants to fatal on logger build failure.
func MustBuildLogger(level, env string) *zap.Logger {
	logger, err := BuildLogger(level, env)
	if err != nil {
		// Last-resort: log to stderr and exit.
		_, _ = os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	return logger
}
