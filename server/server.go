// server/server.go
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/salihkiraz/lumen-theme/config"
)

// The admin surface serves small JSON bodies plus the live-reload
// websocket, so the connection timeouts are fixed and only the shutdown
// window comes from config. Websocket connections are hijacked and
// outlive these limits.
const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
)

// WithShutdownSignals returns a context that is canceled when the
// process receives SIGINT or SIGTERM. Use it as the parent context for
// ListenAndServeWithContext. The returned cancel function also detaches
// the signal handler.
func WithShutdownSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			if logger != nil {
				logger.Info("shutdown signal received", zap.Any("signal", sig))
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// ListenAndServeWithContext serves handler on the configured port and
// blocks until ctx is canceled or the server hits a terminal error.
// Cancellation starts a graceful shutdown bounded by cfg's
// shutdown_timeout.
//
// It does not wire any routes itself; callers provide a fully
// configured http.Handler.
func ListenAndServeWithContext(ctx context.Context, cfg *config.Config, handler http.Handler, logger *zap.Logger) error {
	if cfg == nil {
		return fmt.Errorf("server: cfg is nil")
	}
	if handler == nil {
		return fmt.Errorf("server: handler is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Route stdlib error logs into zap at Warn level.
	if stdlog, err := zap.NewStdLogAt(logger, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = stdlog
	} else {
		logger.Warn("failed to attach stdlib error logger", zap.Error(err))
	}

	addr := ":" + strconv.Itoa(cfg.HTTP.HTTPPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil

	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
