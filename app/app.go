// app/app.go
package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/health"
	"github.com/salihkiraz/lumen-theme/logging"
	"github.com/salihkiraz/lumen-theme/metrics"
	"github.com/salihkiraz/lumen-theme/server"
	"github.com/salihkiraz/lumen-theme/theme"
	"github.com/salihkiraz/lumen-theme/viewpath"
)

// Run executes the standard startup sequence for the theme service:
//
//  1. Bootstrap logger
//  2. Load config
//  3. Build final logger based on config
//  4. Register default metrics
//  5. Connect the state store
//  6. Build the registry: scan, then restore the persisted selection
//  7. Wire event publishers and the live hub
//  8. Build the router and admin routes
//  9. Serve until shutdown
//
// It blocks until the context is canceled or a shutdown signal lands.
func Run(ctx context.Context) error {
	// 1) Bootstrap logger for early startup
	bootstrap := logging.BootstrapLogger()
	defer bootstrap.Sync()

	// 2) Load config
	cfg, err := config.Load(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return err
	}
	bootstrap.Info("config loaded",
		zap.String("env", cfg.Env),
		zap.String("log_level", cfg.LogLevel),
	)

	// 3) Build final logger
	logger := logging.MustBuildLogger(cfg.LogLevel, cfg.Env)
	defer logger.Sync()
	logger.Info("logger initialized", zap.String("app", "lumen-theme"))

	// 4) Register default metrics (Go, process, HTTP, theme collectors)
	metrics.RegisterDefault(logger)

	// 5) Connect the state store
	checks := make(map[string]health.Check)
	store, closeStore, err := BuildStore(cfg, checks, logger)
	if err != nil {
		logger.Error("state store connect failed", zap.Error(err))
		return err
	}
	defer closeStore()

	// 6) Build the registry from the themes directory. A failed scan is
	// not fatal: themes registered before the failure stay usable and an
	// admin can repair the manifest and POST /rescan.
	reg := theme.NewWithStore(viewpath.New(cfg.Themes.ViewPaths...), store)
	if err := reg.Scan(cfg.Themes.ThemesPath); err != nil {
		logger.Warn("initial theme scan failed", zap.Error(err))
	}
	if forced := cfg.Themes.ActiveTheme; forced != "" {
		if err := reg.SetActive(strings.ToLower(forced)); err != nil {
			logger.Warn("configured active_theme not applied",
				zap.String("theme", forced), zap.Error(err))
		}
	} else if err := reg.RestoreActive(); err != nil {
		logger.Warn("persisted active theme not restored", zap.Error(err))
	}
	logger.Info("registry ready",
		zap.Int("themes", len(reg.All())),
		zap.String("active", reg.ActiveName()),
		zap.String("base_path", reg.BasePath()),
	)

	// 7) Wire event publishers and the live hub
	pub, hub, closeEvents, err := buildPublisher(ctx, cfg, checks, logger)
	if err != nil {
		logger.Error("event publisher connect failed", zap.Error(err))
		return err
	}
	defer closeEvents()

	// 8) Build the HTTP handler (router + middleware + routes)
	handler := buildHandler(cfg, reg, pub, hub, checks, logger)

	// 9) Serve until a shutdown signal lands
	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	if err := server.ListenAndServeWithContext(ctx, cfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
