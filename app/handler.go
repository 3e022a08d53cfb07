// app/handler.go
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/api"
	"github.com/salihkiraz/lumen-theme/auth"
	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/events"
	"github.com/salihkiraz/lumen-theme/health"
	"github.com/salihkiraz/lumen-theme/live"
	"github.com/salihkiraz/lumen-theme/metrics"
	"github.com/salihkiraz/lumen-theme/router"
	"github.com/salihkiraz/lumen-theme/theme"
	"github.com/salihkiraz/lumen-theme/version"
)

// buildHandler assembles the admin surface. The ops endpoints stay open;
// the theme API sits behind the configured auth middleware.
func buildHandler(cfg *config.Config, reg *theme.Registry, pub events.Publisher, hub *live.Hub, checks map[string]health.Check, logger *zap.Logger) http.Handler {
	r := router.New(cfg, logger)

	health.Mount(r, checks, logger)
	version.Mount(r)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if hub != nil {
		r.Method(http.MethodGet, "/live", hub.Handler())
	}

	admin := api.NewHandler(reg, pub, cfg.Themes.DefaultLocale, logger)
	r.Group(func(gr chi.Router) {
		gr.Use(auth.FromConfig(cfg, logger))
		gr.Mount("/", admin.Routes())
	})

	return r
}
