// api/api.go
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/events"
	"github.com/salihkiraz/lumen-theme/httputil"
	"github.com/salihkiraz/lumen-theme/i18n"
	"github.com/salihkiraz/lumen-theme/metrics"
	"github.com/salihkiraz/lumen-theme/theme"
)

// publishTimeout bounds event delivery after a registry change. Publishing
// happens on a background context so a client that disconnects right after
// an activation does not cancel the notification.
const publishTimeout = 5 * time.Second

// Handler serves the theme management API. The registry is not safe for
// concurrent use, so every handler goes through the Handler's lock: reads
// share it, mutations hold it exclusively.
type Handler struct {
	mu       sync.RWMutex
	registry *theme.Registry
	pub      events.Publisher
	locale   string
	logger   *zap.Logger
}

// NewHandler wraps a registry for HTTP access. A nil publisher disables
// event delivery; defaultLocale is the fallback for the translations
// endpoint ("" means "en").
func NewHandler(reg *theme.Registry, pub events.Publisher, defaultLocale string, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return &Handler{registry: reg, pub: pub, locale: defaultLocale, logger: logger}
}

// Routes returns the API routes. Callers decide where to mount them and
// which auth middleware to wrap them in.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/themes", h.listThemes)
	r.Get("/themes/active", h.activeTheme)
	r.Get("/themes/{dir}", h.getTheme)
	r.Get("/themes/{dir}/translations", h.themeTranslations)
	r.Post("/themes/{dir}/activate", h.activateTheme)
	r.Post("/rescan", h.rescan)
	r.Put("/basepath", h.setBasePath)
	r.Get("/viewpaths", h.viewPaths)

	return r
}

type listResponse struct {
	Themes []*theme.Info `json:"themes"`
	Active string        `json:"active,omitempty"`
}

type activateResponse struct {
	Theme *theme.Info `json:"theme"`
	Paths []string    `json:"paths"`
}

type scanResponse struct {
	Themes []*theme.Info `json:"themes"`
	Active string        `json:"active,omitempty"`
	Paths  []string      `json:"paths"`
}

type basePathRequest struct {
	Path string `json:"path"`
}

type viewPathsResponse struct {
	Paths []string `json:"paths"`
}

func (h *Handler) listThemes(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	themes := h.registry.All()
	active := h.registry.ActiveName()
	h.mu.RUnlock()

	httputil.WriteJSON(w, http.StatusOK, listResponse{Themes: themes, Active: active})
}

func (h *Handler) activeTheme(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	info, err := h.registry.Active()
	h.mu.RUnlock()

	if err != nil {
		switch {
		case errors.Is(err, theme.ErrNoActiveTheme):
			httputil.JSONError(w, http.StatusNotFound, "no_active_theme", "no theme has been activated")
		case errors.Is(err, theme.ErrThemeNotFound):
			httputil.JSONError(w, http.StatusNotFound, "theme_not_found", "active theme is no longer registered")
		default:
			httputil.JSONErrorSimple(w, http.StatusInternalServerError, "internal_error")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	dir := chi.URLParam(r, "dir")

	h.mu.RLock()
	info, err := h.registry.Get(dir)
	h.mu.RUnlock()

	if err != nil {
		httputil.JSONError(w, http.StatusNotFound, "theme_not_found", "no theme registered under "+dir)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, info)
}

type translationsResponse struct {
	Theme    string            `json:"theme"`
	Locale   string            `json:"locale"`
	Locales  []string          `json:"locales"`
	Messages map[string]string `json:"messages"`
}

// themeTranslations serves the theme's resolved translation messages,
// with parent themes supplying whatever the child does not override. The
// locale comes from the ?locale query parameter, or from Accept-Language
// negotiation when it is absent.
func (h *Handler) themeTranslations(w http.ResponseWriter, r *http.Request) {
	dir := chi.URLParam(r, "dir")

	bundle := i18n.NewBundle(h.locale)

	h.mu.RLock()
	_, err := h.registry.Get(dir)
	if err == nil {
		err = i18n.LoadThemeChain(bundle, h.registry, dir)
	}
	h.mu.RUnlock()

	if errors.Is(err, theme.ErrThemeNotFound) {
		httputil.JSONError(w, http.StatusNotFound, "theme_not_found", "no theme registered under "+dir)
		return
	}
	if err != nil {
		h.logError("load theme translations", err)
		httputil.JSONError(w, http.StatusInternalServerError, "translations_failed", err.Error())
		return
	}

	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = bundle.Match(r.Header.Get("Accept-Language"))
	}

	httputil.WriteJSON(w, http.StatusOK, translationsResponse{
		Theme:    dir,
		Locale:   locale,
		Locales:  bundle.Locales(),
		Messages: bundle.Messages(locale),
	})
}

func (h *Handler) activateTheme(w http.ResponseWriter, r *http.Request) {
	dir := chi.URLParam(r, "dir")

	h.mu.Lock()
	err := h.registry.SetActive(dir)
	if errors.Is(err, theme.ErrThemeNotFound) {
		h.mu.Unlock()
		httputil.JSONError(w, http.StatusNotFound, "theme_not_found", "no theme registered under "+dir)
		return
	}
	info, _ := h.registry.Get(dir)
	paths := h.registry.Views().Paths()
	h.mu.Unlock()

	// Any other SetActive error is a state-store write failure. The
	// activation itself is already applied, so report success and log it.
	if err != nil {
		h.logError("persist active theme", err)
	}

	metrics.ObserveActivation(info.Directory)
	h.publish(events.Event{
		Type:  events.TypeActivated,
		Theme: info.Directory,
		Paths: paths,
		At:    time.Now().UTC(),
	})

	httputil.WriteJSON(w, http.StatusOK, activateResponse{Theme: info, Paths: paths})
}

func (h *Handler) rescan(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	start := time.Now()
	err := h.registry.Scan(h.registry.BasePath())
	elapsed := time.Since(start)
	themes := h.registry.All()
	active := h.registry.ActiveName()
	paths := h.registry.Views().Paths()
	h.mu.Unlock()

	metrics.ObserveScan(elapsed, len(themes), err)

	if err != nil {
		h.writeScanError(w, err)
		return
	}

	h.publish(events.Event{
		Type:  events.TypeScanned,
		Paths: paths,
		At:    time.Now().UTC(),
	})

	httputil.WriteJSON(w, http.StatusOK, scanResponse{Themes: themes, Active: active, Paths: paths})
}

func (h *Handler) setBasePath(w http.ResponseWriter, r *http.Request) {
	var req basePathRequest
	if err := httputil.BindJSON(r, &req); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Path == "" {
		httputil.JSONError(w, http.StatusBadRequest, "invalid_request", "path must not be empty")
		return
	}

	h.mu.Lock()
	start := time.Now()
	err := h.registry.SetBasePath(req.Path)
	elapsed := time.Since(start)
	themes := h.registry.All()
	active := h.registry.ActiveName()
	paths := h.registry.Views().Paths()
	h.mu.Unlock()

	metrics.ObserveScan(elapsed, len(themes), err)

	if err != nil {
		h.writeScanError(w, err)
		return
	}

	h.publish(events.Event{
		Type:  events.TypeBasePathChanged,
		Paths: paths,
		At:    time.Now().UTC(),
	})

	httputil.WriteJSON(w, http.StatusOK, scanResponse{Themes: themes, Active: active, Paths: paths})
}

func (h *Handler) viewPaths(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	paths := h.registry.Views().Paths()
	h.mu.RUnlock()

	httputil.WriteJSON(w, http.StatusOK, viewPathsResponse{Paths: paths})
}

// writeScanError maps scan failures onto the API error space. A manifest
// with a missing required attribute is the caller's data problem (422);
// anything else, unreadable directories included, is a server-side 500.
func (h *Handler) writeScanError(w http.ResponseWriter, err error) {
	var attrErr *theme.AttributeError
	if errors.As(err, &attrErr) {
		httputil.JSONError(w, http.StatusUnprocessableEntity, "invalid_manifest", attrErr.Error())
		return
	}
	h.logError("scan themes", err)
	httputil.JSONError(w, http.StatusInternalServerError, "scan_failed", err.Error())
}

func (h *Handler) publish(ev events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := h.pub.Publish(ctx, ev); err != nil && h.logger != nil {
		h.logger.Warn("event publish failed",
			zap.String("type", ev.Type),
			zap.Error(err),
		)
	}
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, zap.Error(err))
	}
}
