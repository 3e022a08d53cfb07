// theme/registry.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/salihkiraz/lumen-theme/viewpath"
)

// Registry discovers themes under a base path and controls which one is
// active. Activating a theme prepends its views directory, and those of
// its ancestors, onto the view-path list so the host's template
// resolver finds theme files before the application defaults.
//
// A Registry is not safe for concurrent use. Callers that share one
// across goroutines (the HTTP layer, for example) must provide their
// own synchronization.
type Registry struct {
	basePath string
	themes   map[string]*Info
	order    []string
	active   string
	views    *viewpath.List
	store    StateStore
}

// New creates a Registry that mutates the given view-path list. A nil
// list is replaced with an empty one.
func New(views *viewpath.List) *Registry {
	if views == nil {
		views = viewpath.New()
	}
	return &Registry{
		themes: make(map[string]*Info),
		views:  views,
	}
}

// NewWithStore creates a Registry that persists the active selection to
// the given state store on every successful activation.
func NewWithStore(views *viewpath.List, store StateStore) *Registry {
	r := New(views)
	r.store = store
	return r
}

// Scan rebuilds the registry from the immediate subdirectories of
// basePath. Each subdirectory containing a manifest is registered under
// its lowercased directory key; folders without a manifest are skipped.
//
// A manifest missing a required attribute aborts the scan with an
// *AttributeError. Themes registered before the bad manifest was
// reached stay registered, so the caller sees exactly what was
// committed up to the failure.
//
// When the scan completes and no theme is active, the first theme in
// scan order is activated automatically. The automatic default is not
// written to the state store, so a persisted selection survives for
// RestoreActive to pick up.
func (r *Registry) Scan(basePath string) error {
	r.basePath = basePath
	r.themes = make(map[string]*Info)
	r.order = nil

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return fmt.Errorf("theme: scan %s: %w", basePath, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := r.load(filepath.Join(basePath, entry.Name()))
		if errors.Is(err, errNoManifest) {
			continue
		}
		if err != nil {
			return err
		}

		if _, exists := r.themes[info.Directory]; !exists {
			r.order = append(r.order, info.Directory)
		}
		r.themes[info.Directory] = info
	}

	if r.active == "" && len(r.order) > 0 {
		return r.activate(r.order[0], false)
	}
	return nil
}

// load reads and validates one theme folder's manifest.
func (r *Registry) load(dir string) (*Info, error) {
	m, path, err := readManifest(dir)
	if err != nil {
		return nil, err
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}

	key := strings.ToLower(m.Directory)
	return &Info{
		Name:        m.Name,
		Author:      m.Author,
		Directory:   key,
		Version:     m.Version,
		Description: m.Description,
		Parent:      m.Parent,
		Path:        filepath.Join(r.basePath, key, "views"),
	}, nil
}

// All returns the registered themes in scan order.
func (r *Registry) All() []*Info {
	out := make([]*Info, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.themes[key])
	}
	return out
}

// Has reports whether dir is a registered directory key. Keys are
// lowercase; Has("Dark") is false even when "dark" is registered.
func (r *Registry) Has(dir string) bool {
	_, exists := r.themes[dir]
	return exists
}

// Get retrieves a theme by directory key.
func (r *Registry) Get(dir string) (*Info, error) {
	info, exists := r.themes[dir]
	if !exists {
		return nil, ErrThemeNotFound
	}
	return info, nil
}

// Active returns the currently active theme. It returns
// ErrNoActiveTheme when nothing has been activated, and
// ErrThemeNotFound when the recorded selection is no longer registered
// after a rescan.
func (r *Registry) Active() (*Info, error) {
	if r.active == "" {
		return nil, ErrNoActiveTheme
	}
	return r.Get(r.active)
}

// ActiveName returns the active directory key, or "" when none.
func (r *Registry) ActiveName() string {
	return r.active
}

// BasePath returns the directory the registry was last scanned from.
func (r *Registry) BasePath() string {
	return r.basePath
}

// Views returns the view-path list the registry mutates.
func (r *Registry) Views() *viewpath.List {
	return r.views
}

// SetActive activates the theme registered under dir. The theme's views
// path and those of its resolvable ancestors are prepended onto the
// view-path list so that the child is searched first, then its parent,
// and so on, ahead of everything already present.
//
// An unknown parent ends the ancestor walk silently; the themes
// resolved up to that point are still applied. Paths accumulate across
// activations: switching themes prepends the new chain without removing
// the old one.
//
// When dir is not registered, SetActive returns ErrThemeNotFound and
// leaves both the view-path list and the active selection untouched.
func (r *Registry) SetActive(dir string) error {
	return r.activate(dir, true)
}

// activate applies dir's view-path chain and records it as active.
// Scan's automatic default passes persist=false so it never overwrites
// a selection saved in the state store before RestoreActive reads it.
func (r *Registry) activate(dir string, persist bool) error {
	if !r.Has(dir) {
		return ErrThemeNotFound
	}

	chain := r.ancestry(dir)
	for i := len(chain) - 1; i >= 0; i-- {
		r.views.PrependPath(chain[i].Path)
	}

	r.active = dir
	if persist && r.store != nil {
		return r.store.SaveActive(dir)
	}
	return nil
}

// ancestry collects dir's theme followed by its resolvable ancestors.
// The walk stops at an unregistered parent and refuses to revisit a
// key, so a parent cycle terminates.
func (r *Registry) ancestry(dir string) []*Info {
	var chain []*Info
	seen := make(map[string]bool)

	for key := dir; key != "" && !seen[key]; {
		info, exists := r.themes[key]
		if !exists {
			break
		}
		seen[key] = true
		chain = append(chain, info)
		key = info.Parent
	}
	return chain
}

// SetBasePath points the registry at a new theme directory. The active
// selection is cleared and the new path is scanned, which auto-activates
// the first theme found there.
func (r *Registry) SetBasePath(path string) error {
	r.active = ""
	return r.Scan(path)
}

// RestoreActive re-activates the selection persisted in the state
// store, when there is one and it is still registered. Call it after
// the initial Scan so a restart keeps the theme that was active before.
func (r *Registry) RestoreActive() error {
	if r.store == nil {
		return nil
	}

	dir, err := r.store.LoadActive()
	if err != nil {
		return err
	}
	if dir == "" || dir == r.active || !r.Has(dir) {
		return nil
	}
	return r.SetActive(dir)
}

// GetThemes returns the registered themes in scan order.
//
// Deprecated: Use All.
func (r *Registry) GetThemes() []*Info {
	return r.All()
}

// ThemeExists reports whether dir is a registered directory key.
//
// Deprecated: Use Has.
func (r *Registry) ThemeExists(dir string) bool {
	return r.Has(dir)
}
