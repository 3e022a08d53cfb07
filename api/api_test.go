package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/events"
	"github.com/salihkiraz/lumen-theme/theme"
	"github.com/salihkiraz/lumen-theme/viewpath"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) byType(eventType string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, ev := range p.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func writeTheme(t *testing.T, base, folder, manifest string) {
	t.Helper()
	dir := filepath.Join(base, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "theme.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func newTestServer(t *testing.T, base string) (*httptest.Server, *theme.Registry, *capturePublisher) {
	t.Helper()
	reg := theme.New(viewpath.New("app/views"))
	if err := reg.Scan(base); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	pub := &capturePublisher{}
	h := NewHandler(reg, pub, "en", zap.NewNop())
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv, reg, pub
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestListThemes(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
	writeTheme(t, base, "bravo", `{"name": "Bravo", "author": "Ada", "directory": "bravo"}`)
	srv, _, _ := newTestServer(t, base)

	resp, err := http.Get(srv.URL + "/themes")
	if err != nil {
		t.Fatalf("GET /themes: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Themes []theme.Info `json:"themes"`
		Active string       `json:"active"`
	}
	decodeBody(t, resp, &body)

	if len(body.Themes) != 2 {
		t.Fatalf("themes = %d, want 2", len(body.Themes))
	}
	if body.Themes[0].Name != "Alpha" || body.Themes[1].Name != "Bravo" {
		t.Errorf("theme order = [%s, %s], want [Alpha, Bravo]", body.Themes[0].Name, body.Themes[1].Name)
	}
	if body.Active != "alpha" {
		t.Errorf("active = %q, want %q", body.Active, "alpha")
	}
}

func TestGetTheme(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha", "version": "2.1"}`)
	srv, _, _ := newTestServer(t, base)

	t.Run("known", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/themes/alpha")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var info theme.Info
		decodeBody(t, resp, &info)
		if info.Name != "Alpha" {
			t.Errorf("name = %q, want %q", info.Name, "Alpha")
		}
		if info.Version != "2.1" {
			t.Errorf("version = %q, want %q", info.Version, "2.1")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/themes/ghost")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		if body.Error != "theme_not_found" {
			t.Errorf("error = %q, want %q", body.Error, "theme_not_found")
		}
	})
}

func TestGetActiveTheme(t *testing.T) {
	t.Run("auto-activated", func(t *testing.T) {
		base := t.TempDir()
		writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
		srv, _, _ := newTestServer(t, base)

		resp, err := http.Get(srv.URL + "/themes/active")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var info theme.Info
		decodeBody(t, resp, &info)
		if info.Directory != "alpha" {
			t.Errorf("directory = %q, want %q", info.Directory, "alpha")
		}
	})

	t.Run("none", func(t *testing.T) {
		srv, _, _ := newTestServer(t, t.TempDir())

		resp, err := http.Get(srv.URL + "/themes/active")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		if body.Error != "no_active_theme" {
			t.Errorf("error = %q, want %q", body.Error, "no_active_theme")
		}
	})
}

func TestActivateTheme(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "parent", `{"name": "Parent", "author": "Ada", "directory": "parent"}`)
	writeTheme(t, base, "child", `{"name": "Child", "author": "Ada", "directory": "child", "parent": "parent"}`)
	srv, _, pub := newTestServer(t, base)

	resp, err := http.Post(srv.URL+"/themes/child/activate", "", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Theme theme.Info `json:"theme"`
		Paths []string   `json:"paths"`
	}
	decodeBody(t, resp, &body)

	if body.Theme.Directory != "child" {
		t.Errorf("theme = %q, want %q", body.Theme.Directory, "child")
	}

	// Activation prepends child then parent ahead of the existing paths.
	// "child" was auto-activated at scan time, so its chain is already in
	// the list once; the explicit activation prepends it again.
	want := []string{
		filepath.Join(base, "child", "views"),
		filepath.Join(base, "parent", "views"),
	}
	if len(body.Paths) < 2 || body.Paths[0] != want[0] || body.Paths[1] != want[1] {
		t.Errorf("paths = %v, want prefix %v", body.Paths, want)
	}
	if body.Paths[len(body.Paths)-1] != "app/views" {
		t.Errorf("last path = %q, want %q", body.Paths[len(body.Paths)-1], "app/views")
	}

	activated := pub.byType(events.TypeActivated)
	// One event from the auto-activation is not published (it happens at
	// scan time, before the handler exists); only the API call publishes.
	if len(activated) != 1 {
		t.Fatalf("activated events = %d, want 1", len(activated))
	}
	if activated[0].Theme != "child" {
		t.Errorf("event theme = %q, want %q", activated[0].Theme, "child")
	}

	t.Run("unknown theme", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/themes/ghost/activate", "", nil)
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestRescan(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
	srv, _, pub := newTestServer(t, base)

	// A theme added after the initial scan appears after a rescan.
	writeTheme(t, base, "bravo", `{"name": "Bravo", "author": "Ada", "directory": "bravo"}`)

	resp, err := http.Post(srv.URL+"/rescan", "", nil)
	if err != nil {
		t.Fatalf("POST /rescan: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Themes []theme.Info `json:"themes"`
		Active string       `json:"active"`
	}
	decodeBody(t, resp, &body)

	if len(body.Themes) != 2 {
		t.Errorf("themes = %d, want 2", len(body.Themes))
	}
	if body.Active != "alpha" {
		t.Errorf("active = %q, want %q (selection survives rescan)", body.Active, "alpha")
	}
	if len(pub.byType(events.TypeScanned)) != 1 {
		t.Errorf("scanned events = %d, want 1", len(pub.byType(events.TypeScanned)))
	}
}

func TestRescanInvalidManifest(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
	srv, reg, _ := newTestServer(t, base)

	writeTheme(t, base, "broken", `{"name": "Broken", "directory": "broken"}`)

	resp, err := http.Post(srv.URL+"/rescan", "", nil)
	if err != nil {
		t.Fatalf("POST /rescan: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)

	if body.Error != "invalid_manifest" {
		t.Errorf("error = %q, want %q", body.Error, "invalid_manifest")
	}
	if !strings.Contains(body.Message, `"author"`) {
		t.Errorf("message = %q, want it to name the missing attribute", body.Message)
	}

	// Themes scanned before the failure stay registered.
	if !reg.Has("alpha") {
		t.Error("alpha should remain registered after the aborted scan")
	}
}

func TestSetBasePath(t *testing.T) {
	baseA := t.TempDir()
	writeTheme(t, baseA, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
	srv, reg, pub := newTestServer(t, baseA)

	baseB := t.TempDir()
	writeTheme(t, baseB, "zulu", `{"name": "Zulu", "author": "Zed", "directory": "zulu"}`)

	payload, _ := json.Marshal(map[string]string{"path": baseB})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/basepath", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /basepath: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Active string `json:"active"`
	}
	decodeBody(t, resp, &body)

	if body.Active != "zulu" {
		t.Errorf("active = %q, want %q (first theme of the new path)", body.Active, "zulu")
	}
	if reg.BasePath() != baseB {
		t.Errorf("BasePath() = %q, want %q", reg.BasePath(), baseB)
	}
	if len(pub.byType(events.TypeBasePathChanged)) != 1 {
		t.Errorf("basepath events = %d, want 1", len(pub.byType(events.TypeBasePathChanged)))
	}

	t.Run("empty path", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/basepath", strings.NewReader(`{"path": ""}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("PUT: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/basepath", strings.NewReader(`{"path":`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("PUT: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
		}
	})
}

func TestThemeTranslations(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "parent", `{"name": "Parent", "author": "Ada", "directory": "parent"}`)
	writeTheme(t, base, "child", `{"name": "Child", "author": "Ada", "directory": "child", "parent": "parent"}`)

	writeLang := func(folder, locale, content string) {
		dir := filepath.Join(base, folder, "lang")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, locale+".json"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeLang("parent", "en", `{"greet": "hello", "bye": "goodbye"}`)
	writeLang("child", "en", `{"greet": "hey"}`)
	writeLang("child", "tr", `{"greet": "merhaba"}`)

	srv, _, _ := newTestServer(t, base)

	t.Run("child overrides parent", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/themes/child/translations?locale=en")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var body struct {
			Locale   string            `json:"locale"`
			Messages map[string]string `json:"messages"`
		}
		decodeBody(t, resp, &body)

		if body.Locale != "en" {
			t.Errorf("locale = %q, want %q", body.Locale, "en")
		}
		if body.Messages["greet"] != "hey" {
			t.Errorf("greet = %q, want child's %q", body.Messages["greet"], "hey")
		}
		if body.Messages["bye"] != "goodbye" {
			t.Errorf("bye = %q, want parent's %q", body.Messages["bye"], "goodbye")
		}
	})

	t.Run("accept-language negotiation", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/themes/child/translations", nil)
		req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}

		var body struct {
			Locale   string            `json:"locale"`
			Messages map[string]string `json:"messages"`
		}
		decodeBody(t, resp, &body)

		if body.Locale != "tr" {
			t.Errorf("locale = %q, want %q", body.Locale, "tr")
		}
		if body.Messages["greet"] != "merhaba" {
			t.Errorf("greet = %q, want %q", body.Messages["greet"], "merhaba")
		}
	})

	t.Run("unknown theme", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/themes/ghost/translations")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestViewPaths(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Ada", "directory": "alpha"}`)
	srv, _, _ := newTestServer(t, base)

	resp, err := http.Get(srv.URL + "/viewpaths")
	if err != nil {
		t.Fatalf("GET /viewpaths: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Paths []string `json:"paths"`
	}
	decodeBody(t, resp, &body)

	want := []string{filepath.Join(base, "alpha", "views"), "app/views"}
	if len(body.Paths) != 2 || body.Paths[0] != want[0] || body.Paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", body.Paths, want)
	}
}
