package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/salihkiraz/lumen-theme/viewpath"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if got, err := s.LoadActive(); err != nil || got != "" {
		t.Fatalf("LoadActive = (%q, %v), want (\"\", nil)", got, err)
	}
	if err := s.SaveActive("dark"); err != nil {
		t.Fatalf("SaveActive returned error: %v", err)
	}
	if got, _ := s.LoadActive(); got != "dark" {
		t.Errorf("LoadActive = %q, want %q", got, "dark")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping returned error: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "theme.json")
	s := NewFileStore(path)

	if got, err := s.LoadActive(); err != nil || got != "" {
		t.Fatalf("LoadActive = (%q, %v), want (\"\", nil) before first save", got, err)
	}
	if err := s.SaveActive("dark"); err != nil {
		t.Fatalf("SaveActive returned error: %v", err)
	}
	if err := s.SaveActive("light"); err != nil {
		t.Fatalf("second SaveActive returned error: %v", err)
	}

	// A fresh store reading the same file sees the last save.
	if got, err := NewFileStore(path).LoadActive(); err != nil || got != "light" {
		t.Errorf("LoadActive = (%q, %v), want (\"light\", nil)", got, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).LoadActive(); err == nil {
		t.Fatal("LoadActive returned nil error for corrupt state file")
	}
}

func TestEnvStoreReadsVariable(t *testing.T) {
	t.Setenv("LUMEN_ACTIVE_THEME", "dark")

	s := NewEnvStore("")
	if got, err := s.LoadActive(); err != nil || got != "dark" {
		t.Fatalf("LoadActive = (%q, %v), want (\"dark\", nil)", got, err)
	}

	// Saving records nothing; the variable stays authoritative.
	if err := s.SaveActive("light"); err != nil {
		t.Fatalf("SaveActive returned error: %v", err)
	}
	if got, _ := s.LoadActive(); got != "dark" {
		t.Errorf("LoadActive = %q, want %q", got, "dark")
	}
}

func TestRegistryPersistsActivation(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Jane", "directory": "alpha"}`)
	writeTheme(t, base, "bravo", `{"name": "Bravo", "author": "Joe", "directory": "bravo"}`)

	store := NewMemoryStore()
	r := NewWithStore(viewpath.New(), store)
	if err := r.Scan(base); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if err := r.SetActive("bravo"); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}

	if got, _ := store.LoadActive(); got != "bravo" {
		t.Errorf("persisted selection = %q, want %q", got, "bravo")
	}
}

func TestScanAutoActivationDoesNotPersist(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Jane", "directory": "alpha"}`)
	writeTheme(t, base, "bravo", `{"name": "Bravo", "author": "Joe", "directory": "bravo"}`)

	store := NewMemoryStore()
	if err := store.SaveActive("bravo"); err != nil {
		t.Fatal(err)
	}

	r := NewWithStore(viewpath.New(), store)
	if err := r.Scan(base); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if got := r.ActiveName(); got != "alpha" {
		t.Errorf("ActiveName() = %q, want %q (auto-activated)", got, "alpha")
	}
	if got, _ := store.LoadActive(); got != "bravo" {
		t.Errorf("persisted selection = %q, want %q after auto-activation", got, "bravo")
	}
}

func TestRestoreActive(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Jane", "directory": "alpha"}`)
	writeTheme(t, base, "bravo", `{"name": "Bravo", "author": "Joe", "directory": "bravo"}`)

	store := NewMemoryStore()
	if err := store.SaveActive("bravo"); err != nil {
		t.Fatal(err)
	}

	r := NewWithStore(viewpath.New(), store)
	if err := r.Scan(base); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	// Scan auto-activated alpha; the persisted selection takes over.
	if err := r.RestoreActive(); err != nil {
		t.Fatalf("RestoreActive returned error: %v", err)
	}

	if got := r.ActiveName(); got != "bravo" {
		t.Errorf("ActiveName() = %q, want %q", got, "bravo")
	}
}

func TestRestoreActiveIgnoresUnknownSelection(t *testing.T) {
	base := t.TempDir()
	writeTheme(t, base, "alpha", `{"name": "Alpha", "author": "Jane", "directory": "alpha"}`)

	store := NewMemoryStore()
	if err := store.SaveActive("ghost"); err != nil {
		t.Fatal(err)
	}

	r := NewWithStore(viewpath.New(), store)
	if err := r.Scan(base); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if err := r.RestoreActive(); err != nil {
		t.Fatalf("RestoreActive returned error: %v", err)
	}

	if got := r.ActiveName(); got != "alpha" {
		t.Errorf("ActiveName() = %q, want %q (auto-activated)", got, "alpha")
	}
}

func TestSQLStorePlaceholders(t *testing.T) {
	tests := []struct {
		dialect string
		n       int
		want    string
	}{
		{DialectSQLite, 1, "?"},
		{DialectMySQL, 2, "?"},
		{DialectPostgres, 1, "$1"},
		{DialectPostgres, 2, "$2"},
	}

	for _, tt := range tests {
		s := NewSQLStore(nil, tt.dialect)
		if got := s.placeholder(tt.n); got != tt.want {
			t.Errorf("placeholder(%d) for %s = %q, want %q", tt.n, tt.dialect, got, tt.want)
		}
	}
}
