package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadManifestProbesFormats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantName string
	}{
		{"json", "theme.json", `{"name": "Dark", "author": "Jane", "directory": "dark"}`, "Dark"},
		{"yaml", "theme.yaml", "name: Dark\nauthor: Jane\ndirectory: dark\n", "Dark"},
		{"yml", "theme.yml", "name: Dark\nauthor: Jane\ndirectory: dark\n", "Dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, tt.filename), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			m, path, err := readManifest(dir)
			if err != nil {
				t.Fatalf("readManifest returned error: %v", err)
			}
			if m.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", m.Name, tt.wantName)
			}
			if want := filepath.Join(dir, tt.filename); path != want {
				t.Errorf("path = %q, want %q", path, want)
			}
		})
	}
}

func TestReadManifestPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "theme.json"), []byte(`{"name": "FromJSON", "author": "Jane", "directory": "dark"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte("name: FromYAML\nauthor: Jane\ndirectory: dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, _, err := readManifest(dir)
	if err != nil {
		t.Fatalf("readManifest returned error: %v", err)
	}
	if m.Name != "FromJSON" {
		t.Errorf("Name = %q, want %q", m.Name, "FromJSON")
	}
}

func TestReadManifestNoManifest(t *testing.T) {
	_, _, err := readManifest(t.TempDir())
	if !errors.Is(err, errNoManifest) {
		t.Errorf("readManifest error = %v, want errNoManifest", err)
	}
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       manifest
		missing string
	}{
		{"complete", manifest{Name: "Dark", Author: "Jane", Directory: "dark"}, ""},
		{"missing name", manifest{Author: "Jane", Directory: "dark"}, "name"},
		{"blank name", manifest{Name: "   ", Author: "Jane", Directory: "dark"}, "name"},
		{"missing author", manifest{Name: "Dark", Directory: "dark"}, "author"},
		{"missing directory", manifest{Name: "Dark", Author: "Jane"}, "directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.validate("themes/dark/theme.json")
			if tt.missing == "" {
				if err != nil {
					t.Fatalf("validate returned error: %v", err)
				}
				return
			}

			var attrErr *AttributeError
			if !errors.As(err, &attrErr) {
				t.Fatalf("validate error = %v, want *AttributeError", err)
			}
			if attrErr.Attribute != tt.missing {
				t.Errorf("Attribute = %q, want %q", attrErr.Attribute, tt.missing)
			}
			if attrErr.Manifest != "themes/dark/theme.json" {
				t.Errorf("Manifest = %q, want %q", attrErr.Manifest, "themes/dark/theme.json")
			}
		})
	}
}

func TestAttributeErrorMessageNamesAttribute(t *testing.T) {
	err := &AttributeError{Manifest: "themes/dark/theme.json", Attribute: "author"}
	msg := err.Error()
	if want := `"author"`; !strings.Contains(msg, want) {
		t.Errorf("Error() = %q, want it to contain %s", msg, want)
	}
}
