// theme/manifest.go
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// manifestNames are probed in order inside each theme folder. JSON is
// the canonical format; the YAML spellings are accepted as alternatives.
var manifestNames = []string{"theme.json", "theme.yaml", "theme.yml"}

// manifest mirrors the on-disk theme manifest document.
type manifest struct {
	Name        string `json:"name" yaml:"name"`
	Author      string `json:"author" yaml:"author"`
	Directory   string `json:"directory" yaml:"directory"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
	Parent      string `json:"parent" yaml:"parent"`
}

// readManifest loads the first manifest file present in dir. It returns
// errNoManifest when the folder has none, which Scan treats as "not a
// theme" rather than an error.
func readManifest(dir string) (*manifest, string, error) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, path, fmt.Errorf("theme: read manifest %s: %w", path, err)
		}

		m := &manifest{}
		if strings.HasSuffix(name, ".json") {
			err = json.Unmarshal(data, m)
		} else {
			err = yaml.Unmarshal(data, m)
		}
		if err != nil {
			return nil, path, fmt.Errorf("theme: parse manifest %s: %w", path, err)
		}
		return m, path, nil
	}
	return nil, "", errNoManifest
}

// validate checks the required manifest attributes.
func (m *manifest) validate(path string) error {
	required := []struct {
		key   string
		value string
	}{
		{"name", m.Name},
		{"author", m.Author},
		{"directory", m.Directory},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			return &AttributeError{Manifest: path, Attribute: req.key}
		}
	}
	return nil
}
