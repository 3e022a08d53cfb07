// theme/lint.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Problem records why one theme folder would fail a Scan.
type Problem struct {
	// Dir is the folder name under the base path, as found on disk.
	Dir string

	// Err is the manifest error: unreadable, unparseable, or missing a
	// required attribute.
	Err error
}

// Lint checks every theme folder under basePath and collects the
// manifest problems a Scan would trip over. Where Scan stops at the
// first bad manifest, Lint keeps going so one report covers the whole
// directory. Folders without a manifest are skipped, as Scan skips
// them.
func Lint(basePath string) ([]Problem, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("theme: lint %s: %w", basePath, err)
	}

	var problems []Problem
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m, path, err := readManifest(filepath.Join(basePath, entry.Name()))
		if errors.Is(err, errNoManifest) {
			continue
		}
		if err == nil {
			err = m.validate(path)
		}
		if err != nil {
			problems = append(problems, Problem{Dir: entry.Name(), Err: err})
		}
	}
	return problems, nil
}
