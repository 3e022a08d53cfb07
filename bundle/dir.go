// bundle/dir.go
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir serves bundles from a local directory of .zip files.
type Dir struct {
	dir string
}

// NewDir creates a source reading bundles from dir.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

// Fetch opens <dir>/<name>.zip. The name must be a bare file name.
func (d *Dir) Fetch(_ context.Context, name string) (io.ReadCloser, error) {
	if !safeName(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	f, err := os.Open(filepath.Join(d.dir, zipName(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("bundle: open %s: %w", name, err)
	}
	return f, nil
}
