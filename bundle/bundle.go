// bundle/bundle.go

// Package bundle installs theme bundles into a themes directory. A bundle
// is a .zip archive holding one theme: its manifest, views, and assets.
// Bundles come from a Source such as a local directory or an S3 bucket,
// and Install extracts them next to the existing themes so the next
// registry scan picks them up.
package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a source has no bundle with the given name.
	ErrNotFound = errors.New("bundle: bundle not found")

	// ErrExists is returned when the target theme directory already exists.
	ErrExists = errors.New("bundle: theme directory already exists")

	// ErrNoManifest is returned when the extracted bundle carries no theme manifest.
	ErrNoManifest = errors.New("bundle: bundle has no theme manifest")

	// ErrUnsafePath is returned for archive entries or bundle names that
	// would land outside the destination directory.
	ErrUnsafePath = errors.New("bundle: unsafe path")
)

// Source fetches theme bundles by name. Implementations return the raw
// zip content; the caller closes the reader.
type Source interface {
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}

// manifestNames are the files a registry scan reads as a theme manifest.
var manifestNames = []string{"theme.json", "theme.yaml", "theme.yml"}

// Install fetches the named bundle from src and extracts it into a new
// directory under themesDir. Archives may keep their files under a single
// top-level directory or directly at the root; for flat archives the
// bundle name (minus any .zip suffix) becomes the directory name. The
// extracted theme must contain a manifest, and Install never overwrites
// an existing theme directory.
//
// Install returns the name of the created directory. The registry does
// not see the new theme until its next scan.
func Install(ctx context.Context, src Source, name, themesDir string) (string, error) {
	rc, err := src.Fetch(ctx, name)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", fmt.Errorf("bundle: read %s: %w", name, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, zip.ErrInsecurePath) {
			return "", fmt.Errorf("%w: %v", ErrUnsafePath, err)
		}
		return "", fmt.Errorf("bundle: open %s: %w", name, err)
	}

	root := archiveRoot(zr)
	dirName := root
	if dirName == "" {
		dirName = strings.TrimSuffix(name, ".zip")
	}
	if !safeName(dirName) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, dirName)
	}

	dest := filepath.Join(themesDir, dirName)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dirName)
	}

	staging, err := os.MkdirTemp(themesDir, ".install-")
	if err != nil {
		return "", fmt.Errorf("bundle: staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, f := range zr.File {
		if err := extractFile(f, staging); err != nil {
			return "", err
		}
	}

	stagedTheme := staging
	if root != "" {
		stagedTheme = filepath.Join(staging, root)
	}
	if !hasManifest(stagedTheme) {
		return "", fmt.Errorf("%w: %s", ErrNoManifest, name)
	}

	if err := os.Rename(stagedTheme, dest); err != nil {
		return "", fmt.Errorf("bundle: install %s: %w", dirName, err)
	}
	return dirName, nil
}

// archiveRoot returns the single top-level directory shared by every
// archive entry, or "" when the archive is laid out flat.
func archiveRoot(zr *zip.Reader) string {
	root := ""
	for _, f := range zr.File {
		name := strings.TrimSuffix(f.Name, "/")
		top, _, nested := strings.Cut(name, "/")
		if !nested && !f.FileInfo().IsDir() {
			return ""
		}
		if root == "" {
			root = top
		} else if top != root {
			return ""
		}
	}
	return root
}

// extractFile writes one archive entry under dir, refusing entries that
// would land outside it.
func extractFile(f *zip.File, dir string) error {
	if f.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s is a symlink", ErrUnsafePath, f.Name)
	}

	target := filepath.Join(dir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("bundle: open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("bundle: extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// hasManifest reports whether dir contains a theme manifest file.
func hasManifest(dir string) bool {
	for _, name := range manifestNames {
		if fi, err := os.Stat(filepath.Join(dir, name)); err == nil && fi.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// safeName reports whether s is usable as a directory or file name
// directly under a parent, with no way to point elsewhere.
func safeName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

// zipName appends the .zip suffix when name does not already carry it.
func zipName(name string) string {
	if strings.HasSuffix(name, ".zip") {
		return name
	}
	return name + ".zip"
}
