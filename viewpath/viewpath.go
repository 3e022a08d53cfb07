// viewpath/viewpath.go
package viewpath

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Find when no directory in the list
// contains the requested file.
var ErrNotFound = errors.New("viewpath: template not found")

// List is an ordered collection of directories searched for view
// templates. Earlier entries win: resolvers consult the list front to
// back and stop at the first hit, which is how an active theme
// overrides the directories registered before it.
//
// A List is not safe for concurrent use. Callers that share one across
// goroutines must provide their own synchronization.
type List struct {
	paths []string
}

// New creates a List seeded with the given directories, in order.
func New(paths ...string) *List {
	l := &List{}
	l.SetPaths(paths)
	return l
}

// SetPaths replaces the entire list with the given directories.
// Typically called once at startup with the host application's
// default template locations.
func (l *List) SetPaths(paths []string) {
	l.paths = make([]string, len(paths))
	copy(l.paths, paths)
}

// PrependPath inserts a directory at the front of the list so it is
// searched before everything already present. Directories are not
// checked for existence; a path that never exists simply never
// matches.
func (l *List) PrependPath(path string) {
	l.paths = append([]string{path}, l.paths...)
}

// Paths returns a copy of the current search order.
func (l *List) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Len returns the number of directories in the list.
func (l *List) Len() int {
	return len(l.paths)
}

// Find locates name in the search order and returns the path of the
// first regular file that matches. The name may include a relative
// subpath such as "partials/header.html".
func (l *List) Find(name string) (string, error) {
	for _, dir := range l.paths {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate, nil
	}
	return "", ErrNotFound
}
