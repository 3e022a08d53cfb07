// theme/store.go
package theme

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// StateStore persists the active theme selection so a restart can put
// the same theme back. Implementations for Redis, SQL and Mongo live in
// their own files; the ones here need no external services.
type StateStore interface {
	// LoadActive returns the persisted directory key, or "" when
	// nothing has been saved yet.
	LoadActive() (string, error)

	// SaveActive persists the directory key.
	SaveActive(dir string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// MemoryStore keeps the selection in memory. Useful in tests and as the
// default when persistence is not configured.
type MemoryStore struct {
	mu     sync.RWMutex
	active string
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadActive returns the stored directory key.
func (s *MemoryStore) LoadActive() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, nil
}

// SaveActive stores the directory key.
func (s *MemoryStore) SaveActive(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = dir
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// fileState is the JSON document a FileStore writes.
type fileState struct {
	Active string `json:"active"`
}

// FileStore keeps the selection in a small JSON file. Writes go through
// a temp file and rename so a crash mid-write cannot corrupt the state.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path. Parent directories
// are created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadActive reads the stored directory key. A missing file means no
// selection has been saved yet.
func (s *FileStore) LoadActive() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", err
	}
	return state.Active, nil
}

// SaveActive writes the directory key to the state file.
func (s *FileStore) SaveActive(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(fileState{Active: dir})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".theme-state-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// Ping checks that the state file's directory is accessible.
func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// EnvStore reads the selection from an environment variable. It is
// read-only: SaveActive records nothing.
type EnvStore struct {
	key string
}

// NewEnvStore creates a store reading from the named variable. An empty
// name defaults to LUMEN_ACTIVE_THEME.
func NewEnvStore(key string) *EnvStore {
	if key == "" {
		key = "LUMEN_ACTIVE_THEME"
	}
	return &EnvStore{key: key}
}

// LoadActive returns the variable's value.
func (s *EnvStore) LoadActive() (string, error) {
	return os.Getenv(s.key), nil
}

// SaveActive is a no-op for EnvStore.
func (s *EnvStore) SaveActive(dir string) error {
	return nil
}

// Ping always succeeds.
func (s *EnvStore) Ping(ctx context.Context) error {
	return nil
}
