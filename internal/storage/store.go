package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/openclaw/agent-teams/internal/errors"
)

// Store provides file-based key-value storage rooted at a base directory.
// Keys use "/" as path separators and map directly to files.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a Store rooted at the given directory.
// The directory is created if it does not exist.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.NewStorageError("create store directory", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the root directory of the store.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Read retrieves the data for the given key.
// Returns errors.ErrNotFound if the key does not exist.
func (s *Store) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.NewStorageError("read "+key, err)
	}
	return data, nil
}

// Write persists data under the given key, replacing any existing value.
// The write is atomic: data goes to a temporary file first, then is
// renamed into place, so a concurrent reader never observes a torn write.
func (s *Store) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.keyToPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("create directory for "+key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.NewStorageError("write temp file for "+key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return errors.NewStorageError("rename temp file for "+key, err)
	}
	return nil
}

// Append appends one line to the file for the given key, creating it if
// needed. A trailing newline is added. O_APPEND keeps small line writes
// atomic on POSIX systems, so concurrent appenders from separate
// processes interleave whole lines rather than bytes.
func (s *Store) Append(key string, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.keyToPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("create directory for "+key, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewStorageError("open "+key+" for append", err)
	}

	data := make([]byte, 0, len(line)+1)
	data = append(data, line...)
	data = append(data, '\n')

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return errors.NewStorageError("append to "+key, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewStorageError("close "+key, err)
	}
	return nil
}

// Exists checks whether a key exists without reading its data.
func (s *Store) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewStorageError("stat "+key, err)
	}
	return true, nil
}

// Delete removes the data for the given key.
// Returns errors.ErrNotFound if the key does not exist.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToPath(key)); err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotFound
		}
		return errors.NewStorageError("delete "+key, err)
	}
	return nil
}

// RemoveAll removes every key under the given prefix, including the
// directory itself. Removing a prefix that does not exist is a no-op.
func (s *Store) RemoveAll(prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.keyToPath(prefix)); err != nil {
		return errors.NewStorageError("remove "+prefix, err)
	}
	return nil
}

// List returns all keys under the given prefix, sorted by path walk order.
// Lock and temp files are excluded.
func (s *Store) List(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchDir := s.baseDir
	if prefix != "" {
		searchDir = filepath.Join(s.baseDir, filepath.FromSlash(prefix))
	}

	var keys []string
	err := filepath.Walk(searchDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil // Prefix doesn't exist, no keys
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".lock") || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.NewStorageError("list "+prefix, err)
	}
	return keys, nil
}

// WithLock runs fn while holding the named exclusive cross-process lock.
// The lock file lives under the base directory at {name}.lock. All
// read-modify-write sequences that must be atomic across processes
// (team merge, cursor advance, task claim/complete) run through here.
func (s *Store) WithLock(name string, fn func() error) error {
	path := s.keyToPath(name + ".lock")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("create lock directory for "+name, err)
	}

	fl := NewFileLock(path)
	if err := fl.Lock(); err != nil {
		return errors.NewStorageError("acquire lock "+name, err)
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}

// keyToPath converts a key to a filesystem path.
func (s *Store) keyToPath(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}
