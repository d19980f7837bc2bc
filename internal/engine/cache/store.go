package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const entryExt = ".json"

// Cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
)

// FileStore keeps one JSON file per entry in a directory. Safe for
// concurrent use within a process.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
	mu  sync.RWMutex
}

// NewFileStore creates dir if needed and returns a store writing entries
// that live for ttl.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := ValidateTTL(ttl); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string { return s.dir }

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration { return s.ttl }

// Get returns the entry for key, ErrNotFound when absent or ErrExpired when
// stale. Stale files are left for Purge.
func (s *FileStore) Get(key string) (Entry, error) {
	if key == "" {
		return Entry{}, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("reading cache entry: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decoding cache entry: %w", err)
	}
	if e.ExpiredAt(s.now()) {
		return e, ErrExpired
	}
	return e, nil
}

// Put stores v under key. The file is written to a temporary name and
// renamed so readers never see partial entries.
func (s *FileStore) Put(key, source string, v any) error {
	if key == "" {
		return ErrInvalidKey
	}

	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	now := s.now()
	e := Entry{Key: key, Source: source, Value: value, StoredAt: now, ExpiresAt: now.Add(s.ttl)}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Purge removes expired and unreadable entries and returns how many went.
func (s *FileStore) Purge() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	err := s.walk(func(path string, _ fs.DirEntry) {
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		var e Entry
		if json.Unmarshal(data, &e) != nil || e.ExpiredAt(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	})
	return removed, err
}

// Clear removes every entry.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	err := s.walk(func(path string, _ fs.DirEntry) {
		if rmErr := os.Remove(path); rmErr != nil && firstErr == nil {
			firstErr = fmt.Errorf("removing %s: %w", filepath.Base(path), rmErr)
		}
	})
	if err != nil {
		return err
	}
	return firstErr
}

// Stats describes the store contents.
type Stats struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
}

// Stats counts entries, including expired ones.
func (s *FileStore) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	err := s.walk(func(_ string, d fs.DirEntry) {
		st.Entries++
		if info, err := d.Info(); err == nil {
			st.Bytes += info.Size()
		}
	})
	return st, err
}

func (s *FileStore) walk(fn func(path string, d fs.DirEntry)) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, d := range entries {
		if d.IsDir() || filepath.Ext(d.Name()) != entryExt {
			continue
		}
		fn(filepath.Join(s.dir, d.Name()), d)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key)+entryExt)
}
