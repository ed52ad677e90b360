// Package core translates between a lines.Store and newline-delimited files.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"linestore/internal/lineio"
	"linestore/pkg/lines"
)

var (
	// ErrNotFound is returned when the file to load does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrIO is returned when a stream cannot be opened, read, written or closed.
	ErrIO = errors.New("i/o failure")
)

// Persister abstracts loading and saving a store for testability.
type Persister interface {
	// Load replaces the contents of s with the lines of path. If path cannot
	// be opened, s is left untouched.
	Load(path string, s *lines.Store) error
	// Save writes every line of s to path, each followed by '\n'.
	Save(path string, s *lines.Store) error
}

// FileStore implements Persister on the local filesystem.
type FileStore struct {
	// AtomicSave writes to a temporary file in the target directory and
	// renames it over path once fully synced.
	AtomicSave bool
	// MaxLineBytes bounds a single line on load (default lineio.DefaultMaxLineBytes).
	MaxLineBytes int
	Logger       *slog.Logger
}

func NewFileStore(atomicSave bool, maxLineBytes int, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{AtomicSave: atomicSave, MaxLineBytes: maxLineBytes, Logger: logger}
}

func (fs *FileStore) logger() *slog.Logger {
	if fs.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return fs.Logger
}

func (fs *FileStore) Load(path string, s *lines.Store) error {
	f, err := os.Open(path)
	if err != nil {
		return openError(path, err)
	}
	defer f.Close()

	s.Clear()
	n, err := lineio.Decode(f, s, fs.MaxLineBytes)
	if err != nil {
		fs.logger().Warn("load_failed", "file", path, "lines", n, "error", err)
		if errors.Is(err, lines.ErrAllocation) {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return fmt.Errorf("%w: load %s: %w", ErrIO, path, err)
	}
	fs.logger().Info("load", "file", path, "lines", n)
	return nil
}

func (fs *FileStore) Save(path string, s *lines.Store) error {
	var err error
	if fs.AtomicSave {
		err = saveAtomic(path, s)
	} else {
		err = saveTruncate(path, s)
	}
	if err != nil {
		fs.logger().Warn("save_failed", "file", path, "error", err)
		return err
	}
	fs.logger().Info("save", "file", path, "lines", s.Len(), "atomic", fs.AtomicSave)
	return nil
}

func saveTruncate(path string, s *lines.Store) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	if _, err := lineio.Encode(f, s); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return nil
}

func saveAtomic(path string, s *lines.Store) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %w", ErrIO, path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := lineio.Encode(tmp, s); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync %s: %w", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: rename to %s: %w", ErrIO, path, err)
	}
	return nil
}

func openError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	return fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
}

// InMemoryStore implements Persister for testing (no disk I/O).
type InMemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{files: make(map[string][]byte)}
}

func (ms *InMemoryStore) Load(path string, s *lines.Store) error {
	ms.mu.Lock()
	data, ok := ms.files[path]
	ms.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	s.Clear()
	if _, err := lineio.Decode(bytes.NewReader(data), s, 0); err != nil {
		if errors.Is(err, lines.ErrAllocation) {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return fmt.Errorf("%w: load %s: %w", ErrIO, path, err)
	}
	return nil
}

func (ms *InMemoryStore) Save(path string, s *lines.Store) error {
	var buf bytes.Buffer
	if _, err := lineio.Encode(&buf, s); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.files[path] = buf.Bytes()
	return nil
}

// Bytes returns a copy of what was last saved to path.
func (ms *InMemoryStore) Bytes(path string) ([]byte, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data, ok := ms.files[path]
	if !ok {
		return nil, false
	}
	return bytes.Clone(data), true
}

// Put seeds path with raw content.
func (ms *InMemoryStore) Put(path string, data []byte) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.files[path] = bytes.Clone(data)
}

// OpenOrEmpty constructs a store from path, falling back to an empty store
// when loading fails. The load error is still returned so callers can report
// it; the returned store is always usable.
func OpenOrEmpty(p Persister, path string, opt lines.Options) (*lines.Store, error) {
	s := lines.New(opt)
	if err := p.Load(path, s); err != nil {
		s.Clear()
		return s, err
	}
	return s, nil
}
