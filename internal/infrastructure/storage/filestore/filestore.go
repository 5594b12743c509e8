// Package filestore keeps each document as a JSON file in one directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"reviewroom/internal/infrastructure/storage"
)

const (
	fileExt        = ".json"
	lockExt        = ".lock"
	lockRetryDelay = 10 * time.Millisecond
)

// Store serializes writers of one document with an in-process mutex and an
// advisory lock file, so separate processes sharing the directory do not lose
// updates either.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (s *Store) Kind() string {
	return "file"
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Mutate(ctx context.Context, name string, fn storage.MutateFunc) error {
	mu := s.nameLock(name)
	mu.Lock()
	defer mu.Unlock()

	fl := flock.New(s.path(name) + lockExt)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock document %q: %w", name, err)
	}
	if !locked {
		return fmt.Errorf("lock document %q: not acquired", name)
	}
	defer fl.Unlock()

	exists := true
	current, err := s.Read(ctx, name)
	if errors.Is(err, storage.ErrNotExist) {
		exists = false
	} else if err != nil {
		return err
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	return s.write(name, next)
}

func (s *Store) Close() error {
	return nil
}

// write replaces the document through a temp file and rename, so readers
// never observe a partial document.
func (s *Store) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document %q: %w", name, err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

func (s *Store) nameLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[name] = mu
	}
	return mu
}
