// Package badgerstore keeps documents in an embedded BadgerDB, one key per document.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"reviewroom/internal/infrastructure/storage"
)

const (
	keyPrefix          = "doc:"
	maxConflictRetries = 16
)

type Store struct {
	db *badger.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens a BadgerDB in dir. An empty dir opens an in-memory database.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return New(db), nil
}

func New(db *badger.DB) *Store {
	return &Store{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) Kind() string {
	return "badger"
}

func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotExist
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Mutate serializes writers in-process and retries when another process
// sharing the database committed a conflicting transaction first.
func (s *Store) Mutate(ctx context.Context, name string, fn storage.MutateFunc) error {
	mu := s.nameLock(name)
	mu.Lock()
	defer mu.Unlock()

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.db.Update(func(txn *badger.Txn) error {
			var current []byte
			exists := true

			item, err := txn.Get(key(name))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				exists = false
			case err != nil:
				return err
			default:
				if current, err = item.ValueCopy(nil); err != nil {
					return err
				}
			}

			next, err := fn(current, exists)
			if err != nil {
				return err
			}
			return txn.Set(key(name), next)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}

	return fmt.Errorf("update document %q: %w", name, badger.ErrConflict)
}

func (s *Store) Close() error {
	return s.db.Close()
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

func key(name string) []byte {
	return []byte(keyPrefix + name)
}
