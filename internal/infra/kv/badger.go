package kv

import (
	"context"
	"errors"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store with Badger DB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(path))
	opts.Logger = nil
	opts = opts.WithValueLogFileSize(1 << 20)
	return openBadger(opts)
}

// NewMemoryStore keeps everything in RAM; used by tests and dry runs.
func NewMemoryStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetAll(ctx, []Entry{{Key: key, Value: value}})
}

func (s *BadgerStore) SetAll(ctx context.Context, entries []Entry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			if err := txn.Set([]byte(e.Key), e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetIf retries when Badger reports a write conflict on key.
func (s *BadgerStore) SetIf(ctx context.Context, key string, value []byte, cond func([]byte) bool) (bool, error) {
	for {
		var wrote bool
		err := s.db.Update(func(txn *badger.Txn) error {
			wrote = false
			var current []byte
			item, err := txn.Get([]byte(key))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return err
			default:
				if current, err = item.ValueCopy(nil); err != nil {
					return err
				}
			}
			if !cond(current) {
				return nil
			}
			wrote = true
			return txn.Set([]byte(key), value)
		})
		if errors.Is(err, badger.ErrConflict) {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			continue
		}
		return wrote && err == nil, err
	}
}
