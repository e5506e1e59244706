package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const recordPrefix = "record/"

type badgerBackend struct {
	db   *badger.DB
	path string
}

// openBadger opens the database in dir, or an in-memory one when dir is empty.
func openBadger(dir string) (*badgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &badgerBackend{db: db, path: dir}, nil
}

func (b *badgerBackend) put(ctx context.Context, name string, data []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recordPrefix+name), data)
	})
}

func (b *badgerBackend) get(ctx context.Context, name string) ([]byte, bool, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordPrefix + name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *badgerBackend) close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *badgerBackend) String() string {
	if b.path == "" {
		return "badger (memory)"
	}
	return "badger " + b.path
}
