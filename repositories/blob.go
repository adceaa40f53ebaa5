package repositories

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// BlobStore keeps opaque string values in BadgerDB.
// Each Set runs in its own transaction, which makes a write atomic per key.
type BlobStore struct {
	db *badger.DB
}

func NewBlobStore(db *badger.DB) *BlobStore {
	return &BlobStore{db: db}
}

func (b *BlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var value string
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (b *BlobStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}
