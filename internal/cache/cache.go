package cache

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

var ErrKeyNotFound = errors.New("key not found")

// Cache is an expiring key-value store. Values written with a TTL disappear
// on their own once the TTL elapses; readers never see expired entries.
type Cache interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Alive() bool
	Close() error
}

// BadgerCache implements Cache on an embedded BadgerDB, relying on Badger's
// native entry TTL for expiry so no sweeper goroutine is needed.
type BadgerCache struct {
	db *badger.DB
}

// Open opens (or creates) a BadgerDB at path.
func Open(path string) (*BadgerCache, error) {
	opts := badger.DefaultOptions(path)
	opts = opts.WithLoggingLevel(badger.WARNING) // Reduce log noise

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache at %s: %w", path, err)
	}

	return &BadgerCache{db: db}, nil
}

func (c *BadgerCache) Set(key, value string, ttl time.Duration) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), []byte(value)).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

func (c *BadgerCache) Get(key string) (string, error) {
	var value string

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key: %w", err)
	}

	return value, nil
}

func (c *BadgerCache) Delete(key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (c *BadgerCache) Alive() bool {
	return c.db != nil && !c.db.IsClosed()
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}
