package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	credentialsBucket = []byte("credentials")
	recordKey         = []byte("subscription")
)

// boltStore keeps the two-line record as a single value in a bbolt bucket.
type boltStore struct {
	db *bolt.DB
}

func openBolt(path string) (*boltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create credentials directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open credentials db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(credentialsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init credentials bucket: %w", err)
	}
	return &boltStore{db: db}, nil
}

func (b *boltStore) Load() (Record, error) {
	var rec Record
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(credentialsBucket).Get(recordKey)
		if raw == nil {
			return ErrNotFound
		}
		return rec.UnmarshalText(raw)
	})
	return rec, err
}

func (b *boltStore) Save(rec Record) error {
	raw, _ := rec.MarshalText()
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Put(recordKey, raw)
	})
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
