package storage

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreRemembersAndExpires(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		TTL:             time.Minute,
		CleanupInterval: time.Hour,
	}

	storeRaw, err := openBolt(filepath.Join(dir, "cache.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	if _, ok, err := store.Lookup("k1"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	if err := store.Remember("k1", []byte(`[{"faceId":"f1"}]`)); err != nil {
		t.Fatalf("Remember: %v", err)
	}

	got, ok, err := store.Lookup("k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"faceId":"f1"}]` {
		t.Fatalf("unexpected payload %q", got)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, err := store.Lookup("k1"); err != nil || ok {
		t.Fatalf("expected expired entry to miss, ok=%v err=%v", ok, err)
	}
	if n, _ := store.count(); n != 0 {
		t.Fatalf("expired entry not deleted, %d keys left", n)
	}
}

func TestBoltStoreCleanupSweepsExpired(t *testing.T) {
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "cache.db"), Options{TTL: time.Minute, CleanupInterval: time.Minute})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		if err := store.Remember(k, []byte("x")); err != nil {
			t.Fatalf("Remember %s: %v", k, err)
		}
	}

	now = now.Add(2 * time.Minute)
	if err := store.Remember("fresh", []byte("y")); err != nil {
		t.Fatalf("Remember fresh: %v", err)
	}
	if n, _ := store.count(); n != 1 {
		t.Fatalf("expected only fresh entry after sweep, got %d", n)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Remember("x", []byte("y")); err != nil {
		t.Fatalf("noop store Remember: %v", err)
	}
	if _, ok, _ := store.Lookup("x"); ok {
		t.Fatalf("noop store must never hit")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func (b *boltStore) count() (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(recognitionBucket)).Stats().KeyN
		return nil
	})
	return n, err
}
