package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	downloadBucket   = "downloads"
	metaBucket       = "meta"
	lastCleanupKey   = "last_cleanup"
	expiryValueBytes = 8
)

// boltStore implements a Store backed by BoltDB. Values are an 8-byte
// big-endian expiry in unix nanoseconds followed by the saved file path.
// The time of the last sweep lives in the meta bucket so the cadence holds
// across short-lived processes.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	recordTTL       time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}

	now := time.Now()
	var lastCleanup int64
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(downloadBucket)); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}
		if v := meta.Get([]byte(lastCleanupKey)); len(v) == expiryValueBytes {
			lastCleanup = int64(binary.BigEndian.Uint64(v))
			return nil
		}
		// a fresh ledger starts its cadence now
		lastCleanup = now.UnixNano()
		return meta.Put([]byte(lastCleanupKey), encodeNanos(lastCleanup))
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	store := &boltStore{
		db:              db,
		recordTTL:       opts.RecordTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(lastCleanup)

	if err := store.maybeCleanupExpired(now); err != nil {
		db.Close()
		return nil, fmt.Errorf("sweep expired downloads: %w", err)
	}
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenDownload returns the live record for key. Expired records are removed
// on sight.
func (b *boltStore) SeenDownload(key string) (Record, bool, error) {
	if b == nil || b.db == nil {
		return Record{}, false, nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return Record{}, false, err
	}

	var (
		rec     Record
		found   bool
		expired bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(downloadBucket))
		if bucket == nil {
			return fmt.Errorf("download bucket missing")
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return nil
		}
		r, ok := decodeRecord(value)
		if !ok || !r.ExpiresAt.After(now) {
			expired = true
			return nil
		}
		rec, found = r, true
		return nil
	})
	if err != nil || !expired {
		return rec, found, err
	}

	return Record{}, false, b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(downloadBucket)).Delete([]byte(key))
	})
}

// MarkDownload records key as saved at path, valid for the retention window.
func (b *boltStore) MarkDownload(key, path string) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	value := encodeRecord(Record{Path: path, ExpiresAt: now.Add(b.recordTTL)})
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(downloadBucket))
		if bucket == nil {
			return fmt.Errorf("download bucket missing")
		}
		return bucket.Put([]byte(key), value)
	})
}

// maybeCleanupExpired sweeps expired records at most once per cleanup interval.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if now.Sub(time.Unix(0, b.lastCleanup.Load())) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	if now.Sub(time.Unix(0, b.lastCleanup.Load())) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(downloadBucket))
		if bucket == nil {
			return fmt.Errorf("download bucket missing")
		}

		// deleting through the cursor while iterating skips the next key
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			if rec, ok := decodeRecord(v); !ok || !rec.ExpiresAt.After(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}

		meta := tx.Bucket([]byte(metaBucket))
		if meta == nil {
			return fmt.Errorf("meta bucket missing")
		}
		return meta.Put([]byte(lastCleanupKey), encodeNanos(now.UnixNano()))
	})
	if err == nil {
		b.lastCleanup.Store(now.UnixNano())
	}
	return err
}

func encodeNanos(n int64) []byte {
	buf := make([]byte, expiryValueBytes)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func encodeRecord(rec Record) []byte {
	return append(encodeNanos(rec.ExpiresAt.UnixNano()), rec.Path...)
}

// decodeRecord parses a stored value. A bare expiry decodes with an empty path.
func decodeRecord(value []byte) (Record, bool) {
	if len(value) < expiryValueBytes {
		return Record{}, false
	}
	nanos := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if nanos <= 0 {
		return Record{}, false
	}
	return Record{
		Path:      string(value[expiryValueBytes:]),
		ExpiresAt: time.Unix(0, nanos),
	}, true
}
