package oplog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mos1128/scoop-easy/internal/config"

	"go.etcd.io/bbolt"
)

const bucketLogs = "logs"

// DefaultLimit bounds List when the caller passes no limit.
const DefaultLimit = 100

// Store manages the operation log using BoltDB.
type Store struct {
	db  *bbolt.DB
	seq atomic.Uint64
}

// Open opens or creates the log database at the default path.
func Open() (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return OpenPath(config.LogPath())
}

// OpenPath opens or creates the log database at a specific path.
func OpenPath(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLogs))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize log bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append saves a new log entry. The key is a fixed-width UTC timestamp
// plus a process-local counter, so lexicographic key order matches
// chronological order and entries sharing a timestamp never collide.
func (s *Store) Append(entry *Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketLogs))
		if bucket == nil {
			return fmt.Errorf("log bucket not found")
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}

		key := fmt.Sprintf("%s-%08d",
			entry.Time.UTC().Format("20060102150405.000000000"), s.seq.Add(1))
		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		return nil
	})
}

// Record appends an entry built from the given fields. Implements the
// scoop.Recorder contract; a store failure here must not fail the
// operation that produced the record, so the error is swallowed.
func (s *Store) Record(operation, command string, success bool, message string) {
	_ = s.Append(NewEntry(operation, command, success, message)) //nolint:errcheck
}

// List returns the most recent entries, newest first. limit <= 0 applies
// DefaultLimit. Malformed stored entries are skipped.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketLogs))
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(entries) < limit; k, v = cursor.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})

	return entries, err
}

// Count returns the total number of entries.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketLogs))
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}

// Clear removes all entries. Destructive and irreversible; confirmation
// is the caller's responsibility.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketLogs)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketLogs))
		return err
	})
}
