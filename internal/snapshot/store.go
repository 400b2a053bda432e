package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const bucketSnapshots = "snapshots"

// Store persists snapshots in BoltDB, keyed by snapshot ID. IDs are
// second-resolution timestamps, so cursor order is chronological.
type Store struct {
	db *bbolt.DB
}

// OpenPath opens or creates the snapshot database at a specific path.
func OpenPath(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot bucket: %w", err)
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

// Save stores a snapshot and prunes the oldest entries beyond
// MaxSnapshots.
func (s *Store) Save(snap *Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}

		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		if err := bucket.Put([]byte(snap.ID), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		// Count through a cursor so the uncommitted put is included.
		count := 0
		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			count++
		}
		for count > MaxSnapshots {
			k, _ := bucket.Cursor().First()
			if k == nil {
				break
			}
			if err := bucket.Delete(k); err != nil {
				return err
			}
			count--
		}
		return nil
	})
}

// Get retrieves a snapshot by ID.
func (s *Store) Get(id string) (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("snapshot not found: %s", id)
		}

		var decoded Snapshot
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		snap = &decoded
		return nil
	})

	return snap, err
}

// Latest returns the most recent snapshot, or nil when none exist.
func (s *Store) Latest() (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return nil
		}

		k, v := bucket.Cursor().Last()
		if k == nil {
			return nil
		}

		var decoded Snapshot
		if err := json.Unmarshal(v, &decoded); err != nil {
			return err
		}
		snap = &decoded
		return nil
	})

	return snap, err
}

// List returns snapshots newest first, up to limit; limit <= 0 returns
// all. Malformed stored snapshots are skipped.
func (s *Store) List(limit int) ([]Snapshot, error) {
	var snapshots []Snapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(snapshots) >= limit {
				break
			}
			var decoded Snapshot
			if err := json.Unmarshal(v, &decoded); err != nil {
				continue
			}
			snapshots = append(snapshots, decoded)
		}
		return nil
	})

	return snapshots, err
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("snapshot not found: %s", id)
		}
		return bucket.Delete([]byte(id))
	})
}
