// Package history persists a record of completed scan and clean runs.
// Records are append-only and pruned by age; the store never influences
// scanning itself.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/instafoody/cleaner/pkg/cleaner/logging"
)

// Op identifies the kind of run a record describes.
type Op string

// Run operations.
const (
	OpScan  Op = "scan"
	OpClean Op = "clean"
)

// keyPrefix namespaces run records inside the database.
const keyPrefix = "run:"

// Record describes one completed scan or clean run.
type Record struct {
	// ID is a unique run identifier.
	ID string `json:"id"`

	// Op is the run kind.
	Op Op `json:"op"`

	// Time is when the run completed, UTC.
	Time time.Time `json:"time"`

	// CacheBytes, TempBytes, and BigBytes are the category totals the
	// run observed.
	CacheBytes int64 `json:"cache_bytes"`
	TempBytes  int64 `json:"temp_bytes"`
	BigBytes   int64 `json:"big_bytes"`

	// TotalBytes is the grand total the run observed.
	TotalBytes int64 `json:"total_bytes"`

	// EntryCount is how many entries the inventory held.
	EntryCount int `json:"entry_count"`

	// FreedBytes is the bytes actually reclaimed; clean runs only.
	FreedBytes int64 `json:"freed_bytes,omitempty"`
}

// Store wraps Badger for run-record persistence.
type Store struct {
	db  *badger.DB
	log *logging.Logger
}

// Open opens or creates a history store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is too chatty.

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}

	return &Store{db: db, log: logging.Get("history")}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append persists a record, assigning an ID and timestamp when unset,
// and returns the stored record.
func (s *Store) Append(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("encoding history record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(rec), value)
	})
	if err != nil {
		return Record{}, fmt.Errorf("writing history record: %w", err)
	}
	return rec, nil
}

// List returns all records in chronological order.
func (s *Store) List() ([]Record, error) {
	var records []Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					// A corrupt record is skipped, not fatal.
					s.log.Warn("skipping corrupt history record", "key", string(it.Item().Key()))
					return nil
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return records, nil
}

// Prune deletes records older than the given age and returns how many
// were removed.
func (s *Store) Prune(maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil || rec.Time.Before(cutoff) {
					stale = append(stale, key)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scanning history for prune: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return len(stale), nil
}

// makeKey builds a chronologically sortable key for a record.
func makeKey(rec Record) []byte {
	return []byte(keyPrefix + rec.Time.Format(time.RFC3339Nano) + ":" + rec.ID)
}
