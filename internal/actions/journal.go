// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package actions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// Key prefix for journaled actions
const pendingKeyPrefix = "pending:"

// Journal persists pending actions in BadgerDB so they survive a restart.
type Journal struct {
	db    *badger.DB
	owned bool
}

// OpenJournal opens a BadgerDB journal at path. An empty path opens an
// in-memory database.
func OpenJournal(path string) (*Journal, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for pending actions: %w", err)
	}
	return &Journal{db: db, owned: true}, nil
}

// NewJournal wraps an already opened database. Close leaves it open.
func NewJournal(db *badger.DB) *Journal {
	return &Journal{db: db}
}

// Save stores or overwrites an action.
func (j *Journal) Save(a models.PendingAction) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal pending action: %w", err)
	}
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(pendingKeyPrefix+a.ID), data)
	})
}

// Delete removes an action. Deleting a missing key is not an error.
func (j *Journal) Delete(id string) error {
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(pendingKeyPrefix + id))
	})
}

// Load returns every journaled action, oldest first.
func (j *Journal) Load() ([]models.PendingAction, error) {
	var out []models.PendingAction

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(pendingKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var a models.PendingAction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load pending actions: %w", err)
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].SubmittedAt.Before(out[k].SubmittedAt)
	})
	return out, nil
}

// gcDiscardRatio is the share of stale data a value log file needs
// before Compact rewrites it.
const gcDiscardRatio = 0.5

// Compact reclaims value log space left by deleted actions. It returns the
// number of value log files rewritten. In-memory journals have nothing to
// reclaim.
func (j *Journal) Compact() (int, error) {
	rewritten := 0
	for {
		err := j.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return rewritten, nil
		default:
			return rewritten, fmt.Errorf("compact pending actions: %w", err)
		}
	}
}

// Close closes the database if the journal opened it.
func (j *Journal) Close() error {
	if j.owned {
		return j.db.Close()
	}
	return nil
}
