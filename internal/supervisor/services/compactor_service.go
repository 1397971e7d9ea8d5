// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/alignak-watch/internal/logging"
)

// Compactor matches the pending-action journal's space reclamation.
//
// Satisfied by *actions.Journal from internal/actions/journal.go.
type Compactor interface {
	Compact() (int, error)
}

// JournalCompactorService periodically reclaims BadgerDB value log space
// left behind by resolved actions. Compaction errors are logged and the
// service keeps running.
//
// Example usage:
//
//	journal, _ := actions.OpenJournal(cfg.Actions.JournalPath)
//	tree.AddSyncService(services.NewJournalCompactorService(journal, 10*time.Minute))
type JournalCompactorService struct {
	compactor Compactor
	interval  time.Duration
	name      string
}

// NewJournalCompactorService creates a compactor service. A non-positive
// interval defaults to 10 minutes.
func NewJournalCompactorService(compactor Compactor, interval time.Duration) *JournalCompactorService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &JournalCompactorService{
		compactor: compactor,
		interval:  interval,
		name:      "journal-compactor",
	}
}

// Serve implements suture.Service.
func (s *JournalCompactorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.compact()
		}
	}
}

func (s *JournalCompactorService) compact() {
	n, err := s.compactor.Compact()
	if err != nil {
		logging.Warn().Err(err).Int("rewritten", n).Msg("Journal compaction failed")
		return
	}
	if n > 0 {
		logging.Debug().Int("rewritten", n).Msg("Journal compacted")
	}
}

// String implements fmt.Stringer for logging.
func (s *JournalCompactorService) String() string {
	return s.name
}
