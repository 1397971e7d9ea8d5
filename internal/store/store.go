// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package store

import (
	"sync"
	"time"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// Entry is a consistent view of one resource type.
type Entry struct {
	Type       models.ResourceType `json:"type"`
	Items      []models.Item       `json:"items"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Generation uint64              `json:"generation"`
}

// collection holds the current snapshot of one resource type. items and
// index are immutable once published; writers swap them under mu.
type collection struct {
	mu         sync.RWMutex
	items      []models.Item
	index      map[string]int
	updatedAt  time.Time
	generation uint64
}

// Store is the in-memory snapshot of every polled resource type.
type Store struct {
	collections map[models.ResourceType]*collection
	now         func() time.Time
}

// New creates an empty snapshot store with one slot per resource type.
//
// Thread Safety:
//   - Each resource type has its own RWMutex, held only for pointer swaps
//   - Readers of one type never see a partially replaced collection
//   - Different types may reflect different poll cycles
func New() *Store {
	s := &Store{
		collections: make(map[models.ResourceType]*collection, len(models.AllResourceTypes)),
		now:         time.Now,
	}
	for _, rt := range models.AllResourceTypes {
		s.collections[rt] = &collection{index: map[string]int{}}
	}
	return s
}

// Replace swaps the whole collection of rt and returns the new generation.
// The store takes ownership of items. Unknown resource types are ignored
// and report generation 0.
func (s *Store) Replace(rt models.ResourceType, items []models.Item) uint64 {
	c, ok := s.collections[rt]
	if !ok {
		return 0
	}

	index := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID != "" {
			index[item.ID] = i
		}
	}
	now := s.now()

	c.mu.Lock()
	c.items = items
	c.index = index
	c.updatedAt = now
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	return gen
}

// UpdateItem replaces a single item in rt by id, copy-on-write. It reports
// false when the id is not in the current snapshot.
func (s *Store) UpdateItem(rt models.ResourceType, item models.Item) bool {
	c, ok := s.collections[rt]
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[item.ID]
	if !ok {
		return false
	}
	items := make([]models.Item, len(c.items))
	copy(items, c.items)
	items[pos] = item

	c.items = items
	c.updatedAt = s.now()
	c.generation++
	return true
}

// Get returns a copy of the item with the given id.
func (s *Store) Get(rt models.ResourceType, id string) (models.Item, bool) {
	c, ok := s.collections[rt]
	if !ok {
		return models.Item{}, false
	}

	c.mu.RLock()
	pos, found := c.index[id]
	var item models.Item
	if found {
		item = c.items[pos]
	}
	c.mu.RUnlock()

	if !found {
		return models.Item{}, false
	}
	return item.Clone(), true
}

// Items returns the items of rt in backend order. The slice is fresh; the
// items share field maps with the snapshot and must be treated as read-only.
func (s *Store) Items(rt models.ResourceType) []models.Item {
	items, _, _ := s.load(rt)
	out := make([]models.Item, len(items))
	copy(out, items)
	return out
}

// Entry returns the items of rt with their update time and generation,
// all from the same swap.
func (s *Store) Entry(rt models.ResourceType) Entry {
	items, updatedAt, gen := s.load(rt)
	out := make([]models.Item, len(items))
	copy(out, items)
	return Entry{Type: rt, Items: out, UpdatedAt: updatedAt, Generation: gen}
}

// Len returns the number of items of rt.
func (s *Store) Len(rt models.ResourceType) int {
	items, _, _ := s.load(rt)
	return len(items)
}

// UpdatedAt returns the last replace time of every resource type that has
// been populated at least once.
func (s *Store) UpdatedAt() map[models.ResourceType]time.Time {
	out := make(map[models.ResourceType]time.Time, len(s.collections))
	for rt, c := range s.collections {
		c.mu.RLock()
		if c.generation > 0 {
			out[rt] = c.updatedAt
		}
		c.mu.RUnlock()
	}
	return out
}

// load returns the published slice of rt. The caller must not modify it.
func (s *Store) load(rt models.ResourceType) ([]models.Item, time.Time, uint64) {
	c, ok := s.collections[rt]
	if !ok {
		return nil, time.Time{}, 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items, c.updatedAt, c.generation
}
