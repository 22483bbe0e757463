package catalog

import (
	"sync/atomic"
	"time"
)

// Store holds the current catalog snapshot. Readers get the snapshot that
// was current when they called Snapshot; a concurrent Replace never
// changes a snapshot that is already in use.
type Store struct {
	current  atomic.Pointer[Catalog]
	loadedAt atomic.Int64
	reloads  atomic.Uint64
}

// NewStore creates a store seeded with an initial catalog.
func NewStore(initial *Catalog) *Store {
	s := &Store{}
	s.current.Store(initial)
	s.loadedAt.Store(time.Now().UnixNano())
	return s
}

// Snapshot returns the current catalog.
func (s *Store) Snapshot() *Catalog {
	return s.current.Load()
}

// Replace swaps in a new catalog.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
	s.loadedAt.Store(time.Now().UnixNano())
	s.reloads.Add(1)
}

// LoadedAt returns when the current snapshot was installed.
func (s *Store) LoadedAt() time.Time {
	return time.Unix(0, s.loadedAt.Load())
}

// Reloads returns how many times the snapshot has been replaced.
func (s *Store) Reloads() uint64 {
	return s.reloads.Load()
}
