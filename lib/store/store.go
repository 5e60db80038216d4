package store

import (
	"fmt"
	"sync"
)

// Store is the manager for one grade container. It owns the mutex that
// serializes every read and every read-modify-write sequence across all
// concurrently handled connections. One instance is created at startup
// and passed by handle to every worker; the mutex is deliberately not a
// package-level variable so that ownership and lifetime stay explicit.
type Store struct {
	mu  sync.Mutex
	src Source
}

// New creates a store manager on top of the given source.
func New(src Source) *Store {
	return &Store{src: src}
}

// View runs fn on a freshly loaded snapshot of all records while holding
// the store mutex. The snapshot is loaded under the mutex because the
// underlying load is not otherwise atomic with respect to concurrent
// writers.
func (s *Store) View(fn func(recs []Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.src.Load()
	if err != nil {
		return fmt.Errorf("store: load failed: %w", err)
	}
	return fn(recs)
}

// Update runs fn on a freshly loaded snapshot while holding the store
// mutex and, if fn returns a non-nil record slice, persists it as the new
// full content before releasing. The mutex wraps the entire
// load -> validate -> mutate -> persist sequence; locking only the final
// persist step would reintroduce the lost-update race this store exists
// to prevent.
//
// Returning (nil, nil) from fn commits nothing, which lets callers abort
// a mutation after inspecting the snapshot (e.g. duplicate identity).
func (s *Store) Update(fn func(recs []Record) ([]Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.src.Load()
	if err != nil {
		return fmt.Errorf("store: load failed: %w", err)
	}

	next, err := fn(recs)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	if err := s.src.Replace(next); err != nil {
		return fmt.Errorf("store: persist failed: %w", err)
	}
	return nil
}
