// Package cache provides a generic in-memory key/value store with TTL-based
// staleness. Expiry is lazy: an entry past its TTL is simply not returned and
// remains in place until the next Set overwrites it. The key space is small
// and enumerable (one key per index, per stock symbol, and per curated list),
// so no eviction is performed.
package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with the time it was stored.
type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is a concurrency-safe TTL cache. The zero value is not usable;
// construct with New.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the value stored under key if it is still fresh under the
// given TTL. Freshness is evaluated at read time. A miss is a normal
// outcome, reported through the boolean, never an error.
func (s *Store[T]) Get(key string, ttl time.Duration) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.storedAt) >= ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp, unconditionally
// overwriting any prior entry.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[T]{value: value, storedAt: s.now()}
}

// Len reports the number of entries held, fresh or stale.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
