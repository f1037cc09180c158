// Package keylock provides per-key mutual exclusion.
// This is part of the platform layer and contains no business logic.
package keylock

import "sync"

// Map serializes work per string key. The webhook layer locks on the
// normalized lead phone so that two concurrent messages from one lead cannot
// race on the read-modify-write of the lead record. Entries are never
// evicted; the key space is bounded by the number of distinct leads seen by
// this process.
type Map struct {
	locks sync.Map
}

// New creates an empty lock map.
func New() *Map {
	return &Map{}
}

// Lock acquires the mutex for key, creating it on first use.
func (m *Map) Lock(key string) {
	m.mutexFor(key).Lock()
}

// Unlock releases the mutex for key.
func (m *Map) Unlock(key string) {
	m.mutexFor(key).Unlock()
}

func (m *Map) mutexFor(key string) *sync.Mutex {
	if mu, ok := m.locks.Load(key); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
