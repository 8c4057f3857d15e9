package timerstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	mu     sync.Mutex
	timers Timers
	calls  MemoryCalls
}

// MemoryCalls tracks method invocations for test verification.
type MemoryCalls struct {
	Load int
	Save int
}

// NewMemoryStore creates a store seeded with a copy of initial.
func NewMemoryStore(initial Timers) *MemoryStore {
	return &MemoryStore{timers: initial.Clone()}
}

// Load returns a copy of the current mapping.
func (m *MemoryStore) Load(_ context.Context) Timers {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Load++
	return m.timers.Clone()
}

// Save replaces the current mapping with a copy of t.
func (m *MemoryStore) Save(_ context.Context, t Timers) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls.Save++
	m.timers = t.Clone()
}

// Snapshot returns a copy of the current mapping without counting a Load.
func (m *MemoryStore) Snapshot() Timers {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers.Clone()
}

// Calls returns the invocation counters.
func (m *MemoryStore) Calls() MemoryCalls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
