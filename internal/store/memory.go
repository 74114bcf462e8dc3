// apps/go-server/internal/store/memory.go
//
// In-memory implementation of Store.
// Used in development/testing, or when no DB_PATH is configured.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is a slice-backed Store implementation.
type memory struct {
	mu      sync.RWMutex // guards results
	results []Result
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Record appends the result.
func (m *memory) Record(ctx context.Context, r Result) error {
	r = withDefaults(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

// Summary scans all recorded results.
func (m *memory) Summary(ctx context.Context, mode Mode) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var s Summary
	for _, r := range m.results {
		if mode == "" || r.Mode == mode {
			s.add(r)
		}
	}
	return s, nil
}
