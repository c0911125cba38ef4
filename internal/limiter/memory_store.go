package limiter

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

// MemoryStore keeps counters in process. Good enough for a single server.
type MemoryStore struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now, window)

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	if b.count >= limit {
		return false, nil
	}

	b.count++
	return true, nil
}

// sweep drops buckets whose window has passed, at most once per window.
func (m *MemoryStore) sweep(now time.Time, window time.Duration) {
	if now.Sub(m.lastSweep) <= window {
		return
	}
	for key, b := range m.buckets {
		if now.Sub(b.start) > window {
			delete(m.buckets, key)
		}
	}
	m.lastSweep = now
}
