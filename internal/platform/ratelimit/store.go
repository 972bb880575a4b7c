package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is the state of one fixed counting window after a hit.
type Window struct {
	Count   int
	ResetAt time.Time
}

// CounterStore counts hits per key in fixed windows. The first hit on a key
// with no live window opens a new one with count 1.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (Window, error)
}

const defaultSweepEvery = 1024

// MemoryStore keeps windows in process memory. Expired windows are swept
// every sweepEvery increments and on Sweep.
type MemoryStore struct {
	mu         sync.Mutex
	windows    map[string]Window
	hits       int
	sweepEvery int
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows:    make(map[string]Window),
		sweepEvery: defaultSweepEvery,
		now:        time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (Window, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hits++
	if s.sweepEvery > 0 && s.hits%s.sweepEvery == 0 {
		s.sweepLocked(now)
	}

	current, ok := s.windows[key]
	if !ok || !now.Before(current.ResetAt) {
		current = Window{Count: 1, ResetAt: now.Add(window)}
		s.windows[key] = current
		return current, nil
	}

	current.Count++
	s.windows[key] = current
	return current, nil
}

// Sweep drops every window that has ended and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *MemoryStore) sweepLocked(now time.Time) int {
	removed := 0
	for key, w := range s.windows {
		if !now.Before(w.ResetAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}
