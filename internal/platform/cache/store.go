package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache. Concurrent misses for one key share a
// single load, and a load that overlaps an invalidation is returned to its
// callers but not kept.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	epoch   uint64
	ttl     time.Duration
	now     func() time.Time
	flight  singleflight.Group
}

// NewStore keeps entries for ttl. A ttl <= 0 keeps them until evicted.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(key)
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.store(key, value)
	s.mu.Unlock()
}

// Delete evicts keys and detaches any load in flight for them.
func (s *Store) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	s.epoch++
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flight.Forget(key)
	}
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	s.mu.Lock()
	s.epoch++
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Load returns the cached value for key or runs loader once for all
// concurrent callers. An empty key bypasses the cache.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return typed[T](key, value)
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		s.mu.Lock()
		if cached, ok := s.lookup(key); ok {
			s.mu.Unlock()
			return cached, nil
		}
		epoch := s.epoch
		s.mu.Unlock()

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.epoch == epoch {
			s.store(key, loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return typed[T](key, value)
}

func typed[T any](key string, value any) (T, error) {
	out, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %s holds %T", key, value)
	}
	return out, nil
}

// lookup and store must be called with mu held.
func (s *Store) lookup(key string) (any, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) store(key string, value any) {
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}
