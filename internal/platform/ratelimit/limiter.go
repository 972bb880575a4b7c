package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most limit hits per key in each window.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store CounterStore, limit int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("counter store is required")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be > 0")
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be > 0")
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	w, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("increment rate counter: %w", err)
	}

	if w.Count <= l.limit {
		return Decision{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit - w.Count,
		}, nil
	}

	return Decision{
		Allowed:    false,
		Limit:      l.limit,
		RetryAfter: retryAfter(w.ResetAt.Sub(l.now())),
	}, nil
}

// retryAfter rounds up to whole seconds, never below one.
func retryAfter(remaining time.Duration) time.Duration {
	seconds := (remaining + time.Second - 1) / time.Second
	if seconds < 1 {
		seconds = 1
	}
	return seconds * time.Second
}

// Key joins parts with ':' into a counter key.
func Key(parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, part := range parts {
		if i > 0 {
			_ = buf.WriteByte(':')
		}
		if part == "" {
			part = "unknown"
		}
		_, _ = buf.WriteString(part)
	}
	return buf.String()
}
