package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter: fixed window in-process. Para despliegues de una sola
// réplica o desarrollo; con varias réplicas usar RedisLimiter.
type MemoryLimiter struct {
	mu     sync.Mutex
	max    int64
	window time.Duration
	hits   map[string]int64
	starts map[string]time.Time

	// now es inyectable para tests.
	now func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:    int64(max),
		window: window,
		hits:   make(map[string]int64),
		starts: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	start, ok := l.starts[key]
	if !ok || now.Sub(start) >= l.window {
		l.starts[key] = now
		l.hits[key] = 0
		start = now
	}
	l.hits[key]++
	hits := l.hits[key]

	remaining := l.max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     hits <= l.max,
		Remaining:   remaining,
		CurrentHits: hits,
	}
	if !res.Allowed {
		res.RetryAfter = l.window - now.Sub(start)
	}
	return res, nil
}
