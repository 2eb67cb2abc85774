package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	"task-dashboard.com/task-dashboard/internal/logger"
)

// WindowCounter counts hits on key within a fixed window and returns the
// count including the current hit.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter limits each client IP to limit requests per window using a
// process-local counter.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return LimitBy(NewMemoryCounter(time.Now), limit, window)
}

// LimitBy enforces limit per client IP on top of counter. Counter failures
// let the request through.
func LimitBy(counter WindowCounter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			count, err := counter.Hit(c.Request().Context(), c.RealIP(), window)
			if err != nil {
				logger.Warn("rate limiter unavailable", "error", err)
				rateLimitErrors.Inc()
				return next(c)
			}

			if count > int64(limit) {
				rateLimitBlocked.WithLabelValues(c.Path()).Inc()
				return apperrors.ErrRateLimited
			}

			rateLimitAllowed.WithLabelValues(c.Path()).Inc()
			return next(c)
		}
	}
}

type bucket struct {
	count int64
	start time.Time
}

type MemoryCounter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryCounter(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{
		buckets: make(map[string]*bucket),
		now:     now,
	}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

// Sweep drops buckets whose window has ended and returns how many were
// removed.
func (m *MemoryCounter) Sweep(window time.Duration) int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, b := range m.buckets {
		if now.Sub(b.start) > window {
			delete(m.buckets, key)
			removed++
		}
	}
	return removed
}

func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}
