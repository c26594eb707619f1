package directory

import (
	"context"
	"sync"
	"time"
)

// RateLimiter bounds upstream calls per rolling window. Acquire blocks until
// the call is admitted; it never rejects. The wait is capped at the window
// length, so no caller blocks indefinitely.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// WindowLimiter is the in-process RateLimiter: a counter plus the window's
// start timestamp. When the ceiling is hit it sleeps out the remainder of
// the window rather than failing the call.
type WindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	windowStart time.Time
	count       int
}

func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

func (l *WindowLimiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.now()
		if now.Sub(l.windowStart) >= l.window {
			l.windowStart = now
			l.count = 0
		}
		if l.count < l.limit {
			l.count++
			l.mu.Unlock()
			return nil
		}
		wait := l.windowStart.Add(l.window).Sub(now)
		l.mu.Unlock()

		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
