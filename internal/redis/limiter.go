package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// acquireScript counts the call atomically and arms the window expiry on the
// first call of a fresh window. Returns {count, remaining-ttl-ms}.
var acquireScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// WindowLimiter enforces one call ceiling per window across every process
// sharing the Redis key. When the ceiling is hit it sleeps out the window
// remainder and retries; it never rejects a call.
type WindowLimiter struct {
	client *redis.Client
	key    string
	limit  int64
	window time.Duration
}

func NewWindowLimiter(client *redis.Client, key string, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		key:    fmt.Sprintf("medsafe:ratelimit:%s", key),
		limit:  int64(limit),
		window: window,
	}
}

func (l *WindowLimiter) Acquire(ctx context.Context) error {
	for {
		res, err := acquireScript.Run(ctx, l.client, []string{l.key}, l.window.Milliseconds()).Int64Slice()
		if err != nil {
			return fmt.Errorf("rate limiter acquire: %w", err)
		}

		count, ttlMillis := res[0], res[1]
		if count <= l.limit {
			return nil
		}

		wait := time.Duration(ttlMillis) * time.Millisecond
		if wait <= 0 || wait > l.window {
			wait = l.window
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
