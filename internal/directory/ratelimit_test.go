package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the limiter without real sleeping: each sleep advances
// the clock by the requested amount.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	sleeps int
}

func newFakeClockLimiter(limit int, window time.Duration) (*WindowLimiter, *fakeClock) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	l := NewWindowLimiter(limit, window)
	l.now = func() time.Time { return clk.now }
	l.sleep = func(_ context.Context, d time.Duration) error {
		clk.slept = append(clk.slept, d)
		clk.sleeps++
		clk.now = clk.now.Add(d)
		return nil
	}
	return l, clk
}

func TestWindowLimiter_UnderCeilingNeverSleeps(t *testing.T) {
	l, clk := newFakeClockLimiter(5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	assert.Zero(t, clk.sleeps)
}

func TestWindowLimiter_SleepsOutWindowRemainder(t *testing.T) {
	l, clk := newFakeClockLimiter(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	clk.now = clk.now.Add(10 * time.Second)
	require.NoError(t, l.Acquire(ctx))

	// Third call exceeds the ceiling: it must wait exactly the remainder of
	// the window, then be admitted into the fresh window.
	require.NoError(t, l.Acquire(ctx))
	require.Equal(t, 1, clk.sleeps)
	assert.Equal(t, 50*time.Second, clk.slept[0])
}

func TestWindowLimiter_WindowResetsAfterElapse(t *testing.T) {
	l, clk := newFakeClockLimiter(1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	clk.now = clk.now.Add(61 * time.Second)
	require.NoError(t, l.Acquire(ctx))
	assert.Zero(t, clk.sleeps)
}

func TestWindowLimiter_CeilingHoldsPerWindow(t *testing.T) {
	l, clk := newFakeClockLimiter(3, time.Minute)
	ctx := context.Background()

	// 10 acquires admit at most 3 per window, so at least 3 window waits.
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	assert.GreaterOrEqual(t, clk.sleeps, 3)
}

func TestWindowLimiter_ContextCancelAbortsWait(t *testing.T) {
	l := NewWindowLimiter(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, l.Acquire(ctx))
	cancel()

	err := l.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
