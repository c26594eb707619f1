package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_HitWithinTTL(t *testing.T) {
	c := NewMemoryCache(5 * time.Minute)
	ctx := context.Background()

	c.Set(ctx, "aspirin", []DrugInfo{{ID: "1", BrandName: "Aspirin"}})

	got, ok := c.Get(ctx, "aspirin")
	require.True(t, ok)
	assert.Equal(t, "Aspirin", got[0].BrandName)
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	c := NewMemoryCache(5 * time.Minute)
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "aspirin", []DrugInfo{{ID: "1"}})

	now = now.Add(5*time.Minute + time.Second)
	_, ok := c.Get(ctx, "aspirin")
	assert.False(t, ok)

	// The expired entry is gone, not just hidden.
	assert.Empty(t, c.entries)
}

func TestMemoryCache_MissUnknownKey(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	_, ok := c.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestCacheKeyCaseFolds(t *testing.T) {
	assert.Equal(t, "aspirin", cacheKey("  Aspirin "))
}
