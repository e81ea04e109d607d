package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCacheRoundTrip(t *testing.T) {
	c := NewQuoteCache(5 * time.Minute)

	c.Set(Quote{Ticker: "nvda", Name: "NVIDIA Corporation", Price: 131.25})

	q, ok := c.Get("NVDA")
	assert.True(t, ok)
	assert.Equal(t, 131.25, q.Price)

	_, ok = c.Get("AAPL")
	assert.False(t, ok)
}

func TestQuoteCacheExpiry(t *testing.T) {
	c := NewQuoteCache(5 * time.Minute)
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set(Quote{Ticker: "NVDA", Price: 131.25})

	base = base.Add(4 * time.Minute)
	_, ok := c.Get("NVDA")
	assert.True(t, ok)

	base = base.Add(2 * time.Minute)
	_, ok = c.Get("NVDA")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 0, c.Len())
}
