// Package cache provides a small in-memory TTL cache for market quotes, so
// the dashboard does not hammer the quote provider on repeated lookups.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Quote is the cached subset of a market quote.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	MarketState   string  `json:"market_state"`
}

type cachedQuote struct {
	quote   Quote
	fetched time.Time
}

// QuoteCache holds quotes keyed by ticker. Safe for concurrent use.
type QuoteCache struct {
	mu      sync.RWMutex
	entries map[string]cachedQuote
	ttl     time.Duration
	now     func() time.Time
}

// NewQuoteCache builds a cache with the given time-to-live.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		entries: make(map[string]cachedQuote),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached quote for ticker, if present and fresh.
func (c *QuoteCache) Get(ticker string) (Quote, bool) {
	key := strings.ToUpper(ticker)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.fetched) > c.ttl {
		return Quote{}, false
	}
	return entry.quote, true
}

// Set stores a quote under its ticker.
func (c *QuoteCache) Set(q Quote) {
	key := strings.ToUpper(q.Ticker)

	c.mu.Lock()
	c.entries[key] = cachedQuote{quote: q, fetched: c.now()}
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *QuoteCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.now().Sub(entry.fetched) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries, fresh or not.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
