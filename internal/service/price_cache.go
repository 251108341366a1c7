package service

import (
	"sync"
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
)

// PriceCacheTTL is how long a cached market quote stays usable.
const PriceCacheTTL = 30 * time.Minute

// QuoteCache is an in-memory, time-boxed store of the last fetched quote per
// (asset class group, identifier) pair. Entries are replaced whole, never
// mutated field by field, so concurrent readers observe either the old or
// the new quote but never a torn mix. The cache is cleared on restart.
type QuoteCache struct {
	mu     sync.Mutex
	quotes map[string]cachedQuote
	now    func() time.Time
}

type cachedQuote struct {
	quote    model.PriceQuote
	storedAt time.Time
}

// NewQuoteCache creates an empty quote cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{
		quotes: make(map[string]cachedQuote),
		now:    time.Now,
	}
}

// Get returns the cached quote for the given class and identifier.
// Staleness is evaluated at read time: an entry older than PriceCacheTTL is
// evicted and reported as absent rather than returned stale.
func (c *QuoteCache) Get(class model.AssetType, id string) (model.PriceQuote, bool) {
	key := cacheKey(class, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.quotes[key]
	if !ok {
		return model.PriceQuote{}, false
	}
	if c.now().Sub(entry.storedAt) > PriceCacheTTL {
		delete(c.quotes, key)
		return model.PriceQuote{}, false
	}

	return entry.quote, true
}

// Put stores a quote for the given class and identifier, replacing any
// previous entry atomically.
func (c *QuoteCache) Put(class model.AssetType, id string, quote model.PriceQuote) {
	key := cacheKey(class, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.quotes[key] = cachedQuote{quote: quote, storedAt: c.now()}
}

// cacheKey groups all security classes under one namespace since they share
// the equity provider, while crypto keys by CoinGecko ID.
func cacheKey(class model.AssetType, id string) string {
	if class == model.AssetTypeCrypto {
		return "crypto:" + id
	}
	return "stock:" + id
}
