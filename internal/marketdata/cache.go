// Package marketdata provides the external quote-history provider client.
package marketdata

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CachedProvider wraps a Provider with an in-memory TTL cache. Batch runs
// over the same symbol and range hit the provider once.
type CachedProvider struct {
	provider Provider
	cache    *cache.Cache
	ttl      time.Duration
}

// NewCachedProvider creates a caching wrapper around a provider
func NewCachedProvider(provider Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache.New(ttl, ttl*2),
		ttl:      ttl,
	}
}

// Name returns the underlying provider's name
func (p *CachedProvider) Name() string {
	return p.provider.Name()
}

// GetQuoteHistory serves from cache when possible, delegating misses to the
// underlying provider. Errors are never cached.
func (p *CachedProvider) GetQuoteHistory(ctx context.Context, symbol, rng, interval string) (*QuoteHistoryResponse, error) {
	key := cacheKey(symbol, rng, interval)
	if cached, found := p.cache.Get(key); found {
		if payload, ok := cached.(*QuoteHistoryResponse); ok {
			return payload, nil
		}
	}

	payload, err := p.provider.GetQuoteHistory(ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, payload, p.ttl)
	return payload, nil
}

func cacheKey(symbol, rng, interval string) string {
	return fmt.Sprintf("%s|%s|%s", symbol, rng, interval)
}
