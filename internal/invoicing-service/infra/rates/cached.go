// Package rates decorates a RateLookup with a read-through cache. Tax rates
// and processing fees are reference data that changes rarely, so serving
// them from Redis spares the database a read per purchase. The catalog
// snapshot is deliberately never cached anywhere.
package rates

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
	"github.com/jcmexdev/gamestore/internal/pkg/cache"
)

const defaultTTL = 10 * time.Minute

type CachedRateLookup struct {
	next  ports.RateLookup
	cache cache.Cache
	ttl   time.Duration
}

var _ ports.RateLookup = (*CachedRateLookup)(nil)

// NewCached wraps next with a read-through cache. A nil cache yields a
// pass-through lookup, so wiring stays unconditional in main.
func NewCached(next ports.RateLookup, c cache.Cache) *CachedRateLookup {
	return &CachedRateLookup{next: next, cache: c, ttl: defaultTTL}
}

func (l *CachedRateLookup) TaxRateFor(ctx context.Context, state string) (decimal.Decimal, error) {
	return l.lookup(ctx, "tax", state, func() (decimal.Decimal, error) {
		return l.next.TaxRateFor(ctx, state)
	})
}

func (l *CachedRateLookup) ProcessingFeeFor(ctx context.Context, itemType domain.ItemType) (decimal.Decimal, error) {
	return l.lookup(ctx, "fee", string(itemType), func() (decimal.Decimal, error) {
		return l.next.ProcessingFeeFor(ctx, itemType)
	})
}

// lookup serves from cache when possible and falls back to the underlying
// table. Cache failures degrade to a table read; not-found is never cached.
func (l *CachedRateLookup) lookup(ctx context.Context, operation, key string, load func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	if l.cache == nil {
		return load()
	}

	cacheKey := l.cache.GenerateKey(operation, key)
	if raw, err := l.cache.Get(ctx, cacheKey); err != nil {
		slog.WarnContext(ctx, "rate cache read failed", "key", cacheKey, "error", err)
	} else if raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil {
			return value, nil
		}
		slog.WarnContext(ctx, "rate cache held a bad value", "key", cacheKey, "value", raw)
	}

	value, err := load()
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := l.cache.Set(ctx, cacheKey, value.String(), l.ttl); err != nil {
		slog.WarnContext(ctx, "rate cache write failed", "key", cacheKey, "error", err)
	}
	return value, nil
}
