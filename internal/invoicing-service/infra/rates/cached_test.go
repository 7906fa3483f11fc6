package rates_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/infra/rates"
)

type countingRates struct {
	taxCalls int
	feeCalls int
}

func (c *countingRates) TaxRateFor(_ context.Context, state string) (decimal.Decimal, error) {
	c.taxCalls++
	if state != "NY" {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	return decimal.RequireFromString("0.08"), nil
}

func (c *countingRates) ProcessingFeeFor(_ context.Context, itemType domain.ItemType) (decimal.Decimal, error) {
	c.feeCalls++
	if itemType != domain.ItemTypeGame {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	return decimal.RequireFromString("1.49"), nil
}

type mapCache struct {
	values map[string]string
}

func newMapCache() *mapCache { return &mapCache{values: map[string]string{}} }

func (m *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *mapCache) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *mapCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func TestCached_ServesSecondReadFromCache(t *testing.T) {
	next := &countingRates{}
	lookup := rates.NewCached(next, newMapCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rate, err := lookup.TaxRateFor(ctx, "NY")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.08")))
	}
	assert.Equal(t, 1, next.taxCalls)

	for i := 0; i < 2; i++ {
		fee, err := lookup.ProcessingFeeFor(ctx, domain.ItemTypeGame)
		require.NoError(t, err)
		assert.True(t, fee.Equal(decimal.RequireFromString("1.49")))
	}
	assert.Equal(t, 1, next.feeCalls)
}

func TestCached_NotFoundIsNeverCached(t *testing.T) {
	next := &countingRates{}
	c := newMapCache()
	lookup := rates.NewCached(next, c)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := lookup.TaxRateFor(ctx, "ZZ")
		require.ErrorIs(t, err, domain.ErrRateNotFound)
	}
	assert.Equal(t, 2, next.taxCalls)
	assert.Empty(t, c.values)
}

func TestCached_NilCachePassesThrough(t *testing.T) {
	next := &countingRates{}
	lookup := rates.NewCached(next, nil)

	rate, err := lookup.TaxRateFor(context.Background(), "NY")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.08")))
	assert.Equal(t, 1, next.taxCalls)
}
