package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
)

// RateRepository serves the two seeded reference tables. Both lookups are
// single-row equality matches.
type RateRepository struct {
	store *Store
}

var _ ports.RateLookup = (*RateRepository)(nil)

func NewRateRepository(store *Store) *RateRepository {
	return &RateRepository{store: store}
}

// TaxRateFor returns the configured rate for a 2-letter state code, or
// domain.ErrRateNotFound. A zero rate is returned as-is; rejecting it is
// the pricer's call, not the table's.
func (r *RateRepository) TaxRateFor(ctx context.Context, state string) (decimal.Decimal, error) {
	const q = `SELECT rate FROM tax_rates WHERE state = ?`

	var raw string
	err := r.store.db.QueryRowContext(ctx, q, state).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: tax rate for %q: %w", state, err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: tax rate for %q: bad value %q: %w", state, raw, err)
	}
	return rate, nil
}

// ProcessingFeeFor returns the flat fee for an item type, or
// domain.ErrRateNotFound.
func (r *RateRepository) ProcessingFeeFor(ctx context.Context, itemType domain.ItemType) (decimal.Decimal, error) {
	const q = `SELECT fee FROM processing_fees WHERE item_type = ?`

	var raw string
	err := r.store.db.QueryRowContext(ctx, q, string(itemType)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: processing fee for %q: %w", itemType, err)
	}

	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: processing fee for %q: bad value %q: %w", itemType, raw, err)
	}
	return fee, nil
}
