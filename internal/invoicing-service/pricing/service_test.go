package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/pricing"
)

type catalogKey struct {
	itemType domain.ItemType
	itemID   int64
}

type fakeCatalog struct {
	items map[catalogKey]domain.CatalogItem
}

func (f *fakeCatalog) Resolve(_ context.Context, itemType domain.ItemType, itemID int64) (domain.CatalogItem, error) {
	item, ok := f.items[catalogKey{itemType, itemID}]
	if !ok {
		return domain.CatalogItem{}, domain.ErrItemNotFound
	}
	return item, nil
}

type fakeRates struct {
	taxes map[string]decimal.Decimal
	fees  map[domain.ItemType]decimal.Decimal
}

func (f *fakeRates) TaxRateFor(_ context.Context, state string) (decimal.Decimal, error) {
	rate, ok := f.taxes[state]
	if !ok {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	return rate, nil
}

func (f *fakeRates) ProcessingFeeFor(_ context.Context, itemType domain.ItemType) (decimal.Decimal, error) {
	fee, ok := f.fees[itemType]
	if !ok {
		return decimal.Decimal{}, domain.ErrRateNotFound
	}
	return fee, nil
}

type fakeInvoiceRepo struct {
	saved  []domain.Invoice
	nextID int64
}

func (f *fakeInvoiceRepo) Save(_ context.Context, inv domain.Invoice) (domain.Invoice, error) {
	f.nextID++
	inv.ID = f.nextID
	f.saved = append(f.saved, inv)
	return inv, nil
}

func (f *fakeInvoiceRepo) FindByID(_ context.Context, id int64) (domain.Invoice, error) {
	for _, inv := range f.saved {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, domain.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) FindByCustomerName(_ context.Context, name string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range f.saved {
		if inv.Name == name {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) FindAll(_ context.Context) ([]domain.Invoice, error) {
	return f.saved, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture wires a pricer against the scenario from the rate sheet:
// Game #8 costs 23.99 with 100 in stock, NY taxes at 8%, games carry a
// 2.50 processing fee.
func newFixture() (*pricing.Service, *fakeInvoiceRepo) {
	catalog := &fakeCatalog{items: map[catalogKey]domain.CatalogItem{
		{domain.ItemTypeGame, 8}:    {Price: dec("23.99"), Quantity: 100},
		{domain.ItemTypeConsole, 3}: {Price: dec("399.99"), Quantity: 4},
		{domain.ItemTypeTShirt, 2}:  {Price: dec("14.50"), Quantity: 1000},
	}}
	rates := &fakeRates{
		taxes: map[string]decimal.Decimal{
			"NY": dec("0.08"),
			"CA": dec("0.06"),
			"OR": dec("0"),
		},
		fees: map[domain.ItemType]decimal.Decimal{
			domain.ItemTypeGame:    dec("2.50"),
			domain.ItemTypeConsole: dec("14.99"),
		},
	}
	repo := &fakeInvoiceRepo{}
	return pricing.NewService(catalog, rates, repo), repo
}

func gameRequest(quantity int64) domain.PurchaseRequest {
	return domain.PurchaseRequest{
		Name:     "John Waters",
		Street:   "123 Main St",
		City:     "Baltimore",
		State:    "NY",
		Zipcode:  "21201",
		ItemType: domain.ItemTypeGame,
		ItemID:   8,
		Quantity: quantity,
	}
}

func TestPurchase_HappyPath(t *testing.T) {
	svc, repo := newFixture()

	inv, err := svc.Purchase(context.Background(), gameRequest(5))
	require.NoError(t, err)

	assert.Equal(t, "23.99", inv.UnitPrice.String())
	assert.Equal(t, "119.95", inv.Subtotal.String())
	assert.Equal(t, "9.6", inv.Tax.String())
	assert.Equal(t, "2.5", inv.ProcessingFee.String())
	assert.Equal(t, "132.05", inv.Total.String())
	assert.NotZero(t, inv.ID)
	require.Len(t, repo.saved, 1)
}

func TestPurchase_TotalIsSumOfStoredFields(t *testing.T) {
	svc, _ := newFixture()

	inv, err := svc.Purchase(context.Background(), gameRequest(7))
	require.NoError(t, err)

	sum := inv.Subtotal.Add(inv.Tax).Add(inv.ProcessingFee)
	assert.True(t, inv.Total.Equal(sum), "total %s != subtotal+tax+fee %s", inv.Total, sum)
}

func TestPurchase_VolumeSurchargeBoundary(t *testing.T) {
	svc, _ := newFixture()

	atLimit, err := svc.Purchase(context.Background(), gameRequest(10))
	require.NoError(t, err)
	assert.Equal(t, "2.5", atLimit.ProcessingFee.String())

	overLimit, err := svc.Purchase(context.Background(), gameRequest(11))
	require.NoError(t, err)
	// 2.50 base fee + 15.49 flat surcharge.
	assert.Equal(t, "17.99", overLimit.ProcessingFee.String())
}

func TestPurchase_Idempotence(t *testing.T) {
	svc, _ := newFixture()

	first, err := svc.Purchase(context.Background(), gameRequest(5))
	require.NoError(t, err)
	second, err := svc.Purchase(context.Background(), gameRequest(5))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.ProcessingFee.Equal(second.ProcessingFee))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestPurchase_UnrecognizedItemType(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.ItemType = "Poster"

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrUnrecognizedItemType)
	assert.Equal(t, "Poster: Unrecognized Item type. Valid ones: T-Shirt, Console, or Game", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_QuantityLowerBound(t *testing.T) {
	svc, repo := newFixture()

	for _, q := range []int64{0, -3} {
		_, err := svc.Purchase(context.Background(), gameRequest(q))
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, repo.saved)
}

func TestPurchase_ItemNotInCatalog(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.ItemID = 999

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrItemUnavailable)
	assert.Equal(t, "Requested item is unavailable.", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_InsufficientStock(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.ItemType = domain.ItemTypeConsole
	req.ItemID = 3 // only 4 in stock

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Requested quantity is unavailable.", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_SubtotalExceedsLimit(t *testing.T) {
	svc, repo := newFixture()

	// 23.99 * 51 = 1223.49, over the ceiling even though 51 <= stock of 100.
	_, err := svc.Purchase(context.Background(), gameRequest(51))
	require.ErrorIs(t, err, domain.ErrExceedsMaxTotal)
	assert.Equal(t, "Subtotal exceeds maximum purchase price of $999.99", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_TotalExceedsLimit(t *testing.T) {
	svc, repo := newFixture()

	// 23.99 * 38 = 911.62 passes the subtotal gate, but tax (72.93) and the
	// surcharged fee (17.99) push the total to 1002.54.
	_, err := svc.Purchase(context.Background(), gameRequest(38))
	require.ErrorIs(t, err, domain.ErrExceedsMaxTotal)
	assert.Empty(t, repo.saved)
}

func TestPurchase_UnknownState(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.State = "ZZ"

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidStateCode)
	assert.Equal(t, "ZZ: Invalid State code.", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_ZeroRateStateRejected(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.State = "OR" // configured with a 0 rate

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidStateCode)
	assert.Equal(t, "OR: Invalid State code.", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_MissingFeeRowReportsItemUnavailable(t *testing.T) {
	svc, repo := newFixture()

	req := gameRequest(5)
	req.ItemType = domain.ItemTypeTShirt
	req.ItemID = 2 // in the catalog, but no fee row configured

	_, err := svc.Purchase(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrItemUnavailable)
	assert.Equal(t, "Requested item is unavailable.", err.Error())
	assert.Empty(t, repo.saved)
}

func TestPurchase_AllRejectionsAreValidationErrors(t *testing.T) {
	svc, _ := newFixture()

	bad := gameRequest(5)
	bad.State = "ZZ"

	_, err := svc.Purchase(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestQueries_PassThroughToRepository(t *testing.T) {
	svc, _ := newFixture()

	inv, err := svc.Purchase(context.Background(), gameRequest(5))
	require.NoError(t, err)

	got, err := svc.InvoiceByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	byName, err := svc.InvoicesByCustomerName(context.Background(), "John Waters")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	all, err := svc.AllInvoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.InvoiceByID(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
