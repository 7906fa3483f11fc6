package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType identifies which catalog an item belongs to. The string values
// double as the processing-fee table keys, so they must not change.
type ItemType string

const (
	ItemTypeConsole ItemType = "Console"
	ItemTypeGame    ItemType = "Game"
	ItemTypeTShirt  ItemType = "T-Shirt"
)

// Valid reports whether t is one of the three recognized catalogs.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeConsole, ItemTypeGame, ItemTypeTShirt:
		return true
	}
	return false
}

const (
	// MaxQuantity is the hard upper bound on a single purchase line.
	MaxQuantity = 50000
	// SurchargeQuantity is the quantity above which the volume surcharge
	// is added to the processing fee.
	SurchargeQuantity = 10
)

var (
	// MaxOrderTotal caps both the subtotal and the final total.
	MaxOrderTotal = decimal.RequireFromString("999.99")
	// VolumeSurcharge is the flat extra processing fee for quantities
	// above SurchargeQuantity.
	VolumeSurcharge = decimal.RequireFromString("15.49")
)

// PurchaseRequest is the validated input to the pricing pipeline. It is
// never persisted on its own; an accepted request becomes an Invoice.
type PurchaseRequest struct {
	Name     string
	Street   string
	City     string
	State    string
	Zipcode  string
	ItemType ItemType
	ItemID   int64
	Quantity int64
}

// CatalogItem is the read-only snapshot the catalog service returns for a
// (type, id) pair. It is current at call time only; nothing here is cached
// and nothing reserves the reported stock.
type CatalogItem struct {
	Price    decimal.Decimal
	Quantity int64
}

// Invoice is the priced, validated purchase. Created exactly once per
// accepted request and immutable afterwards: the repository exposes no
// update or delete operation.
type Invoice struct {
	ID            int64
	Name          string
	Street        string
	City          string
	State         string
	Zipcode       string
	ItemType      ItemType
	ItemID        int64
	UnitPrice     decimal.Decimal
	Quantity      int64
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	ProcessingFee decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// Round2 rounds a monetary amount to 2 decimal places. decimal.Round rounds
// half away from zero, which for non-negative amounts is exactly the
// half-up rounding the invoice columns require.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
