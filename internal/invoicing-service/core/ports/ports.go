package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
)

// CatalogLookup resolves the current price and stock for an item. The
// catalog service owns the data; implementations return a transient
// snapshot with no freshness guarantee beyond call time.
type CatalogLookup interface {
	// Resolve returns domain.ErrItemNotFound when the catalog has no such
	// item (or cannot be reached — the distinction is logged, not surfaced).
	Resolve(ctx context.Context, itemType domain.ItemType, itemID int64) (domain.CatalogItem, error)
}

// RateLookup resolves the two reference tables the pricer needs. Both are
// plain key lookups; both return domain.ErrRateNotFound on a missing row.
type RateLookup interface {
	TaxRateFor(ctx context.Context, state string) (decimal.Decimal, error)
	ProcessingFeeFor(ctx context.Context, itemType domain.ItemType) (decimal.Decimal, error)
}

// InvoiceRepository persists finalized invoices. There is deliberately no
// update or delete: invoices are immutable once created, and the missing
// capability is the safeguard.
type InvoiceRepository interface {
	// Save assigns the identity and persists the invoice, returning the
	// stored copy.
	Save(ctx context.Context, inv domain.Invoice) (domain.Invoice, error)
	// FindByID returns domain.ErrInvoiceNotFound when absent.
	FindByID(ctx context.Context, id int64) (domain.Invoice, error)
	FindByCustomerName(ctx context.Context, name string) ([]domain.Invoice, error)
	FindAll(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceService is the application surface the HTTP layer talks to.
type InvoiceService interface {
	Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.Invoice, error)
	InvoiceByID(ctx context.Context, id int64) (domain.Invoice, error)
	InvoicesByCustomerName(ctx context.Context, name string) ([]domain.Invoice, error)
	AllInvoices(ctx context.Context) ([]domain.Invoice, error)
}
