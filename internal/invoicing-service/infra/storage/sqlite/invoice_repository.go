package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z"

// InvoiceRepository is the SQLite implementation of ports.InvoiceRepository.
// The table is append-only: Save is the only write, and no update or delete
// statement exists anywhere in this package.
type InvoiceRepository struct {
	store *Store
}

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(store *Store) *InvoiceRepository {
	return &InvoiceRepository{store: store}
}

const invoiceColumns = `
	id, name, street, city, state, zipcode,
	item_type, item_id, quantity,
	unit_price, subtotal, tax, processing_fee, total,
	created_at`

// Save inserts the invoice and returns the stored copy with its assigned id.
func (r *InvoiceRepository) Save(ctx context.Context, inv domain.Invoice) (domain.Invoice, error) {
	const q = `
		INSERT INTO invoices
			(name, street, city, state, zipcode,
			 item_type, item_id, quantity,
			 unit_price, subtotal, tax, processing_fee, total,
			 created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.store.db.ExecContext(ctx, q,
		inv.Name,
		inv.Street,
		inv.City,
		inv.State,
		inv.Zipcode,
		string(inv.ItemType),
		inv.ItemID,
		inv.Quantity,
		inv.UnitPrice.String(),
		inv.Subtotal.String(),
		inv.Tax.String(),
		inv.ProcessingFee.String(),
		inv.Total.String(),
		inv.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("sqlite: save invoice for %q: %w", inv.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("sqlite: invoice id: %w", err)
	}
	inv.ID = id
	return inv, nil
}

// FindByID returns domain.ErrInvoiceNotFound for an unknown id.
func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (domain.Invoice, error) {
	q := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = ?`

	inv, err := scanInvoice(r.store.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("sqlite: find invoice %d: %w", id, err)
	}
	return inv, nil
}

// FindByCustomerName returns all invoices recorded under the name, oldest
// first. An unknown name yields an empty slice, not an error.
func (r *InvoiceRepository) FindByCustomerName(ctx context.Context, name string) ([]domain.Invoice, error) {
	q := `SELECT` + invoiceColumns + ` FROM invoices WHERE name = ? ORDER BY id`
	return r.queryInvoices(ctx, q, name)
}

// FindAll returns every invoice, oldest first.
func (r *InvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	q := `SELECT` + invoiceColumns + ` FROM invoices ORDER BY id`
	return r.queryInvoices(ctx, q)
}

func (r *InvoiceRepository) queryInvoices(ctx context.Context, q string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query invoices: %w", err)
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate invoices: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var inv domain.Invoice
	var itemType, createdAt string
	var unitPrice, subtotal, tax, fee, total string

	err := row.Scan(
		&inv.ID, &inv.Name, &inv.Street, &inv.City, &inv.State, &inv.Zipcode,
		&itemType, &inv.ItemID, &inv.Quantity,
		&unitPrice, &subtotal, &tax, &fee, &total,
		&createdAt,
	)
	if err != nil {
		return domain.Invoice{}, err
	}

	inv.ItemType = domain.ItemType(itemType)
	if inv.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return domain.Invoice{}, fmt.Errorf("unit_price %q: %w", unitPrice, err)
	}
	if inv.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return domain.Invoice{}, fmt.Errorf("subtotal %q: %w", subtotal, err)
	}
	if inv.Tax, err = decimal.NewFromString(tax); err != nil {
		return domain.Invoice{}, fmt.Errorf("tax %q: %w", tax, err)
	}
	if inv.ProcessingFee, err = decimal.NewFromString(fee); err != nil {
		return domain.Invoice{}, fmt.Errorf("processing_fee %q: %w", fee, err)
	}
	if inv.Total, err = decimal.NewFromString(total); err != nil {
		return domain.Invoice{}, fmt.Errorf("total %q: %w", total, err)
	}
	if inv.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Invoice{}, fmt.Errorf("created_at %q: %w", createdAt, err)
	}
	return inv, nil
}
