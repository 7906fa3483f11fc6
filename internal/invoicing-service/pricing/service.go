// Package pricing implements the invoice pricing and validation pipeline.
//
// Price runs a fixed, ordered list of gates over an accumulating invoice.
// The order is load-bearing: each gate both rejects bad input and computes
// a field the next gate reads. The first failing gate short-circuits the
// run and nothing is persisted.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
)

// Service prices purchase requests and answers invoice queries. The two
// lookups and the repository are injected so tests can substitute fakes.
type Service struct {
	catalog  ports.CatalogLookup
	rates    ports.RateLookup
	invoices ports.InvoiceRepository
}

var _ ports.InvoiceService = (*Service)(nil)

func NewService(catalog ports.CatalogLookup, rates ports.RateLookup, invoices ports.InvoiceRepository) *Service {
	return &Service{
		catalog:  catalog,
		rates:    rates,
		invoices: invoices,
	}
}

// priceState accumulates the invoice under construction plus the catalog
// snapshot the stock and price gates share.
type priceState struct {
	inv  domain.Invoice
	item domain.CatalogItem
}

// gate is one unit of the pipeline. Returning an error aborts the run.
type gate struct {
	name string
	run  func(ctx context.Context, st *priceState) error
}

// Purchase validates and prices a request, persisting the invoice only
// after every gate has passed.
//
// The stock gate is advisory: nothing reserves or decrements inventory
// between the check and the save, so two concurrent purchases can both
// pass against the same stock.
func (s *Service) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.Invoice, error) {
	st := priceState{
		inv: domain.Invoice{
			Name:     req.Name,
			Street:   req.Street,
			City:     req.City,
			State:    req.State,
			Zipcode:  req.Zipcode,
			ItemType: req.ItemType,
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
		},
	}

	gates := []gate{
		{"item_type", s.checkItemType},
		{"quantity", s.checkQuantity},
		{"catalog", s.resolveCatalogItem},
		{"stock", s.checkStock},
		{"subtotal", s.computeSubtotal},
		{"tax", s.computeTax},
		{"processing_fee", s.resolveProcessingFee},
		{"volume_surcharge", s.applyVolumeSurcharge},
		{"total", s.computeTotal},
	}

	for _, g := range gates {
		if err := g.run(ctx, &st); err != nil {
			slog.InfoContext(ctx, "purchase rejected",
				"gate", g.name,
				"item_type", req.ItemType,
				"item_id", req.ItemID,
				"reason", err.Error(),
			)
			return domain.Invoice{}, err
		}
	}

	st.inv.CreatedAt = time.Now().UTC()

	saved, err := s.invoices.Save(ctx, st.inv)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("pricing: save invoice: %w", err)
	}

	slog.InfoContext(ctx, "invoice created",
		"invoice_id", saved.ID,
		"item_type", saved.ItemType,
		"item_id", saved.ItemID,
		"total", saved.Total.String(),
	)
	return saved, nil
}

func (s *Service) checkItemType(_ context.Context, st *priceState) error {
	if !st.inv.ItemType.Valid() {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("%s: Unrecognized Item type. Valid ones: T-Shirt, Console, or Game", st.inv.ItemType),
			Err:    domain.ErrUnrecognizedItemType,
		}
	}
	return nil
}

func (s *Service) checkQuantity(_ context.Context, st *priceState) error {
	if st.inv.Quantity <= 0 {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("%d: Unrecognized Quantity. Must be > 0.", st.inv.Quantity),
			Err:    domain.ErrInvalidQuantity,
		}
	}
	return nil
}

func (s *Service) resolveCatalogItem(ctx context.Context, st *priceState) error {
	item, err := s.catalog.Resolve(ctx, st.inv.ItemType, st.inv.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return &domain.ValidationError{
				Reason: "Requested item is unavailable.",
				Err:    domain.ErrItemUnavailable,
			}
		}
		return fmt.Errorf("pricing: resolve catalog item: %w", err)
	}
	st.item = item
	return nil
}

func (s *Service) checkStock(_ context.Context, st *priceState) error {
	if st.inv.Quantity > st.item.Quantity {
		return &domain.ValidationError{
			Reason: "Requested quantity is unavailable.",
			Err:    domain.ErrInsufficientStock,
		}
	}
	return nil
}

func (s *Service) computeSubtotal(_ context.Context, st *priceState) error {
	st.inv.UnitPrice = domain.Round2(st.item.Price)
	st.inv.Subtotal = domain.Round2(st.inv.UnitPrice.Mul(decimal.NewFromInt(st.inv.Quantity)))
	if st.inv.Subtotal.GreaterThan(domain.MaxOrderTotal) {
		return &domain.ValidationError{
			Reason: "Subtotal exceeds maximum purchase price of $999.99",
			Err:    domain.ErrExceedsMaxTotal,
		}
	}
	return nil
}

// computeTax rejects unknown states and, deliberately, states configured
// with a zero rate: the rate tables treat an exact zero as "not a state",
// matching the system this one replaces.
func (s *Service) computeTax(ctx context.Context, st *priceState) error {
	rate, err := s.rates.TaxRateFor(ctx, st.inv.State)
	if err != nil && !errors.Is(err, domain.ErrRateNotFound) {
		return fmt.Errorf("pricing: tax rate lookup: %w", err)
	}
	if err != nil || rate.IsZero() {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("%s: Invalid State code.", st.inv.State),
			Err:    domain.ErrInvalidStateCode,
		}
	}
	// Tax is rounded here so every stored monetary field carries exactly
	// two decimals and the total is a plain sum of stored values.
	st.inv.Tax = domain.Round2(rate.Mul(st.inv.Subtotal))
	return nil
}

func (s *Service) resolveProcessingFee(ctx context.Context, st *priceState) error {
	fee, err := s.rates.ProcessingFeeFor(ctx, st.inv.ItemType)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			return &domain.ValidationError{
				Reason: "Requested item is unavailable.",
				Err:    domain.ErrItemUnavailable,
			}
		}
		return fmt.Errorf("pricing: processing fee lookup: %w", err)
	}
	st.inv.ProcessingFee = fee
	return nil
}

func (s *Service) applyVolumeSurcharge(_ context.Context, st *priceState) error {
	if st.inv.Quantity > domain.SurchargeQuantity {
		st.inv.ProcessingFee = st.inv.ProcessingFee.Add(domain.VolumeSurcharge)
	}
	return nil
}

func (s *Service) computeTotal(_ context.Context, st *priceState) error {
	st.inv.Total = st.inv.Subtotal.Add(st.inv.ProcessingFee).Add(st.inv.Tax)
	if st.inv.Total.GreaterThan(domain.MaxOrderTotal) {
		return &domain.ValidationError{
			Reason: "Subtotal exceeds maximum purchase price of $999.99",
			Err:    domain.ErrExceedsMaxTotal,
		}
	}
	return nil
}

// InvoiceByID returns a stored invoice or domain.ErrInvoiceNotFound.
func (s *Service) InvoiceByID(ctx context.Context, id int64) (domain.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

// InvoicesByCustomerName returns all invoices recorded under a customer name.
func (s *Service) InvoicesByCustomerName(ctx context.Context, name string) ([]domain.Invoice, error) {
	return s.invoices.FindByCustomerName(ctx, name)
}

// AllInvoices returns every stored invoice.
func (s *Service) AllInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.invoices.FindAll(ctx)
}
