package httpx

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
)

type PurchaseRequestDTO struct {
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zipcode  string `json:"zipcode"`
	ItemType string `json:"item_type"`
	ItemID   int64  `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// validate checks request shape before the pricing pipeline runs: required
// fields, the 2-letter state code, and the quantity range. Business rules
// (catalog, stock, money) belong to the pipeline, not here.
func (r PurchaseRequestDTO) validate() error {
	switch {
	case r.Name == "":
		return errors.New("Name is required, please.")
	case r.Street == "":
		return errors.New("Street name is required, please.")
	case r.City == "":
		return errors.New("City name is required, please.")
	case len(r.State) != 2:
		return errors.New("2-Letter State Code is invalid.")
	case r.Zipcode == "":
		return errors.New("Zipcode is required, please.")
	case r.ItemType == "":
		return errors.New("Item type is required, please.")
	case r.Quantity < 1:
		return errors.New("Minimum quantity is 1.")
	case r.Quantity > domain.MaxQuantity:
		return errors.New("Maximum quantity is 50,000.")
	}
	return nil
}

func (r PurchaseRequestDTO) toDomain() domain.PurchaseRequest {
	return domain.PurchaseRequest{
		Name:     r.Name,
		Street:   r.Street,
		City:     r.City,
		State:    r.State,
		Zipcode:  r.Zipcode,
		ItemType: domain.ItemType(r.ItemType),
		ItemID:   r.ItemID,
		Quantity: r.Quantity,
	}
}

type InvoiceResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Street        string          `json:"street"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Zipcode       string          `json:"zipcode"`
	ItemType      string          `json:"item_type"`
	ItemID        int64           `json:"item_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int64           `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     string          `json:"created_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapInvoiceToResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		Name:          inv.Name,
		Street:        inv.Street,
		City:          inv.City,
		State:         inv.State,
		Zipcode:       inv.Zipcode,
		ItemType:      string(inv.ItemType),
		ItemID:        inv.ItemID,
		UnitPrice:     inv.UnitPrice,
		Quantity:      inv.Quantity,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		ProcessingFee: inv.ProcessingFee,
		Total:         inv.Total,
		CreatedAt:     inv.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func mapInvoicesToResponse(invs []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		out[i] = mapInvoiceToResponse(inv)
	}
	return out
}
