package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/domain"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
	"github.com/jcmexdev/gamestore/internal/pkg/middlewares"
)

// Handler serves the invoice REST surface. Orders are final: there is no
// update or delete route, and the service behind the handler exposes no way
// to add one.
type Handler struct {
	service ports.InvoiceService
}

func NewHandler(service ports.InvoiceService) *Handler {
	return &Handler{service: service}
}

// PurchaseItem prices a purchase request and, when every rule passes,
// persists and returns the created invoice.
func (h *Handler) PurchaseItem(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "pricing purchase request",
		"request_id", middlewares.GetRequestID(r.Context()),
		"item_type", req.ItemType,
		"item_id", req.ItemID,
		"quantity", req.Quantity,
	)

	inv, err := h.service.Purchase(r.Context(), req.toDomain())
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "purchase failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusCreated, mapInvoiceToResponse(inv))
}

// FindInvoice returns a single invoice by id.
func (h *Handler) FindInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_invoice_id", "")
		return
	}

	inv, err := h.service.InvoiceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "invoice_not_found",
				"Invoice could not be retrieved for id "+strconv.FormatInt(id, 10))
			return
		}
		slog.ErrorContext(r.Context(), "invoice lookup failed", "invoice_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, mapInvoiceToResponse(inv))
}

// FindAllInvoices lists every invoice. An empty store answers 404; callers
// depend on that convention.
func (h *Handler) FindAllInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := h.service.AllInvoices(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "invoice listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if len(invs) == 0 {
		writeError(w, http.StatusNotFound, "no_invoices", "No invoices were found.")
		return
	}

	writeJSON(w, http.StatusOK, mapInvoicesToResponse(invs))
}

// FindInvoicesByCustomerName lists invoices recorded under a customer name,
// with the same 404-when-empty convention as the full listing.
func (h *Handler) FindInvoicesByCustomerName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	invs, err := h.service.InvoicesByCustomerName(r.Context(), name)
	if err != nil {
		slog.ErrorContext(r.Context(), "invoice listing failed", "customer", name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if len(invs) == 0 {
		writeError(w, http.StatusNotFound, "no_invoices", "No invoices were found for: "+name)
		return
	}

	writeJSON(w, http.StatusOK, mapInvoicesToResponse(invs))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
