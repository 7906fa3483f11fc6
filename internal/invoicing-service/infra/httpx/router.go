package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/gamestore/internal/pkg/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/invoice", handler.PurchaseItem)
	r.Get("/invoice", handler.FindAllInvoices)
	r.Get("/invoice/{id}", handler.FindInvoice)
	r.Get("/invoice/cname/{name}", handler.FindInvoicesByCustomerName)

	return otelhttp.NewHandler(r, "invoicing-service")
}
