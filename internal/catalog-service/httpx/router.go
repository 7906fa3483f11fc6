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

	r.Get("/console", handler.ListConsoles)
	r.Get("/console/{id}", handler.GetConsole)
	r.Get("/game", handler.ListGames)
	r.Get("/game/{id}", handler.GetGame)
	r.Get("/tshirt", handler.ListTShirts)
	r.Get("/tshirt/{id}", handler.GetTShirt)

	return otelhttp.NewHandler(r, "catalog-service")
}
