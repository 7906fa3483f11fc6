package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/gamestore/internal/catalog-service/app"
)

// Handler serves the read-only catalog surface the invoicing service
// consumes. Catalog writes are managed elsewhere and are not exposed here.
type Handler struct {
	store *app.Store
}

func NewHandler(store *app.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetConsole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	console, ok := h.store.ConsoleByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "console_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, console)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	game, ok := h.store.GameByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *Handler) GetTShirt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	tshirt, ok := h.store.TShirtByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "tshirt_not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, tshirt)
}

func (h *Handler) ListConsoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Consoles())
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Games())
}

func (h *Handler) ListTShirts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.TShirts())
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}
