package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
	"github.com/hotelops/minibar-backend/internal/modules/role"
)

// Handler exposes checkout and receipt HTTP endpoints. Running a checkout
// needs the rooms view (where staff review a minibar); reading receipt
// history needs the front desk view.
type Handler struct {
	service Service
	guard   auth.Guard
}

func NewHandler(service Service, guard auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(h.guard(string(role.ViewRooms))).
		Post("/api/v1/rooms/{id}/checkout", h.checkout)
	r.Route("/api/v1/receipts", func(r chi.Router) {
		r.Use(h.guard(string(role.ViewFrontDesk)))
		r.Get("/", h.listReceipts)
		r.Get("/{id}", h.getReceipt)
		r.Get("/room/{room_id}", h.roomReceipts)
	})
}

// CheckoutRequest is the staff-entered consumption for one pass.
type CheckoutRequest struct {
	Consumed map[string]int `json:"consumed"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	receipt, err := h.service.Checkout(r.Context(), roomID, req.Consumed)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrStockUnderflow):
			code = http.StatusConflict
		case errors.Is(err, ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, ErrInvalidConsumption):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, receipt)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.ListReceipts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, receipts)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.GetReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, receipt)
}

func (h *Handler) roomReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.RoomReceipts(r.Context(), chi.URLParam(r, "room_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, receipts)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
