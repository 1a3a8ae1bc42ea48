package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
	"github.com/hotelops/minibar-backend/internal/modules/role"
)

// Handler exposes reporting endpoints, management-gated.
type Handler struct {
	service Service
	guard   auth.Guard
}

func NewHandler(service Service, guard auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/stats", func(r chi.Router) {
		r.Use(h.guard(string(role.ViewManagement)))
		r.Get("/sales", h.totalSales)
		r.Get("/buildings", h.buildingRevenue)
	})
}

func (h *Handler) totalSales(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.TotalSales(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, report)
}

func (h *Handler) buildingRevenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.BuildingRevenue(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, report)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
