package room

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
	"github.com/hotelops/minibar-backend/internal/modules/role"
)

// Handler exposes room HTTP endpoints. Reads need the rooms view, room and
// building mutations the management view.
type Handler struct {
	service Service
	guard   auth.Guard
}

func NewHandler(service Service, guard auth.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/rooms", func(r chi.Router) {
		r.With(h.guard(string(role.ViewRooms))).Get("/", h.listRooms)
		r.With(h.guard(string(role.ViewRooms))).Get("/{id}", h.getRoom)
		r.With(h.guard(string(role.ViewManagement))).Post("/", h.createRoom)
		r.With(h.guard(string(role.ViewManagement))).Put("/{id}", h.updateRoom)
		r.With(h.guard(string(role.ViewManagement))).Delete("/{id}", h.deleteRoom)
	})
	r.With(h.guard(string(role.ViewManagement))).
		Delete("/api/v1/buildings/{building}", h.deleteBuilding)
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rooms)
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	respond(w, http.StatusOK, room)
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	room, err := h.service.CreateRoom(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "positive") {
			code = http.StatusBadRequest
		} else if strings.Contains(err.Error(), "duplicate key") {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, room)
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "positive") {
			code = http.StatusBadRequest
		} else if strings.Contains(err.Error(), "duplicate key") {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, room)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "room deleted"})
}

func (h *Handler) deleteBuilding(w http.ResponseWriter, r *http.Request) {
	building, err := strconv.Atoi(chi.URLParam(r, "building"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid building number"})
		return
	}
	n, err := h.service.DeleteBuilding(r.Context(), building)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"status": fmt.Sprintf("building deleted, %d room(s) removed", n),
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
