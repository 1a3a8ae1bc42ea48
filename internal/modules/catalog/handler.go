package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
	"github.com/hotelops/minibar-backend/internal/modules/role"
)

const maxImageSize = 5 << 20 // 5MB

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service   Service
	uploadDir string
	guard     auth.Guard
}

func NewHandler(service Service, uploadDir string, guard auth.Guard) *Handler {
	return &Handler{service: service, uploadDir: uploadDir, guard: guard}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.With(h.guard(string(role.ViewManagement))).Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.With(h.guard(string(role.ViewManagement))).Put("/{id}", h.updateProduct)
		r.With(h.guard(string(role.ViewManagement))).Delete("/{id}", h.deleteProduct)
		r.With(h.guard(string(role.ViewManagement))).Post("/{id}/image", h.uploadImage)
		r.With(h.guard(string(role.ViewManagement))).Delete("/{id}/image", h.deleteImage)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must not") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must not") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "no image file provided"})
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		respond(w, http.StatusBadRequest, map[string]string{"error": "only image files are allowed"})
		return
	}

	name := fmt.Sprintf("product-%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	imageURL := "/uploads/" + name
	previous, err := h.service.SetImage(r.Context(), id, imageURL)
	if err != nil {
		os.Remove(filepath.Join(h.uploadDir, name))
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	if previous != "" {
		os.Remove(filepath.Join(h.uploadDir, filepath.Base(previous)))
	}
	respond(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.ClearImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	os.Remove(filepath.Join(h.uploadDir, filepath.Base(removed)))
	respond(w, http.StatusOK, map[string]string{"status": "product image deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
