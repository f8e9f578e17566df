package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	Service *Service
}

// Products lists the catalog.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	entries, err := h.Service.List(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "list products", nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

// ProductDetail returns a single product by name.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	entry, err := h.Service.Product(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "get product", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entry})
}
