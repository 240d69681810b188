package api

import (
	"net/http"
	"strings"
)

// Category Handlers

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.catalog.CreateCategory(r.Context(), req.Name, req.Image, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Category created", map[string]any{"category": c})
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"categories": categories})
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/category/")

	var req struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.catalog.UpdateCategory(r.Context(), id, req.Name, req.Image, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Category updated", map[string]any{"category": c})
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/category/")
	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Category deleted", nil)
}
