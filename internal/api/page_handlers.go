package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Page Handlers

func (h *Handlers) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/page/")
	p, err := h.pages.Get(r.Context(), slug)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"page": p})
}

func (h *Handlers) SavePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/page/")

	var req struct {
		Title string          `json:"title"`
		Body  json.RawMessage `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.pages.Save(r.Context(), slug, req.Title, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Page saved", map[string]any{"page": p})
}
