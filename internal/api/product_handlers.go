package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/toyshub/internal/api/middleware"
	"github.com/example/toyshub/internal/domain/catalog"
)

const maxUploadBytes = 32 << 20 // 32MB

// Product Handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondMessage(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	price, err := parseDecimalField(r.FormValue("price"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid price")
		return
	}
	originalPrice, err := parseDecimalField(r.FormValue("originalPrice"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid originalPrice")
		return
	}
	stock, err := parseIntField(r.FormValue("stock"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid stock")
		return
	}

	imageURLs, err := h.uploadImages(r)
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.catalog.CreateProduct(r.Context(), catalog.CreateProductInput{
		Name:           r.FormValue("name"),
		SKU:            r.FormValue("sku"),
		Price:          price,
		OriginalPrice:  originalPrice,
		Stock:          stock,
		CategoryID:     r.FormValue("categoryId"),
		ImageURLs:      imageURLs,
		Variants:       catalog.ParseVariantsField(r.FormValue("variants")),
		Specifications: catalog.ParseSpecsField(r.FormValue("specifications")),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Product created", map[string]any{"product": view})
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	views, total, err := h.catalog.ListProducts(r.Context(), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{
		"products": views,
		"total":    total,
		"page":     page,
		"pages":    pages,
	})
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/product/")
	view, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", map[string]any{"product": view})
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/product/")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondMessage(w, http.StatusBadRequest, "expected multipart form")
		return
	}

	var in catalog.UpdateProductInput
	if v := r.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := r.FormValue("sku"); v != "" {
		in.SKU = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid price")
			return
		}
		in.Price = &price
	}
	if v := r.FormValue("originalPrice"); v != "" {
		originalPrice, err := decimal.NewFromString(v)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid originalPrice")
			return
		}
		in.OriginalPrice = &originalPrice
	}
	if v := r.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid stock")
			return
		}
		in.Stock = &stock
	}
	if v := r.FormValue("categoryId"); v != "" {
		in.CategoryID = &v
	}
	if v := r.FormValue("variants"); v != "" {
		in.Variants = catalog.ParseVariantsField(v)
	}
	if v := r.FormValue("specifications"); v != "" {
		in.Specifications = catalog.ParseSpecsField(v)
		in.HasSpecs = true
	}

	imageURLs, err := h.uploadImages(r)
	if err != nil {
		respondError(w, err)
		return
	}
	in.NewImageURLs = imageURLs

	view, err := h.catalog.UpdateProduct(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Product updated", map[string]any{"product": view})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/product/")
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Product deleted", nil)
}

func (h *Handlers) AddReview(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/product/"), "/review")

	var req struct {
		Name    string   `json:"name"`
		Rating  float64  `json:"rating"`
		Comment string   `json:"comment"`
		Email   string   `json:"email"`
		Images  []string `json:"images"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reviews, err := h.catalog.AddReview(r.Context(), productID, catalog.ReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
		Email:   req.Email,
		Images:  req.Images,
		UserID:  middleware.UserID(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "Review added", map[string]any{"reviews": reviews})
}

// uploadImages pushes every "images" file to the asset service and returns
// the public URLs in form order.
func (h *Handlers) uploadImages(r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File["images"]
	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		url, err := h.uploader.Upload(r.Context(), header.Filename, file)
		file.Close()
		if err != nil {
			log.Printf("[API] Image upload failed for %s: %v", header.Filename, err)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func parseDecimalField(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func parseIntField(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
