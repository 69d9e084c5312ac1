package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"showroom/internal/domain/models/catalog"
	catalogSvc "showroom/internal/domain/services/catalog"
	"showroom/internal/httputil"
)

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	productService catalogSvc.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService catalogSvc.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// CreateProduct creates a product record for an already-uploaded asset
// POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req catalogSvc.CreateProductRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = userID

	product, err := h.productService.CreateProduct(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, product)
}

// ListProducts lists products in a folder, optionally filtered by a search
// term matched against name and description
// GET /api/products?folder_id={id}&search={term}
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var folderID *string
	if id := r.URL.Query().Get("folder_id"); id != "" {
		folderID = &id
	}

	products, err := h.productService.ListByFolder(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if term := strings.TrimSpace(r.URL.Query().Get("search")); term != "" {
		products = filterProducts(products, term)
	}
	if products == nil {
		products = []catalog.Product{}
	}

	httputil.RespondJSON(w, http.StatusOK, products)
}

func filterProducts(products []catalog.Product, term string) []catalog.Product {
	term = strings.ToLower(term)
	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			matched = append(matched, p)
			continue
		}
		if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// GetProduct retrieves a product by ID
// GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct partially updates a product
// PATCH /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req catalogSvc.UpdateProductRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = userID

	product, err := h.productService.UpdateProduct(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct deletes a product, its configurations and its stored asset
// DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
