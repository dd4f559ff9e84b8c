package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/catalog"
	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

type ProductHandler struct {
	catalog catalog.Client
	timeout time.Duration
}

func NewProductHandler(catalogClient catalog.Client, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalogClient,
		timeout: timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(ctx, id)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := domain.Category(chi.URLParam(r, "category"))
	products, err := h.catalog.ListByCategory(ctx, category)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}
