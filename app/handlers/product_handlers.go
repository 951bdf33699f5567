package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	repo   repositories.ProductRepositoryImpl
	render *render.Render
}

func NewProductHandler(p repositories.ProductRepositoryImpl, r *render.Render) *ProductHandler {
	return &ProductHandler{p, r}
}

type productListResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

// Products lists the catalog narrowed by the type, color and maxPrice query parameters.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ProductFilter{
		Type:  strings.TrimSpace(query.Get("type")),
		Color: strings.TrimSpace(query.Get("color")),
	}

	if raw := strings.TrimSpace(query.Get("maxPrice")); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			renderError(h.render, w, http.StatusBadRequest, "maxPrice must be a non-negative number")
			return
		}
		filter.MaxPrice = &maxPrice
	}

	products, err := h.repo.Filter(r.Context(), filter)
	if err != nil {
		log.Printf("ProductHandler.Products: Error filtering products: %v", err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, productListResponse{Products: products, Count: len(products)})
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		renderError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("ProductHandler.ProductDetail: Error loading product %s: %v", id, err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}
