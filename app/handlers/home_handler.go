package handlers

import (
	"log"
	"net/http"

	"github.com/printcraft/storefront/app/helpers"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/unrolled/render"
)

const featuredLimit = 4

type HomeHandler struct {
	repo   repositories.ProductRepositoryImpl
	render *render.Render
}

func NewHomeHandler(repo repositories.ProductRepositoryImpl, r *render.Render) *HomeHandler {
	return &HomeHandler{repo: repo, render: r}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.repo.GetFeaturedProducts(r.Context(), featuredLimit)
	if err != nil {
		log.Printf("HomeHandler.Home: Error loading featured products: %v", err)
		featured = []models.Product{}
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"featuredProducts": featured,
		"shirtColors":      models.ShirtColors,
		"sizes":            models.Sizes,
	})
	_ = h.render.JSON(w, http.StatusOK, datas)
}
