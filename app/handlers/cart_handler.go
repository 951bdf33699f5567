package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/repositories"
	"github.com/unrolled/render"
)

type CartHandler struct {
	productRepo repositories.ProductRepositoryImpl
	validate    *validator.Validate
	render      *render.Render
}

func NewCartHandler(productRepo repositories.ProductRepositoryImpl, validate *validator.Validate, render *render.Render) *CartHandler {
	return &CartHandler{
		productRepo: productRepo,
		validate:    validate,
		render:      render,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

var addItemMessages = map[string]map[string]string{
	"productId": {"required": "Please choose a product"},
	"color":     {"required": "Please select a color"},
	"size":      {"required": "Please select a size"},
	"quantity":  {"required": "Quantity must be at least 1", "min": "Quantity must be at least 1"},
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, state.Cart.Snapshot())
}

func (h *CartHandler) AddItemCart(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(h.validate, req, addItemMessages); err != nil {
		var fields models.FieldErrors
		if errors.As(err, &fields) {
			renderFieldErrors(h.render, w, fields)
			return
		}
		log.Printf("CartHandler.AddItemCart: Error validating request: %v", err)
		renderError(h.render, w, http.StatusBadRequest, "Invalid request")
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), req.ProductID)
	if errors.Is(err, models.ErrProductNotFound) {
		renderError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("CartHandler.AddItemCart: Error loading product %s: %v", req.ProductID, err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	if !product.HasColor(req.Color) || !models.ValidSize(req.Size) {
		log.Printf("CartHandler.AddItemCart: %v: product %s color %q size %q", models.ErrInvalidSelection, product.ID, req.Color, req.Size)
		renderError(h.render, w, http.StatusUnprocessableEntity, "Please select an available color and size")
		return
	}

	state.Cart.AddItem(models.LineItem{
		ID:          product.ID,
		ProductName: product.Name,
		Color:       req.Color,
		Size:        req.Size,
		Quantity:    req.Quantity,
		UnitPrice:   product.Price,
		Image:       product.Image,
	})

	_ = h.render.JSON(w, http.StatusCreated, state.Cart.Snapshot())
}

// UpdateCartItem sets the quantity of every line with the given id. Zero or less removes them.
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == nil {
		renderError(h.render, w, http.StatusBadRequest, "quantity is required")
		return
	}

	state.Cart.UpdateQuantity(mux.Vars(r)["id"], *req.Quantity)
	_ = h.render.JSON(w, http.StatusOK, state.Cart.Snapshot())
}

func (h *CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	state.Cart.RemoveItem(mux.Vars(r)["id"])
	_ = h.render.JSON(w, http.StatusOK, state.Cart.Snapshot())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	state.Cart.ClearCart()
	_ = h.render.JSON(w, http.StatusOK, state.Cart.Snapshot())
}
