package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/services"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	render      *render.Render
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, render: render}
}

// Checkout places the session cart and empties it. The cart is left intact when submission fails.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	receipt, err := h.checkoutSvc.Checkout(r.Context(), state.Cart)
	if errors.Is(err, models.ErrEmptyCart) {
		renderError(h.render, w, http.StatusBadRequest, "Your cart is empty")
		return
	}
	if err != nil {
		log.Printf("CheckoutHandler.Checkout: Error placing order for session %s: %v", state.ID, err)
		renderError(h.render, w, http.StatusBadGateway, "We could not place your order. Please try again.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, receipt)
}
