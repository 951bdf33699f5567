package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/services"
	"github.com/unrolled/render"
)

type ContactHandler struct {
	contactSvc *services.ContactService
	render     *render.Render
}

func NewContactHandler(contactSvc *services.ContactService, render *render.Render) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc, render: render}
}

func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var form models.ContactForm
	if err := decodeJSON(w, r, &form); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.contactSvc.Submit(r.Context(), form)
	var fields models.FieldErrors
	if errors.As(err, &fields) {
		renderFieldErrors(h.render, w, fields)
		return
	}
	if err != nil {
		log.Printf("ContactHandler.SubmitContact: Error sending message: %v", err)
		renderError(h.render, w, http.StatusBadGateway, "Your message could not be sent. Please try again.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, receipt)
}
