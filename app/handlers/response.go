package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/printcraft/storefront/app/helpers"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/services"
	"github.com/unrolled/render"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error  string             `json:"error"`
	Code   string             `json:"code,omitempty"`
	Fields models.FieldErrors `json:"fields,omitempty"`
}

func renderError(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	_ = rnd.JSON(w, status, errorResponse{Error: message})
}

func renderFieldErrors(rnd *render.Render, w http.ResponseWriter, fields models.FieldErrors) {
	_ = rnd.JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Please correct the highlighted fields.", Fields: fields})
}

// currentSession returns the session attached by SessionMiddleware.
func currentSession(w http.ResponseWriter, r *http.Request, rnd *render.Render) (*services.Session, bool) {
	state, ok := r.Context().Value(helpers.ContextKeySession).(*services.Session)
	if !ok || state == nil {
		log.Printf("currentSession: no session in context for %s", r.URL.Path)
		renderError(rnd, w, http.StatusInternalServerError, "Session unavailable")
		return nil, false
	}
	return state, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// validateRequest runs struct validation and reports failures per json field.
func validateRequest(v *validator.Validate, req interface{}, messages map[string]map[string]string) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return helpers.FormatValidationErrors(verrs, messages)
	}
	return err
}
