package helpers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/printcraft/storefront/app/models"
)

type contextKey string

const (
	ContextKeySessionID contextKey = "sessionID"
	ContextKeySession   contextKey = "sessionState"
	CartCountKey        contextKey = "cart_count"
)

// GetBaseData fills the fields every page response carries.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["title"]; !exists {
		pageSpecificData["title"] = "PrintCraft"
	}

	pageSpecificData["cartCount"] = 0
	if cartCountVal := r.Context().Value(CartCountKey); cartCountVal != nil {
		if count, ok := cartCountVal.(int); ok {
			pageSpecificData["cartCount"] = count
		} else {
			log.Printf("GetBaseData: CartCount in context is not of type int. Value: %+v", cartCountVal)
		}
	}

	if status := r.URL.Query().Get("status"); status != "" {
		pageSpecificData["messageStatus"] = status
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		pageSpecificData["message"] = msg
	}

	return pageSpecificData
}

// FormatValidationErrors keeps the first error per field, preferring messages[field][tag].
func FormatValidationErrors(errs validator.ValidationErrors, messages map[string]map[string]string) models.FieldErrors {
	errorMessages := make(models.FieldErrors)
	for _, err := range errs {
		field := err.Field()
		if _, seen := errorMessages[field]; seen {
			continue
		}
		if msg, ok := messages[field][err.Tag()]; ok {
			errorMessages[field] = msg
			continue
		}
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of %s", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation", field, err.Tag())
		}
	}
	return errorMessages
}
