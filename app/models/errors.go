package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidSelection = errors.New("invalid color or size selection")
	ErrInvalidIntent    = errors.New("unknown order intent")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// UploadError is a recoverable design upload rejection. Message is shown to the user as is.
type UploadError struct {
	Code    string
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

var (
	ErrUnsupportedType = &UploadError{Code: "unsupported_type", Message: "Please upload a PNG, JPG, or SVG file."}
	ErrTooLarge        = &UploadError{Code: "too_large", Message: "File size must be under 10MB."}
)

// FieldErrors maps a form field to its first validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
