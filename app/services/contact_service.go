package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/printcraft/storefront/app/helpers"
	"github.com/printcraft/storefront/app/models"
)

var contactMessages = map[string]map[string]string{
	"name":    {"required": "Name is required", "max": "Name is too long"},
	"email":   {"required": "Please enter a valid email", "email": "Please enter a valid email", "max": "Email is too long"},
	"subject": {"required": "Subject is required", "max": "Subject is too long"},
	"message": {"required": "Message is required", "max": "Message is too long"},
}

type ContactService struct {
	validate *validator.Validate
	sender   ContactSender
}

func NewContactService(validate *validator.Validate, sender ContactSender) *ContactService {
	return &ContactService{validate: validate, sender: sender}
}

// NewValidator reports field names by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate trims the form and returns it with the first failure per field, if any.
func (s *ContactService) Validate(form models.ContactForm) (models.ContactForm, error) {
	form = models.ContactForm{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
	}

	err := s.validate.Struct(form)
	if err == nil {
		return form, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return form, fmt.Errorf("validate contact form: %w", err)
	}
	return form, helpers.FormatValidationErrors(verrs, contactMessages)
}

func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) (*models.ContactReceipt, error) {
	form, err := s.Validate(form)
	if err != nil {
		return nil, err
	}

	receipt, err := s.sender.SendContact(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to send contact message: %w", err)
	}
	log.Printf("ContactService.Submit: message %s from %s acknowledged", receipt.Reference, form.Email)
	return receipt, nil
}
