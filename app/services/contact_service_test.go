package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/printcraft/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []models.ContactForm
	err  error
}

func (r *recordingSender) SendContact(_ context.Context, form models.ContactForm) (*models.ContactReceipt, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, form)
	return &models.ContactReceipt{Reference: "ref-1", Message: contactAck}, nil
}

func validContact() models.ContactForm {
	return models.ContactForm{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Bulk order",
		Message: "Do you print on hoodies?",
	}
}

func TestContactValidateFieldMessages(t *testing.T) {
	svc := NewContactService(NewValidator(), &recordingSender{})

	tests := []struct {
		name  string
		edit  func(*models.ContactForm)
		field string
		msg   string
	}{
		{"missing name", func(f *models.ContactForm) { f.Name = "" }, "name", "Name is required"},
		{"blank name", func(f *models.ContactForm) { f.Name = "   " }, "name", "Name is required"},
		{"missing email", func(f *models.ContactForm) { f.Email = "" }, "email", "Please enter a valid email"},
		{"malformed email", func(f *models.ContactForm) { f.Email = "ada@" }, "email", "Please enter a valid email"},
		{"missing subject", func(f *models.ContactForm) { f.Subject = "" }, "subject", "Subject is required"},
		{"long message", func(f *models.ContactForm) { f.Message = strings.Repeat("x", 2001) }, "message", "Message is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validContact()
			tt.edit(&form)

			_, err := svc.Validate(form)

			var fe models.FieldErrors
			require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
			assert.Len(t, fe, 1)
			assert.Equal(t, tt.msg, fe[tt.field])
		})
	}
}

func TestContactValidateReportsEveryField(t *testing.T) {
	svc := NewContactService(NewValidator(), &recordingSender{})

	_, err := svc.Validate(models.ContactForm{})

	var fe models.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 4)
	assert.Equal(t, "validation failed: email: Please enter a valid email; message: Message is required; name: Name is required; subject: Subject is required", fe.Error())
}

func TestContactSubmitTrimsAndSends(t *testing.T) {
	sender := &recordingSender{}
	svc := NewContactService(NewValidator(), sender)
	form := validContact()
	form.Name = "  Ada Lovelace  "

	receipt, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Message sent! We'll get back to you soon.", receipt.Message)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Ada Lovelace", sender.sent[0].Name)
}

func TestContactSubmitInvalidDoesNotSend(t *testing.T) {
	sender := &recordingSender{}
	svc := NewContactService(NewValidator(), sender)
	form := validContact()
	form.Email = "nope"

	_, err := svc.Submit(context.Background(), form)

	var fe models.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Empty(t, sender.sent)
}

func TestContactSubmitSenderFailure(t *testing.T) {
	svc := NewContactService(NewValidator(), &recordingSender{err: errors.New("smtp down")})

	_, err := svc.Submit(context.Background(), validContact())

	assert.ErrorContains(t, err, "failed to send contact message: smtp down")
}

func TestSimulatedContactSender(t *testing.T) {
	receipt, err := SimulatedContactSender{}.SendContact(context.Background(), validContact())
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, contactAck, receipt.Message)
}
