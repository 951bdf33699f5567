package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printcraft/storefront/app/models"
)

// ContactSender delivers a validated contact message.
type ContactSender interface {
	SendContact(ctx context.Context, form models.ContactForm) (*models.ContactReceipt, error)
}

const contactAck = "Message sent! We'll get back to you soon."

// SimulatedContactSender acknowledges after Delay without delivering anything.
type SimulatedContactSender struct {
	Delay time.Duration
}

func (s SimulatedContactSender) SendContact(ctx context.Context, form models.ContactForm) (*models.ContactReceipt, error) {
	if err := sleepCtx(ctx, s.Delay); err != nil {
		return nil, err
	}
	return &models.ContactReceipt{Reference: uuid.NewString(), Message: contactAck}, nil
}

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

type Mailer struct {
	config   Config
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config:   cfg,
		sendMail: smtp.SendMail,
	}
}

func (m *Mailer) SendContact(ctx context.Context, form models.ContactForm) (*models.ContactReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subject := "[Contact] " + form.Subject
	if err := m.SendHTMLEmail(m.config.To, subject, BuildContactEmailBody(form), form.Email); err != nil {
		return nil, err
	}
	return &models.ContactReceipt{Reference: uuid.NewString(), Message: contactAck}, nil
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody, replyTo string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      sanitizeHeader(subject),
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}
	if replyTo != "" {
		headers["Reply-To"] = sanitizeHeader(replyTo)
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, headers[k])
	}
	msg.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := m.sendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("Mailer.SendHTMLEmail: failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

func BuildContactEmailBody(form models.ContactForm) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>New contact message</title>
        </head>
        <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
            <h2>%s</h2>
            <p><strong>From:</strong> %s &lt;%s&gt;</p>
            <p style="white-space: pre-wrap;">%s</p>
        </body>
        </html>
    `, html.EscapeString(form.Subject), html.EscapeString(form.Name), html.EscapeString(form.Email), html.EscapeString(form.Message))
}
