package services

import (
	"context"
	"fmt"
	"html"
	"net/mail"

	"club-platform/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
)

// TicketMailer delivers the ticket confirmation email.
type TicketMailer interface {
	SendTicket(ctx context.Context, t *models.Ticket) error
}

// EmailService sends platform email through the app's SMTP mailer. The QR
// image is linked, not attached.
type EmailService struct {
	app          core.App
	fromName     string
	fromAddress  string
	contactInbox string
}

func NewEmailService(app core.App, fromName, fromAddress, contactInbox string) *EmailService {
	return &EmailService{
		app:          app,
		fromName:     fromName,
		fromAddress:  fromAddress,
		contactInbox: contactInbox,
	}
}

func (s *EmailService) SendTicket(_ context.Context, t *models.Ticket) error {
	message := &mailer.Message{
		From: mail.Address{
			Name:    s.fromName,
			Address: s.fromAddress,
		},
		To:      []mail.Address{{Name: t.FullName, Address: t.Email}},
		Subject: fmt.Sprintf("Your ticket for %s", t.EventName),
		HTML:    ticketHTML(t),
	}

	if err := s.app.NewMailClient().Send(message); err != nil {
		return fmt.Errorf("email.SendTicket: %w", err)
	}
	return nil
}

// SendContactNotification forwards a contact form submission to the club
// inbox. Callers treat failures as best-effort.
func (s *EmailService) SendContactNotification(_ context.Context, m *models.ContactMessage) error {
	if s.contactInbox == "" {
		return nil
	}

	message := &mailer.Message{
		From: mail.Address{
			Name:    s.fromName,
			Address: s.fromAddress,
		},
		To:      []mail.Address{{Address: s.contactInbox}},
		Subject: fmt.Sprintf("Contact form: %s", m.Subject),
		HTML: fmt.Sprintf(
			"<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
			html.EscapeString(m.Name),
			html.EscapeString(m.Email),
			html.EscapeString(m.Message),
		),
	}

	if err := s.app.NewMailClient().Send(message); err != nil {
		return fmt.Errorf("email.SendContactNotification: %w", err)
	}
	return nil
}

func ticketHTML(t *models.Ticket) string {
	return fmt.Sprintf(`
<div style="font-family:sans-serif;max-width:520px;margin:0 auto">
  <h2>You're in, %s!</h2>
  <p>Your ticket for <strong>%s</strong> is confirmed.</p>
  <p>Ticket ID: <strong>%s</strong></p>
  <p><img src="%s" alt="Ticket QR" width="260" height="260"/></p>
  <p>Show this QR at the entrance. Do not share it.</p>
</div>`,
		html.EscapeString(t.FullName),
		html.EscapeString(t.EventName),
		html.EscapeString(t.TicketID),
		t.QR.URL,
	)
}
