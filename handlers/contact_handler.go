package handlers

import (
	"log/slog"
	"net/http"

	"club-platform/models"
	"club-platform/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type ContactHandler struct {
	app  *pocketbase.PocketBase
	mail *services.EmailService
}

func NewContactHandler(app *pocketbase.PocketBase, mail *services.EmailService) *ContactHandler {
	return &ContactHandler{app: app, mail: mail}
}

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in contactInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Subject, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.Message, validation.Required, validation.Length(5, 5000)),
	)
}

// Submit - POST /api/v1/contact
//
// Persists the submission, then forwards it to the club inbox. The email is
// best-effort; the stored record is the source of truth.
func (h *ContactHandler) Submit(e *core.RequestEvent) error {
	var in contactInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("contact_messages")
	if err != nil {
		return toAPIError(err)
	}

	record := core.NewRecord(collection)
	record.Set("name", in.Name)
	record.Set("email", in.Email)
	record.Set("subject", in.Subject)
	record.Set("message", in.Message)
	if err := h.app.SaveWithContext(e.Request.Context(), record); err != nil {
		return toAPIError(err)
	}

	msg := &models.ContactMessage{
		ID:      record.Id,
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := h.mail.SendContactNotification(e.Request.Context(), msg); err != nil {
		slog.Warn("contact notification email failed", "error", err)
	}

	return e.JSON(http.StatusCreated, map[string]string{"id": record.Id, "status": "received"})
}
