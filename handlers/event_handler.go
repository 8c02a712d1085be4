package handlers

import (
	"net/http"
	"time"

	"club-platform/models"
	"club-platform/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

type EventHandler struct {
	events store.EventStore
}

func NewEventHandler(events store.EventStore) *EventHandler {
	return &EventHandler{events: events}
}

type createEventInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Venue       string          `json:"venue"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
}

func (in createEventInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&in.StartTime, validation.Required),
		validation.Field(&in.Status, validation.In("", "draft", "published")),
	)
}

// List - GET /api/v1/events
func (h *EventHandler) List(e *core.RequestEvent) error {
	events, err := h.events.List(e.Request.Context(), 50)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, events)
}

// Get - GET /api/v1/events/{event_id}
func (h *EventHandler) Get(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	event, err := h.events.FindByID(e.Request.Context(), eventID)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, event)
}

// Create - POST /api/v1/events (admin)
func (h *EventHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	var in createEventInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return apis.NewBadRequestError(err.Error(), nil)
	}
	if in.Status == "" {
		in.Status = "draft"
	}

	event := &models.Event{
		Name:        in.Name,
		Description: in.Description,
		Venue:       in.Venue,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Price:       in.Price,
		Status:      in.Status,
	}
	if err := h.events.Create(e.Request.Context(), event); err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusCreated, event)
}
