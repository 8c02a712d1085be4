package handlers

import (
	"net/http"

	"club-platform/services"
	"club-platform/store"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	tickets store.TicketStore
	service *services.TicketService
}

func NewTicketHandler(tickets store.TicketStore, service *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets, service: service}
}

// Get - GET /api/v1/tickets/{ticket_id}
func (h *TicketHandler) Get(e *core.RequestEvent) error {
	ticketID := e.Request.PathValue("ticket_id")
	if ticketID == "" {
		return apis.NewBadRequestError("ticket_id is required", nil)
	}

	ticket, err := h.tickets.FindByTicketID(e.Request.Context(), ticketID)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// CheckIn - POST /api/v1/tickets/{ticket_id}/check-in
//
// Gate scanning endpoint. Requires an authenticated admin; a used or
// cancelled ticket answers 409.
func (h *TicketHandler) CheckIn(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	ticketID := e.Request.PathValue("ticket_id")
	if ticketID == "" {
		return apis.NewBadRequestError("ticket_id is required", nil)
	}

	ticket, err := h.service.CheckIn(e.Request.Context(), ticketID)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// Registrations - GET /api/v1/events/{event_id}/registrations
func (h *TicketHandler) Registrations(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("event_id")
	if eventID == "" {
		return apis.NewBadRequestError("event_id is required", nil)
	}

	count, err := h.tickets.CountForEvent(e.Request.Context(), eventID)
	if err != nil {
		return toAPIError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"event_id":      eventID,
		"registrations": count,
	})
}
