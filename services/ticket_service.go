package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"club-platform/internal/status"
	"club-platform/models"
	"club-platform/monitoring"
	"club-platform/store"
	"club-platform/utils"
)

// TicketService issues admission credentials once a payment settles. Issuance
// is a three step pipeline (record, QR, email) with compensating deletes so a
// half-issued ticket never survives a later failure.
type TicketService struct {
	tickets store.TicketStore
	qr      QRProvider
	mail    TicketMailer
}

func NewTicketService(tickets store.TicketStore, qr QRProvider, mail TicketMailer) *TicketService {
	return &TicketService{tickets: tickets, qr: qr, mail: mail}
}

// Issue creates exactly one ticket for the payer and event. If the payer
// already holds one (same email or member id), the existing ticket is
// returned unchanged.
func (s *TicketService) Issue(ctx context.Context, payer models.Payer, eventID, eventName string) (*models.Ticket, error) {
	if existing, err := s.tickets.FindForPayer(ctx, eventID, payer.Email, payer.LpuID); err == nil {
		return existing, nil
	}

	code, err := utils.GenerateCode(8)
	if err != nil {
		return nil, fmt.Errorf("ticket.Issue: generate id: %w", err)
	}

	ticket := &models.Ticket{
		TicketID:  "TKT-" + code,
		Payer:     payer,
		EventID:   eventID,
		EventName: eventName,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, status.ErrConflict) {
			// A concurrent issuance won the unique index race. Return the
			// winner's ticket so both callers see the same credential.
			winner, findErr := s.tickets.FindForPayer(ctx, eventID, payer.Email, payer.LpuID)
			if findErr != nil {
				return nil, fmt.Errorf("ticket.Issue: conflict but no winner found: %w", findErr)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("ticket.Issue: %w", err)
	}

	qr, err := s.qr.Generate(ctx, ticket)
	if err != nil {
		s.rollback(ctx, ticket, "qr")
		return nil, fmt.Errorf("ticket.Issue: qr: %w: %v", status.ErrUpstream, err)
	}
	ticket.QR = qr

	if err := s.tickets.SetQR(ctx, ticket.ID, qr); err != nil {
		s.rollback(ctx, ticket, "qr")
		return nil, fmt.Errorf("ticket.Issue: persist qr: %w", err)
	}

	if err := s.mail.SendTicket(ctx, ticket); err != nil {
		s.rollback(ctx, ticket, "email")
		return nil, fmt.Errorf("ticket.Issue: email: %w: %v", status.ErrUpstream, err)
	}

	monitoring.TrackTicketIssued(eventID)
	return ticket, nil
}

// CheckIn marks the ticket used at the venue entrance.
func (s *TicketService) CheckIn(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("ticket.CheckIn: %w", err)
	}
	if err := s.tickets.MarkUsed(ctx, ticket.ID); err != nil {
		return nil, fmt.Errorf("ticket.CheckIn: %w", err)
	}
	ticket.IsUsed = true
	return ticket, nil
}

// rollback deletes the ticket record and any uploaded QR object. Errors here
// are logged, not returned; the original failure is what the caller sees.
func (s *TicketService) rollback(ctx context.Context, ticket *models.Ticket, stage string) {
	monitoring.TrackTicketRollback(stage)

	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		slog.Error("ticket rollback: delete record failed",
			"ticket_id", ticket.TicketID, "stage", stage, "error", err)
	}
	if ticket.QR.ObjectID != "" {
		if err := s.qr.Destroy(ctx, ticket.QR.ObjectID); err != nil {
			slog.Error("ticket rollback: delete qr object failed",
				"ticket_id", ticket.TicketID, "stage", stage, "error", err)
		}
	}
}
