package services

import (
	"context"
	"errors"
	"testing"

	"club-platform/internal/status"
	"club-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPayer() models.Payer {
	return models.Payer{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		LpuID:    "12100456",
		Course:   "B.Tech CSE",
	}
}

func TestIssueReturnsExistingTicket(t *testing.T) {
	tickets := &MockTicketStore{}
	qr := &MockQRProvider{}
	mail := &MockMailer{}
	service := NewTicketService(tickets, qr, mail)

	existing := &models.Ticket{ID: "rec1", TicketID: "TKT-AAAA"}
	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").Return(existing, nil)

	ticket, err := service.Issue(context.Background(), testPayer(), "ev1", "Tech Fest")

	require.NoError(t, err)
	assert.Equal(t, "TKT-AAAA", ticket.TicketID)
	tickets.AssertNotCalled(t, "Create")
	qr.AssertNotCalled(t, "Generate")
	mail.AssertNotCalled(t, "SendTicket")
}

func TestIssueHappyPath(t *testing.T) {
	tickets := &MockTicketStore{}
	qr := &MockQRProvider{}
	mail := &MockMailer{}
	service := NewTicketService(tickets, qr, mail)

	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").
		Return(nil, status.ErrNotFound)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Ticket).ID = "rec1"
		}).
		Return(nil)
	qr.On("Generate", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Return(models.QRCredential{URL: "https://cdn.example.com/qr/x.png", ObjectID: "qr/x.png"}, nil)
	tickets.On("SetQR", mock.Anything, "rec1", mock.AnythingOfType("models.QRCredential")).Return(nil)
	mail.On("SendTicket", mock.Anything, mock.AnythingOfType("*models.Ticket")).Return(nil)

	ticket, err := service.Issue(context.Background(), testPayer(), "ev1", "Tech Fest")

	require.NoError(t, err)
	assert.Contains(t, ticket.TicketID, "TKT-")
	assert.Equal(t, "qr/x.png", ticket.QR.ObjectID)
	tickets.AssertExpectations(t)
	qr.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestIssueQRFailureRollsBackTicket(t *testing.T) {
	tickets := &MockTicketStore{}
	qr := &MockQRProvider{}
	mail := &MockMailer{}
	service := NewTicketService(tickets, qr, mail)

	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").
		Return(nil, status.ErrNotFound)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Ticket).ID = "rec1"
		}).
		Return(nil)
	qr.On("Generate", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Return(models.QRCredential{}, errors.New("bucket unreachable"))
	tickets.On("Delete", mock.Anything, "rec1").Return(nil)

	_, err := service.Issue(context.Background(), testPayer(), "ev1", "Tech Fest")

	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrUpstream)
	tickets.AssertCalled(t, "Delete", mock.Anything, "rec1")
	mail.AssertNotCalled(t, "SendTicket")
	// No QR object was ever uploaded, so nothing to destroy.
	qr.AssertNotCalled(t, "Destroy")
}

func TestIssueEmailFailureRollsBackTicketAndQR(t *testing.T) {
	tickets := &MockTicketStore{}
	qr := &MockQRProvider{}
	mail := &MockMailer{}
	service := NewTicketService(tickets, qr, mail)

	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").
		Return(nil, status.ErrNotFound)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Ticket).ID = "rec1"
		}).
		Return(nil)
	qr.On("Generate", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Return(models.QRCredential{URL: "https://cdn.example.com/qr/x.png", ObjectID: "qr/x.png"}, nil)
	tickets.On("SetQR", mock.Anything, "rec1", mock.AnythingOfType("models.QRCredential")).Return(nil)
	mail.On("SendTicket", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Return(errors.New("smtp refused"))
	tickets.On("Delete", mock.Anything, "rec1").Return(nil)
	qr.On("Destroy", mock.Anything, "qr/x.png").Return(nil)

	_, err := service.Issue(context.Background(), testPayer(), "ev1", "Tech Fest")

	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrUpstream)
	tickets.AssertCalled(t, "Delete", mock.Anything, "rec1")
	qr.AssertCalled(t, "Destroy", mock.Anything, "qr/x.png")
}

func TestIssueUniqueRaceReturnsWinner(t *testing.T) {
	tickets := &MockTicketStore{}
	qr := &MockQRProvider{}
	mail := &MockMailer{}
	service := NewTicketService(tickets, qr, mail)

	winner := &models.Ticket{ID: "rec-winner", TicketID: "TKT-WINNER"}

	// First lookup misses, the insert then loses the unique index race and the
	// second lookup finds the winner's row.
	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").
		Return(nil, status.ErrNotFound).Once()
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*models.Ticket")).
		Return(status.ErrConflict)
	tickets.On("FindForPayer", mock.Anything, "ev1", "asha@example.com", "12100456").
		Return(winner, nil).Once()

	ticket, err := service.Issue(context.Background(), testPayer(), "ev1", "Tech Fest")

	require.NoError(t, err)
	assert.Equal(t, "TKT-WINNER", ticket.TicketID)
	qr.AssertNotCalled(t, "Generate")
	mail.AssertNotCalled(t, "SendTicket")
}

func TestCheckInRejectsUsedTicket(t *testing.T) {
	tickets := &MockTicketStore{}
	service := NewTicketService(tickets, &MockQRProvider{}, &MockMailer{})

	ticket := &models.Ticket{ID: "rec1", TicketID: "TKT-AAAA", IsUsed: true}
	tickets.On("FindByTicketID", mock.Anything, "TKT-AAAA").Return(ticket, nil)
	tickets.On("MarkUsed", mock.Anything, "rec1").Return(status.ErrConflict)

	_, err := service.CheckIn(context.Background(), "TKT-AAAA")

	assert.ErrorIs(t, err, status.ErrConflict)
}
