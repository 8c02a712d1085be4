package store

import (
	"context"

	"club-platform/models"
)

// TransactionStore persists payment attempts.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error)

	// FindByGatewayRef resolves a transaction from the gateway's own
	// reference. Instamojo webhooks only carry the payment request id.
	FindByGatewayRef(ctx context.Context, provider, ref string) (*models.Transaction, error)

	// MarkStatus moves the transaction into a terminal state. The update is
	// guarded by the state machine: terminal transactions are never moved
	// again (status.ErrInvalidTransition).
	MarkStatus(ctx context.Context, orderID string, to models.TransactionStatus, paymentID string) (*models.Transaction, error)
}

// TicketStore persists issued admission credentials.
type TicketStore interface {
	Create(ctx context.Context, t *models.Ticket) error
	FindForPayer(ctx context.Context, eventID, email, lpuID string) (*models.Ticket, error)
	FindByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error)
	SetQR(ctx context.Context, id string, qr models.QRCredential) error
	Delete(ctx context.Context, id string) error
	MarkUsed(ctx context.Context, id string) error

	// CountForEvent derives the registration aggregate by query; there is no
	// denormalized registration list.
	CountForEvent(ctx context.Context, eventID string) (int, error)
}

// EventStore reads and writes club events.
type EventStore interface {
	Create(ctx context.Context, ev *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, limit int) ([]*models.Event, error)
}

// CouponStore reads and redeems coupon codes.
type CouponStore interface {
	Create(ctx context.Context, c *models.Coupon) error
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsed(ctx context.Context, id string) error
}
