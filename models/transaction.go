package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
)

// CanTransition reports whether moving from s to next is allowed. Transitions
// are monotonic: PENDING may become terminal, terminal states never move.
func (s TransactionStatus) CanTransition(next TransactionStatus) bool {
	if s != TransactionPending {
		return false
	}
	return next == TransactionSuccess || next == TransactionFailed
}

// Terminal reports whether the status is final.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionSuccess || s == TransactionFailed
}

// Payer holds the contact and profile fields captured at order time. They are
// denormalized onto both Transaction and Ticket so issuance never needs a
// second member lookup.
type Payer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LpuID    string `json:"lpu_id"`
	Gender   string `json:"gender"`
	Hosteler bool   `json:"hosteler"`
	Hostel   string `json:"hostel,omitempty"`
	Course   string `json:"course"`
	Club     string `json:"club,omitempty"`
}

// Transaction records one payment attempt against a gateway.
type Transaction struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`

	Payer

	Amount    decimal.Decimal   `json:"amount"`
	EventID   string            `json:"event_id"`
	EventName string            `json:"event_name"`
	Status    TransactionStatus `json:"status"`
	Provider  string            `json:"provider"` // cashfree, instamojo
	// GatewayRef is the provider-side order/request id used for status
	// lookups. Cashfree reuses the order id, Instamojo assigns its own.
	GatewayRef string `json:"gateway_ref,omitempty"`
	PaymentID  string `json:"payment_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
