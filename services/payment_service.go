package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"club-platform/internal/gateway"
	"club-platform/internal/status"
	"club-platform/models"
	"club-platform/monitoring"
	"club-platform/store"
	"club-platform/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketIssuer is the downstream issuance step invoked once a payment is
// confirmed.
type TicketIssuer interface {
	Issue(ctx context.Context, payer models.Payer, eventID, eventName string) (*models.Ticket, error)
}

// CreateOrderInput is the order recording request body.
type CreateOrderInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LpuID    string `json:"lpuId"`
	Gender   string `json:"gender"`
	Hosteler bool   `json:"hosteler"`
	Hostel   string `json:"hostel"`
	Course   string `json:"course"`
	Club     string `json:"club"`

	Amount     decimal.Decimal `json:"amount"`
	EventID    string          `json:"eventId"`
	Provider   string          `json:"provider"`
	CouponCode string          `json:"couponCode"`
}

func (in CreateOrderInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(2, 120)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Phone, validation.Required, validation.Length(7, 15)),
		validation.Field(&in.EventID, validation.Required),
		validation.Field(&in.Provider, validation.Required,
			validation.In(string(gateway.ProviderCashfree), string(gateway.ProviderInstamojo))),
	)
}

// VerifyResult carries the transaction and, when settled, the issued ticket.
type VerifyResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Ticket      *models.Ticket      `json:"ticket,omitempty"`
}

// PaymentService records orders against a gateway and verifies them against
// the gateway's authoritative status endpoint. Verification is the only path
// that moves a transaction out of PENDING.
type PaymentService struct {
	transactions store.TransactionStore
	tickets      store.TicketStore
	events       store.EventStore
	gateways     *gateway.Registry
	issuer       TicketIssuer
	coupons      *CouponService
	notify       Notifier
	breaker      *utils.CircuitBreaker
	publicURL    string
}

func NewPaymentService(
	transactions store.TransactionStore,
	tickets store.TicketStore,
	events store.EventStore,
	gateways *gateway.Registry,
	issuer TicketIssuer,
	coupons *CouponService,
	notify Notifier,
	publicURL string,
) *PaymentService {
	return &PaymentService{
		transactions: transactions,
		tickets:      tickets,
		events:       events,
		gateways:     gateways,
		issuer:       issuer,
		coupons:      coupons,
		notify:       notify,
		breaker:      utils.NewCircuitBreaker("gateway-status"),
		publicURL:    strings.TrimRight(publicURL, "/"),
	}
}

// CreateOrder validates the payer details, opens a session with the chosen
// gateway and records a PENDING transaction. Nothing is persisted if the
// gateway refuses the order.
func (s *PaymentService) CreateOrder(ctx context.Context, in *CreateOrderInput) (*gateway.OrderSession, *models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, fmt.Errorf("payment.CreateOrder: %w: %v", status.ErrValidation, err)
	}
	if !in.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("payment.CreateOrder: amount must be positive: %w", status.ErrValidation)
	}

	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("payment.CreateOrder: event: %w", err)
	}
	if event.Status == "ended" {
		return nil, nil, fmt.Errorf("payment.CreateOrder: event has ended: %w", status.ErrValidation)
	}

	// One ticket per payer per event. Refuse to take money when a ticket
	// already exists; the verify path has the same guard for races.
	if _, err := s.tickets.FindForPayer(ctx, in.EventID, in.Email, in.LpuID); err == nil {
		return nil, nil, fmt.Errorf("payment.CreateOrder: ticket already issued for this event: %w", status.ErrConflict)
	}

	amount := in.Amount
	var coupon *models.Coupon
	if in.CouponCode != "" {
		amount, coupon, err = s.coupons.Apply(ctx, in.CouponCode, in.EventID, in.Amount)
		if err != nil {
			return nil, nil, fmt.Errorf("payment.CreateOrder: %w", err)
		}
	}

	provider := gateway.Provider(in.Provider)
	gw, err := s.gateways.Get(provider)
	if err != nil {
		return nil, nil, fmt.Errorf("payment.CreateOrder: %w: %v", status.ErrValidation, err)
	}

	orderID := "ORD-" + uuid.NewString()
	session, err := gw.CreateOrder(ctx, &gateway.OrderRequest{
		OrderID:       orderID,
		Amount:        amount,
		Currency:      "INR",
		Purpose:       fmt.Sprintf("Ticket for %s", event.Name),
		CustomerName:  in.FullName,
		CustomerEmail: in.Email,
		CustomerPhone: in.Phone,
		ReturnURL:     fmt.Sprintf("%s/payment/return?order_id=%s", s.publicURL, orderID),
		NotifyURL:     fmt.Sprintf("%s/api/v1/payment/webhook/%s?order_id=%s", s.publicURL, provider, orderID),
	})
	if err != nil {
		monitoring.TrackOrderCreated(string(provider), "failed")
		return nil, nil, fmt.Errorf("payment.CreateOrder: gateway: %w: %v", status.ErrUpstream, err)
	}

	tx := &models.Transaction{
		OrderID: orderID,
		Payer: models.Payer{
			FullName: in.FullName,
			Email:    in.Email,
			Phone:    in.Phone,
			LpuID:    in.LpuID,
			Gender:   in.Gender,
			Hosteler: in.Hosteler,
			Hostel:   in.Hostel,
			Course:   in.Course,
			Club:     in.Club,
		},
		Amount:     amount,
		EventID:    event.ID,
		EventName:  event.Name,
		Status:     models.TransactionPending,
		Provider:   string(provider),
		GatewayRef: session.GatewayRef,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("payment.CreateOrder: %w", err)
	}

	if coupon != nil {
		if err := s.coupons.Redeem(ctx, coupon); err != nil {
			// The order stands; losing one coupon use is the lesser harm.
			monitoring.TrackOrderCreated(string(provider), "coupon_redeem_failed")
		}
	}

	monitoring.TrackOrderCreated(string(provider), "created")
	return session, tx, nil
}

// Verify asks the gateway whether the order is settled and drives the
// transaction to its terminal state. paymentID is the gateway's payment
// reference when the caller has one (webhook payload, return redirect);
// Instamojo keys its status endpoint by it. Safe to call repeatedly from both
// the webhook worker and user polling: terminal transactions short-circuit,
// and a settled payment whose ticket is missing gets the ticket re-issued.
func (s *PaymentService) Verify(ctx context.Context, orderID, paymentID string) (*VerifyResult, error) {
	tx, err := s.transactions.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payment.Verify: %w", err)
	}

	switch tx.Status {
	case models.TransactionSuccess:
		return s.ensureTicket(ctx, tx)
	case models.TransactionFailed:
		return &VerifyResult{Transaction: tx}, nil
	}

	gw, err := s.gateways.Get(gateway.Provider(tx.Provider))
	if err != nil {
		return nil, fmt.Errorf("payment.Verify: %w", err)
	}

	if paymentID == "" {
		paymentID = tx.PaymentID
	}
	raw, err := s.breaker.Execute(ctx, func() (interface{}, error) {
		return gw.CheckPayment(ctx, tx.GatewayRef, paymentID)
	})
	if err != nil {
		monitoring.TrackVerification(tx.Provider, "upstream_error")
		return nil, fmt.Errorf("payment.Verify: status check: %w: %v", status.ErrUpstream, err)
	}
	result := raw.(*gateway.StatusResult)

	switch result.State {
	case gateway.StatePending:
		monitoring.TrackVerification(tx.Provider, "pending")
		return &VerifyResult{Transaction: tx}, status.ErrStillProcessing

	case gateway.StateFailed:
		updated, err := s.markTerminal(ctx, tx, models.TransactionFailed, result.PaymentID)
		if err != nil {
			return nil, err
		}
		if updated.Status == models.TransactionFailed {
			s.notify.PaymentFailed(orderID)
			monitoring.TrackVerification(tx.Provider, "failed")
			return &VerifyResult{Transaction: updated}, nil
		}
		// A concurrent verifier settled it as SUCCESS instead.
		return s.ensureTicket(ctx, updated)

	case gateway.StatePaid:
		if err := s.fillMemberID(tx); err != nil {
			return nil, err
		}
		updated, err := s.markTerminal(ctx, tx, models.TransactionSuccess, result.PaymentID)
		if err != nil {
			return nil, err
		}
		if updated.Status != models.TransactionSuccess {
			return &VerifyResult{Transaction: updated}, nil
		}
		updated.Payer = tx.Payer
		return s.issue(ctx, updated)

	default:
		monitoring.TrackVerification(tx.Provider, "unknown_state")
		return &VerifyResult{Transaction: tx}, status.ErrStillProcessing
	}
}

// markTerminal applies the state transition and absorbs the race where two
// verifiers settle the same order: on an invalid transition the current row
// is re-read and returned.
func (s *PaymentService) markTerminal(ctx context.Context, tx *models.Transaction, to models.TransactionStatus, paymentID string) (*models.Transaction, error) {
	updated, err := s.transactions.MarkStatus(ctx, tx.OrderID, to, paymentID)
	if err == nil {
		return updated, nil
	}
	if errors.Is(err, status.ErrInvalidTransition) {
		current, findErr := s.transactions.FindByOrderID(ctx, tx.OrderID)
		if findErr != nil {
			return nil, fmt.Errorf("payment.Verify: %w", findErr)
		}
		return current, nil
	}
	return nil, fmt.Errorf("payment.Verify: %w", err)
}

func (s *PaymentService) issue(ctx context.Context, tx *models.Transaction) (*VerifyResult, error) {
	ticket, err := s.issuer.Issue(ctx, tx.Payer, tx.EventID, tx.EventName)
	if err != nil {
		monitoring.TrackVerification(tx.Provider, "issue_failed")
		// The payment is settled; a retry re-enters through ensureTicket.
		return &VerifyResult{Transaction: tx}, fmt.Errorf("payment.Verify: issue: %w", err)
	}

	s.notify.PaymentSucceeded(tx.OrderID, ticket)
	monitoring.TrackVerification(tx.Provider, "success")
	return &VerifyResult{Transaction: tx, Ticket: ticket}, nil
}

// ensureTicket backs the settled short-circuit: a SUCCESS transaction whose
// ticket rollback fired gets its ticket re-issued here.
func (s *PaymentService) ensureTicket(ctx context.Context, tx *models.Transaction) (*VerifyResult, error) {
	if ticket, err := s.tickets.FindForPayer(ctx, tx.EventID, tx.Email, tx.LpuID); err == nil {
		return &VerifyResult{Transaction: tx, Ticket: ticket}, nil
	}
	if err := s.fillMemberID(tx); err != nil {
		return nil, err
	}
	return s.issue(ctx, tx)
}

// fillMemberID handles payers recorded without a member id. The hosted
// Instamojo page collects fewer fields, so that path derives a surrogate id
// from the order reference; other gateways require the real one.
func (s *PaymentService) fillMemberID(tx *models.Transaction) error {
	if tx.LpuID != "" {
		return nil
	}
	if gateway.Provider(tx.Provider) != gateway.ProviderInstamojo {
		return fmt.Errorf("payment.Verify: payer has no member id: %w", status.ErrValidation)
	}

	var digits strings.Builder
	for _, r := range tx.OrderID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
		if digits.Len() >= 8 {
			break
		}
	}
	if digits.Len() == 0 {
		code, err := utils.GenerateNumericCode(8)
		if err != nil {
			return fmt.Errorf("payment.Verify: fallback member id: %w", err)
		}
		tx.LpuID = code
		return nil
	}
	tx.LpuID = digits.String()
	return nil
}
