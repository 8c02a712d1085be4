package gateway

import (
	"context"
	"fmt"

	"club-platform/internal/gateway/cashfree"
)

// CashfreeAdapter adapts the Cashfree client to the Gateway interface.
type CashfreeAdapter struct {
	gw *cashfree.Cashfree
}

// NewCashfreeAdapter creates a new Cashfree adapter.
func NewCashfreeAdapter(ctx context.Context, cfg *cashfree.Config) (*CashfreeAdapter, error) {
	gw, err := cashfree.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cashfree gateway: %w", err)
	}
	return &CashfreeAdapter{gw: gw}, nil
}

func (a *CashfreeAdapter) Provider() Provider {
	return ProviderCashfree
}

func (a *CashfreeAdapter) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderSession, error) {
	session, err := a.gw.CreateOrder(ctx, &cashfree.OrderForm{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ReturnURL:     req.ReturnURL,
		NotifyURL:     req.NotifyURL,
	})
	if err != nil {
		return nil, err
	}

	return &OrderSession{
		Provider:   ProviderCashfree,
		OrderID:    req.OrderID,
		GatewayRef: session.OrderID, // cashfree orders are keyed by our order id
		SessionID:  session.PaymentSessionID,
	}, nil
}

func (a *CashfreeAdapter) CheckPayment(ctx context.Context, ref, _ string) (*StatusResult, error) {
	status, err := a.gw.CheckOrder(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		GatewayRef: status.OrderID,
		State:      mapCashfreeStatus(status.Status),
		RawStatus:  status.Status,
		Amount:     status.Amount,
	}, nil
}

func mapCashfreeStatus(s string) PaymentState {
	switch s {
	case "PAID":
		return StatePaid
	case "EXPIRED", "TERMINATED":
		return StateFailed
	default: // ACTIVE and anything unrecognized
		return StatePending
	}
}

func (a *CashfreeAdapter) VerifyWebhook(body []byte, headers map[string]string) bool {
	return a.gw.VerifySignature(headers["x-webhook-timestamp"], body, headers["x-webhook-signature"])
}

func (a *CashfreeAdapter) Close(_ context.Context) error {
	return nil
}
