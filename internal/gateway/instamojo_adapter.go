package gateway

import (
	"context"
	"fmt"
	"net/url"

	"club-platform/internal/gateway/instamojo"
)

// InstamojoAdapter adapts the Instamojo client to the Gateway interface.
type InstamojoAdapter struct {
	gw *instamojo.Instamojo
}

// NewInstamojoAdapter creates a new Instamojo adapter.
func NewInstamojoAdapter(ctx context.Context, cfg *instamojo.Config) (*InstamojoAdapter, error) {
	gw, err := instamojo.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create instamojo gateway: %w", err)
	}
	return &InstamojoAdapter{gw: gw}, nil
}

func (a *InstamojoAdapter) Provider() Provider {
	return ProviderInstamojo
}

func (a *InstamojoAdapter) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderSession, error) {
	pr, err := a.gw.CreatePaymentRequest(ctx, &instamojo.RequestForm{
		Amount:      req.Amount,
		Purpose:     req.Purpose,
		BuyerName:   req.CustomerName,
		Email:       req.CustomerEmail,
		Phone:       req.CustomerPhone,
		RedirectURL: req.ReturnURL,
		WebhookURL:  req.NotifyURL,
	})
	if err != nil {
		return nil, err
	}

	return &OrderSession{
		Provider:   ProviderInstamojo,
		OrderID:    req.OrderID,
		GatewayRef: pr.RequestID, // instamojo keys status by its own request id
		PaymentURL: pr.LongURL,
	}, nil
}

func (a *InstamojoAdapter) CheckPayment(ctx context.Context, ref, paymentID string) (*StatusResult, error) {
	detail, err := a.gw.CheckPayment(ctx, ref, paymentID)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		GatewayRef: detail.RequestID,
		PaymentID:  detail.PaymentID,
		State:      mapInstamojoStatus(detail.Status),
		RawStatus:  detail.Status,
		Amount:     detail.Amount,
		Method:     detail.Method,
	}, nil
}

func mapInstamojoStatus(s string) PaymentState {
	switch s {
	case "Credit":
		return StatePaid
	case "Failed":
		return StateFailed
	default:
		return StatePending
	}
}

// VerifyWebhook parses the form-encoded webhook body and checks its MAC.
func (a *InstamojoAdapter) VerifyWebhook(body []byte, _ map[string]string) bool {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return false
	}

	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}

	return a.gw.VerifyMAC(fields)
}

func (a *InstamojoAdapter) Close(_ context.Context) error {
	return nil
}
