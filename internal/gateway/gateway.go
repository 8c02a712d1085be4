package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Provider identifies a payment gateway integration.
type Provider string

const (
	ProviderCashfree  Provider = "cashfree"
	ProviderInstamojo Provider = "instamojo"
)

// PaymentState is the normalized view of a gateway's payment status.
type PaymentState string

const (
	StatePaid    PaymentState = "paid"
	StateFailed  PaymentState = "failed"
	StatePending PaymentState = "pending"
)

// OrderRequest carries everything a gateway needs to open a payment session.
type OrderRequest struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Purpose       string          `json:"purpose"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`

	// ReturnURL and NotifyURL embed the order id so both re-entry paths can
	// find the transaction again.
	ReturnURL string `json:"return_url"`
	NotifyURL string `json:"notify_url"`
}

// OrderSession is the gateway's handle the client redirects with.
type OrderSession struct {
	Provider   Provider `json:"provider"`
	OrderID    string   `json:"order_id"`
	GatewayRef string   `json:"gateway_ref"` // provider-side order/request id
	SessionID  string   `json:"session_id,omitempty"`
	PaymentURL string   `json:"payment_url,omitempty"`
}

// StatusResult is the authoritative answer from the gateway's status endpoint.
type StatusResult struct {
	GatewayRef string          `json:"gateway_ref"`
	PaymentID  string          `json:"payment_id,omitempty"`
	State      PaymentState    `json:"state"`
	RawStatus  string          `json:"raw_status"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
}

// Gateway is the common interface every payment provider implements.
type Gateway interface {
	// Provider returns the gateway provider tag.
	Provider() Provider

	// CreateOrder opens a payment session for the given order.
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderSession, error)

	// CheckPayment queries the provider's authoritative status endpoint.
	// ref is the provider-side order/request id; paymentID may be empty for
	// providers that key status by order alone.
	CheckPayment(ctx context.Context, ref, paymentID string) (*StatusResult, error)

	// VerifyWebhook checks the signature of a webhook delivery.
	VerifyWebhook(body []byte, headers map[string]string) bool

	// Close releases any provider resources.
	Close(ctx context.Context) error
}

// Factory creates gateway instances from provider-specific configuration.
type Factory interface {
	CreateGateway(ctx context.Context, provider Provider, config any) (Gateway, error)
	SupportedProviders() []Provider
}
