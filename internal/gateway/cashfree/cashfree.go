package cashfree

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	sandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	productionBaseURL = "https://api.cashfree.com/pg"
)

type Config struct {
	ClientID     string `json:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret" mapstructure:"client_secret"`

	// Mode selects sandbox or production. BaseURL overrides both when set.
	Mode    string `json:"mode" mapstructure:"mode"`
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Mode == "production" {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// Cashfree wraps the PG client with the pieces the platform needs: order
// creation, authoritative status lookup and webhook signature checks.
type Cashfree struct {
	client *Client
	secret string
}

// New returns a new Cashfree instance.
func New(_ context.Context, cfg *Config) (*Cashfree, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("cashfree: missing client credentials")
	}

	return &Cashfree{
		client: newClient(cfg),
		secret: cfg.ClientSecret,
	}, nil
}

type OrderForm struct {
	OrderID       string
	Amount        decimal.Decimal
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ReturnURL     string
	NotifyURL     string
}

type OrderSession struct {
	OrderID          string
	PaymentSessionID string
	OrderStatus      string
}

func (g *Cashfree) CreateOrder(ctx context.Context, f *OrderForm) (*OrderSession, error) {
	form := &orderForm{
		OrderID:       f.OrderID,
		OrderAmount:   f.Amount,
		OrderCurrency: f.Currency,
	}
	// Cashfree requires a customer_id; the LPU mail prefix is not guaranteed
	// unique enough, so the order id doubles as the customer key.
	form.Customer.CustomerID = f.OrderID
	form.Customer.CustomerName = f.CustomerName
	form.Customer.CustomerEmail = f.CustomerEmail
	form.Customer.CustomerPhone = f.CustomerPhone
	form.OrderMeta.ReturnURL = f.ReturnURL
	form.OrderMeta.NotifyURL = f.NotifyURL

	reply, err := g.client.createOrder(ctx, form)
	if err != nil {
		return nil, err
	}

	return &OrderSession{
		OrderID:          reply.OrderID,
		PaymentSessionID: reply.PaymentSessionID,
		OrderStatus:      reply.OrderStatus,
	}, nil
}

type OrderStatus struct {
	OrderID string
	Status  string // PAID, ACTIVE, EXPIRED, TERMINATED
	Amount  decimal.Decimal
}

func (g *Cashfree) CheckOrder(ctx context.Context, orderID string) (*OrderStatus, error) {
	reply, err := g.client.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderStatus{
		OrderID: reply.OrderID,
		Status:  reply.OrderStatus,
		Amount:  reply.OrderAmount,
	}, nil
}

// VerifySignature checks the x-webhook-signature header: base64 HMAC-SHA256
// over timestamp+rawBody keyed with the client secret.
func (g *Cashfree) VerifySignature(timestamp string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	payload := append([]byte(timestamp), body...)
	return hmacEqual(Hmac256Base64(payload, []byte(g.secret)), signature)
}
