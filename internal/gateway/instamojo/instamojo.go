package instamojo

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	sandboxBaseURL    = "https://test.instamojo.com/api/1.1"
	productionBaseURL = "https://www.instamojo.com/api/1.1"
)

type Config struct {
	APIKey    string `json:"api_key" mapstructure:"api_key"`
	AuthToken string `json:"auth_token" mapstructure:"auth_token"`

	// Salt keys the webhook MAC.
	Salt string `json:"salt" mapstructure:"salt"`

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

// Instamojo wraps the payment-request API: request creation, per-payment
// status lookup and webhook MAC checks.
type Instamojo struct {
	client *Client
	salt   string
}

// New returns a new Instamojo instance.
func New(_ context.Context, cfg *Config) (*Instamojo, error) {
	if cfg.APIKey == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("instamojo: missing api credentials")
	}

	return &Instamojo{
		client: newClient(cfg),
		salt:   cfg.Salt,
	}, nil
}

type RequestForm struct {
	Amount      decimal.Decimal
	Purpose     string
	BuyerName   string
	Email       string
	Phone       string
	RedirectURL string
	WebhookURL  string
}

type PaymentRequest struct {
	RequestID string
	LongURL   string
	Status    string
}

func (g *Instamojo) CreatePaymentRequest(ctx context.Context, f *RequestForm) (*PaymentRequest, error) {
	form := url.Values{}
	form.Set("amount", f.Amount.StringFixed(2))
	form.Set("purpose", f.Purpose)
	form.Set("buyer_name", f.BuyerName)
	form.Set("email", f.Email)
	form.Set("phone", f.Phone)
	form.Set("redirect_url", f.RedirectURL)
	form.Set("webhook", f.WebhookURL)
	form.Set("allow_repeated_payments", "False")

	reply, err := g.client.createPaymentRequest(ctx, form)
	if err != nil {
		return nil, err
	}

	return &PaymentRequest{
		RequestID: reply.PaymentRequest.ID,
		LongURL:   reply.PaymentRequest.LongURL,
		Status:    reply.PaymentRequest.Status,
	}, nil
}

type PaymentDetail struct {
	RequestID string
	PaymentID string
	Status    string // Credit, Failed
	Amount    decimal.Decimal
	Method    string
}

func (g *Instamojo) CheckPayment(ctx context.Context, requestID, paymentID string) (*PaymentDetail, error) {
	reply, err := g.client.getPaymentDetail(ctx, requestID, paymentID)
	if err != nil {
		return nil, err
	}
	return &PaymentDetail{
		RequestID: reply.PaymentRequest.ID,
		PaymentID: reply.PaymentRequest.Payment.PaymentID,
		Status:    reply.PaymentRequest.Payment.Status,
		Amount:    reply.PaymentRequest.Payment.Amount,
		Method:    reply.PaymentRequest.Payment.InstrumentType,
	}, nil
}

// VerifyMAC checks the mac field of a webhook delivery: HMAC-SHA1 over the
// remaining field values sorted by key and joined with '|', keyed with the
// account salt.
func (g *Instamojo) VerifyMAC(fields map[string]string) bool {
	mac, ok := fields["mac"]
	if !ok || mac == "" {
		return false
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "mac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fields[k])
	}

	hash := hmac.New(sha1.New, []byte(g.salt))
	hash.Write([]byte(strings.Join(values, "|")))
	expected := hex.EncodeToString(hash.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(mac))
}
