package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const apiVersion = "2023-08-01"

type Client struct {
	// baseURL is the base url of the Cashfree PG backend.
	baseURL string

	// clientID and clientSecret authenticate every request.
	clientID     string
	clientSecret string

	// hc is the http client.
	hc *http.Client
}

func newClient(c *Config) *Client {
	return &Client{
		baseURL:      c.baseURL(),
		clientID:     c.ClientID,
		clientSecret: c.ClientSecret,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
}

type orderForm struct {
	OrderID       string          `json:"order_id"`
	OrderAmount   decimal.Decimal `json:"order_amount"`
	OrderCurrency string          `json:"order_currency"`
	Customer      struct {
		CustomerID    string `json:"customer_id"`
		CustomerName  string `json:"customer_name"`
		CustomerEmail string `json:"customer_email"`
		CustomerPhone string `json:"customer_phone"`
	} `json:"customer_details"`
	OrderMeta struct {
		ReturnURL string `json:"return_url,omitempty"`
		NotifyURL string `json:"notify_url,omitempty"`
	} `json:"order_meta"`
}

type orderReply struct {
	OrderID          string          `json:"order_id"`
	CfOrderID        json.Number     `json:"cf_order_id"`
	PaymentSessionID string          `json:"payment_session_id"`
	OrderStatus      string          `json:"order_status"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
	Message          string          `json:"message"`
}

// createOrder opens an order on the Cashfree PG backend and returns the
// payment session the client redirects with.
func (c *Client) createOrder(ctx context.Context, f *orderForm) (*orderReply, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("createOrder: json.Marshal: %w", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/orders"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.NewReq: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("createOrder: http.Do: %w", err)
	}
	defer resp.Body.Close()

	var reply orderReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("createOrder: json.Decode: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("createOrder: status %d: %s", resp.StatusCode, reply.Message)
	}
	if reply.PaymentSessionID == "" {
		return nil, fmt.Errorf("createOrder: empty payment_session_id: %s", reply.Message)
	}

	return &reply, nil
}

// getOrder fetches the authoritative order status from Cashfree.
// order_status is one of PAID, ACTIVE, EXPIRED, TERMINATED.
func (c *Client) getOrder(ctx context.Context, orderID string) (*orderReply, error) {
	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/orders/%s", _baseURL.String(), url.PathEscape(orderID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getOrder: http.NewReq: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getOrder: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("getOrder: order %s not found", orderID)
	}

	var reply orderReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("getOrder: json.Decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getOrder: status %d: %s", resp.StatusCode, reply.Message)
	}

	return &reply, nil
}
