package instamojo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	// baseURL is the base url of the Instamojo API.
	baseURL string

	// apiKey and authToken authenticate every request.
	apiKey    string
	authToken string

	// hc is the http client.
	hc *http.Client
}

func newClient(c *Config) *Client {
	return &Client{
		baseURL:   c.baseURL(),
		apiKey:    c.APIKey,
		authToken: c.AuthToken,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Auth-Token", c.authToken)
}

type paymentRequestReply struct {
	Success        bool `json:"success"`
	PaymentRequest struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		LongURL string `json:"longurl"`
		Amount  string `json:"amount"`
	} `json:"payment_request"`
	Message json.RawMessage `json:"message"`
}

// createPaymentRequest opens a payment request and returns the provider-side
// request id plus the longurl the payer is redirected to.
func (c *Client) createPaymentRequest(ctx context.Context, form url.Values) (*paymentRequestReply, error) {
	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/payment-requests/"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("createPaymentRequest: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("createPaymentRequest: http.Do: %w", err)
	}
	defer resp.Body.Close()

	var reply paymentRequestReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("createPaymentRequest: json.Decode: %w", err)
	}
	if !reply.Success {
		return nil, fmt.Errorf("createPaymentRequest: status %d: %s", resp.StatusCode, string(reply.Message))
	}

	return &reply, nil
}

type paymentDetailReply struct {
	Success        bool `json:"success"`
	PaymentRequest struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Payment struct {
			PaymentID      string          `json:"payment_id"`
			Status         string          `json:"status"` // Credit, Failed
			Amount         decimal.Decimal `json:"amount"`
			InstrumentType string          `json:"instrument_type"`
		} `json:"payment"`
	} `json:"payment_request"`
	Message json.RawMessage `json:"message"`
}

// getPaymentDetail fetches the authoritative status for one payment under a
// payment request. Instamojo reports "Credit" for settled payments.
func (c *Client) getPaymentDetail(ctx context.Context, requestID, paymentID string) (*paymentDetailReply, error) {
	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/payment-requests/%s/%s/", _baseURL.String(), url.PathEscape(requestID), url.PathEscape(paymentID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getPaymentDetail: http.NewReq: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getPaymentDetail: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("getPaymentDetail: payment request %s not found", requestID)
	}

	var reply paymentDetailReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("getPaymentDetail: json.Decode: %w", err)
	}
	if !reply.Success {
		return nil, fmt.Errorf("getPaymentDetail: status %d: %s", resp.StatusCode, string(reply.Message))
	}

	return &reply, nil
}
