package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"club-platform/internal/gateway"
	"club-platform/internal/status"
	"club-platform/services"
	"club-platform/store"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// PaymentHandler exposes order creation, verification polling and the
// per-provider webhook endpoints.
type PaymentHandler struct {
	payments     *services.PaymentService
	transactions store.TransactionStore
	gateways     *gateway.Registry
	queue        *services.WebhookQueue
}

func NewPaymentHandler(
	payments *services.PaymentService,
	transactions store.TransactionStore,
	gateways *gateway.Registry,
	queue *services.WebhookQueue,
) *PaymentHandler {
	return &PaymentHandler{
		payments:     payments,
		transactions: transactions,
		gateways:     gateways,
		queue:        queue,
	}
}

// CreateOrder - POST /api/v1/payment/create-order
func (h *PaymentHandler) CreateOrder(e *core.RequestEvent) error {
	var in services.CreateOrderInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	session, tx, err := h.payments.CreateOrder(e.Request.Context(), &in)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, map[string]any{
		"order_id":    tx.OrderID,
		"provider":    session.Provider,
		"session_id":  session.SessionID,
		"payment_url": session.PaymentURL,
		"amount":      tx.Amount,
	})
}

// Verify - GET /api/v1/payment/verify/{order_id}
//
// The user-facing polling entry point. A payment still settling answers 202
// so the client keeps polling.
func (h *PaymentHandler) Verify(e *core.RequestEvent) error {
	orderID := e.Request.PathValue("order_id")
	if orderID == "" {
		return apis.NewBadRequestError("order_id is required", nil)
	}
	paymentID := e.Request.URL.Query().Get("payment_id")

	result, err := h.payments.Verify(e.Request.Context(), orderID, paymentID)
	if err != nil {
		if errors.Is(err, status.ErrStillProcessing) {
			return e.JSON(http.StatusAccepted, map[string]any{
				"status":   "processing",
				"order_id": orderID,
			})
		}
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, result)
}

// Webhook - POST /api/v1/payment/webhook/{provider}
//
// The gateway is always answered 200 once the signature checks out; the
// verification itself happens on the queue worker. A lost or malformed
// notification is recovered by the polling path, so nothing here retries
// against the caller.
func (h *PaymentHandler) Webhook(e *core.RequestEvent) error {
	provider := gateway.Provider(e.Request.PathValue("provider"))
	gw, err := h.gateways.Get(provider)
	if err != nil {
		return apis.NewNotFoundError("Unknown payment provider", nil)
	}

	body, err := io.ReadAll(e.Request.Body)
	if err != nil {
		return apis.NewBadRequestError("Unreadable body", nil)
	}

	// Adapters look headers up lowercased.
	headers := map[string]string{}
	for name := range e.Request.Header {
		headers[normalizeHeader(name)] = e.Request.Header.Get(name)
	}

	if !gw.VerifyWebhook(body, headers) {
		slog.Warn("webhook signature rejected", "provider", provider)
		return apis.NewUnauthorizedError("Invalid webhook signature", nil)
	}

	orderID, paymentID := h.extractIDs(e, provider, body)
	if orderID == "" {
		// Ack anyway; an unresolvable notification must not trigger gateway
		// redelivery storms.
		slog.Warn("webhook with no resolvable order", "provider", provider)
		return e.JSON(http.StatusOK, map[string]string{"status": "ignored"})
	}

	job := &services.WebhookJob{
		Provider:  string(provider),
		OrderID:   orderID,
		PaymentID: paymentID,
	}
	if err := h.queue.Enqueue(e.Request.Context(), job); err != nil {
		slog.Error("webhook enqueue failed", "provider", provider, "order_id", orderID, "error", err)
	}

	return e.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

func (h *PaymentHandler) extractIDs(e *core.RequestEvent, provider gateway.Provider, body []byte) (orderID, paymentID string) {
	switch provider {
	case gateway.ProviderCashfree:
		var payload struct {
			Data struct {
				Order struct {
					OrderID string `json:"order_id"`
				} `json:"order"`
				Payment struct {
					CfPaymentID json.Number `json:"cf_payment_id"`
				} `json:"payment"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", ""
		}
		return payload.Data.Order.OrderID, payload.Data.Payment.CfPaymentID.String()

	case gateway.ProviderInstamojo:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "", ""
		}
		ref := values.Get("payment_request_id")
		if ref == "" {
			return "", ""
		}
		tx, err := h.transactions.FindByGatewayRef(e.Request.Context(), string(provider), ref)
		if err != nil {
			return "", ""
		}
		return tx.OrderID, values.Get("payment_id")
	}
	return "", ""
}

func normalizeHeader(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
