package cashfree

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Cashfree {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw, err := New(context.Background(), &Config{
		ClientID:     "cid",
		ClientSecret: "secret",
		BaseURL:      server.URL,
	})
	require.NoError(t, err)
	return gw
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), &Config{})
	assert.Error(t, err)
}

func TestCreateOrderSendsAuthHeaders(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "cid", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, apiVersion, r.Header.Get("x-api-version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"order_id": "ORD-1",
			"cf_order_id": 12345,
			"payment_session_id": "session_abc",
			"order_status": "ACTIVE",
			"order_amount": 250
		}`))
	})

	session, err := gw.CreateOrder(context.Background(), &OrderForm{
		OrderID:       "ORD-1",
		Amount:        decimal.NewFromInt(250),
		Currency:      "INR",
		CustomerName:  "Asha Verma",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-1", session.OrderID)
	assert.Equal(t, "session_abc", session.PaymentSessionID)
}

func TestCreateOrderRejectsEmptySession(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id": "ORD-1", "order_status": "ACTIVE"}`))
	})

	_, err := gw.CreateOrder(context.Background(), &OrderForm{OrderID: "ORD-1"})

	assert.ErrorContains(t, err, "payment_session_id")
}

func TestCheckOrderStatuses(t *testing.T) {
	tests := []struct {
		status string
	}{
		{"PAID"},
		{"ACTIVE"},
		{"EXPIRED"},
		{"TERMINATED"},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orders/ORD-1", r.URL.Path)
				w.Write([]byte(`{"order_id": "ORD-1", "order_status": "` + tc.status + `", "order_amount": 250}`))
			})

			status, err := gw.CheckOrder(context.Background(), "ORD-1")

			require.NoError(t, err)
			assert.Equal(t, tc.status, status.Status)
			assert.True(t, status.Amount.Equal(decimal.NewFromInt(250)))
		})
	}
}

func TestCheckOrderNotFound(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := gw.CheckOrder(context.Background(), "ORD-ghost")

	assert.ErrorContains(t, err, "not found")
}

func TestVerifySignature(t *testing.T) {
	gw := &Cashfree{secret: "testsecret"}

	timestamp := "1700000000"
	body := []byte(`{"data":{"order":{"order_id":"ORD-1"}}}`)
	valid := Hmac256Base64(append([]byte(timestamp), body...), []byte("testsecret"))

	assert.True(t, gw.VerifySignature(timestamp, body, valid))
	assert.False(t, gw.VerifySignature(timestamp, body, "bogus"))
	assert.False(t, gw.VerifySignature(timestamp, body, ""))
	assert.False(t, gw.VerifySignature("1700000001", body, valid))
	assert.False(t, gw.VerifySignature(timestamp, []byte(`{}`), valid))
}
