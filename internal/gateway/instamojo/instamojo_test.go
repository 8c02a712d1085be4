package instamojo

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Instamojo {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gw, err := New(context.Background(), &Config{
		APIKey:    "key",
		AuthToken: "token",
		Salt:      "testsalt",
		BaseURL:   server.URL,
	})
	require.NoError(t, err)
	return gw
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), &Config{})
	assert.Error(t, err)
}

func TestCreatePaymentRequest(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment-requests/", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "token", r.Header.Get("X-Auth-Token"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "250.00", r.PostForm.Get("amount"))
		assert.Equal(t, "False", r.PostForm.Get("allow_repeated_payments"))

		w.Write([]byte(`{
			"success": true,
			"payment_request": {
				"id": "im-req-1",
				"status": "Pending",
				"longurl": "https://test.instamojo.com/@club/im-req-1"
			}
		}`))
	})

	pr, err := gw.CreatePaymentRequest(context.Background(), &RequestForm{
		Amount:    decimal.NewFromInt(250),
		Purpose:   "Ticket for Tech Fest",
		BuyerName: "Asha Verma",
		Email:     "asha@example.com",
		Phone:     "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "im-req-1", pr.RequestID)
	assert.Contains(t, pr.LongURL, "im-req-1")
}

func TestCreatePaymentRequestFailure(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "message": {"amount": ["A valid number is required."]}}`))
	})

	_, err := gw.CreatePaymentRequest(context.Background(), &RequestForm{})

	assert.Error(t, err)
}

func TestCheckPaymentStatuses(t *testing.T) {
	tests := []struct {
		status string
	}{
		{"Credit"},
		{"Failed"},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/payment-requests/im-req-1/MOJO123/", r.URL.Path)
				w.Write([]byte(`{
					"success": true,
					"payment_request": {
						"id": "im-req-1",
						"status": "Completed",
						"payment": {
							"payment_id": "MOJO123",
							"status": "` + tc.status + `",
							"amount": 250,
							"instrument_type": "UPI"
						}
					}
				}`))
			})

			detail, err := gw.CheckPayment(context.Background(), "im-req-1", "MOJO123")

			require.NoError(t, err)
			assert.Equal(t, tc.status, detail.Status)
			assert.Equal(t, "MOJO123", detail.PaymentID)
			assert.Equal(t, "UPI", detail.Method)
		})
	}
}

func macFor(salt string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fields[k])
	}

	h := hmac.New(sha1.New, []byte(salt))
	h.Write([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyMAC(t *testing.T) {
	gw := &Instamojo{salt: "testsalt"}

	fields := map[string]string{
		"payment_id":         "MOJO123",
		"payment_request_id": "im-req-1",
		"status":             "Credit",
		"amount":             "250.00",
	}

	withMAC := map[string]string{}
	for k, v := range fields {
		withMAC[k] = v
	}
	withMAC["mac"] = macFor("testsalt", fields)
	assert.True(t, gw.VerifyMAC(withMAC))

	withMAC["mac"] = "deadbeef"
	assert.False(t, gw.VerifyMAC(withMAC))

	delete(withMAC, "mac")
	assert.False(t, gw.VerifyMAC(withMAC))

	// Tampered value no longer matches the mac.
	withMAC["mac"] = macFor("testsalt", fields)
	withMAC["amount"] = "1.00"
	assert.False(t, gw.VerifyMAC(withMAC))
}
