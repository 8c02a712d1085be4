package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"club-platform/internal/status"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnqueuePushesJob(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	queue := NewWebhookQueue(db, &MockVerifier{}, 5, 10*time.Millisecond)

	job := &WebhookJob{
		Provider:   "cashfree",
		OrderID:    "ORD-1",
		PaymentID:  "pay_1",
		Attempt:    1,
		ReceivedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	redisMock.ExpectLPush(WebhookQueueKey, data).SetVal(1)

	err = queue.Enqueue(context.Background(), job)

	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProcessJobCompletes(t *testing.T) {
	db, _ := redismock.NewClientMock()
	verifier := &MockVerifier{}
	queue := NewWebhookQueue(db, verifier, 5, 10*time.Millisecond)

	verifier.On("Verify", mock.Anything, "ORD-1", mock.Anything).Return(&VerifyResult{}, nil)

	queue.ProcessJob(context.Background(), &WebhookJob{Provider: "cashfree", OrderID: "ORD-1", Attempt: 1})

	verifier.AssertExpectations(t)
}

func TestProcessJobDropsUnknownOrder(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	verifier := &MockVerifier{}
	queue := NewWebhookQueue(db, verifier, 5, 10*time.Millisecond)

	verifier.On("Verify", mock.Anything, "ORD-ghost", mock.Anything).Return(nil, status.ErrNotFound)

	queue.ProcessJob(context.Background(), &WebhookJob{Provider: "cashfree", OrderID: "ORD-ghost", Attempt: 1})

	// No re-enqueue for an unknown order.
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProcessJobRetriesStillProcessing(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	verifier := &MockVerifier{}
	queue := NewWebhookQueue(db, verifier, 5, time.Millisecond)

	verifier.On("Verify", mock.Anything, "ORD-1", mock.Anything).Return(nil, status.ErrStillProcessing)

	received := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	next, err := json.Marshal(&WebhookJob{
		Provider:   "cashfree",
		OrderID:    "ORD-1",
		Attempt:    2,
		ReceivedAt: received,
	})
	require.NoError(t, err)
	redisMock.ExpectLPush(WebhookQueueKey, next).SetVal(1)

	queue.ProcessJob(context.Background(), &WebhookJob{
		Provider:   "cashfree",
		OrderID:    "ORD-1",
		Attempt:    1,
		ReceivedAt: received,
	})

	assert.Eventually(t, func() bool {
		return redisMock.ExpectationsWereMet() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestProcessJobStopsAfterMaxAttempts(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	verifier := &MockVerifier{}
	queue := NewWebhookQueue(db, verifier, 3, time.Millisecond)

	verifier.On("Verify", mock.Anything, "ORD-1", mock.Anything).Return(nil, status.ErrUpstream)

	queue.ProcessJob(context.Background(), &WebhookJob{Provider: "cashfree", OrderID: "ORD-1", Attempt: 3})

	// Give a stray requeue goroutine time to surface if the guard is broken.
	time.Sleep(20 * time.Millisecond)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
