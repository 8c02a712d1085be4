package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"club-platform/internal/status"
	"club-platform/monitoring"

	"github.com/redis/go-redis/v9"
)

// WebhookQueueKey is the Redis list the webhook handlers push into.
const WebhookQueueKey = "webhook:jobs"

// WebhookJob is one acknowledged gateway notification awaiting verification.
type WebhookJob struct {
	Provider   string    `json:"provider"`
	OrderID    string    `json:"order_id"`
	PaymentID  string    `json:"payment_id,omitempty"`
	Attempt    int       `json:"attempt"`
	ReceivedAt time.Time `json:"received_at"`
}

// Verifier is the subset of PaymentService the worker drives.
type Verifier interface {
	Verify(ctx context.Context, orderID, paymentID string) (*VerifyResult, error)
}

// WebhookQueue decouples webhook acknowledgment from verification. Handlers
// ack the gateway immediately and enqueue; this worker drains the queue and
// retries transient failures with a delay.
type WebhookQueue struct {
	redis       *redis.Client
	verifier    Verifier
	maxAttempts int
	retryDelay  time.Duration
}

func NewWebhookQueue(redisClient *redis.Client, verifier Verifier, maxAttempts int, retryDelay time.Duration) *WebhookQueue {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if retryDelay <= 0 {
		retryDelay = 10 * time.Second
	}
	return &WebhookQueue{
		redis:       redisClient,
		verifier:    verifier,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Enqueue pushes a job onto the queue.
func (q *WebhookQueue) Enqueue(ctx context.Context, job *WebhookJob) error {
	if job.Attempt == 0 {
		job.Attempt = 1
	}
	if job.ReceivedAt.IsZero() {
		job.ReceivedAt = time.Now().UTC()
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("webhook.Enqueue: marshal: %w", err)
	}
	if err := q.redis.LPush(ctx, WebhookQueueKey, data).Err(); err != nil {
		return fmt.Errorf("webhook.Enqueue: %w", err)
	}
	return nil
}

// Run drains the queue until ctx is cancelled.
func (q *WebhookQueue) Run(ctx context.Context) {
	slog.Info("webhook worker started", "queue", WebhookQueueKey)

	for {
		select {
		case <-ctx.Done():
			slog.Info("webhook worker stopped")
			return
		default:
		}

		result, err := q.redis.BRPop(ctx, 5*time.Second, WebhookQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			slog.Error("webhook worker: pop failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		var job WebhookJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			slog.Error("webhook worker: bad job payload", "error", err)
			continue
		}

		q.ProcessJob(ctx, &job)
	}
}

// ProcessJob verifies one order. Transient outcomes (gateway still pending,
// upstream down) re-enqueue with a delay until maxAttempts; everything else
// is final and the job is dropped.
func (q *WebhookQueue) ProcessJob(ctx context.Context, job *WebhookJob) {
	_, err := q.verifier.Verify(ctx, job.OrderID, job.PaymentID)
	if err == nil {
		monitoring.TrackWebhookJob(job.Provider, "completed")
		return
	}

	switch {
	case errors.Is(err, status.ErrStillProcessing), errors.Is(err, status.ErrUpstream):
		if job.Attempt >= q.maxAttempts {
			monitoring.TrackWebhookJob(job.Provider, "exhausted")
			slog.Warn("webhook job exhausted retries",
				"order_id", job.OrderID, "provider", job.Provider, "attempts", job.Attempt, "error", err)
			return
		}
		monitoring.TrackWebhookJob(job.Provider, "retried")
		q.requeueLater(job)

	case errors.Is(err, status.ErrNotFound):
		monitoring.TrackWebhookJob(job.Provider, "unknown_order")
		slog.Warn("webhook job for unknown order", "order_id", job.OrderID, "provider", job.Provider)

	default:
		monitoring.TrackWebhookJob(job.Provider, "failed")
		slog.Error("webhook job failed",
			"order_id", job.OrderID, "provider", job.Provider, "attempts", job.Attempt, "error", err)
	}
}

func (q *WebhookQueue) requeueLater(job *WebhookJob) {
	next := *job
	next.Attempt++

	go func() {
		time.Sleep(q.retryDelay)
		if err := q.Enqueue(context.Background(), &next); err != nil {
			slog.Error("webhook requeue failed", "order_id", next.OrderID, "error", err)
		}
	}()
}
