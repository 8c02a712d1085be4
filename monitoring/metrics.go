package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	ordersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_orders_created_total",
			Help: "Payment orders created per gateway provider",
		},
		[]string{"provider", "status"},
	)

	verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Payment verification calls per provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ticketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets issued per event",
		},
		[]string{"event_id"},
	)

	ticketRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_rollbacks_total",
			Help: "Compensating rollbacks during ticket issuance per stage",
		},
		[]string{"stage"},
	)

	webhookJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_jobs_total",
			Help: "Webhook jobs processed per provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	webhookQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "webhook_queue_depth",
			Help: "Pending webhook jobs in the Redis queue",
		},
	)
)

// TrackOrderCreated records one order-creation attempt.
func TrackOrderCreated(provider, status string) {
	ordersCreated.WithLabelValues(provider, status).Inc()
}

// TrackVerification records one verification call outcome.
func TrackVerification(provider, outcome string) {
	verifications.WithLabelValues(provider, outcome).Inc()
}

// TrackTicketIssued records one issued ticket.
func TrackTicketIssued(eventID string) {
	ticketsIssued.WithLabelValues(eventID).Inc()
}

// TrackTicketRollback records a compensating rollback at the given stage.
func TrackTicketRollback(stage string) {
	ticketRollbacks.WithLabelValues(stage).Inc()
}

// TrackWebhookJob records one processed webhook job.
func TrackWebhookJob(provider, outcome string) {
	webhookJobs.WithLabelValues(provider, outcome).Inc()
}

// Monitor periodically samples queue depth from Redis.
type Monitor struct {
	redis    *redis.Client
	queueKey string
}

func NewMonitor(redisClient *redis.Client, queueKey string) *Monitor {
	monitor := &Monitor{redis: redisClient, queueKey: queueKey}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()

		depth, err := m.redis.LLen(ctx, m.queueKey).Result()
		if err != nil {
			continue
		}
		webhookQueueDepth.Set(float64(depth))
	}
}
