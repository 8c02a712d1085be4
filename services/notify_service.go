package services

import (
	"fmt"
	"log/slog"

	"club-platform/models"

	pubnub "github.com/pubnub/go/v7"
)

const feedChannel = "club-feed"

// Notifier pushes realtime updates to connected clients.
type Notifier interface {
	PaymentSucceeded(orderID string, t *models.Ticket)
	PaymentFailed(orderID string)
	PostPublished(p *models.Post)
}

// NotifyService publishes over PubNub. Delivery is best-effort; a failed
// publish is logged and never fails the calling workflow.
type NotifyService struct {
	pn *pubnub.PubNub
}

func NewNotifyService(pn *pubnub.PubNub) *NotifyService {
	return &NotifyService{pn: pn}
}

// NewPubNub builds the client the server publishes with.
func NewPubNub(publishKey, subscribeKey, secretKey, uuid string) *pubnub.PubNub {
	cfg := pubnub.NewConfigWithUserId(pubnub.UserId(uuid))
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey
	cfg.SecretKey = secretKey
	return pubnub.NewPubNub(cfg)
}

func (s *NotifyService) PaymentSucceeded(orderID string, t *models.Ticket) {
	s.publish(fmt.Sprintf("payer-%s", orderID), map[string]any{
		"type":      "payment_status",
		"status":    "success",
		"order_id":  orderID,
		"ticket_id": t.TicketID,
		"qr_url":    t.QR.URL,
	})
}

func (s *NotifyService) PaymentFailed(orderID string) {
	s.publish(fmt.Sprintf("payer-%s", orderID), map[string]any{
		"type":     "payment_status",
		"status":   "failed",
		"order_id": orderID,
	})
}

func (s *NotifyService) PostPublished(p *models.Post) {
	s.publish(feedChannel, map[string]any{
		"type":    "new_post",
		"post_id": p.ID,
		"title":   p.Title,
	})
}

func (s *NotifyService) publish(channel string, message map[string]any) {
	if s.pn == nil {
		return
	}
	_, _, err := s.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	if err != nil {
		slog.Warn("pubnub publish failed", "channel", channel, "error", err)
	}
}
