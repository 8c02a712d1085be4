package services

import (
	"context"
	"encoding/json"
	"fmt"

	"club-platform/models"
	"club-platform/storage"

	qrcode "github.com/skip2/go-qrcode"
)

// QRProvider generates and destroys QR credentials for tickets.
type QRProvider interface {
	Generate(ctx context.Context, t *models.Ticket) (models.QRCredential, error)
	Destroy(ctx context.Context, objectID string) error
}

// QRService renders a ticket's identity payload into a PNG and stores it in
// the external object store.
type QRService struct {
	store storage.ObjectStore
}

func NewQRService(store storage.ObjectStore) *QRService {
	return &QRService{store: store}
}

func (s *QRService) Generate(ctx context.Context, t *models.Ticket) (models.QRCredential, error) {
	payload := models.QRPayload{
		TicketID:    t.TicketID,
		FullName:    t.FullName,
		Email:       t.Email,
		LpuID:       t.LpuID,
		EventID:     t.EventID,
		IsUsed:      t.IsUsed,
		IsCancelled: t.IsCancelled,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return models.QRCredential{}, fmt.Errorf("qr.Generate: json.Marshal: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 512)
	if err != nil {
		return models.QRCredential{}, fmt.Errorf("qr.Generate: encode: %w", err)
	}

	key := fmt.Sprintf("qr/%s.png", t.TicketID)
	url, err := s.store.Upload(ctx, key, png, "image/png")
	if err != nil {
		// A failed upload may still have left a partial object behind.
		_ = s.store.Delete(ctx, key)
		return models.QRCredential{}, fmt.Errorf("qr.Generate: upload: %w", err)
	}

	return models.QRCredential{URL: url, ObjectID: key}, nil
}

func (s *QRService) Destroy(ctx context.Context, objectID string) error {
	if objectID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, objectID); err != nil {
		return fmt.Errorf("qr.Destroy: %w", err)
	}
	return nil
}
