package models

import (
	"time"
)

// QRCredential points at the QR image stored in the object store. Only the
// URL and object key are kept; the image itself lives remotely.
type QRCredential struct {
	URL      string `json:"url"`
	ObjectID string `json:"object_id"`
}

// Ticket is the admission credential issued once a transaction reaches
// SUCCESS. TicketID is the process-generated identity printed on the QR and
// is distinct from the storage-layer record id.
type Ticket struct {
	ID       string `json:"id"`
	TicketID string `json:"ticket_id"`

	Payer

	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`

	IsUsed      bool `json:"is_used"`
	IsCancelled bool `json:"is_cancelled"`

	QR QRCredential `json:"qr"`

	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// QRPayload is the JSON document encoded into the ticket's QR image.
type QRPayload struct {
	TicketID    string `json:"ticketId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	LpuID       string `json:"lpuId"`
	EventID     string `json:"eventId"`
	IsUsed      bool   `json:"isUsed"`
	IsCancelled bool   `json:"isCancelled"`
}
