package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"club-platform/internal/status"
	"club-platform/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// IsUniqueViolation reports whether err is the storage layer rejecting a
// duplicate row on one of the unique indexes.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Value must be unique")
}

// PBTransactionStore is the PocketBase-backed TransactionStore.
type PBTransactionStore struct {
	app core.App
}

func NewPBTransactionStore(app core.App) *PBTransactionStore {
	return &PBTransactionStore{app: app}
}

func (s *PBTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	collection, err := s.app.FindCollectionByNameOrId("transactions")
	if err != nil {
		return fmt.Errorf("transactions.Create: find collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("order_id", tx.OrderID)
	record.Set("full_name", tx.FullName)
	record.Set("email", tx.Email)
	record.Set("phone", tx.Phone)
	record.Set("lpu_id", tx.LpuID)
	record.Set("gender", tx.Gender)
	record.Set("hosteler", tx.Hosteler)
	record.Set("hostel", tx.Hostel)
	record.Set("course", tx.Course)
	record.Set("club", tx.Club)
	record.Set("amount", tx.Amount.InexactFloat64())
	record.Set("event_id", tx.EventID)
	record.Set("event_name", tx.EventName)
	record.Set("status", string(tx.Status))
	record.Set("provider", tx.Provider)
	record.Set("gateway_ref", tx.GatewayRef)
	record.Set("payment_id", tx.PaymentID)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("transactions.Create: %w: %v", status.ErrConflict, err)
		}
		return fmt.Errorf("transactions.Create: save: %w", err)
	}

	tx.ID = record.Id
	tx.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

func (s *PBTransactionStore) FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"transactions",
		"order_id = {:orderId}",
		dbx.Params{"orderId": orderID},
	)
	if err != nil {
		return nil, fmt.Errorf("transactions.FindByOrderID: %w", status.ErrNotFound)
	}
	return transactionFromRecord(record), nil
}

func (s *PBTransactionStore) FindByGatewayRef(ctx context.Context, provider, ref string) (*models.Transaction, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"transactions",
		"provider = {:provider} && gateway_ref = {:ref}",
		dbx.Params{"provider": provider, "ref": ref},
	)
	if err != nil {
		return nil, fmt.Errorf("transactions.FindByGatewayRef: %w", status.ErrNotFound)
	}
	return transactionFromRecord(record), nil
}

func (s *PBTransactionStore) MarkStatus(ctx context.Context, orderID string, to models.TransactionStatus, paymentID string) (*models.Transaction, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"transactions",
		"order_id = {:orderId}",
		dbx.Params{"orderId": orderID},
	)
	if err != nil {
		return nil, fmt.Errorf("transactions.MarkStatus: %w", status.ErrNotFound)
	}

	current := models.TransactionStatus(record.GetString("status"))
	if !current.CanTransition(to) {
		return nil, fmt.Errorf("transactions.MarkStatus: %s -> %s: %w", current, to, status.ErrInvalidTransition)
	}

	record.Set("status", string(to))
	record.Set("completed_at", time.Now().UTC())
	if paymentID != "" {
		record.Set("payment_id", paymentID)
	}

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, fmt.Errorf("transactions.MarkStatus: save: %w", err)
	}
	return transactionFromRecord(record), nil
}

func transactionFromRecord(record *core.Record) *models.Transaction {
	tx := &models.Transaction{
		ID:      record.Id,
		OrderID: record.GetString("order_id"),
		Payer: models.Payer{
			FullName: record.GetString("full_name"),
			Email:    record.GetString("email"),
			Phone:    record.GetString("phone"),
			LpuID:    record.GetString("lpu_id"),
			Gender:   record.GetString("gender"),
			Hosteler: record.GetBool("hosteler"),
			Hostel:   record.GetString("hostel"),
			Course:   record.GetString("course"),
			Club:     record.GetString("club"),
		},
		Amount:     decimal.NewFromFloat(record.GetFloat("amount")),
		EventID:    record.GetString("event_id"),
		EventName:  record.GetString("event_name"),
		Status:     models.TransactionStatus(record.GetString("status")),
		Provider:   record.GetString("provider"),
		GatewayRef: record.GetString("gateway_ref"),
		PaymentID:  record.GetString("payment_id"),
		CreatedAt:  record.GetDateTime("created").Time(),
	}
	if completed := record.GetDateTime("completed_at"); !completed.IsZero() {
		t := completed.Time()
		tx.CompletedAt = &t
	}
	return tx
}

// PBTicketStore is the PocketBase-backed TicketStore.
type PBTicketStore struct {
	app core.App
}

func NewPBTicketStore(app core.App) *PBTicketStore {
	return &PBTicketStore{app: app}
}

func (s *PBTicketStore) Create(ctx context.Context, t *models.Ticket) error {
	collection, err := s.app.FindCollectionByNameOrId("tickets")
	if err != nil {
		return fmt.Errorf("tickets.Create: find collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("ticket_id", t.TicketID)
	record.Set("full_name", t.FullName)
	record.Set("email", t.Email)
	record.Set("phone", t.Phone)
	record.Set("lpu_id", t.LpuID)
	record.Set("gender", t.Gender)
	record.Set("hosteler", t.Hosteler)
	record.Set("hostel", t.Hostel)
	record.Set("course", t.Course)
	record.Set("club", t.Club)
	record.Set("event_id", t.EventID)
	record.Set("event_name", t.EventName)
	record.Set("is_used", t.IsUsed)
	record.Set("is_cancelled", t.IsCancelled)
	record.Set("qr_url", t.QR.URL)
	record.Set("qr_object_id", t.QR.ObjectID)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("tickets.Create: %w: %v", status.ErrConflict, err)
		}
		return fmt.Errorf("tickets.Create: save: %w", err)
	}

	t.ID = record.Id
	t.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

func (s *PBTicketStore) FindForPayer(ctx context.Context, eventID, email, lpuID string) (*models.Ticket, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"tickets",
		"event_id = {:eventId} && (email = {:email} || lpu_id = {:lpuId}) && is_cancelled = false",
		dbx.Params{"eventId": eventID, "email": email, "lpuId": lpuID},
	)
	if err != nil {
		return nil, fmt.Errorf("tickets.FindForPayer: %w", status.ErrNotFound)
	}
	return ticketFromRecord(record), nil
}

func (s *PBTicketStore) FindByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"tickets",
		"ticket_id = {:ticketId}",
		dbx.Params{"ticketId": ticketID},
	)
	if err != nil {
		return nil, fmt.Errorf("tickets.FindByTicketID: %w", status.ErrNotFound)
	}
	return ticketFromRecord(record), nil
}

func (s *PBTicketStore) SetQR(ctx context.Context, id string, qr models.QRCredential) error {
	record, err := s.app.FindRecordById("tickets", id)
	if err != nil {
		return fmt.Errorf("tickets.SetQR: %w", status.ErrNotFound)
	}

	record.Set("qr_url", qr.URL)
	record.Set("qr_object_id", qr.ObjectID)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("tickets.SetQR: save: %w", err)
	}
	return nil
}

func (s *PBTicketStore) Delete(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("tickets", id)
	if err != nil {
		return fmt.Errorf("tickets.Delete: %w", status.ErrNotFound)
	}
	if err := s.app.DeleteWithContext(ctx, record); err != nil {
		return fmt.Errorf("tickets.Delete: %w", err)
	}
	return nil
}

func (s *PBTicketStore) MarkUsed(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("tickets", id)
	if err != nil {
		return fmt.Errorf("tickets.MarkUsed: %w", status.ErrNotFound)
	}
	if record.GetBool("is_cancelled") {
		return fmt.Errorf("tickets.MarkUsed: ticket cancelled: %w", status.ErrConflict)
	}
	if record.GetBool("is_used") {
		return fmt.Errorf("tickets.MarkUsed: ticket already used: %w", status.ErrConflict)
	}

	record.Set("is_used", true)
	record.Set("used_at", time.Now().UTC())

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("tickets.MarkUsed: save: %w", err)
	}
	return nil
}

func (s *PBTicketStore) CountForEvent(ctx context.Context, eventID string) (int, error) {
	var total struct {
		Count int `db:"count"`
	}
	err := s.app.DB().
		Select("count(*) as count").
		From("tickets").
		Where(dbx.HashExp{"event_id": eventID, "is_cancelled": false}).
		One(&total)
	if err != nil {
		return 0, fmt.Errorf("tickets.CountForEvent: %w", err)
	}
	return total.Count, nil
}

func ticketFromRecord(record *core.Record) *models.Ticket {
	t := &models.Ticket{
		ID:       record.Id,
		TicketID: record.GetString("ticket_id"),
		Payer: models.Payer{
			FullName: record.GetString("full_name"),
			Email:    record.GetString("email"),
			Phone:    record.GetString("phone"),
			LpuID:    record.GetString("lpu_id"),
			Gender:   record.GetString("gender"),
			Hosteler: record.GetBool("hosteler"),
			Hostel:   record.GetString("hostel"),
			Course:   record.GetString("course"),
			Club:     record.GetString("club"),
		},
		EventID:     record.GetString("event_id"),
		EventName:   record.GetString("event_name"),
		IsUsed:      record.GetBool("is_used"),
		IsCancelled: record.GetBool("is_cancelled"),
		QR: models.QRCredential{
			URL:      record.GetString("qr_url"),
			ObjectID: record.GetString("qr_object_id"),
		},
		CreatedAt: record.GetDateTime("created").Time(),
	}
	if used := record.GetDateTime("used_at"); !used.IsZero() {
		u := used.Time()
		t.UsedAt = &u
	}
	return t
}

// PBEventStore is the PocketBase-backed EventStore.
type PBEventStore struct {
	app core.App
}

func NewPBEventStore(app core.App) *PBEventStore {
	return &PBEventStore{app: app}
}

func (s *PBEventStore) Create(ctx context.Context, ev *models.Event) error {
	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return fmt.Errorf("events.Create: find collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("name", ev.Name)
	record.Set("description", ev.Description)
	record.Set("venue", ev.Venue)
	record.Set("start_time", ev.StartTime)
	record.Set("end_time", ev.EndTime)
	record.Set("price", ev.Price.InexactFloat64())
	record.Set("status", ev.Status)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("events.Create: save: %w", err)
	}
	ev.ID = record.Id
	return nil
}

func (s *PBEventStore) FindByID(ctx context.Context, id string) (*models.Event, error) {
	record, err := s.app.FindRecordById("events", id)
	if err != nil {
		return nil, fmt.Errorf("events.FindByID: %w", status.ErrNotFound)
	}
	return eventFromRecord(record), nil
}

func (s *PBEventStore) List(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	records, err := s.app.FindRecordsByFilter(
		"events",
		"status != 'draft'",
		"-start_time",
		limit,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("events.List: %w", err)
	}

	events := make([]*models.Event, 0, len(records))
	for _, record := range records {
		events = append(events, eventFromRecord(record))
	}
	return events, nil
}

func eventFromRecord(record *core.Record) *models.Event {
	return &models.Event{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Description: record.GetString("description"),
		Venue:       record.GetString("venue"),
		StartTime:   record.GetDateTime("start_time").Time(),
		EndTime:     record.GetDateTime("end_time").Time(),
		Price:       decimal.NewFromFloat(record.GetFloat("price")),
		Status:      record.GetString("status"),
	}
}

// PBCouponStore is the PocketBase-backed CouponStore.
type PBCouponStore struct {
	app core.App
}

func NewPBCouponStore(app core.App) *PBCouponStore {
	return &PBCouponStore{app: app}
}

func (s *PBCouponStore) Create(ctx context.Context, c *models.Coupon) error {
	collection, err := s.app.FindCollectionByNameOrId("coupons")
	if err != nil {
		return fmt.Errorf("coupons.Create: find collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("code", strings.ToUpper(c.Code))
	record.Set("discount_percent", c.DiscountPercent.InexactFloat64())
	record.Set("event_id", c.EventID)
	record.Set("max_uses", c.MaxUses)
	record.Set("used", c.Used)
	record.Set("active", c.Active)
	record.Set("expires_at", c.ExpiresAt)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("coupons.Create: %w: %v", status.ErrConflict, err)
		}
		return fmt.Errorf("coupons.Create: save: %w", err)
	}
	c.ID = record.Id
	return nil
}

func (s *PBCouponStore) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"coupons",
		"code = {:code}",
		dbx.Params{"code": strings.ToUpper(code)},
	)
	if err != nil {
		return nil, fmt.Errorf("coupons.FindByCode: %w", status.ErrNotFound)
	}

	return &models.Coupon{
		ID:              record.Id,
		Code:            record.GetString("code"),
		DiscountPercent: decimal.NewFromFloat(record.GetFloat("discount_percent")),
		EventID:         record.GetString("event_id"),
		MaxUses:         record.GetInt("max_uses"),
		Used:            record.GetInt("used"),
		Active:          record.GetBool("active"),
		ExpiresAt:       record.GetDateTime("expires_at").Time(),
	}, nil
}

func (s *PBCouponStore) IncrementUsed(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById("coupons", id)
	if err != nil {
		return fmt.Errorf("coupons.IncrementUsed: %w", status.ErrNotFound)
	}
	record.Set("used", record.GetInt("used")+1)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return fmt.Errorf("coupons.IncrementUsed: save: %w", err)
	}
	return nil
}
