package services

import (
	"context"

	"club-platform/internal/gateway"
	"club-platform/models"

	"github.com/stretchr/testify/mock"
)

type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionStore) FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	args := m.Called(ctx, orderID)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionStore) FindByGatewayRef(ctx context.Context, provider, ref string) (*models.Transaction, error) {
	args := m.Called(ctx, provider, ref)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionStore) MarkStatus(ctx context.Context, orderID string, to models.TransactionStatus, paymentID string) (*models.Transaction, error) {
	args := m.Called(ctx, orderID, to, paymentID)
	if tx, ok := args.Get(0).(*models.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) Create(ctx context.Context, t *models.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketStore) FindForPayer(ctx context.Context, eventID, email, lpuID string) (*models.Ticket, error) {
	args := m.Called(ctx, eventID, email, lpuID)
	if t, ok := args.Get(0).(*models.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketStore) FindByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if t, ok := args.Get(0).(*models.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketStore) SetQR(ctx context.Context, id string, qr models.QRCredential) error {
	args := m.Called(ctx, id, qr)
	return args.Error(0)
}

func (m *MockTicketStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketStore) MarkUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketStore) CountForEvent(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(ctx context.Context, ev *models.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventStore) FindByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if ev, ok := args.Get(0).(*models.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventStore) List(ctx context.Context, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, limit)
	if evs, ok := args.Get(0).([]*models.Event); ok {
		return evs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) Create(ctx context.Context, c *models.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponStore) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if c, ok := args.Get(0).(*models.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponStore) IncrementUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockQRProvider struct {
	mock.Mock
}

func (m *MockQRProvider) Generate(ctx context.Context, t *models.Ticket) (models.QRCredential, error) {
	args := m.Called(ctx, t)
	if qr, ok := args.Get(0).(models.QRCredential); ok {
		return qr, args.Error(1)
	}
	return models.QRCredential{}, args.Error(1)
}

func (m *MockQRProvider) Destroy(ctx context.Context, objectID string) error {
	args := m.Called(ctx, objectID)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendTicket(ctx context.Context, t *models.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PaymentSucceeded(orderID string, t *models.Ticket) {
	m.Called(orderID, t)
}

func (m *MockNotifier) PaymentFailed(orderID string) {
	m.Called(orderID)
}

func (m *MockNotifier) PostPublished(p *models.Post) {
	m.Called(p)
}

type MockGateway struct {
	mock.Mock
	provider gateway.Provider
}

func (m *MockGateway) Provider() gateway.Provider {
	return m.provider
}

func (m *MockGateway) CreateOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.OrderSession, error) {
	args := m.Called(ctx, req)
	if s, ok := args.Get(0).(*gateway.OrderSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CheckPayment(ctx context.Context, ref, paymentID string) (*gateway.StatusResult, error) {
	args := m.Called(ctx, ref, paymentID)
	if r, ok := args.Get(0).(*gateway.StatusResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) VerifyWebhook(body []byte, headers map[string]string) bool {
	args := m.Called(body, headers)
	return args.Bool(0)
}

func (m *MockGateway) Close(ctx context.Context) error {
	return nil
}

// stubFactory hands back pre-built gateways so tests can register mocks into
// a real Registry.
type stubFactory struct {
	gateways map[gateway.Provider]gateway.Gateway
}

func (f *stubFactory) CreateGateway(_ context.Context, provider gateway.Provider, _ any) (gateway.Gateway, error) {
	return f.gateways[provider], nil
}

func (f *stubFactory) SupportedProviders() []gateway.Provider {
	providers := make([]gateway.Provider, 0, len(f.gateways))
	for p := range f.gateways {
		providers = append(providers, p)
	}
	return providers
}

func newTestRegistry(gateways map[gateway.Provider]gateway.Gateway) *gateway.Registry {
	registry := gateway.NewRegistry(&stubFactory{gateways: gateways})
	for p := range gateways {
		_ = registry.Register(context.Background(), p, nil)
	}
	return registry
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, orderID, paymentID string) (*VerifyResult, error) {
	args := m.Called(ctx, orderID, paymentID)
	if r, ok := args.Get(0).(*VerifyResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
