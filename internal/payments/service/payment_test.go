package service

import (
	"context"
	"net/http"
	"testing"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockPaymentRepository struct {
	createFunc          func(ctx context.Context, payment *model.Payment) error
	findByBookingIDFunc func(ctx context.Context, bookingID string) ([]*model.Payment, error)
	created             int
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	m.created++
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	payment.ID = "650000000000000000000099"
	return nil
}

func (m *mockPaymentRepository) FindByBookingID(ctx context.Context, bookingID string) ([]*model.Payment, error) {
	if m.findByBookingIDFunc != nil {
		return m.findByBookingIDFunc(ctx, bookingID)
	}
	return []*model.Payment{}, nil
}

type mockBookingMarker struct {
	markPaidFunc func(ctx context.Context, id, transactionID string) error
	marked       int
}

func (m *mockBookingMarker) MarkPaid(ctx context.Context, id, transactionID string) error {
	m.marked++
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, transactionID)
	}
	return nil
}

type mockGateway struct {
	createIntentFunc func(ctx context.Context, amountCents int64) (string, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, amountCents)
	}
	return "pi_secret", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(repo *mockPaymentRepository, bookings *mockBookingMarker, gw *mockGateway) PaymentService {
	return NewPaymentService(repo, bookings, gw, events.NoopPublisher{}, testConfig())
}

func TestCreateIntent_ConvertsPriceToCents(t *testing.T) {
	var gotCents int64
	gw := &mockGateway{
		createIntentFunc: func(ctx context.Context, amountCents int64) (string, error) {
			gotCents = amountCents
			return "pi_secret_123", nil
		},
	}
	svc := newTestService(&mockPaymentRepository{}, &mockBookingMarker{}, gw)

	secret, err := svc.CreateIntent(context.Background(), 19.99)
	if err != nil {
		t.Fatalf("CreateIntent returned error: %v", err)
	}
	if secret != "pi_secret_123" {
		t.Errorf("expected client secret passed through, got %q", secret)
	}
	if gotCents != 1999 {
		t.Errorf("expected 1999 cents, got %d", gotCents)
	}
}

func TestCreateIntent_RejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(&mockPaymentRepository{}, &mockBookingMarker{}, &mockGateway{})

	for _, price := range []float64{0, -5} {
		if _, err := svc.CreateIntent(context.Background(), price); err == nil {
			t.Errorf("CreateIntent(%v): expected error", price)
		}
	}
}

func TestRecord_MarksBookingAndStoresPayment(t *testing.T) {
	repo := &mockPaymentRepository{}
	bookings := &mockBookingMarker{}
	svc := newTestService(repo, bookings, &mockGateway{})

	result, err := svc.Record(context.Background(), &model.Payment{
		BookingID:     "650000000000000000000001",
		Email:         "jane@example.com",
		Amount:        19.99,
		TransactionID: "txn_abc",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if !result.BookingUpdated {
		t.Error("expected bookingUpdated=true")
	}
	if result.InsertedID == "" {
		t.Error("expected inserted payment id")
	}
	if bookings.marked != 1 {
		t.Errorf("expected one booking update, got %d", bookings.marked)
	}
	if repo.created != 1 {
		t.Errorf("expected one payment insert, got %d", repo.created)
	}
}

func TestRecord_UnknownBookingIs404(t *testing.T) {
	bookings := &mockBookingMarker{
		markPaidFunc: func(ctx context.Context, id, transactionID string) error {
			return bookingserrors.ErrNotFound
		},
	}
	repo := &mockPaymentRepository{}
	svc := newTestService(repo, bookings, &mockGateway{})

	_, err := svc.Record(context.Background(), &model.Payment{
		BookingID:     "650000000000000000000001",
		Email:         "jane@example.com",
		TransactionID: "txn_abc",
	})
	if err == nil {
		t.Fatal("expected error for unknown booking")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404 AppError, got %v", err)
	}
	if repo.created != 0 {
		t.Error("payment must not be stored when the booking update fails")
	}
}

func TestGetByBooking_ReturnsOnlyRequesterRecords(t *testing.T) {
	repo := &mockPaymentRepository{
		findByBookingIDFunc: func(ctx context.Context, bookingID string) ([]*model.Payment, error) {
			return []*model.Payment{
				{ID: "p1", BookingID: bookingID, Email: "jane@example.com", TransactionID: "txn_1"},
				{ID: "p2", BookingID: bookingID, Email: "other@example.com", TransactionID: "txn_2"},
			}, nil
		},
	}
	svc := newTestService(repo, &mockBookingMarker{}, &mockGateway{})

	payments, err := svc.GetByBooking(context.Background(), "650000000000000000000001", "Jane@Example.com")
	if err != nil {
		t.Fatalf("GetByBooking returned error: %v", err)
	}
	if len(payments) != 1 || payments[0].ID != "p1" {
		t.Errorf("expected only the requester's record, got %+v", payments)
	}
}

func TestGetByBooking_MissingIDRejected(t *testing.T) {
	svc := newTestService(&mockPaymentRepository{}, &mockBookingMarker{}, &mockGateway{})

	if _, err := svc.GetByBooking(context.Background(), "", "jane@example.com"); !apperrors.IsAppError(err) {
		t.Errorf("expected AppError for missing booking id, got %v", err)
	}
}

func TestRecord_MissingFieldsRejected(t *testing.T) {
	svc := newTestService(&mockPaymentRepository{}, &mockBookingMarker{}, &mockGateway{})

	tests := []struct {
		name    string
		payment *model.Payment
	}{
		{"missing booking id", &model.Payment{TransactionID: "txn_abc"}},
		{"missing transaction id", &model.Payment{BookingID: "650000000000000000000001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Record(context.Background(), tt.payment); !apperrors.IsAppError(err) {
				t.Errorf("expected AppError, got %v", err)
			}
		})
	}
}
