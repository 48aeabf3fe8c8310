package service

import (
	"context"
	"errors"
	"math"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/payments/gateway"
	"docportal/internal/payments/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

// BookingMarker is the slice of the bookings repository payment
// recording needs.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) error
}

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	Record(ctx context.Context, payment *model.Payment) (*RecordResult, error)
	GetByBooking(ctx context.Context, bookingID, requesterEmail string) ([]*model.Payment, error)
}

// RecordResult carries both outcomes of payment recording: the
// booking update and the inserted payment record.
type RecordResult struct {
	BookingUpdated bool   `json:"bookingUpdated"`
	InsertedID     string `json:"insertedId"`
}

type paymentService struct {
	repo     repository.PaymentRepository
	bookings BookingMarker
	gateway  gateway.PaymentGateway
	events   events.Publisher
	cfg      *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingMarker,
	gw gateway.PaymentGateway,
	publisher events.Publisher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:     repo,
		bookings: bookings,
		gateway:  gw,
		events:   publisher,
		cfg:      cfg,
	}
}

// CreateIntent asks the gateway for a payment intent sized in cents
// and hands the client secret back verbatim.
func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", apperrors.InvalidInput("price must be positive")
	}

	amountCents := int64(math.Round(price * 100))
	clientSecret, err := s.gateway.CreateIntent(ctx, amountCents)
	if err != nil {
		s.cfg.Log.Error("Failed to create payment intent", "error", err)
		return "", apperrors.Internal("Failed to create payment intent", err)
	}

	return clientSecret, nil
}

// Record marks the booking paid and appends the payment record. No
// idempotency check guards against recording the same confirmation
// twice; the booking update itself is a plain $set and harmless to
// repeat.
func (s *paymentService) Record(ctx context.Context, payment *model.Payment) (*RecordResult, error) {
	payment.Email = sanitizer.NormalizeEmail(payment.Email)

	if payment.BookingID == "" {
		return nil, apperrors.InvalidInput("booking_id is required")
	}
	if payment.TransactionID == "" {
		return nil, apperrors.InvalidInput("transaction_id is required")
	}

	if err := s.bookings.MarkPaid(ctx, payment.BookingID, payment.TransactionID); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", payment.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to mark booking paid", "booking_id", payment.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.cfg.Log.Error("Failed to record payment", "booking_id", payment.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to record payment", err)
	}

	s.publish(ctx, payment)

	s.cfg.Log.Info("Payment recorded",
		"id", payment.ID,
		"booking_id", payment.BookingID,
		"transaction_id", payment.TransactionID,
	)
	return &RecordResult{
		BookingUpdated: true,
		InsertedID:     payment.ID,
	}, nil
}

// GetByBooking returns the requester's payment records for one
// booking. Records other identities made are withheld, not an error.
func (s *paymentService) GetByBooking(ctx context.Context, bookingID, requesterEmail string) ([]*model.Payment, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("booking_id is required")
	}

	payments, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list payments", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve payments", err)
	}

	requester := sanitizer.NormalizeEmail(requesterEmail)
	owned := make([]*model.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Email == requester {
			owned = append(owned, p)
		}
	}

	return owned, nil
}

func (s *paymentService) publish(ctx context.Context, payment *model.Payment) {
	event, err := events.NewEvent(events.TypePaymentRecorded, payment.BookingID, payment)
	if err != nil {
		s.cfg.Log.Warn("Failed to build event", "event_type", events.TypePaymentRecorded, "error", err)
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", events.TypePaymentRecorded, "booking_id", payment.BookingID, "error", err)
	}
}
