package service

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/repository"
	"docportal/internal/bookings/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/events"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type BookingService interface {
	Admit(ctx context.Context, booking *model.Booking) (*model.AdmissionResult, error)
	GetByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	GetByID(ctx context.Context, id, requesterEmail string) (*model.Booking, error)
	Delete(ctx context.Context, id, requesterEmail string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Admit decides whether a candidate booking is accepted. A duplicate
// (email, treatment, date) yields an unacknowledged result with a
// message the portal renders, not an error. The requested schedule is
// trusted from the caller and not re-checked against availability.
func (s *bookingService) Admit(ctx context.Context, booking *model.Booking) (*model.AdmissionResult, error) {
	s.sanitize(booking)
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByEmailTreatmentDate(ctx, booking.Email, booking.Treatment, booking.AppointmentDate)
	if err != nil && !errors.Is(err, bookingserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check existing bookings", "error", err)
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	if existing != nil {
		return s.duplicateResult(booking.Treatment), nil
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// A racing request may have inserted between the check and the
		// write; the unique index turns the loser into the same
		// unacknowledged result the read-side check produces.
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			return s.duplicateResult(booking.Treatment), nil
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.publish(ctx, events.TypeBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"treatment", booking.Treatment,
		"appointment_date", booking.AppointmentDate,
	)
	return &model.AdmissionResult{
		Acknowledged: true,
		InsertedID:   booking.ID,
	}, nil
}

func (s *bookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) GetByID(ctx context.Context, id, requesterEmail string) (*model.Booking, error) {
	booking, err := s.findOwned(ctx, id, requesterEmail)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id, requesterEmail string) error {
	booking, err := s.findOwned(ctx, id, requesterEmail)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.publish(ctx, events.TypeBookingCancelled, booking)

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// findOwned resolves a booking and enforces that the requester is its
// owner; a mismatch reads as forbidden, not as not-found.
func (s *bookingService) findOwned(ctx context.Context, id, requesterEmail string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if booking.Email != sanitizer.NormalizeEmail(requesterEmail) {
		return nil, apperrors.Forbidden("Forbidden access")
	}

	return booking, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.PatientName = sanitizer.NormalizeName(b.PatientName)
	b.Treatment = sanitizer.NormalizeLabel(b.Treatment)
	b.Schedule = sanitizer.NormalizeLabel(b.Schedule)
	b.AppointmentDate = sanitizer.NormalizeLabel(b.AppointmentDate)
}

func (s *bookingService) duplicateResult(treatment string) *model.AdmissionResult {
	return &model.AdmissionResult{
		Acknowledged: false,
		Message:      fmt.Sprintf("You already booked %s for this day.", treatment),
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event, err := events.NewEvent(eventType, booking.ID, booking)
	if err != nil {
		s.cfg.Log.Warn("Failed to build event", "event_type", eventType, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish event", "event_type", eventType, "booking_id", booking.ID, "error", err)
	}
}
