package service

import (
	"context"

	"docportal/internal/appointments/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
)

type AppointmentService interface {
	GetOptionsForDate(ctx context.Context, date string) ([]*model.AppointmentOption, error)
	GetSpecialties(ctx context.Context) ([]*model.Specialty, error)
}

// BookingFinder is the slice of the bookings repository the
// availability computation needs.
type BookingFinder interface {
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
}

type appointmentService struct {
	repo     repository.AppointmentOptionRepository
	bookings BookingFinder
	cfg      *config.Config
}

func NewAppointmentService(repo repository.AppointmentOptionRepository, bookings BookingFinder, cfg *config.Config) AppointmentService {
	return &appointmentService{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
	}
}

// GetOptionsForDate returns the catalog with every slot removed that a
// same-day booking already holds. The date is an opaque label matched
// for exact equality; an empty date filters nothing.
func (s *appointmentService) GetOptionsForDate(ctx context.Context, date string) ([]*model.AppointmentOption, error) {
	options, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load appointment options", "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointment options", err)
	}

	var booked []*model.Booking
	if date != "" {
		booked, err = s.bookings.FindByDate(ctx, date)
		if err != nil {
			s.cfg.Log.Error("Failed to load bookings for date", "date", date, "error", err)
			return nil, apperrors.Internal("Failed to retrieve bookings", err)
		}
	}

	return subtractBookedSlots(options, booked), nil
}

func (s *appointmentService) GetSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	specialties, err := s.repo.FindSpecialties(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load specialties", "error", err)
		return nil, apperrors.Internal("Failed to retrieve specialties", err)
	}

	return specialties, nil
}

// subtractBookedSlots removes each booking's (treatment, schedule)
// pair from the matching option's slot sequence. Pure: the input
// options are not mutated. Remaining slots keep their catalog order,
// removing an absent slot is a no-op, and applying the same bookings
// twice yields the same result.
func subtractBookedSlots(options []*model.AppointmentOption, bookings []*model.Booking) []*model.AppointmentOption {
	taken := make(map[string]map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if taken[b.Treatment] == nil {
			taken[b.Treatment] = make(map[string]struct{})
		}
		taken[b.Treatment][b.Schedule] = struct{}{}
	}

	out := make([]*model.AppointmentOption, 0, len(options))
	for _, opt := range options {
		view := *opt
		if booked, ok := taken[opt.Name]; ok {
			remaining := make([]string, 0, len(opt.Slots))
			for _, slot := range opt.Slots {
				if _, isTaken := booked[slot]; !isTaken {
					remaining = append(remaining, slot)
				}
			}
			view.Slots = remaining
		}
		out = append(out, &view)
	}

	return out
}
