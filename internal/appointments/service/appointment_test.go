package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"docportal/pkg/config"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockOptionRepository struct {
	findAllFunc         func(ctx context.Context) ([]*model.AppointmentOption, error)
	findSpecialtiesFunc func(ctx context.Context) ([]*model.Specialty, error)
}

func (m *mockOptionRepository) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.AppointmentOption{}, nil
}

func (m *mockOptionRepository) FindSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	if m.findSpecialtiesFunc != nil {
		return m.findSpecialtiesFunc(ctx)
	}
	return []*model.Specialty{}, nil
}

type mockBookingFinder struct {
	findByDateFunc func(ctx context.Context, date string) ([]*model.Booking, error)
	calls          int
}

func (m *mockBookingFinder) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	m.calls++
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return []*model.Booking{}, nil
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

func TestSubtractBookedSlots(t *testing.T) {
	tests := []struct {
		name     string
		options  []*model.AppointmentOption
		bookings []*model.Booking
		want     map[string][]string
	}{
		{
			name: "removes exactly the booked slot",
			options: []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
			},
			bookings: []*model.Booking{
				{Treatment: "Cleaning", Schedule: "10am"},
			},
			want: map[string][]string{"Cleaning": {"9am", "11am"}},
		},
		{
			name: "preserves catalog order of remaining slots",
			options: []*model.AppointmentOption{
				{Name: "Whitening", Slots: []string{"8am", "9am", "10am", "11am", "12pm"}},
			},
			bookings: []*model.Booking{
				{Treatment: "Whitening", Schedule: "9am"},
				{Treatment: "Whitening", Schedule: "11am"},
			},
			want: map[string][]string{"Whitening": {"8am", "10am", "12pm"}},
		},
		{
			name: "removing an absent slot is a no-op",
			options: []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am", "10am"}},
			},
			bookings: []*model.Booking{
				{Treatment: "Cleaning", Schedule: "5pm"},
			},
			want: map[string][]string{"Cleaning": {"9am", "10am"}},
		},
		{
			name: "bookings for other treatments leave the option alone",
			options: []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am", "10am"}},
				{Name: "Whitening", Slots: []string{"9am", "10am"}},
			},
			bookings: []*model.Booking{
				{Treatment: "Whitening", Schedule: "9am"},
			},
			want: map[string][]string{
				"Cleaning":  {"9am", "10am"},
				"Whitening": {"10am"},
			},
		},
		{
			name: "no bookings returns the full catalog",
			options: []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am"}},
			},
			bookings: nil,
			want:     map[string][]string{"Cleaning": {"9am"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subtractBookedSlots(tt.options, tt.bookings)

			if len(got) != len(tt.options) {
				t.Fatalf("expected %d options, got %d", len(tt.options), len(got))
			}
			for _, opt := range got {
				want, ok := tt.want[opt.Name]
				if !ok {
					t.Fatalf("unexpected option %q in result", opt.Name)
				}
				if !reflect.DeepEqual(opt.Slots, want) {
					t.Errorf("option %q: expected slots %v, got %v", opt.Name, want, opt.Slots)
				}
			}
		})
	}
}

func TestSubtractBookedSlots_Idempotent(t *testing.T) {
	options := []*model.AppointmentOption{
		{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
	}
	bookings := []*model.Booking{
		{Treatment: "Cleaning", Schedule: "10am"},
	}

	once := subtractBookedSlots(options, bookings)
	twice := subtractBookedSlots(once, bookings)

	if !reflect.DeepEqual(once[0].Slots, twice[0].Slots) {
		t.Errorf("expected idempotent result, got %v then %v", once[0].Slots, twice[0].Slots)
	}
}

func TestSubtractBookedSlots_DoesNotMutateInput(t *testing.T) {
	options := []*model.AppointmentOption{
		{Name: "Cleaning", Slots: []string{"9am", "10am"}},
	}
	bookings := []*model.Booking{
		{Treatment: "Cleaning", Schedule: "9am"},
	}

	subtractBookedSlots(options, bookings)

	if !reflect.DeepEqual(options[0].Slots, []string{"9am", "10am"}) {
		t.Errorf("input catalog was mutated: %v", options[0].Slots)
	}
}

func TestGetOptionsForDate_EmptyDateSkipsBookingLookup(t *testing.T) {
	repo := &mockOptionRepository{
		findAllFunc: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am"}},
			}, nil
		},
	}
	finder := &mockBookingFinder{}

	svc := NewAppointmentService(repo, finder, testConfig())

	options, err := svc.GetOptionsForDate(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if finder.calls != 0 {
		t.Errorf("expected no booking lookup for empty date, got %d calls", finder.calls)
	}
	if len(options) != 1 || len(options[0].Slots) != 1 {
		t.Errorf("expected unfiltered catalog, got %+v", options)
	}
}

func TestGetOptionsForDate_FiltersByDate(t *testing.T) {
	repo := &mockOptionRepository{
		findAllFunc: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return []*model.AppointmentOption{
				{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
			}, nil
		},
	}

	var requestedDate string
	finder := &mockBookingFinder{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			requestedDate = date
			return []*model.Booking{
				{Treatment: "Cleaning", Schedule: "10am", AppointmentDate: date},
			}, nil
		},
	}

	svc := NewAppointmentService(repo, finder, testConfig())

	options, err := svc.GetOptionsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedDate != "2024-01-01" {
		t.Errorf("expected lookup for 2024-01-01, got %q", requestedDate)
	}
	if !reflect.DeepEqual(options[0].Slots, []string{"9am", "11am"}) {
		t.Errorf("expected slots [9am 11am], got %v", options[0].Slots)
	}
}

func TestGetOptionsForDate_RepositoryError(t *testing.T) {
	repo := &mockOptionRepository{
		findAllFunc: func(ctx context.Context) ([]*model.AppointmentOption, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewAppointmentService(repo, &mockBookingFinder{}, testConfig())

	if _, err := svc.GetOptionsForDate(context.Background(), "2024-01-01"); err == nil {
		t.Fatal("expected error when repository fails")
	}
}
