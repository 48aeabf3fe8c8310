package service

import (
	"context"
	"net/http"
	"testing"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/internal/doctors/repository"
	"docportal/internal/doctors/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockDoctorRepository struct {
	createFunc  func(ctx context.Context, doctor *model.Doctor) error
	findAllFunc func(ctx context.Context) ([]*model.Doctor, error)
	deleteFunc  func(ctx context.Context, id string) error
	created     int
}

var _ repository.DoctorRepository = (*mockDoctorRepository)(nil)

func (m *mockDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	m.created++
	if m.createFunc != nil {
		return m.createFunc(ctx, doctor)
	}
	doctor.ID = "650000000000000000000010"
	return nil
}

func (m *mockDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Doctor{}, nil
}

func (m *mockDoctorRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
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

func newTestService(repo *mockDoctorRepository) DoctorService {
	cfg := testConfig()
	return NewDoctorService(repo, validator.NewDoctorValidator(cfg.Log), cfg)
}

func TestCreate_SanitizesBeforeStoring(t *testing.T) {
	var stored *model.Doctor
	repo := &mockDoctorRepository{
		createFunc: func(ctx context.Context, doctor *model.Doctor) error {
			stored = doctor
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Doctor{
		Name:      "  Dr.  John Smith ",
		Email:     " John@Clinic.COM ",
		Specialty: " Oral  Surgery ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if stored.Name != "Dr. John Smith" {
		t.Errorf("expected normalized name, got %q", stored.Name)
	}
	if stored.Email != "john@clinic.com" {
		t.Errorf("expected normalized email, got %q", stored.Email)
	}
	if stored.Specialty != "Oral Surgery" {
		t.Errorf("expected normalized specialty, got %q", stored.Specialty)
	}
}

func TestCreate_InvalidDoctorRejected(t *testing.T) {
	repo := &mockDoctorRepository{}
	svc := newTestService(repo)

	tests := []struct {
		name   string
		doctor *model.Doctor
	}{
		{"missing name", &model.Doctor{Email: "a@x.com", Specialty: "Orthodontics"}},
		{"bad email", &model.Doctor{Name: "Dr. Smith", Email: "nope", Specialty: "Orthodontics"}},
		{"missing specialty", &model.Doctor{Name: "Dr. Smith", Email: "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.doctor)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected validation error code, got %s", appErr.Code)
			}
		})
	}

	if repo.created != 0 {
		t.Errorf("invalid doctors must not reach the repository, got %d inserts", repo.created)
	}
}

func TestDelete_UnknownDoctorIs404(t *testing.T) {
	repo := &mockDoctorRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return doctorserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "650000000000000000000010")
	if err == nil {
		t.Fatal("expected error for unknown doctor")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestDelete_InvalidIDRejected(t *testing.T) {
	repo := &mockDoctorRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return doctorserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"malformed id", "not-hex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Delete(context.Background(), tt.id)
			if err == nil {
				t.Fatal("expected error")
			}
			if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != http.StatusBadRequest {
				t.Errorf("expected 400, got %v", err)
			}
		})
	}
}
