package service

import (
	"context"
	"errors"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/internal/doctors/repository"
	"docportal/internal/doctors/validator"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetAll(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id string) error
}

type doctorService struct {
	repo      repository.DoctorRepository
	validator *validator.DoctorValidator
	cfg       *config.Config
}

func NewDoctorService(repo repository.DoctorRepository, validator *validator.DoctorValidator, cfg *config.Config) DoctorService {
	return &doctorService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.Name = sanitizer.NormalizeName(doctor.Name)
	doctor.Email = sanitizer.NormalizeEmail(doctor.Email)
	doctor.Specialty = sanitizer.NormalizeLabel(doctor.Specialty)

	if err := s.validator.Validate(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "error", err)
		return apperrors.Validation("Doctor validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		s.cfg.Log.Error("Failed to create doctor", "error", err)
		return apperrors.Internal("Failed to create doctor", err)
	}

	s.cfg.Log.Info("Doctor created successfully", "id", doctor.ID, "specialty", doctor.Specialty)
	return nil
}

func (s *doctorService) GetAll(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}

	return doctors, nil
}

func (s *doctorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Doctor", id)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid doctor ID format")
		}
		s.cfg.Log.Error("Failed to delete doctor", "id", id, "error", err)
		return apperrors.Internal("Failed to delete doctor", err)
	}

	s.cfg.Log.Info("Doctor deleted successfully", "id", id)
	return nil
}
