package service

import (
	"context"
	"errors"

	userserrors "docportal/internal/users/errors"
	"docportal/internal/users/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type UserService interface {
	Register(ctx context.Context, user *model.User) (bool, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ToggleRole(ctx context.Context, targetEmail, changedBy string) (*model.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo: repo,
		cfg:  cfg,
	}
}

// Register stores a user once per uid. Re-registering an existing uid
// is a no-op, not an error: the portal posts on every sign-in.
func (s *userService) Register(ctx context.Context, user *model.User) (bool, error) {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)

	if user.UID == "" {
		return false, apperrors.InvalidInput("uid is required")
	}
	if user.Email == "" {
		return false, apperrors.InvalidInput("email is required")
	}

	created, err := s.repo.CreateIfAbsent(ctx, user)
	if err != nil {
		s.cfg.Log.Error("Failed to register user", "uid", user.UID, "error", err)
		return false, apperrors.Internal("Failed to register user", err)
	}

	if created {
		s.cfg.Log.Info("User registered", "uid", user.UID)
	}
	return created, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	return users, nil
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

// ToggleRole flips the target between admin and regular user and
// records who changed it.
func (s *userService) ToggleRole(ctx context.Context, targetEmail, changedBy string) (*model.User, error) {
	targetEmail = sanitizer.NormalizeEmail(targetEmail)
	if targetEmail == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	user, err := s.repo.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to load user for role toggle", "email", targetEmail, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	newRole := model.RoleAdmin
	if user.IsAdmin() {
		newRole = ""
	}

	if err := s.repo.UpdateRole(ctx, user.UID, newRole, changedBy); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to update user role", "uid", user.UID, "error", err)
		return nil, apperrors.Internal("Failed to update user role", err)
	}

	user.Role = newRole
	user.RoleChangedBy = changedBy

	s.cfg.Log.Info("User role changed",
		"uid", user.UID,
		"role", newRole,
		"changed_by", changedBy,
	)
	return user, nil
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Internal("Failed to retrieve user", err)
	}

	return user.IsAdmin(), nil
}
