package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/platewise/platewise/internal/authz"
	"github.com/platewise/platewise/internal/metrics"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/repository"
)

// UserAdminService handles account administration: listing users, role
// changes, and deletions. Every operation requires the admin role.
type UserAdminService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewUserAdminService creates a new UserAdminService.
func NewUserAdminService(repo *repository.Repository, recorder metrics.Recorder) *UserAdminService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserAdminService{
		repo:    repo,
		metrics: recorder,
	}
}

// ListUsers returns every user account.
func (s *UserAdminService) ListUsers(ctx context.Context, actor model.Actor) ([]*model.User, error) {
	if !authz.CanManageUsers(actor) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role and returns the updated record.
func (s *UserAdminService) UpdateRole(ctx context.Context, actor model.Actor, userID int64, role model.Role) (*model.User, error) {
	if !authz.CanManageUsers(actor) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	if !role.IsValid() {
		return nil, newValidationError("role")
	}

	if err := s.repo.UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user account. Self-deletion is denied outright,
// even when no other admin exists, so the policy check runs before any
// store access. The delete cascades to the user's profile and meal plans.
func (s *UserAdminService) DeleteUser(ctx context.Context, actor model.Actor, userID int64) error {
	if !authz.CanDeleteUser(actor, userID) {
		s.metrics.IncForbidden()
		return ErrForbidden
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
