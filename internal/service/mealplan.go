package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/platewise/platewise/internal/authz"
	"github.com/platewise/platewise/internal/metrics"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/repository"
)

// ErrMealPlanNotFound indicates the meal plan id does not resolve.
var ErrMealPlanNotFound = errors.New("meal plan not found")

// MealPlanService orchestrates meal plan creation, assignment, update, and
// deletion. Every mutating operation re-reads the plan from the store
// before the policy check.
type MealPlanService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(repo *repository.Repository, recorder metrics.Recorder) *MealPlanService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MealPlanService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateMealPlanInput defines input for creating a meal plan.
type CreateMealPlanInput struct {
	UserID    int64
	Breakfast string
	Lunch     string
	Dinner    string
	Snacks    *string
	Notes     *string
	StartDate time.Time
	EndDate   *time.Time
}

// validate reports the required fields that are missing.
func (in CreateMealPlanInput) validate() *ValidationError {
	var missing []string
	if in.UserID <= 0 {
		missing = append(missing, "user_id")
	}
	if in.Breakfast == "" {
		missing = append(missing, "breakfast")
	}
	if in.Lunch == "" {
		missing = append(missing, "lunch")
	}
	if in.Dinner == "" {
		missing = append(missing, "dinner")
	}
	if in.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if len(missing) > 0 {
		return newValidationError(missing...)
	}
	return nil
}

// Create creates a meal plan for the target user with the actor recorded
// as the assigner. Users may create plans for themselves; only admins may
// create plans for others.
func (s *MealPlanService) Create(ctx context.Context, actor model.Actor, input CreateMealPlanInput) (*model.MealPlan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if !authz.CanAssignMealPlan(actor, input.UserID) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	exists, err := s.repo.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	plan := &model.MealPlan{
		UserID:     input.UserID,
		AssignedBy: actor.ID,
		Breakfast:  input.Breakfast,
		Lunch:      input.Lunch,
		Dinner:     input.Dinner,
		Snacks:     input.Snacks,
		Notes:      input.Notes,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	id, err := s.repo.CreateMealPlan(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}

	s.metrics.IncMealPlanCreated()

	// Re-read to pick up the joined user display fields.
	created, err := s.repo.GetMealPlanByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created meal plan: %w", err)
	}

	return created, nil
}

// List returns the meal plans visible to the actor: every plan for admins,
// the actor's own plans otherwise. Newest start date first in both cases.
func (s *MealPlanService) List(ctx context.Context, actor model.Actor) ([]*model.MealPlan, error) {
	if actor.IsAdmin() {
		plans, err := s.repo.ListMealPlans(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list meal plans: %w", err)
		}
		return plans, nil
	}

	plans, err := s.repo.ListMealPlansByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

// ListPendingRequests returns users with a dietary profile but no meal
// plan. Admin only: the pending queue reveals other users' profiles.
func (s *MealPlanService) ListPendingRequests(ctx context.Context, actor model.Actor) ([]*model.PendingRequest, error) {
	if !authz.CanManageUsers(actor) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	requests, err := s.repo.ListPendingRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}

// GetByID returns a single meal plan. Absence reports not-found before the
// policy runs; an existing plan the actor may not view reports forbidden.
func (s *MealPlanService) GetByID(ctx context.Context, actor model.Actor, id int64) (*model.MealPlan, error) {
	plan, err := s.repo.GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	if !authz.CanViewMealPlan(actor, plan) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	return plan, nil
}

// UpdateMealPlanInput defines input for updating a meal plan. The update
// is a full replace of the content fields: optional fields left nil are
// persisted as NULL, not kept.
type UpdateMealPlanInput struct {
	Breakfast string
	Lunch     string
	Dinner    string
	Snacks    *string
	Notes     *string
	StartDate time.Time
	EndDate   *time.Time
}

// validate reports the required fields that are missing.
func (in UpdateMealPlanInput) validate() *ValidationError {
	var missing []string
	if in.Breakfast == "" {
		missing = append(missing, "breakfast")
	}
	if in.Lunch == "" {
		missing = append(missing, "lunch")
	}
	if in.Dinner == "" {
		missing = append(missing, "dinner")
	}
	if in.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if len(missing) > 0 {
		return newValidationError(missing...)
	}
	return nil
}

// Update replaces a meal plan's content fields. Mutation rights belong to
// the assigner (assigned_by) or an admin, not the assignee.
func (s *MealPlanService) Update(ctx context.Context, actor model.Actor, id int64, input UpdateMealPlanInput) (*model.MealPlan, error) {
	plan, err := s.repo.GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	if !authz.CanMutateMealPlan(actor, plan) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	plan.Breakfast = input.Breakfast
	plan.Lunch = input.Lunch
	plan.Dinner = input.Dinner
	plan.Snacks = input.Snacks
	plan.Notes = input.Notes
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate

	if err := s.repo.UpdateMealPlan(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}

	s.metrics.IncMealPlanUpdated()

	updated, err := s.repo.GetMealPlanByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated meal plan: %w", err)
	}

	return updated, nil
}

// Delete hard-deletes a meal plan under the same mutation rule as Update.
func (s *MealPlanService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	plan, err := s.repo.GetMealPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return ErrMealPlanNotFound
		}
		return fmt.Errorf("failed to get meal plan: %w", err)
	}

	if !authz.CanMutateMealPlan(actor, plan) {
		s.metrics.IncForbidden()
		return ErrForbidden
	}

	if err := s.repo.DeleteMealPlan(ctx, plan.ID); err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return ErrMealPlanNotFound
		}
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	s.metrics.IncMealPlanDeleted()

	return nil
}

// Assign moves an existing meal plan to a new owner and marks it assigned.
// Admin only. This is a separate operation from Create: it never inserts a
// row, it reassigns one (for example an unclaimed template plan).
func (s *MealPlanService) Assign(ctx context.Context, actor model.Actor, userID, mealPlanID int64) error {
	if !authz.CanManageUsers(actor) {
		s.metrics.IncForbidden()
		return ErrForbidden
	}

	if userID <= 0 || mealPlanID <= 0 {
		var missing []string
		if userID <= 0 {
			missing = append(missing, "user_id")
		}
		if mealPlanID <= 0 {
			missing = append(missing, "meal_plan_id")
		}
		return newValidationError(missing...)
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.repo.AssignMealPlan(ctx, userID, mealPlanID); err != nil {
		if errors.Is(err, repository.ErrMealPlanNotFound) {
			return ErrMealPlanNotFound
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to assign meal plan: %w", err)
	}

	s.metrics.IncMealPlanAssigned()

	return nil
}
