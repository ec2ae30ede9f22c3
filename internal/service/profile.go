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

// Profile service errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// ProfileService orchestrates dietary profile creation and updates.
type ProfileService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo *repository.Repository, recorder metrics.Recorder) *ProfileService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProfileService{
		repo:    repo,
		metrics: recorder,
	}
}

// ProfileInput defines input for submitting or updating a dietary profile.
type ProfileInput struct {
	Age           int
	WeightKg      float64
	HeightCm      float64
	Gender        model.Gender
	ActivityLevel model.ActivityLevel
	DietaryGoal   model.DietaryGoal
	Allergies     []string
	CuisinePref   []string
}

// validate reports missing or malformed fields. Age, activity level, and
// dietary goal are required; gender is optional but must be a known value
// when present.
func (in ProfileInput) validate() *ValidationError {
	var invalid []string
	if in.Age < 1 || in.Age > 120 {
		invalid = append(invalid, "age")
	}
	if !in.ActivityLevel.IsValid() {
		invalid = append(invalid, "activity_level")
	}
	if !in.DietaryGoal.IsValid() {
		invalid = append(invalid, "dietary_goal")
	}
	if in.Gender != "" && !in.Gender.IsValid() {
		invalid = append(invalid, "gender")
	}
	if len(invalid) > 0 {
		return newValidationError(invalid...)
	}
	return nil
}

// toProfile builds the storable profile record for a user.
func (in ProfileInput) toProfile(userID int64) *model.UserProfile {
	return &model.UserProfile{
		UserID:        userID,
		Age:           in.Age,
		WeightKg:      in.WeightKg,
		HeightCm:      in.HeightCm,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		DietaryGoal:   in.DietaryGoal,
		Allergies:     in.Allergies,
		CuisinePref:   in.CuisinePref,
	}
}

// Submit creates the actor's own dietary profile. A second submission for
// the same user conflicts; callers should use Update instead. The
// existence check branches the workflow, while the unique constraint on
// user_id catches the race between two concurrent submissions.
func (s *ProfileService) Submit(ctx context.Context, actor model.Actor, input ProfileInput) (*model.UserProfile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	hasProfile, err := s.repo.ProfileExists(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile existence: %w", err)
	}
	if hasProfile {
		return nil, ErrProfileExists
	}

	profile := input.toProfile(actor.ID)
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			return nil, ErrProfileExists
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.get(ctx, actor.ID)
}

// Get returns the dietary profile for the target user. A zero userID
// defaults to the actor's own profile.
func (s *ProfileService) Get(ctx context.Context, actor model.Actor, userID int64) (*model.UserProfile, error) {
	if userID == 0 {
		userID = actor.ID
	}

	if !authz.CanViewProfile(actor, userID) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	return s.get(ctx, userID)
}

// Update upserts the dietary profile for the target user: in-place update
// when a profile exists, creation otherwise. A zero userID defaults to the
// actor's own profile.
func (s *ProfileService) Update(ctx context.Context, actor model.Actor, userID int64, input ProfileInput) (*model.UserProfile, error) {
	if userID == 0 {
		userID = actor.ID
	}

	if !authz.CanEditProfile(actor, userID) {
		s.metrics.IncForbidden()
		return nil, ErrForbidden
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	profile := input.toProfile(userID)

	hasProfile, err := s.repo.ProfileExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile existence: %w", err)
	}

	if hasProfile {
		err = s.repo.UpdateProfile(ctx, profile)
	} else {
		err = s.repo.CreateProfile(ctx, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}

	return s.get(ctx, userID)
}

// Exists reports whether the user already has a dietary profile. Used by
// callers to branch create vs update without relying on constraint errors.
func (s *ProfileService) Exists(ctx context.Context, userID int64) (bool, error) {
	return s.repo.ProfileExists(ctx, userID)
}

// get loads a profile, mapping repository absence to the service error.
func (s *ProfileService) get(ctx context.Context, userID int64) (*model.UserProfile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
