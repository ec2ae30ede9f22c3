package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/platewise/platewise/internal/model"
)

// Common errors for profile repository operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// CreateProfile inserts a dietary profile for a user. The unique constraint
// on user_id is the backstop against two concurrent creates; the workflow
// layer checks existence first but does not hold a transaction across the
// check and the insert.
func (r *Repository) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	query := `
		INSERT INTO user_details
			(user_id, age, weight_kg, height_cm, gender, activity_level, dietary_goal, allergies, cuisine_pref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Age,
		profile.WeightKg,
		profile.HeightCm,
		profile.Gender,
		profile.ActivityLevel,
		profile.DietaryGoal,
		model.EncodeList(profile.Allergies),
		model.EncodeList(profile.CuisinePref),
	).Scan(&profile.ID, &profile.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetProfileByUserID retrieves the dietary profile for a user.
func (r *Repository) GetProfileByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	query := `
		SELECT id, user_id, age, weight_kg, height_cm, gender, activity_level, dietary_goal,
		       allergies, cuisine_pref, updated_at
		FROM user_details
		WHERE user_id = $1
	`

	var (
		profile     model.UserProfile
		allergies   *string
		cuisinePref *string
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.WeightKg,
		&profile.HeightCm,
		&profile.Gender,
		&profile.ActivityLevel,
		&profile.DietaryGoal,
		&allergies,
		&cuisinePref,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Allergies = model.DecodeList(allergies)
	profile.CuisinePref = model.DecodeList(cuisinePref)

	return &profile, nil
}

// UpdateProfile replaces the stored profile fields for a user in place.
func (r *Repository) UpdateProfile(ctx context.Context, profile *model.UserProfile) error {
	query := `
		UPDATE user_details SET
			age = $1,
			weight_kg = $2,
			height_cm = $3,
			gender = $4,
			activity_level = $5,
			dietary_goal = $6,
			allergies = $7,
			cuisine_pref = $8,
			updated_at = now()
		WHERE user_id = $9
	`

	tag, err := r.pool.Exec(ctx, query,
		profile.Age,
		profile.WeightKg,
		profile.HeightCm,
		profile.Gender,
		profile.ActivityLevel,
		profile.DietaryGoal,
		model.EncodeList(profile.Allergies),
		model.EncodeList(profile.CuisinePref),
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// ProfileExists reports whether a user already has a dietary profile.
func (r *Repository) ProfileExists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_details WHERE user_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}

	return exists, nil
}
