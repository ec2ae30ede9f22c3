package dto

import (
	"time"

	"github.com/platewise/platewise/internal/model"
)

// ProfileRequest represents the request body for submitting or updating a
// dietary profile.
type ProfileRequest struct {
	Age           int      `json:"age"`
	WeightKg      float64  `json:"weight_kg"`
	HeightCm      float64  `json:"height_cm"`
	Gender        string   `json:"gender,omitempty"`
	ActivityLevel string   `json:"activity_level"`
	DietaryGoal   string   `json:"dietary_goal"`
	Allergies     []string `json:"allergies,omitempty"`
	CuisinePref   []string `json:"cuisine_pref,omitempty"`
}

// ProfileResponse represents a dietary profile in API responses. The
// allergy and cuisine lists are decoded from their stored delimited form.
type ProfileResponse struct {
	UserID        int64     `json:"user_id"`
	Age           int       `json:"age"`
	WeightKg      float64   `json:"weight_kg"`
	HeightCm      float64   `json:"height_cm"`
	Gender        string    `json:"gender,omitempty"`
	ActivityLevel string    `json:"activity_level"`
	DietaryGoal   string    `json:"dietary_goal"`
	Allergies     []string  `json:"allergies"`
	CuisinePref   []string  `json:"cuisine_pref"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToProfileResponse converts a UserProfile model to ProfileResponse DTO.
func ToProfileResponse(profile *model.UserProfile) *ProfileResponse {
	return &ProfileResponse{
		UserID:        profile.UserID,
		Age:           profile.Age,
		WeightKg:      profile.WeightKg,
		HeightCm:      profile.HeightCm,
		Gender:        string(profile.Gender),
		ActivityLevel: string(profile.ActivityLevel),
		DietaryGoal:   string(profile.DietaryGoal),
		Allergies:     profile.Allergies,
		CuisinePref:   profile.CuisinePref,
		UpdatedAt:     profile.UpdatedAt,
	}
}
