package model

import (
	"strings"
	"time"
)

// Gender values accepted for a dietary profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid checks if the gender is a known value.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// ActivityLevel describes how active a user is day to day.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// IsValid checks if the activity level is a known value.
func (a ActivityLevel) IsValid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// DietaryGoal describes what a user wants out of their meal plans.
type DietaryGoal string

const (
	GoalWeightLoss  DietaryGoal = "weight_loss"
	GoalWeightGain  DietaryGoal = "weight_gain"
	GoalMaintenance DietaryGoal = "maintenance"
	GoalMuscleBuild DietaryGoal = "muscle_build"
)

// IsValid checks if the dietary goal is a known value.
func (d DietaryGoal) IsValid() bool {
	switch d {
	case GoalWeightLoss, GoalWeightGain, GoalMaintenance, GoalMuscleBuild:
		return true
	}
	return false
}

// UserProfile holds the dietary and physical attributes for one user.
// Each user owns at most one profile; the user_details table enforces
// this with a unique constraint on user_id.
type UserProfile struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Age           int           `json:"age"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	DietaryGoal   DietaryGoal   `json:"dietary_goal"`
	Allergies     []string      `json:"allergies"`
	CuisinePref   []string      `json:"cuisine_pref"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// listDelimiter separates values in the stored text form of allergy and
// cuisine-preference lists.
const listDelimiter = ","

// EncodeList flattens a list of values into the delimited text form used
// for storage. Blank entries are dropped. Returns nil for an empty list so
// the column is stored as NULL.
func EncodeList(values []string) *string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	joined := strings.Join(cleaned, listDelimiter)
	return &joined
}

// DecodeList expands the stored delimited text form back into a list.
// A NULL or empty column decodes to an empty list, never nil-vs-empty
// ambiguity for callers.
func DecodeList(stored *string) []string {
	if stored == nil || *stored == "" {
		return []string{}
	}
	parts := strings.Split(*stored, listDelimiter)
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
