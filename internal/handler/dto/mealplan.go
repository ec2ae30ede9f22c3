package dto

import (
	"errors"
	"time"

	"github.com/platewise/platewise/internal/model"
)

// dateLayout is the wire format for meal plan dates.
const dateLayout = "2006-01-02"

// ErrInvalidDate indicates a date field is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// CreateMealPlanRequest represents the request body for creating a meal plan.
type CreateMealPlanRequest struct {
	UserID    int64   `json:"user_id"`
	Breakfast string  `json:"breakfast"`
	Lunch     string  `json:"lunch"`
	Dinner    string  `json:"dinner"`
	Snacks    *string `json:"snacks,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}

// UpdateMealPlanRequest represents the request body for updating a meal plan.
// Content fields are fully replaced; omitted optional fields become NULL.
type UpdateMealPlanRequest struct {
	Breakfast string  `json:"breakfast"`
	Lunch     string  `json:"lunch"`
	Dinner    string  `json:"dinner"`
	Snacks    *string `json:"snacks,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}

// AssignMealPlanRequest represents the request body for reassigning an
// existing meal plan to a user.
type AssignMealPlanRequest struct {
	UserID     int64 `json:"user_id"`
	MealPlanID int64 `json:"meal_plan_id"`
}

// MealPlanResponse represents a meal plan in API responses.
type MealPlanResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	AssignedBy      int64     `json:"assigned_by"`
	Breakfast       string    `json:"breakfast"`
	Lunch           string    `json:"lunch"`
	Dinner          string    `json:"dinner"`
	Snacks          *string   `json:"snacks,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         *string   `json:"end_date,omitempty"`
	Status          string    `json:"status"`
	UserEmail       string    `json:"user_email,omitempty"`
	UserFirstName   string    `json:"user_first_name,omitempty"`
	UserLastName    string    `json:"user_last_name,omitempty"`
	AssignedByEmail string    `json:"assigned_by_email,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MealPlanListResponse represents a list of meal plans.
type MealPlanListResponse struct {
	Data []MealPlanResponse `json:"data"`
}

// PendingRequestResponse represents one entry in the pending-assignment
// queue: a profiled user with no meal plan yet.
type PendingRequestResponse struct {
	UserID        int64    `json:"user_id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Age           int      `json:"age"`
	WeightKg      float64  `json:"weight_kg"`
	HeightCm      float64  `json:"height_cm"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activity_level"`
	DietaryGoal   string   `json:"dietary_goal"`
	Allergies     []string `json:"allergies"`
	CuisinePref   []string `json:"cuisine_pref"`
}

// PendingRequestListResponse represents the pending-assignment queue.
type PendingRequestListResponse struct {
	Data []PendingRequestResponse `json:"data"`
}

// ParseDate parses a required YYYY-MM-DD date field.
// An empty string returns the zero time with no error so required-field
// validation stays in the service layer.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD date field.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// formatDate renders a date in wire format.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// formatOptionalDate renders an optional date in wire format.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ToMealPlanResponse converts a MealPlan model to MealPlanResponse DTO.
func ToMealPlanResponse(plan *model.MealPlan) *MealPlanResponse {
	return &MealPlanResponse{
		ID:              plan.ID,
		UserID:          plan.UserID,
		AssignedBy:      plan.AssignedBy,
		Breakfast:       plan.Breakfast,
		Lunch:           plan.Lunch,
		Dinner:          plan.Dinner,
		Snacks:          plan.Snacks,
		Notes:           plan.Notes,
		StartDate:       formatDate(plan.StartDate),
		EndDate:         formatOptionalDate(plan.EndDate),
		Status:          string(plan.Status),
		UserEmail:       plan.UserEmail,
		UserFirstName:   plan.UserFirstName,
		UserLastName:    plan.UserLastName,
		AssignedByEmail: plan.AssignedByEmail,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}
}

// ToMealPlanListResponse converts a slice of MealPlan models to MealPlanListResponse.
func ToMealPlanListResponse(plans []*model.MealPlan) *MealPlanListResponse {
	responses := make([]MealPlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = *ToMealPlanResponse(plan)
	}
	return &MealPlanListResponse{Data: responses}
}

// ToPendingRequestResponse converts a PendingRequest model to its DTO.
func ToPendingRequestResponse(req *model.PendingRequest) *PendingRequestResponse {
	return &PendingRequestResponse{
		UserID:        req.UserID,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Age:           req.Age,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		Gender:        string(req.Gender),
		ActivityLevel: string(req.ActivityLevel),
		DietaryGoal:   string(req.DietaryGoal),
		Allergies:     req.Allergies,
		CuisinePref:   req.CuisinePref,
	}
}

// ToPendingRequestListResponse converts a slice of PendingRequest models.
func ToPendingRequestListResponse(requests []*model.PendingRequest) *PendingRequestListResponse {
	responses := make([]PendingRequestResponse, len(requests))
	for i, req := range requests {
		responses[i] = *ToPendingRequestResponse(req)
	}
	return &PendingRequestListResponse{Data: responses}
}
