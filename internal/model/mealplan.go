package model

import "time"

// PlanStatus represents the stored workflow status of a meal plan.
//
// A user's "pending request" is not a stored status: it is derived by
// querying users that have a dietary profile but no meal plan row at all.
// The status column only distinguishes unclaimed template plans (pending)
// from plans attached to a user (assigned).
type PlanStatus string

const (
	PlanStatusPending  PlanStatus = "pending"
	PlanStatusAssigned PlanStatus = "assigned"
)

// MealPlan represents a meal plan assigned to a user.
//
// UserID is the assignee and governs who may view the plan. AssignedBy is
// the author and governs who may update or delete it. The two are checked
// by different policy rules; see the authz package.
type MealPlan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	AssignedBy int64      `json:"assigned_by"`
	Breakfast  string     `json:"breakfast"`
	Lunch      string     `json:"lunch"`
	Dinner     string     `json:"dinner"`
	Snacks     *string    `json:"snacks,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Status     PlanStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Display fields joined from the users table. Empty unless the
	// query populated them.
	UserEmail       string `json:"user_email,omitempty"`
	UserFirstName   string `json:"user_first_name,omitempty"`
	UserLastName    string `json:"user_last_name,omitempty"`
	AssignedByEmail string `json:"assigned_by_email,omitempty"`
}

// PendingRequest is a derived view row: a user who has submitted a dietary
// profile but has no meal plan yet. Users without a profile are excluded by
// the join; there is nothing to plan against.
type PendingRequest struct {
	UserID        int64         `json:"user_id"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Age           int           `json:"age"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	DietaryGoal   DietaryGoal   `json:"dietary_goal"`
	Allergies     []string      `json:"allergies"`
	CuisinePref   []string      `json:"cuisine_pref"`
}
