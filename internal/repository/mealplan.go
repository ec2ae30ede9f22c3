package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/platewise/platewise/internal/model"
)

// ErrMealPlanNotFound indicates the meal plan id does not resolve.
var ErrMealPlanNotFound = errors.New("meal plan not found")

// CreateMealPlan inserts a meal plan and returns the generated id.
// Optional fields (snacks, notes, end_date) persist as NULL when absent.
func (r *Repository) CreateMealPlan(ctx context.Context, plan *model.MealPlan) (int64, error) {
	query := `
		INSERT INTO meal_plans
			(user_id, assigned_by, breakfast, lunch, dinner, snacks, notes, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		plan.UserID,
		plan.AssignedBy,
		plan.Breakfast,
		plan.Lunch,
		plan.Dinner,
		plan.Snacks,
		plan.Notes,
		plan.StartDate,
		plan.EndDate,
	).Scan(&plan.ID, &plan.Status, &plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to create meal plan: %w", err)
	}

	return plan.ID, nil
}

// GetMealPlanByID retrieves a meal plan with the assignee's display fields
// joined in.
func (r *Repository) GetMealPlanByID(ctx context.Context, id int64) (*model.MealPlan, error) {
	query := `
		SELECT mp.id, mp.user_id, mp.assigned_by, mp.breakfast, mp.lunch, mp.dinner,
		       mp.snacks, mp.notes, mp.start_date, mp.end_date, mp.status,
		       mp.created_at, mp.updated_at,
		       u.email, u.first_name, u.last_name
		FROM meal_plans mp
		JOIN users u ON mp.user_id = u.id
		WHERE mp.id = $1
	`

	var plan model.MealPlan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.AssignedBy,
		&plan.Breakfast,
		&plan.Lunch,
		&plan.Dinner,
		&plan.Snacks,
		&plan.Notes,
		&plan.StartDate,
		&plan.EndDate,
		&plan.Status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
		&plan.UserEmail,
		&plan.UserFirstName,
		&plan.UserLastName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	return &plan, nil
}

// ListMealPlans retrieves every meal plan with assignee and assigner
// emails joined, newest start date first. Admin dashboard view.
func (r *Repository) ListMealPlans(ctx context.Context) ([]*model.MealPlan, error) {
	query := `
		SELECT mp.id, mp.user_id, mp.assigned_by, mp.breakfast, mp.lunch, mp.dinner,
		       mp.snacks, mp.notes, mp.start_date, mp.end_date, mp.status,
		       mp.created_at, mp.updated_at,
		       u.email, u.first_name, u.last_name, a.email
		FROM meal_plans mp
		JOIN users u ON mp.user_id = u.id
		JOIN users a ON mp.assigned_by = a.id
		ORDER BY mp.start_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]*model.MealPlan, 0)
	for rows.Next() {
		var plan model.MealPlan
		err := rows.Scan(
			&plan.ID,
			&plan.UserID,
			&plan.AssignedBy,
			&plan.Breakfast,
			&plan.Lunch,
			&plan.Dinner,
			&plan.Snacks,
			&plan.Notes,
			&plan.StartDate,
			&plan.EndDate,
			&plan.Status,
			&plan.CreatedAt,
			&plan.UpdatedAt,
			&plan.UserEmail,
			&plan.UserFirstName,
			&plan.UserLastName,
			&plan.AssignedByEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}

	return plans, nil
}

// ListMealPlansByUser retrieves the meal plans owned by a user, newest
// start date first.
func (r *Repository) ListMealPlansByUser(ctx context.Context, userID int64) ([]*model.MealPlan, error) {
	query := `
		SELECT id, user_id, assigned_by, breakfast, lunch, dinner,
		       snacks, notes, start_date, end_date, status, created_at, updated_at
		FROM meal_plans
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans for user: %w", err)
	}
	defer rows.Close()

	plans := make([]*model.MealPlan, 0)
	for rows.Next() {
		var plan model.MealPlan
		err := rows.Scan(
			&plan.ID,
			&plan.UserID,
			&plan.AssignedBy,
			&plan.Breakfast,
			&plan.Lunch,
			&plan.Dinner,
			&plan.Snacks,
			&plan.Notes,
			&plan.StartDate,
			&plan.EndDate,
			&plan.Status,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}

	return plans, nil
}

// UpdateMealPlan fully replaces the content fields of a meal plan.
// Optional fields set to nil persist as NULL.
func (r *Repository) UpdateMealPlan(ctx context.Context, plan *model.MealPlan) error {
	query := `
		UPDATE meal_plans SET
			breakfast = $1,
			lunch = $2,
			dinner = $3,
			snacks = $4,
			notes = $5,
			start_date = $6,
			end_date = $7,
			updated_at = now()
		WHERE id = $8
	`

	tag, err := r.pool.Exec(ctx, query,
		plan.Breakfast,
		plan.Lunch,
		plan.Dinner,
		plan.Snacks,
		plan.Notes,
		plan.StartDate,
		plan.EndDate,
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealPlanNotFound
	}

	return nil
}

// DeleteMealPlan hard-deletes a meal plan.
func (r *Repository) DeleteMealPlan(ctx context.Context, id int64) error {
	query := `DELETE FROM meal_plans WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealPlanNotFound
	}

	return nil
}

// AssignMealPlan reassigns an existing plan to a user and marks it
// assigned. Distinct from CreateMealPlan: this moves an existing row, it
// never creates one.
func (r *Repository) AssignMealPlan(ctx context.Context, userID, mealPlanID int64) error {
	query := `UPDATE meal_plans SET user_id = $1, status = $2, updated_at = now() WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, userID, model.PlanStatusAssigned, mealPlanID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to assign meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealPlanNotFound
	}

	return nil
}

// ListPendingRequests returns users that have submitted a dietary profile
// but have no meal plan row yet. "Pending" is this derived view, not a
// stored status: the absence of a meal plan for a profiled user.
func (r *Repository) ListPendingRequests(ctx context.Context) ([]*model.PendingRequest, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name,
		       ud.age, ud.weight_kg, ud.height_cm, ud.gender,
		       ud.activity_level, ud.dietary_goal, ud.allergies, ud.cuisine_pref
		FROM users u
		JOIN user_details ud ON u.id = ud.user_id
		LEFT JOIN meal_plans mp ON u.id = mp.user_id
		WHERE mp.id IS NULL AND u.role = 'user'
		ORDER BY u.created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*model.PendingRequest, 0)
	for rows.Next() {
		var (
			req         model.PendingRequest
			allergies   *string
			cuisinePref *string
		)
		err := rows.Scan(
			&req.UserID,
			&req.Email,
			&req.FirstName,
			&req.LastName,
			&req.Age,
			&req.WeightKg,
			&req.HeightCm,
			&req.Gender,
			&req.ActivityLevel,
			&req.DietaryGoal,
			&allergies,
			&cuisinePref,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		req.Allergies = model.DecodeList(allergies)
		req.CuisinePref = model.DecodeList(cuisinePref)
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending requests: %w", err)
	}

	return requests, nil
}
