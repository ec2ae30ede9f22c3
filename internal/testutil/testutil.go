// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/platewise/platewise/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrations, in dependency order. Down migrations run in reverse.
var migrationNames = []string{
	"000001_users",
	"000002_user_details",
	"000003_meal_plans",
}

// ResetSchema drops and recreates the full schema for tests by replaying
// the migration files.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationNames) - 1; i >= 0; i-- {
		if err := applyMigration(ctx, pool, root, migrationNames[i]+".down.sql"); err != nil {
			return err
		}
	}

	for _, name := range migrationNames {
		if err := applyMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, root, filename string) error {
	sql, err := os.ReadFile(filepath.Join(root, "migrations", filename))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", filename, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", filename, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

var emailCounter atomic.Int64

// UniqueEmail returns an email address unique within the test run.
func UniqueEmail(t testing.TB, prefix string) string {
	t.Helper()
	n := emailCounter.Add(1)
	return fmt.Sprintf("%s-%d-%d@test.local", prefix, time.Now().UnixNano(), n)
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user record with sensible defaults. The password
// hash is a placeholder; use the auth package when a real login is needed.
func NewTestUser(t testing.TB, role model.Role) *model.User {
	t.Helper()
	return &model.User{
		Email:        UniqueEmail(t, "user"),
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$placeholder$placeholder",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
}

// NewTestActor creates an actor with the given id and role.
func NewTestActor(t testing.TB, id int64, role model.Role) model.Actor {
	t.Helper()
	return model.Actor{
		ID:    id,
		Email: fmt.Sprintf("actor-%d@test.local", id),
		Role:  role,
	}
}

// NewTestMealPlan creates a meal plan record with sensible defaults.
func NewTestMealPlan(t testing.TB, userID, assignedBy int64) *model.MealPlan {
	t.Helper()
	return &model.MealPlan{
		UserID:     userID,
		AssignedBy: assignedBy,
		Breakfast:  "oatmeal with berries",
		Lunch:      "grilled chicken salad",
		Dinner:     "salmon with vegetables",
		StartDate:  time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// NewTestProfile creates a dietary profile record with sensible defaults.
func NewTestProfile(t testing.TB, userID int64) *model.UserProfile {
	t.Helper()
	return &model.UserProfile{
		UserID:        userID,
		Age:           30,
		WeightKg:      72.5,
		HeightCm:      178,
		Gender:        model.GenderOther,
		ActivityLevel: model.ActivityModerate,
		DietaryGoal:   model.GoalMaintenance,
		Allergies:     []string{"peanuts"},
		CuisinePref:   []string{"italian", "thai"},
	}
}
