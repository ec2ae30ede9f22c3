package authz

import (
	"testing"

	"github.com/platewise/platewise/internal/model"
)

var (
	alice  = model.Actor{ID: 7, Email: "alice@example.com", Role: model.RoleUser}
	bob    = model.Actor{ID: 8, Email: "bob@example.com", Role: model.RoleUser}
	admin  = model.Actor{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	admin2 = model.Actor{ID: 2, Email: "admin2@example.com", Role: model.RoleAdmin}
)

func TestCanViewMealPlan(t *testing.T) {
	plan := &model.MealPlan{ID: 42, UserID: alice.ID, AssignedBy: admin.ID}

	tests := []struct {
		name  string
		actor model.Actor
		want  bool
	}{
		{"owner", alice, true},
		{"other_user", bob, false},
		{"admin", admin, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanViewMealPlan(test.actor, plan); got != test.want {
				t.Fatalf("CanViewMealPlan(%s) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestCanMutateMealPlan_KeyedToAssigner(t *testing.T) {
	// Plan owned by alice but authored by admin: alice may view it but
	// must not be able to edit or delete it.
	adminAuthored := &model.MealPlan{ID: 42, UserID: alice.ID, AssignedBy: admin.ID}

	// Plan alice created for herself, later viewable the same way.
	selfAuthored := &model.MealPlan{ID: 43, UserID: alice.ID, AssignedBy: alice.ID}

	tests := []struct {
		name  string
		actor model.Actor
		plan  *model.MealPlan
		want  bool
	}{
		{"owner_cannot_edit_admin_authored", alice, adminAuthored, false},
		{"author_admin_can_edit", admin, adminAuthored, true},
		{"other_admin_can_edit", admin2, adminAuthored, true},
		{"unrelated_user_cannot_edit", bob, adminAuthored, false},
		{"self_author_can_edit", alice, selfAuthored, true},
		{"other_user_cannot_edit_self_authored", bob, selfAuthored, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanMutateMealPlan(test.actor, test.plan); got != test.want {
				t.Fatalf("CanMutateMealPlan(%s) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestCanMutateDiffersFromCanView(t *testing.T) {
	// The mutation rule is keyed to assigned_by while the view rule is
	// keyed to user_id. Assert they genuinely diverge for the assignee.
	plan := &model.MealPlan{ID: 44, UserID: alice.ID, AssignedBy: admin.ID}

	if !CanViewMealPlan(alice, plan) {
		t.Fatal("assignee should be able to view the plan")
	}
	if CanMutateMealPlan(alice, plan) {
		t.Fatal("assignee should not be able to mutate an admin-authored plan")
	}
}

func TestCanAssignMealPlan(t *testing.T) {
	tests := []struct {
		name   string
		actor  model.Actor
		target int64
		want   bool
	}{
		{"self_assignment", alice, alice.ID, true},
		{"user_assigning_to_other", alice, bob.ID, false},
		{"admin_assigning_to_other", admin, alice.ID, true},
		{"admin_assigning_to_self", admin, admin.ID, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanAssignMealPlan(test.actor, test.target); got != test.want {
				t.Fatalf("CanAssignMealPlan(%s) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestProfileAccess(t *testing.T) {
	tests := []struct {
		name   string
		actor  model.Actor
		target int64
		want   bool
	}{
		{"own_profile", alice, alice.ID, true},
		{"other_users_profile", alice, bob.ID, false},
		{"admin_any_profile", admin, bob.ID, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanViewProfile(test.actor, test.target); got != test.want {
				t.Fatalf("CanViewProfile(%s) = %v, want %v", test.name, got, test.want)
			}
			if got := CanEditProfile(test.actor, test.target); got != test.want {
				t.Fatalf("CanEditProfile(%s) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	if CanManageUsers(alice) {
		t.Fatal("regular user should not manage users")
	}
	if !CanManageUsers(admin) {
		t.Fatal("admin should manage users")
	}
}

func TestCanDeleteUser(t *testing.T) {
	tests := []struct {
		name   string
		actor  model.Actor
		target int64
		want   bool
	}{
		{"admin_deletes_user", admin, alice.ID, true},
		{"admin_deletes_other_admin", admin, admin2.ID, true},
		{"admin_deletes_self", admin, admin.ID, false},
		{"user_deletes_self", alice, alice.ID, false},
		{"user_deletes_other", alice, bob.ID, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanDeleteUser(test.actor, test.target); got != test.want {
				t.Fatalf("CanDeleteUser(%s) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}
