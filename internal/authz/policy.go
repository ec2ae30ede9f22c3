// Package authz implements the authorization policy for the application.
//
// Every function here is a pure decision over an actor and a target; the
// package does no I/O. Callers are expected to re-read the target resource
// from the store immediately before asking, so a decision is never made
// against stale data. All denials surface to clients as one uniform
// forbidden outcome.
package authz

import "github.com/platewise/platewise/internal/model"

// CanViewMealPlan reports whether the actor may read the given meal plan.
// Viewing is keyed to the assignee: the plan's owner or any admin.
func CanViewMealPlan(actor model.Actor, plan *model.MealPlan) bool {
	return actor.ID == plan.UserID || actor.IsAdmin()
}

// CanMutateMealPlan reports whether the actor may update or delete the
// given meal plan.
//
// Mutation is keyed to the assigner (assigned_by), not the assignee. A user
// who authored their own plan keeps edit rights even if an admin later
// reassigns it, and an assignee cannot edit a plan an admin wrote for them.
// This asymmetry with CanAssignMealPlan is intentional and must not be
// unified.
func CanMutateMealPlan(actor model.Actor, plan *model.MealPlan) bool {
	return actor.ID == plan.AssignedBy || actor.IsAdmin()
}

// CanAssignMealPlan reports whether the actor may create a meal plan for
// the target user. Users may assign to themselves; only admins may assign
// to others.
func CanAssignMealPlan(actor model.Actor, targetUserID int64) bool {
	return actor.ID == targetUserID || actor.IsAdmin()
}

// CanViewProfile reports whether the actor may read the dietary profile of
// the target user.
func CanViewProfile(actor model.Actor, targetUserID int64) bool {
	return actor.ID == targetUserID || actor.IsAdmin()
}

// CanEditProfile reports whether the actor may create or update the
// dietary profile of the target user.
func CanEditProfile(actor model.Actor, targetUserID int64) bool {
	return actor.ID == targetUserID || actor.IsAdmin()
}

// CanManageUsers reports whether the actor may list all users, change
// roles, and view every meal plan and pending request.
func CanManageUsers(actor model.Actor) bool {
	return actor.IsAdmin()
}

// CanDeleteUser reports whether the actor may delete the target user
// account. Self-deletion is always denied, even for the last remaining
// admin, so an admin cannot lock the system out of administration.
func CanDeleteUser(actor model.Actor, targetUserID int64) bool {
	if actor.ID == targetUserID {
		return false
	}
	return actor.IsAdmin()
}
