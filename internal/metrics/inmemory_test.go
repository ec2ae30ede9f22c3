package metrics

import "testing"

func TestInMemoryRecorder(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.IncUserRegistered()
	m.IncLoginSuccess()
	m.IncLoginFailure()
	m.IncLoginFailure()
	m.IncMealPlanCreated()
	m.IncForbidden()

	snap := m.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("expected 1 registration, got %d", snap.UsersRegistered)
	}
	if snap.LoginSuccesses != 1 || snap.LoginFailures != 2 {
		t.Errorf("expected 1 success / 2 failures, got %d / %d", snap.LoginSuccesses, snap.LoginFailures)
	}
	if snap.MealPlansCreated != 1 {
		t.Errorf("expected 1 plan created, got %d", snap.MealPlansCreated)
	}
	if snap.ForbiddenDenials != 1 {
		t.Errorf("expected 1 denial, got %d", snap.ForbiddenDenials)
	}
	if snap.MealPlansDeleted != 0 {
		t.Errorf("expected untouched counter to stay 0, got %d", snap.MealPlansDeleted)
	}
}
