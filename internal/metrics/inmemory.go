package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered   uint64
	LoginSuccesses    uint64
	LoginFailures     uint64
	MealPlansCreated  uint64
	MealPlansUpdated  uint64
	MealPlansDeleted  uint64
	MealPlansAssigned uint64
	ForbiddenDenials  uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered   uint64
	loginSuccesses    uint64
	loginFailures     uint64
	mealPlansCreated  uint64
	mealPlansUpdated  uint64
	mealPlansDeleted  uint64
	mealPlansAssigned uint64
	forbiddenDenials  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:   atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:    atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:     atomic.LoadUint64(&m.loginFailures),
		MealPlansCreated:  atomic.LoadUint64(&m.mealPlansCreated),
		MealPlansUpdated:  atomic.LoadUint64(&m.mealPlansUpdated),
		MealPlansDeleted:  atomic.LoadUint64(&m.mealPlansDeleted),
		MealPlansAssigned: atomic.LoadUint64(&m.mealPlansAssigned),
		ForbiddenDenials:  atomic.LoadUint64(&m.forbiddenDenials),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncMealPlanCreated increments the meal plan created counter.
func (m *InMemoryRecorder) IncMealPlanCreated() {
	atomic.AddUint64(&m.mealPlansCreated, 1)
}

// IncMealPlanUpdated increments the meal plan updated counter.
func (m *InMemoryRecorder) IncMealPlanUpdated() {
	atomic.AddUint64(&m.mealPlansUpdated, 1)
}

// IncMealPlanDeleted increments the meal plan deleted counter.
func (m *InMemoryRecorder) IncMealPlanDeleted() {
	atomic.AddUint64(&m.mealPlansDeleted, 1)
}

// IncMealPlanAssigned increments the meal plan assigned counter.
func (m *InMemoryRecorder) IncMealPlanAssigned() {
	atomic.AddUint64(&m.mealPlansAssigned, 1)
}

// IncForbidden increments the authorization denial counter.
func (m *InMemoryRecorder) IncForbidden() {
	atomic.AddUint64(&m.forbiddenDenials, 1)
}
