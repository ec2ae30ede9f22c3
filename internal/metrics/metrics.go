// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	// Meal plan workflow metrics
	IncMealPlanCreated()
	IncMealPlanUpdated()
	IncMealPlanDeleted()
	IncMealPlanAssigned()

	// Authorization metrics
	IncForbidden()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
