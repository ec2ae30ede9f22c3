package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncMealPlanCreated is a no-op.
func (n *NoopRecorder) IncMealPlanCreated() {}

// IncMealPlanUpdated is a no-op.
func (n *NoopRecorder) IncMealPlanUpdated() {}

// IncMealPlanDeleted is a no-op.
func (n *NoopRecorder) IncMealPlanDeleted() {}

// IncMealPlanAssigned is a no-op.
func (n *NoopRecorder) IncMealPlanAssigned() {}

// IncForbidden is a no-op.
func (n *NoopRecorder) IncForbidden() {}
