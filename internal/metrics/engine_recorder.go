package metrics

// EngineRecorder adapts a MetricsRegistry to the engine.MetricsRecorder
// interface so the solver package never imports Prometheus directly.
type EngineRecorder struct {
	registry *MetricsRegistry
}

// NewEngineRecorder wraps registry for use as an engine.MetricsRecorder.
func NewEngineRecorder(registry *MetricsRegistry) *EngineRecorder {
	return &EngineRecorder{registry: registry}
}

func (r *EngineRecorder) ObserveGenerationDuration(seconds float64) {
	r.registry.ObserveGenerationDuration(seconds)
}

func (r *EngineRecorder) IncGenerationRun(outcome string) {
	r.registry.IncGenerationRun(outcome)
}

func (r *EngineRecorder) IncShiftsGenerated(n int) {
	r.registry.IncShiftsGenerated(n)
}

func (r *EngineRecorder) IncShiftWarning(reason string) {
	r.registry.IncShiftWarning(reason)
}

func (r *EngineRecorder) IncCandidatesFiltered(n int) {
	r.registry.IncCandidatesFiltered(n)
}
