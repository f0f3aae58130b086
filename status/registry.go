package status

import "sync/atomic"

// Metric keys published by the simulation
const (
	MetricTicks       = "engine.ticks"
	MetricEntities    = "engine.entities"
	MetricActivations = "engine.activations"
	MetricSkipped     = "engine.skipped"
	MetricRemoved     = "engine.removed"
	MetricProjectiles = "engine.projectiles"
	MetricEvents      = "engine.events"
	MetricTickMillis  = "engine.tick_ms"
	MetricTickPeak    = "engine.tick_ms_peak"
	MetricViolations  = "engine.invariant_violations"
)

// Registry is the central metrics facade
// The simulation caches pointers at construction; readers on other goroutines load atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric into a plain map keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}
