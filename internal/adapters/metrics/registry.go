package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	// Namespace for all metrics
	namespace = "prodplan"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalResolutionCollector is the singleton resolution metrics
	// collector, set by SetGlobalResolutionCollector when metrics are
	// enabled
	globalResolutionCollector ResolutionRecorder
)

// ResolutionRecorder defines the interface application code uses to record
// resolution and precompute events. Recording is a no-op until a collector
// is registered, so callers never need to check whether metrics are enabled.
type ResolutionRecorder interface {
	RecordResolution(exchangeCode, kind string, durationSeconds float64, optionCount int)
	RecordPrecomputeTicker(exchangeCode, kind string, ok bool)
}

// InitRegistry initializes the Prometheus registry. Call once at startup if
// metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil when metrics are
// not initialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled.
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalResolutionCollector sets the global resolution metrics collector.
func SetGlobalResolutionCollector(collector ResolutionRecorder) {
	globalResolutionCollector = collector
}

// RecordResolution records a completed resolution run globally.
func RecordResolution(exchangeCode, kind string, durationSeconds float64, optionCount int) {
	if globalResolutionCollector != nil {
		globalResolutionCollector.RecordResolution(exchangeCode, kind, durationSeconds, optionCount)
	}
}

// RecordPrecomputeTicker records one precompute ticker outcome globally.
func RecordPrecomputeTicker(exchangeCode, kind string, ok bool) {
	if globalResolutionCollector != nil {
		globalResolutionCollector.RecordPrecomputeTicker(exchangeCode, kind, ok)
	}
}
