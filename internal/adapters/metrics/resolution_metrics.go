package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ResolutionMetricsCollector exposes resolution and precompute counters to
// Prometheus.
type ResolutionMetricsCollector struct {
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	optionsReturned    *prometheus.HistogramVec
	precomputeTickers  *prometheus.CounterVec
}

// NewResolutionMetricsCollector creates the collector with all metric
// vectors declared but not yet registered.
func NewResolutionMetricsCollector() *ResolutionMetricsCollector {
	return &ResolutionMetricsCollector{
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resolutions_total",
				Help:      "Total number of completed resolution runs",
			},
			[]string{"exchange", "kind"},
		),
		resolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resolution_duration_seconds",
				Help:      "Wall time of resolution runs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"exchange", "kind"},
		),
		optionsReturned: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "options_returned",
				Help:      "Number of production options returned per resolution",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"exchange", "kind"},
		),
		precomputeTickers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "precompute_tickers_total",
				Help:      "Precompute ticker outcomes by status",
			},
			[]string{"exchange", "kind", "status"},
		),
	}
}

// Register registers all metric vectors with the given registry.
func (c *ResolutionMetricsCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.resolutionsTotal,
		c.resolutionDuration,
		c.optionsReturned,
		c.precomputeTickers,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordResolution records a completed resolution run.
func (c *ResolutionMetricsCollector) RecordResolution(exchangeCode, kind string, durationSeconds float64, optionCount int) {
	c.resolutionsTotal.WithLabelValues(exchangeCode, kind).Inc()
	c.resolutionDuration.WithLabelValues(exchangeCode, kind).Observe(durationSeconds)
	c.optionsReturned.WithLabelValues(exchangeCode, kind).Observe(float64(optionCount))
}

// RecordPrecomputeTicker records one precompute ticker outcome.
func (c *ResolutionMetricsCollector) RecordPrecomputeTicker(exchangeCode, kind string, ok bool) {
	status := "ok"
	if !ok {
		status = "skipped"
	}
	c.precomputeTickers.WithLabelValues(exchangeCode, kind, status).Inc()
}
