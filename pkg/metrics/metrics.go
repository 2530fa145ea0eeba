// Package metrics records pipeline timings and data-quality gauges with
// Prometheus collectors on a private registry.
//
// A Collector is owned by one pipeline run. Export it with WriteTextfile for
// the node exporter textfile collector, or serve Registry() over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Phases label what the pipeline was doing.
const (
	PhaseFit       = "fit"
	PhaseTransform = "transform"
)

// Collector groups the pipeline metrics.
type Collector struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	rows          *prometheus.CounterVec
	missing       *prometheus.GaugeVec
}

// NewCollector creates the collectors and registers them on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "survfeat_stage_duration_seconds",
				Help:    "Time spent in one stage",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage", "phase"},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survfeat_rows_total",
				Help: "Rows processed",
			},
			[]string{"phase"},
		),
		missing: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "survfeat_missing_values",
				Help: "Missing values per column after a phase",
			},
			[]string{"column", "phase"},
		),
	}
	c.registry.MustRegister(c.stageDuration, c.rows, c.missing)
	return c
}

// Registry exposes the private registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveStage records the duration of one stage.
func (c *Collector) ObserveStage(stage, phase string, d time.Duration) {
	c.stageDuration.WithLabelValues(stage, phase).Observe(d.Seconds())
}

// AddRows counts processed rows.
func (c *Collector) AddRows(phase string, n int) {
	c.rows.WithLabelValues(phase).Add(float64(n))
}

// SetMissing sets the missing-value gauge of a column.
func (c *Collector) SetMissing(column, phase string, n int) {
	c.missing.WithLabelValues(column, phase).Set(float64(n))
}

// WriteTextfile writes every metric in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Timer measures elapsed time from creation.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer { return &Timer{start: time.Now()} }

// Stop returns the elapsed duration.
func (t *Timer) Stop() time.Duration { return time.Since(t.start) }
