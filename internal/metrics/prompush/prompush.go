// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// A batch job has no scrape endpoint to expose, so metrics are collected in a
// private registry and pushed once at the end of the run. All
// Prometheus-specific dependencies live here; the rest of the project depends
// only on metrics.Backend.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"custetl/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" grouping key
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // custetl_stage_total
	stageDuration *prometheus.SummaryVec // custetl_stage_duration_seconds
	rowCounter    *prometheus.CounterVec // custetl_rows_total
	tableCounter  prometheus.Counter     // custetl_tables_total
}

// NewBackend constructs a Pushgateway backend. The job name doubles as the
// Pushgateway grouping key, so the per-metric "job" label is dropped here.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "custetl"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custetl_stage_total",
			Help: "Pipeline stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "custetl_stage_duration_seconds",
			Help:       "Pipeline stage duration in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custetl_rows_total",
			Help: "Row counts per kind (extracted, skipped, date_dropped, loaded, ...).",
		},
		[]string{"kind"},
	)
	tableCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "custetl_tables_total",
			Help: "Per-country tables touched by this run.",
		},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, rowCounter, tableCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		rowCounter:    rowCounter,
		tableCounter:  tableCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "custetl_stage_total":
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)
	case "custetl_rows_total":
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)
	case "custetl_tables_total":
		b.tableCounter.Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveDuration(name string, value float64, labels metrics.Labels) {
	if name != "custetl_stage_duration_seconds" {
		return
	}
	b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
