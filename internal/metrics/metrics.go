// Package metrics is a small backend-agnostic recording layer for the
// pipeline. It mirrors the storage abstraction: a narrow Backend interface, a
// global pluggable instance defaulting to a no-op, and concrete systems
// (Prometheus Pushgateway, Datadog) isolated in subpackages. Stage code calls
// the Record helpers unconditionally; with no backend configured they cost
// nothing.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface a metrics system must implement.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes buffered metrics if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage records one stage execution: a status-labelled counter plus its
// duration. Stage names follow the pipeline ("extract", "validate",
// "transform", "load").
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"stage":  stage,
		"status": status,
	}
	backend.IncCounter("custetl_stage_total", 1, lbls)
	backend.ObserveDuration("custetl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for the given job and kind.
//
// Kinds mirror the run summary fields:
//   - "extracted"
//   - "skipped"
//   - "date_dropped"
//   - "deduped"
//   - "country_dropped"
//   - "loaded"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("custetl_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordTables increments the count of per-country tables touched by a run.
func RecordTables(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("custetl_tables_total", float64(delta), Labels{
		"job": job,
	})
}
