package metrics

import (
	"errors"
	"testing"
	"time"
)

// fakeBackend records every call for assertions.
type fakeBackend struct {
	counters   []counterCall
	durations  []durationCall
	flushCount int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type durationCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters = append(f.counters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveDuration(name string, value float64, labels Labels) {
	f.durations = append(f.durations, durationCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.flushCount++
	return nil
}

func TestRecordStageSuccessAndFailure(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordStage("customers", "extract", nil, 2*time.Second)
	RecordStage("customers", "load", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.counters) != 2 || len(fb.durations) != 2 {
		t.Fatalf("got %d counter and %d duration calls, want 2 and 2",
			len(fb.counters), len(fb.durations))
	}

	c0 := fb.counters[0]
	if c0.name != "custetl_stage_total" || c0.delta != 1 {
		t.Fatalf("counter[0] = %#v; want custetl_stage_total delta=1", c0)
	}
	if c0.labels["stage"] != "extract" || c0.labels["status"] != "success" {
		t.Fatalf("counter[0] labels = %v", c0.labels)
	}
	if d := fb.durations[0]; d.value < 1.999 || d.value > 2.001 {
		t.Fatalf("duration[0].value = %v, want ~2.0", d.value)
	}

	c1 := fb.counters[1]
	if c1.labels["stage"] != "load" || c1.labels["status"] != "failure" {
		t.Fatalf("counter[1] labels = %v", c1.labels)
	}
}

func TestRecordRowsIgnoresNonPositive(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordRows("customers", "extracted", 3)
	RecordRows("customers", "extracted", 0)
	RecordRows("customers", "loaded", -1)
	RecordTables("customers", 2)
	RecordTables("customers", 0)

	if len(fb.counters) != 2 {
		t.Fatalf("got %d counter calls, want 2", len(fb.counters))
	}
	if c := fb.counters[0]; c.name != "custetl_rows_total" || c.delta != 3 || c.labels["kind"] != "extracted" {
		t.Fatalf("counter[0] = %#v", c)
	}
	if c := fb.counters[1]; c.name != "custetl_tables_total" || c.delta != 2 {
		t.Fatalf("counter[1] = %#v", c)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	SetBackend(fb)

	if backend != fb {
		t.Fatal("SetBackend did not replace global backend")
	}
	if err := Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("flushCount = %d, want 1", fb.flushCount)
	}

	SetBackend(nil)
	if backend != fb {
		t.Fatal("SetBackend(nil) must keep the existing backend")
	}
}
