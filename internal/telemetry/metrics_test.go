package telemetry

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_CurationCounters(t *testing.T) {
	m := NewMetrics()

	m.IncCurationsStarted()
	m.IncCurationsStarted()
	m.IncCurationsCompleted()
	m.IncCurationsFailed()

	summary := m.GetSummary()
	if summary["curations_started"] != int64(2) {
		t.Errorf("expected 2 started, got %v", summary["curations_started"])
	}
	if summary["curations_completed"] != int64(1) {
		t.Errorf("expected 1 completed, got %v", summary["curations_completed"])
	}
	if summary["curations_failed"] != int64(1) {
		t.Errorf("expected 1 failed, got %v", summary["curations_failed"])
	}
	if summary["active_curations"] != int64(0) {
		t.Errorf("expected gauge back to 0, got %v", summary["active_curations"])
	}
}

func TestMetrics_ActiveGauge(t *testing.T) {
	m := NewMetrics()

	m.IncCurationsStarted()
	if got := m.GetSummary()["active_curations"]; got != int64(1) {
		t.Fatalf("expected 1 active, got %v", got)
	}
	m.IncCurationsCompleted()
	if got := m.GetSummary()["active_curations"]; got != int64(0) {
		t.Fatalf("expected 0 active, got %v", got)
	}
}

func TestMetrics_StoreCounters(t *testing.T) {
	m := NewMetrics()

	m.IncStoreWrites()
	m.IncStoreWritesSkipped()
	m.IncStoreWritesSkipped()
	m.IncExtractionMisses()
	m.IncSolvePrepared()

	summary := m.GetSummary()
	if summary["store_writes"] != int64(1) {
		t.Errorf("expected 1 write, got %v", summary["store_writes"])
	}
	if summary["store_writes_skipped"] != int64(2) {
		t.Errorf("expected 2 skipped, got %v", summary["store_writes_skipped"])
	}
	if summary["extraction_misses"] != int64(1) {
		t.Errorf("expected 1 miss, got %v", summary["extraction_misses"])
	}
	if summary["solve_prepared"] != int64(1) {
		t.Errorf("expected 1 prepared, got %v", summary["solve_prepared"])
	}
}

func TestMetrics_LatencyAverage(t *testing.T) {
	m := NewMetrics()

	m.RecordCurationLatency(100 * time.Millisecond)
	m.RecordCurationLatency(300 * time.Millisecond)

	summary := m.GetSummary()
	if summary["avg_curation_latency_ms"] != int64(200) {
		t.Errorf("expected avg 200ms, got %v", summary["avg_curation_latency_ms"])
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.IncStoreWrites()
	m.RecordCurationLatency(time.Second)

	m.Reset()

	summary := m.GetSummary()
	if summary["store_writes"] != int64(0) {
		t.Errorf("expected 0 after reset, got %v", summary["store_writes"])
	}
	if _, ok := summary["avg_curation_latency_ms"]; ok {
		t.Error("expected latency history cleared")
	}
}

func TestMetrics_ConcurrentIncrements(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncStoreWrites()
			m.RecordCurationLatency(time.Millisecond)
		}()
	}
	wg.Wait()

	if got := m.GetSummary()["store_writes"]; got != int64(50) {
		t.Errorf("expected 50 writes, got %v", got)
	}
}
