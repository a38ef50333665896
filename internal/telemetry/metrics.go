package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects runtime metrics for the curation pipeline.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	CurationsStarted   int64
	CurationsCompleted int64
	CurationsFailed    int64
	ExtractionMisses   int64
	StoreWrites        int64
	StoreWritesSkipped int64
	SolvePrepared      int64

	// Gauges
	ActiveCurations int64

	// Histograms (simplified)
	curationLatencies []time.Duration

	// Exporter (optional)
	exporter MetricsExporter
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		curationLatencies: make([]time.Duration, 0, 1000),
	}
}

// IncCurationsStarted increments the curations started counter.
func (m *Metrics) IncCurationsStarted() {
	atomic.AddInt64(&m.CurationsStarted, 1)
	atomic.AddInt64(&m.ActiveCurations, 1)
}

// IncCurationsCompleted increments the curations completed counter.
func (m *Metrics) IncCurationsCompleted() {
	atomic.AddInt64(&m.CurationsCompleted, 1)
	atomic.AddInt64(&m.ActiveCurations, -1)
}

// IncCurationsFailed increments the curations failed counter.
func (m *Metrics) IncCurationsFailed() {
	atomic.AddInt64(&m.CurationsFailed, 1)
	atomic.AddInt64(&m.ActiveCurations, -1)
}

// IncExtractionMisses increments the extraction misses counter.
func (m *Metrics) IncExtractionMisses() {
	atomic.AddInt64(&m.ExtractionMisses, 1)
}

// IncStoreWrites increments the store writes counter.
func (m *Metrics) IncStoreWrites() {
	atomic.AddInt64(&m.StoreWrites, 1)
}

// IncStoreWritesSkipped increments the skipped (no-op) writes counter.
func (m *Metrics) IncStoreWritesSkipped() {
	atomic.AddInt64(&m.StoreWritesSkipped, 1)
}

// IncSolvePrepared increments the solve context preparations counter.
func (m *Metrics) IncSolvePrepared() {
	atomic.AddInt64(&m.SolvePrepared, 1)
}

// RecordCurationLatency records a curator round-trip duration.
func (m *Metrics) RecordCurationLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.curationLatencies = append(m.curationLatencies, d)
}

// GetSummary returns a summary of collected metrics.
func (m *Metrics) GetSummary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := map[string]interface{}{
		"curations_started":    atomic.LoadInt64(&m.CurationsStarted),
		"curations_completed":  atomic.LoadInt64(&m.CurationsCompleted),
		"curations_failed":     atomic.LoadInt64(&m.CurationsFailed),
		"extraction_misses":    atomic.LoadInt64(&m.ExtractionMisses),
		"store_writes":         atomic.LoadInt64(&m.StoreWrites),
		"store_writes_skipped": atomic.LoadInt64(&m.StoreWritesSkipped),
		"solve_prepared":       atomic.LoadInt64(&m.SolvePrepared),
		"active_curations":     atomic.LoadInt64(&m.ActiveCurations),
	}

	if len(m.curationLatencies) > 0 {
		var total time.Duration
		for _, d := range m.curationLatencies {
			total += d
		}
		summary["avg_curation_latency_ms"] = total.Milliseconds() / int64(len(m.curationLatencies))
	}

	return summary
}

// Reset resets all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	atomic.StoreInt64(&m.CurationsStarted, 0)
	atomic.StoreInt64(&m.CurationsCompleted, 0)
	atomic.StoreInt64(&m.CurationsFailed, 0)
	atomic.StoreInt64(&m.ExtractionMisses, 0)
	atomic.StoreInt64(&m.StoreWrites, 0)
	atomic.StoreInt64(&m.StoreWritesSkipped, 0)
	atomic.StoreInt64(&m.SolvePrepared, 0)
	atomic.StoreInt64(&m.ActiveCurations, 0)

	m.curationLatencies = m.curationLatencies[:0]
}

// SetExporter attaches a metrics exporter.
func (m *Metrics) SetExporter(e MetricsExporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exporter = e
}

// Flush exports the current metrics snapshot with the given event label.
func (m *Metrics) Flush(event string, labels map[string]string) {
	m.mu.RLock()
	exporter := m.exporter
	m.mu.RUnlock()

	if exporter == nil {
		return
	}

	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		Event:     event,
		Metrics:   m.GetSummary(),
		Labels:    labels,
	}
	// Best-effort export.
	_ = exporter.Export(snapshot)
}
