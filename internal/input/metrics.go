package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/vimcore/internal/input/mode"
)

// maxLatencySamples is the size of the key latency ring.
const maxLatencySamples = 1000

// Metrics tracks key handling statistics.
type Metrics struct {
	keyEventsTotal   atomic.Uint64
	consumed         atomic.Uint64
	passedThrough    atomic.Uint64
	hookConsumptions atomic.Uint64
	queueOverflows   atomic.Uint64

	mu         sync.RWMutex
	byMode     map[mode.Mode]uint64
	latencies  []time.Duration
	latencyIdx int
	startTime  time.Time

	peakKeyLatency atomic.Int64
	enabled        atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		byMode:    make(map[mode.Mode]uint64),
		latencies: make([]time.Duration, maxLatencySamples),
		startTime: time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeyEvent records a handled key, the mode it left the engine in
// and its processing time.
func (m *Metrics) RecordKeyEvent(latency time.Duration, md mode.Mode, res Result) {
	if !m.enabled.Load() {
		return
	}

	m.keyEventsTotal.Add(1)
	if res == Consumed {
		m.consumed.Add(1)
	} else {
		m.passedThrough.Add(1)
	}

	ns := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if ns <= current || m.peakKeyLatency.CompareAndSwap(current, ns) {
			break
		}
	}

	m.mu.Lock()
	m.byMode[md]++
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % maxLatencySamples
	m.mu.Unlock()
}

// RecordHookConsumption records a key consumed by a hook.
func (m *Metrics) RecordHookConsumption() {
	if m.enabled.Load() {
		m.hookConsumptions.Add(1)
	}
}

// RecordQueueOverflow records a macro or mapping expansion that was
// dropped for exceeding the queue limit.
func (m *Metrics) RecordQueueOverflow() {
	if m.enabled.Load() {
		m.queueOverflows.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal   uint64
	Consumed         uint64
	PassedThrough    uint64
	HookConsumptions uint64
	QueueOverflows   uint64

	// ByMode counts keys by the mode they left the engine in.
	ByMode map[mode.Mode]uint64

	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	EventsPerSecond float64
	Uptime          time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := slices.Clone(m.latencies)
	byMode := make(map[mode.Mode]uint64, len(m.byMode))
	for k, v := range m.byMode {
		byMode[k] = v
	}
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	keyCount := m.keyEventsTotal.Load()
	snap := MetricsSnapshot{
		KeyEventsTotal:   keyCount,
		Consumed:         m.consumed.Load(),
		PassedThrough:    m.passedThrough.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		QueueOverflows:   m.queueOverflows.Load(),
		ByMode:           byMode,
		PeakKeyLatency:   time.Duration(m.peakKeyLatency.Load()),
		Uptime:           uptime,
	}
	if uptime > 0 {
		snap.EventsPerSecond = float64(keyCount) / uptime.Seconds()
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		maxLat = max(maxLat, l)
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := min(int(float64(len(valid))*0.99), len(valid)-1)
	return avg, maxLat, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.consumed.Store(0)
	m.passedThrough.Store(0)
	m.hookConsumptions.Store(0)
	m.queueOverflows.Store(0)
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	clear(m.byMode)
	m.latencies = make([]time.Duration, maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health of key handling.
type HealthStatus struct {
	Healthy          bool
	QueueOverflows   uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck returns the current health status.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		QueueOverflows:   m.queueOverflows.Load(),
		PeakLatency:      time.Duration(m.peakKeyLatency.Load()),
		LatencyThreshold: latencyThreshold,
		Message:          "healthy",
	}
	switch {
	case status.QueueOverflows > 0:
		status.Healthy = false
		status.Message = "key queue overflow detected"
	case status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	}
	return status
}
