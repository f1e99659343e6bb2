package input

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

func TestMetricsBasic(t *testing.T) {
	m := NewMetrics()

	m.RecordKeyEvent(time.Millisecond, mode.Normal, Consumed)
	m.RecordKeyEvent(2*time.Millisecond, mode.Insert, Consumed)
	m.RecordKeyEvent(3*time.Millisecond, mode.Insert, PassThrough)
	m.RecordHookConsumption()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 3 {
		t.Errorf("KeyEventsTotal = %d, want 3", snap.KeyEventsTotal)
	}
	if snap.Consumed != 2 || snap.PassedThrough != 1 {
		t.Errorf("Consumed/PassedThrough = %d/%d, want 2/1", snap.Consumed, snap.PassedThrough)
	}
	if snap.HookConsumptions != 1 {
		t.Errorf("HookConsumptions = %d, want 1", snap.HookConsumptions)
	}
	if snap.ByMode[mode.Insert] != 2 {
		t.Errorf("ByMode[Insert] = %d, want 2", snap.ByMode[mode.Insert])
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	for i := 0; i < 100; i++ {
		m.RecordKeyEvent(time.Duration(i+1)*time.Microsecond, mode.Normal, Consumed)
	}

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 100 {
		t.Errorf("KeyEventsTotal = %d, want 100", snap.KeyEventsTotal)
	}
	if snap.AvgKeyLatency <= 0 {
		t.Error("AvgKeyLatency should be > 0")
	}
	if snap.MaxKeyLatency != 100*time.Microsecond {
		t.Errorf("MaxKeyLatency = %v, want 100us", snap.MaxKeyLatency)
	}
	if snap.PeakKeyLatency != 100*time.Microsecond {
		t.Errorf("PeakKeyLatency = %v, want 100us", snap.PeakKeyLatency)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)

	m.RecordKeyEvent(time.Millisecond, mode.Normal, Consumed)
	m.RecordQueueOverflow()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 || snap.QueueOverflows != 0 {
		t.Error("metrics should not record when disabled")
	}
}

func TestMetricsHealthCheck(t *testing.T) {
	m := NewMetrics()

	status := m.HealthCheck(5 * time.Millisecond)
	if !status.Healthy {
		t.Error("should be healthy initially")
	}

	m.RecordKeyEvent(10*time.Millisecond, mode.Normal, Consumed)
	status = m.HealthCheck(5 * time.Millisecond)
	if status.Healthy {
		t.Error("should be unhealthy after a slow key")
	}

	m.Reset()
	m.RecordQueueOverflow()
	status = m.HealthCheck(time.Second)
	if status.Healthy || status.QueueOverflows != 1 {
		t.Errorf("status = %+v, want unhealthy with one overflow", status)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()

	m.RecordKeyEvent(time.Millisecond, mode.Normal, Consumed)
	m.RecordQueueOverflow()
	m.Reset()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 {
		t.Error("KeyEventsTotal should be 0 after reset")
	}
	if snap.QueueOverflows != 0 {
		t.Error("QueueOverflows should be 0 after reset")
	}
	if snap.AvgKeyLatency != 0 {
		t.Error("latencies should be cleared after reset")
	}
}

func TestEngineRecordsMetrics(t *testing.T) {
	m := NewMetrics()
	eng, _ := newTestEngine(t, "abc", WithMetrics(m))

	eng.HandleKey('i')
	eng.HandleKey('x')
	eng.HandleEvent(key.Escape)

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 3 {
		t.Errorf("KeyEventsTotal = %d, want 3", snap.KeyEventsTotal)
	}
	if snap.ByMode[mode.Insert] != 2 || snap.ByMode[mode.Normal] != 1 {
		t.Errorf("ByMode = %v, want 2 insert and 1 normal", snap.ByMode)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				m.RecordKeyEvent(time.Microsecond, mode.Normal, Consumed)
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().KeyEventsTotal; got != 2000 {
		t.Errorf("KeyEventsTotal = %d, want 2000", got)
	}
}
