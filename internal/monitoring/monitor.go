package monitoring

import (
	"fmt"
	"sync"
	"time"

	"bistro/internal/events"
)

// Monitor collects ad-hoc metrics for the running simulation.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance.
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value.
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value.
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics.
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics.
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordSessionResult records metrics from a finished game session under a
// per-session prefix.
func (m *Monitor) RecordSessionResult(sessionID string, metrics map[string]interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	prefix := sessionID + "_"

	for k, v := range metrics {
		m.metrics[prefix+k] = v
	}

	m.metrics[prefix+"recorded_at"] = time.Now().Format(time.RFC3339)
}

// Attach subscribes the monitor to the engine's event stream. Frame updates
// overwrite the live gauges; each game over lands under its own session
// prefix.
func (m *Monitor) Attach(bus *events.Bus) func() {
	var sessions int
	cancels := []func(){
		bus.Subscribe(events.FrameUpdate, func(p map[string]interface{}) {
			m.RecordMetric("time_elapsed", p["timeElapsed"])
			m.RecordMetric("difficulty", p["difficulty"])
			m.RecordMetric("queue_length", p["queueLength"])
			m.RecordMetric("funds", p["funds"])
		}),
		bus.Subscribe(events.GameOver, func(p map[string]interface{}) {
			sessions++
			m.RecordSessionResult(fmt.Sprintf("session_%d", sessions), p)
		}),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
