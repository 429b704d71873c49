package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
)

func TestMonitorGetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["test_metric"]
	require.True(t, exists)
	assert.Equal(t, 42, value)

	_, exists = metrics["uptime_seconds"]
	assert.True(t, exists)
}

func TestMonitorRecordSessionResult(t *testing.T) {
	m := NewMonitor()

	m.RecordSessionResult("session_1", map[string]interface{}{
		"score": -5.0,
		"reason": "bankrupt",
	})

	metrics := m.GetMetrics()
	assert.Equal(t, -5.0, metrics["session_1_score"])
	assert.Equal(t, "bankrupt", metrics["session_1_reason"])
	_, exists := metrics["session_1_recorded_at"]
	assert.True(t, exists)
}

func TestMonitorReset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()
	_, exists := metrics["test_metric"]
	assert.False(t, exists)

	// Uptime is derived, not stored, so it survives a reset.
	_, exists = metrics["uptime_seconds"]
	assert.True(t, exists)
}

func TestMonitorAttachFollowsEvents(t *testing.T) {
	m := NewMonitor()
	bus := events.NewBus()
	detach := m.Attach(bus)
	defer detach()

	bus.Publish(events.FrameUpdate, map[string]interface{}{
		"timeElapsed": 12.0, "difficulty": 1.1, "queueLength": 2, "funds": 480.0,
	})
	bus.Publish(events.GameOver, map[string]interface{}{
		"reason": "bankrupt", "score": -3.0,
	})

	metrics := m.GetMetrics()
	assert.Equal(t, 12.0, metrics["time_elapsed"])
	assert.Equal(t, 480.0, metrics["funds"])
	assert.Equal(t, "bankrupt", metrics["session_1_reason"])
}
