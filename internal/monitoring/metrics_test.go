package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
)

func TestCollectorFollowsFrameUpdates(t *testing.T) {
	c := NewCollector()
	bus := events.NewBus()
	detach := c.Attach(bus)
	defer detach()

	bus.Publish(events.FrameUpdate, map[string]interface{}{
		"difficulty":  1.3,
		"queueLength": 4,
		"funds":       420.0,
		"reputation":  55.0,
	})

	assert.InDelta(t, 1.3, testutil.ToFloat64(c.difficulty), 1e-9)
	assert.InDelta(t, 4.0, testutil.ToFloat64(c.queueLength), 1e-9)
	assert.InDelta(t, 420.0, testutil.ToFloat64(c.funds), 1e-9)
	assert.InDelta(t, 55.0, testutil.ToFloat64(c.reputation), 1e-9)
}

func TestCollectorCountsLossesAndCompletions(t *testing.T) {
	c := NewCollector()
	bus := events.NewBus()
	detach := c.Attach(bus)
	defer detach()

	bus.Publish(events.CustomerLeft, map[string]interface{}{"customerId": "c1"})
	bus.Publish(events.CustomerLeft, map[string]interface{}{"customerId": "c2"})
	bus.Publish(events.OrderCompleted, map[string]interface{}{"orderId": "o1", "quality": 90.0, "tip": 14.0})

	assert.InDelta(t, 2.0, testutil.ToFloat64(c.customersLost), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.ordersCompleted), 1e-9)
}

func TestDetachStopsUpdates(t *testing.T) {
	c := NewCollector()
	bus := events.NewBus()
	detach := c.Attach(bus)

	bus.Publish(events.FundsChanged, map[string]interface{}{"funds": 100.0})
	detach()
	bus.Publish(events.FundsChanged, map[string]interface{}{"funds": 999.0})

	assert.InDelta(t, 100.0, testutil.ToFloat64(c.funds), 1e-9)
}

func TestRegistryServesAllMetrics(t *testing.T) {
	c := NewCollector()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, expected := range []string{
		"restaurant_funds", "restaurant_reputation", "game_difficulty",
		"customer_queue_length", "customers_lost_total", "orders_completed_total",
		"order_quality_score", "order_tip_amount",
	} {
		assert.True(t, names[expected], "metric %s not registered", expected)
	}
}
