package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"

	"bistro/internal/events"
)

// Collector exports simulation state to Prometheus. It is fed entirely by
// event payloads; it never reads engine state directly.
type Collector struct {
	registry *prometheus.Registry

	funds           prometheus.Gauge
	reputation      prometheus.Gauge
	difficulty      prometheus.Gauge
	queueLength     prometheus.Gauge
	customersLost   prometheus.Counter
	ordersCompleted prometheus.Counter
	orderQuality    prometheus.Histogram
	tips            prometheus.Histogram
}

// NewCollector creates the collector and registers its metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		funds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "restaurant_funds",
			Help: "Current restaurant funds",
		}),
		reputation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "restaurant_reputation",
			Help: "Current restaurant reputation",
		}),
		difficulty: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "game_difficulty",
			Help: "Current game difficulty",
		}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "customer_queue_length",
			Help: "Customers waiting at the door",
		}),
		customersLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "customers_lost_total",
			Help: "Customers that ran out of patience",
		}),
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_completed_total",
			Help: "Orders served and paid",
		}),
		orderQuality: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_quality_score",
			Help:    "Quality score of completed orders",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		tips: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_tip_amount",
			Help:    "Tip amount per completed order",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		}),
	}

	registry.MustRegister(
		c.funds, c.reputation, c.difficulty, c.queueLength,
		c.customersLost, c.ordersCompleted, c.orderQuality, c.tips,
	)
	return c
}

// Registry exposes the collector's registry for promhttp.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Attach subscribes the collector to a bus and returns an unsubscribe
// function for all of its subscriptions.
func (c *Collector) Attach(bus *events.Bus) func() {
	cancels := []func(){
		bus.Subscribe(events.FrameUpdate, func(p map[string]interface{}) {
			c.difficulty.Set(toFloat(p["difficulty"]))
			c.queueLength.Set(toFloat(p["queueLength"]))
			c.funds.Set(toFloat(p["funds"]))
			c.reputation.Set(toFloat(p["reputation"]))
		}),
		bus.Subscribe(events.FundsChanged, func(p map[string]interface{}) {
			c.funds.Set(toFloat(p["funds"]))
		}),
		bus.Subscribe(events.CustomerLeft, func(p map[string]interface{}) {
			c.customersLost.Inc()
		}),
		bus.Subscribe(events.OrderCompleted, func(p map[string]interface{}) {
			c.ordersCompleted.Inc()
			c.orderQuality.Observe(toFloat(p["quality"]))
			c.tips.Observe(toFloat(p["tip"]))
		}),
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
