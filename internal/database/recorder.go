package database

import (
	"log"
	"time"

	"bistro/internal/events"
)

// Recorder listens on the engine's event bus and archives served orders and
// finished sessions. It is passive: the engine never waits on it and a nil
// store turns every write into a no-op.
type Recorder struct {
	store  *Store
	cancel []func()
}

// NewRecorder attaches archive subscriptions to the engine's bus.
func NewRecorder(store *Store, bus *events.Bus) *Recorder {
	r := &Recorder{store: store}

	r.cancel = append(r.cancel, bus.Subscribe(events.PaymentProcessed, r.onPayment))
	r.cancel = append(r.cancel, bus.Subscribe(events.GameOver, r.onGameOver))
	return r
}

// Detach removes the recorder's subscriptions.
func (r *Recorder) Detach() {
	for _, c := range r.cancel {
		c()
	}
	r.cancel = nil
}

func (r *Recorder) onPayment(payload map[string]interface{}) {
	rec := ServedOrderRecord{
		OrderID:      str(payload["orderId"]),
		CustomerID:   str(payload["customerId"]),
		DishID:       str(payload["dishId"]),
		QualityScore: num(payload["quality"]),
		Tip:          num(payload["tip"]),
		Total:        num(payload["total"]),
		ServedAt:     time.Now(),
	}
	if err := r.store.RecordServedOrder(rec); err != nil {
		log.Printf("archive: failed to record order %s: %v", rec.OrderID, err)
	}
}

func (r *Recorder) onGameOver(payload map[string]interface{}) {
	// Handlers run under the engine lock; read the payload, never the engine.
	rec := SessionRecord{
		Reason:          str(payload["reason"]),
		Score:           num(payload["score"]),
		TimeElapsed:     num(payload["timeElapsed"]),
		Difficulty:      num(payload["difficulty"]),
		OrdersCompleted: num(payload["ordersCompleted"]),
		CustomersServed: num(payload["customersServed"]),
		CustomersLost:   num(payload["customersLost"]),
		EndedAt:         time.Now(),
	}
	if err := r.store.RecordSession(rec); err != nil {
		log.Printf("archive: failed to record session: %v", err)
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func num(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
