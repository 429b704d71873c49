package engine

import (
	"fmt"
	"math"

	"bistro/internal/events"
	"bistro/internal/models"
)

// SpawnProbability returns the canonical per-second probability of a new
// customer arriving. A longer queue discourages walk-ins, floored at 40%.
func (t Tuning) SpawnProbability(difficulty float64, queueLength int) float64 {
	queuePenalty := math.Max(0.4, 1-float64(queueLength)*0.05)
	return (t.SpawnBaseRate + difficulty*t.SpawnDifficultyRate) * queuePenalty
}

// ShouldSpawnCustomer rolls the spawn check for one tick. A full queue
// never spawns.
func (e *Engine) ShouldSpawnCustomer(deltaSeconds, difficulty float64, queueLength int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shouldSpawnCustomer(deltaSeconds, difficulty, queueLength)
}

func (e *Engine) shouldSpawnCustomer(deltaSeconds, difficulty float64, queueLength int) bool {
	if queueLength >= e.tuning.MaxQueueLength {
		return false
	}
	perSecond := e.tuning.SpawnProbability(difficulty, queueLength)
	return e.rng.Float64() < perSecond*deltaSeconds
}

// SpawnPatience is the patience a difficulty-driven spawn starts with.
func SpawnPatience(difficulty float64) float64 {
	return 100 * math.Max(0.4, 1-difficulty*0.06)
}

// GenerateCustomer creates a customer scaled to current difficulty, appends
// it to the queue tail and announces the arrival.
func (e *Engine) GenerateCustomer() *models.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generateCustomer()
}

func (e *Engine) generateCustomer() *models.Customer {
	c := models.NewCustomer(
		models.WithPatience(SpawnPatience(e.Game.Difficulty)),
		models.WithCustomerName(fmt.Sprintf("Guest %d", len(e.Restaurant.CustomerQueue)+len(e.Restaurant.ActiveCustomers)+1)),
	)
	e.Restaurant.CustomerQueue = append(e.Restaurant.CustomerQueue, c)
	e.publish(events.CustomerArrived, map[string]interface{}{
		"customerId": c.ID,
		"patience":   c.Patience,
	})
	return c
}

// RandomPatienceBaseline draws the factory template baseline in [80, 110).
func (e *Engine) RandomPatienceBaseline() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return 80 + e.rng.Float64()*30
}

// ReducePatience applies the default decay rate (1 + difficulty*0.5) to a
// patience value over deltaSeconds. It does not mutate engine state; its
// only side effects are the departure and patience-critical events.
func (e *Engine) ReducePatience(current, deltaSeconds, difficulty float64, customerID string) float64 {
	decayPerSecond := 1 + difficulty*0.5
	return e.decayPatience(current, deltaSeconds, decayPerSecond, customerID)
}

// decayPatience is the shared decay helper. The tick loop feeds it separate
// queue and seated rates.
func (e *Engine) decayPatience(current, deltaSeconds, ratePerSecond float64, customerID string) float64 {
	next := math.Max(0, current-ratePerSecond*deltaSeconds)
	switch {
	case next == 0:
		e.publish(events.CustomerLeft, map[string]interface{}{
			"customerId": customerID,
		})
	case next < 30:
		e.publish(events.CustomerPatienceLow, map[string]interface{}{
			"customerId": customerID,
			"patience":   next,
		})
	}
	return next
}

// SeatCustomer moves a customer from the queue to a table. The move is
// atomic: on any failure neither collection changes.
func (e *Engine) SeatCustomer(customerID, tableID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seatCustomer(customerID, tableID)
}

func (e *Engine) seatCustomer(customerID, tableID string) Result {
	c, idx := e.Restaurant.QueuedCustomer(customerID)
	if c == nil {
		return fail(fmt.Sprintf("customer %s not found in queue", customerID))
	}
	if len(e.Restaurant.ActiveCustomers) >= e.Restaurant.CustomerCapacity {
		return fail("restaurant is at full capacity")
	}

	e.Restaurant.CustomerQueue = append(e.Restaurant.CustomerQueue[:idx], e.Restaurant.CustomerQueue[idx+1:]...)
	c.Status = models.CustomerSeated
	c.TableID = tableID
	e.Restaurant.ActiveCustomers = append(e.Restaurant.ActiveCustomers, c)

	e.publish(events.CustomerSeated, map[string]interface{}{
		"customerId": c.ID,
		"tableId":    tableID,
	})
	return ok(map[string]interface{}{"customerId": c.ID, "tableId": tableID})
}

// UpdateCustomerSatisfaction records a satisfaction score, derives the tip
// and nudges restaurant reputation, downward for scores under 50.
func (e *Engine) UpdateCustomerSatisfaction(customerID string, score float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateCustomerSatisfaction(customerID, score)
}

func (e *Engine) updateCustomerSatisfaction(customerID string, score float64) Result {
	c, _ := e.Restaurant.ActiveCustomer(customerID)
	if c == nil {
		c, _ = e.Restaurant.QueuedCustomer(customerID)
	}
	if c == nil {
		return fail(fmt.Sprintf("customer %s not found", customerID))
	}

	c.Satisfaction = score
	c.Tip = math.Floor((score / 100) * 5)
	e.Restaurant.Reputation += (score - 50) / 10

	return ok(map[string]interface{}{
		"customerId":   c.ID,
		"satisfaction": c.Satisfaction,
		"tip":          c.Tip,
	})
}

// removeCustomer drops a customer from whichever collection holds it.
// Returns true when the customer was queued or seated.
func (e *Engine) removeCustomer(customerID string) bool {
	if _, idx := e.Restaurant.QueuedCustomer(customerID); idx >= 0 {
		e.Restaurant.CustomerQueue = append(e.Restaurant.CustomerQueue[:idx], e.Restaurant.CustomerQueue[idx+1:]...)
		return true
	}
	if _, idx := e.Restaurant.ActiveCustomer(customerID); idx >= 0 {
		e.Restaurant.ActiveCustomers = append(e.Restaurant.ActiveCustomers[:idx], e.Restaurant.ActiveCustomers[idx+1:]...)
		return true
	}
	return false
}
