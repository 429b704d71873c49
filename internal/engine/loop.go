package engine

import (
	"time"

	"bistro/internal/events"
	"bistro/internal/models"
)

// Start begins the game loop: resets the lost-customer counter, spawns the
// first customer and schedules per-frame ticks. Calling Start while the
// loop runs is a no-op failure.
func (e *Engine) Start() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fail("game loop is already running")
	}

	e.customersLeft = 0
	e.Game.Phase = models.PhaseActive
	e.Game.IsPaused = false
	e.lastTick = e.now()
	e.generateCustomer()

	e.publish(events.GameStarted, map[string]interface{}{
		"difficulty": e.Game.Difficulty,
	})

	e.stopCh = make(chan struct{})
	e.running = true
	go e.run(e.stopCh)
	return ok(map[string]interface{}{"difficulty": e.Game.Difficulty})
}

// Stop cancels the per-frame scheduling. Idempotent; a tick already in
// flight finishes with its mutations intact.
func (e *Engine) Stop() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return fail("game loop is not running")
	}
	e.stopLocked()
	e.publish(events.GamePaused, map[string]interface{}{
		"elapsedTime": e.Game.TimeElapsed,
	})
	return ok(map[string]interface{}{"elapsedTime": e.Game.TimeElapsed})
}

func (e *Engine) stopLocked() {
	if !e.running {
		return
	}
	close(e.stopCh)
	e.running = false
}

// Running reports whether the loop is scheduled.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// SetPaused freezes or resumes tick processing without cancelling the
// scheduler.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Game.IsPaused = paused
}

func (e *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(e.tuning.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick advances the simulation by the wall-clock delta since the previous
// tick. Exported so hosts and tests can drive the loop directly with an
// injected clock instead of the internal scheduler.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	delta := now.Sub(e.lastTick).Seconds()
	e.lastTick = now
	if delta <= 0 {
		return
	}
	e.tick(delta, now)
}

// tick runs the fixed subsystem order: time advance, patience decay, spawn,
// player-action completion, kitchen advance, frame event, end check. Later
// steps depend on state mutated by earlier ones.
func (e *Engine) tick(deltaSeconds float64, now time.Time) {
	if e.Game.IsPaused || e.Game.Phase != models.PhaseActive {
		return
	}

	e.Game.TimeElapsed += deltaSeconds
	e.updateDifficulty()
	d := e.Game.Difficulty

	// Queued customers lose patience faster than seated ones.
	e.decayPopulation(&e.Restaurant.CustomerQueue, deltaSeconds, 1+d*0.3)
	e.decayPopulation(&e.Restaurant.ActiveCustomers, deltaSeconds, 0.5+d*0.15)

	if e.shouldSpawnCustomer(deltaSeconds, d, len(e.Restaurant.CustomerQueue)) {
		e.generateCustomer()
	}

	e.advancePlayerActions(deltaSeconds)

	e.advancePreparation(now)
	e.advanceCooking(now)

	e.publish(events.FrameUpdate, map[string]interface{}{
		"timeElapsed": e.Game.TimeElapsed,
		"difficulty":  d,
		"queueLength": len(e.Restaurant.CustomerQueue),
		"funds":       e.Restaurant.Funds,
		"reputation":  e.Restaurant.Reputation,
	})

	e.checkEndConditions()
}

// decayPopulation applies patience decay to one customer collection and
// removes the customers that ran out.
func (e *Engine) decayPopulation(population *[]*models.Customer, deltaSeconds, ratePerSecond float64) {
	remaining := (*population)[:0]
	for _, c := range *population {
		c.Patience = e.decayPatience(c.Patience, deltaSeconds, ratePerSecond, c.ID)
		if c.Patience > 0 {
			remaining = append(remaining, c)
			continue
		}
		c.Status = models.CustomerLeft
		e.customersLeft++
		e.Game.Metrics.CustomersLost++
		if c.OrderID != "" {
			e.abandonOrder(c.OrderID)
		}
	}
	*population = remaining
}

func (e *Engine) checkEndConditions() {
	var reason string
	switch {
	case e.Restaurant.Funds < 0:
		reason = "bankrupt"
	case e.customersLeft > e.tuning.MaxCustomersLost:
		reason = "too_many_customers_lost"
	default:
		return
	}

	e.Game.Phase = models.PhaseGameOver
	e.stopLocked()
	// Subscribers run synchronously under the engine lock; the payload
	// carries everything a consumer needs so none of them call back in.
	e.publish(events.GameOver, map[string]interface{}{
		"reason":          reason,
		"score":           e.Restaurant.Funds,
		"timeElapsed":     e.Game.TimeElapsed,
		"difficulty":      e.Game.Difficulty,
		"ordersCompleted": e.Game.Metrics.OrdersCompleted,
		"customersServed": e.Game.Metrics.CustomersServed,
		"customersLost":   e.Game.Metrics.CustomersLost,
	})
}

// CustomersLeftCount reports the session's patience-zero departures.
func (e *Engine) CustomersLeftCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.customersLeft
}

// QueueAction enqueues a timed player action. The tick loop completes it
// once duration/speed has elapsed.
func (e *Engine) QueueAction(name string, durationSeconds float64, targetID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	action := &models.PlayerAction{
		ID:       models.NewTaskID(),
		Name:     name,
		Duration: durationSeconds,
		TargetID: targetID,
	}
	e.Player.ActionQueue = append(e.Player.ActionQueue, action)
	e.publish(events.ActionQueued, map[string]interface{}{
		"actionId": action.ID,
		"name":     name,
	})
	return ok(map[string]interface{}{"actionId": action.ID})
}

// advancePlayerActions progresses the action at the head of the queue. The
// player has one pair of hands; queued actions wait their turn.
func (e *Engine) advancePlayerActions(deltaSeconds float64) {
	if e.Player.PendingAction == nil {
		if len(e.Player.ActionQueue) == 0 {
			return
		}
		e.Player.PendingAction = e.Player.ActionQueue[0]
		e.Player.ActionQueue = e.Player.ActionQueue[1:]
	}

	a := e.Player.PendingAction
	a.Elapsed += deltaSeconds

	speed := e.Player.Speed
	if speed <= 0 {
		speed = 1
	}
	if a.Elapsed >= a.Duration/speed {
		e.Player.PendingAction = nil
		e.publish(events.ActionCompleted, map[string]interface{}{
			"actionId": a.ID,
			"name":     a.Name,
			"targetId": a.TargetID,
		})
	}
}
