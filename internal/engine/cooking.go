package engine

import (
	"fmt"
	"time"

	"bistro/internal/events"
	"bistro/internal/models"
)

const (
	overcookRiskThreshold = 120
	overcookedThreshold   = 110
	overcookedPenalty     = 30
)

// StartCooking begins the next recipe step for an order. The step's
// ingredients are consumed only after the station capacity check passes;
// a dangling dish or ingredient reference fails the operation outright.
func (e *Engine) StartCooking(orderID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startCooking(orderID)
}

func (e *Engine) startCooking(orderID string) Result {
	order, _ := e.Restaurant.ActiveOrder(orderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s not found", orderID))
	}
	if order.Status != models.OrderReceived && order.Status != models.OrderCooking {
		return fail(fmt.Sprintf("order %s is %s, not cookable", orderID, order.Status))
	}

	dish, exists := e.Restaurant.Menu[order.DishID]
	if !exists {
		return fail(fmt.Sprintf("dish %s referenced by order %s does not exist", order.DishID, orderID))
	}
	steps := dish.Recipe.Steps
	if order.StepsCompleted >= len(steps) {
		return fail(fmt.Sprintf("order %s has no remaining steps", orderID))
	}

	// Steps run strictly in sequence per order.
	for _, p := range e.Kitchen.CookProcesses {
		if p.OrderID == orderID && p.Status == models.TaskInProgress {
			return fail(fmt.Sprintf("order %s already has a step in progress", orderID))
		}
	}

	step := steps[order.StepsCompleted]
	station := e.Kitchen.FindAvailableStation(step.EquipmentType)
	if station == nil {
		return fail("No available station")
	}

	// Validate the whole ingredient list before consuming any of it.
	for _, id := range step.IngredientIDs {
		ing, ok := e.Restaurant.Inventory[id]
		if !ok {
			return fail(fmt.Sprintf("ingredient %s referenced by recipe does not exist", id))
		}
		if ing.Quantity < 1 {
			return fail(fmt.Sprintf("insufficient quantity of %s", ing.Name))
		}
	}
	for _, id := range step.IngredientIDs {
		ing := e.Restaurant.Inventory[id]
		ing.Quantity--
		e.publish(events.IngredientUsed, map[string]interface{}{
			"ingredientId": id,
			"quantity":     1,
			"remaining":    ing.Quantity,
		})
	}

	e.occupyStation(station)

	// Higher difficulty shrinks the optimal window, so the same wall-clock
	// overshoot costs more quality late game.
	optimal := step.Duration / Modifiers(e.Game.Difficulty).CookingDifficulty
	process := &models.CookingProcess{
		ID:          models.NewTaskID(),
		StationID:   station.ID,
		OrderID:     orderID,
		StepIndex:   order.StepsCompleted,
		StartTime:   e.now(),
		OptimalTime: optimal,
		Status:      models.TaskInProgress,
	}
	e.Kitchen.CookProcesses[process.ID] = process

	if order.Status == models.OrderReceived {
		order.AdvanceTo(models.OrderCooking)
	}

	e.publish(events.CookingStarted, map[string]interface{}{
		"processId": process.ID,
		"orderId":   orderID,
		"stationId": station.ID,
		"stepIndex": process.StepIndex,
		"action":    string(step.Action),
	})
	return ok(map[string]interface{}{"processId": process.ID, "stationId": station.ID})
}

// CookingProgress returns the current 0-100+ progress of a process, or a
// failure when it is unknown.
func (e *Engine) CookingProgress(processID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, exists := e.Kitchen.CookProcesses[processID]
	if !exists {
		return fail(fmt.Sprintf("cooking process %s not found", processID))
	}
	progress := taskProgress(p.StartTime, p.OptimalTime, e.now())
	return ok(map[string]interface{}{
		"processId":    p.ID,
		"progress":     progress,
		"overcookRisk": progress > overcookRiskThreshold,
	})
}

// CompleteCooking takes a process off the heat, scoring quality from how
// close progress landed to 100. Finishing the recipe's last step plates
// the order.
func (e *Engine) CompleteCooking(processID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completeCooking(processID, e.now())
}

func (e *Engine) completeCooking(processID string, now time.Time) Result {
	p, exists := e.Kitchen.CookProcesses[processID]
	if !exists {
		return fail(fmt.Sprintf("cooking process %s not found", processID))
	}

	progress := taskProgress(p.StartTime, p.OptimalTime, now)
	p.Progress = progress
	p.Overcooked = progress > overcookedThreshold

	quality := clamp(100-abs(progress-100), 0, 100)
	if p.Overcooked {
		quality = clamp(quality-overcookedPenalty, 0, 100)
	}
	p.Quality = quality
	p.Status = models.TaskCompleted
	delete(e.Kitchen.CookProcesses, processID)

	if err := e.releaseStation(p.StationID); err != nil {
		return fail(err.Error())
	}

	order, _ := e.Restaurant.ActiveOrder(p.OrderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s for process %s not found", p.OrderID, processID))
	}
	e.recordStepQuality(order, quality)

	dish := e.Restaurant.Menu[order.DishID]
	plated := dish != nil && order.StepsCompleted >= len(dish.Recipe.Steps)
	if plated {
		order.AdvanceTo(models.OrderPlated)
	}

	e.publish(events.CookingCompleted, map[string]interface{}{
		"processId":  p.ID,
		"orderId":    p.OrderID,
		"quality":    quality,
		"overcooked": p.Overcooked,
		"plated":     plated,
	})
	return ok(map[string]interface{}{
		"processId": p.ID,
		"quality":   quality,
		"plated":    plated,
	})
}

// recordStepQuality folds one step's quality into the order's running
// average and bumps the completed-step counter.
func (e *Engine) recordStepQuality(order *models.Order, quality float64) {
	n := float64(order.StepsCompleted)
	order.QualityScore = (order.QualityScore*n + quality) / (n + 1)
	order.StepsCompleted++
}

// advanceCooking polls in-flight processes, updating progress and raising a
// one-shot overcook warning past the risk threshold. Overcooking never
// auto-fails a process; taking it off the heat is the player's call.
func (e *Engine) advanceCooking(now time.Time) {
	for _, p := range e.Kitchen.CookProcesses {
		p.Progress = taskProgress(p.StartTime, p.OptimalTime, now)
		if p.Progress > overcookRiskThreshold && !p.RiskWarned {
			p.RiskWarned = true
			e.publish(events.OvercookWarning, map[string]interface{}{
				"processId": p.ID,
				"orderId":   p.OrderID,
				"progress":  p.Progress,
			})
		}
	}
}
