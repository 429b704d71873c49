package engine

import (
	"fmt"

	"bistro/internal/events"
	"bistro/internal/models"
)

// PlatingCheck reports how complete a plate is against its recipe.
type PlatingCheck struct {
	IsComplete   bool     `json:"isComplete"`
	MissingItems []string `json:"missingItems"`
	Quality      float64  `json:"quality"`
}

// StartPlating claims a plating station and opens an assembly task for an
// order.
func (e *Engine) StartPlating(orderID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startPlating(orderID)
}

func (e *Engine) startPlating(orderID string) Result {
	order, _ := e.Restaurant.ActiveOrder(orderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s not found", orderID))
	}
	if order.Status == models.OrderServed {
		return fail(fmt.Sprintf("order %s has already been served", orderID))
	}

	station := e.Kitchen.FindAvailableStation(models.StationPlating)
	if station == nil {
		return fail("No available station")
	}

	e.occupyStation(station)
	task := &models.PlatingTask{
		ID:        models.NewTaskID(),
		StationID: station.ID,
		OrderID:   orderID,
		StartTime: e.now(),
		Status:    models.TaskInProgress,
	}
	e.Kitchen.PlatingTasks[task.ID] = task

	e.publish(events.PlatingStarted, map[string]interface{}{
		"taskId":  task.ID,
		"orderId": orderID,
	})
	return ok(map[string]interface{}{"taskId": task.ID, "stationId": station.ID})
}

// AddPlatingItem places a prepared component on the plate. Adding the same
// item twice is a no-op.
func (e *Engine) AddPlatingItem(taskID, itemID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, exists := e.Kitchen.PlatingTasks[taskID]
	if !exists {
		return fail(fmt.Sprintf("plating task %s not found", taskID))
	}
	if !contains(task.Items, itemID) {
		task.Items = append(task.Items, itemID)
	}
	return ok(map[string]interface{}{"taskId": taskID, "items": len(task.Items)})
}

// AddGarnish places a garnish on the plate. Duplicate garnishes are ignored.
func (e *Engine) AddGarnish(taskID, garnishID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, exists := e.Kitchen.PlatingTasks[taskID]
	if !exists {
		return fail(fmt.Sprintf("plating task %s not found", taskID))
	}
	if !contains(task.Garnishes, garnishID) {
		task.Garnishes = append(task.Garnishes, garnishID)
	}
	return ok(map[string]interface{}{"taskId": taskID, "garnishes": len(task.Garnishes)})
}

// CheckPlating compares the plate against the recipe's required
// ingredients. Quality starts at 80 plus a completeness bonus and loses 5
// per missing item, floored at 0.
func (e *Engine) CheckPlating(taskID string) (PlatingCheck, Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkPlating(taskID)
}

func (e *Engine) checkPlating(taskID string) (PlatingCheck, Result) {
	task, exists := e.Kitchen.PlatingTasks[taskID]
	if !exists {
		return PlatingCheck{}, fail(fmt.Sprintf("plating task %s not found", taskID))
	}
	order, _ := e.Restaurant.ActiveOrder(task.OrderID)
	if order == nil {
		return PlatingCheck{}, fail(fmt.Sprintf("order %s for plating task %s not found", task.OrderID, taskID))
	}
	dish, ok2 := e.Restaurant.Menu[order.DishID]
	if !ok2 {
		return PlatingCheck{}, fail(fmt.Sprintf("dish %s referenced by order %s does not exist", order.DishID, order.ID))
	}

	var missing []string
	for _, id := range dish.Recipe.RequiredIngredients() {
		if !contains(task.Items, id) {
			missing = append(missing, id)
		}
	}

	check := PlatingCheck{
		IsComplete:   len(missing) == 0,
		MissingItems: missing,
		Quality:      clamp(80+(20-float64(len(missing))*5), 0, 100),
	}
	return check, ok(map[string]interface{}{
		"isComplete": check.IsComplete,
		"missing":    len(missing),
		"quality":    check.Quality,
	})
}

// CompletePlating closes out an assembly task. The plate must be complete;
// garnishes add 5 quality each, capped at 100.
func (e *Engine) CompletePlating(taskID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, exists := e.Kitchen.PlatingTasks[taskID]
	if !exists {
		return fail(fmt.Sprintf("plating task %s not found", taskID))
	}

	check, res := e.checkPlating(taskID)
	if !res.Success {
		return res
	}
	if !check.IsComplete {
		return fail(fmt.Sprintf("plate is missing %d items", len(check.MissingItems)))
	}

	quality := clamp(check.Quality+float64(len(task.Garnishes))*5, 0, 100)
	task.Quality = quality
	task.Status = models.TaskCompleted
	delete(e.Kitchen.PlatingTasks, taskID)

	if err := e.releaseStation(task.StationID); err != nil {
		return fail(err.Error())
	}

	order, _ := e.Restaurant.ActiveOrder(task.OrderID)
	if order != nil {
		order.AdvanceTo(models.OrderPlated)
		// Assembly quality folds into the order like a recipe step.
		e.recordStepQuality(order, quality)
	}

	e.publish(events.PlatingCompleted, map[string]interface{}{
		"taskId":  task.ID,
		"orderId": task.OrderID,
		"quality": quality,
	})
	return ok(map[string]interface{}{"taskId": task.ID, "quality": quality})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
