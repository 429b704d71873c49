package engine

import (
	"fmt"
	"time"

	"bistro/internal/events"
	"bistro/internal/models"
)

// StartPreparation begins prepping an ingredient on the first free prep
// station. Fails without state change when the ingredient is unknown or no
// station is available.
func (e *Engine) StartPreparation(ingredientID string, action models.StepAction, durationSeconds float64) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startPreparation(ingredientID, action, durationSeconds)
}

func (e *Engine) startPreparation(ingredientID string, action models.StepAction, durationSeconds float64) Result {
	if _, exists := e.Restaurant.Inventory[ingredientID]; !exists {
		return fail(fmt.Sprintf("ingredient %s not found", ingredientID))
	}

	station := e.Kitchen.FindAvailableStation(models.StationPrep)
	if station == nil {
		return fail("No available station")
	}

	e.occupyStation(station)
	task := &models.PreparationTask{
		ID:           models.NewTaskID(),
		StationID:    station.ID,
		IngredientID: ingredientID,
		Action:       action,
		StartTime:    e.now(),
		Duration:     durationSeconds,
		Status:       models.TaskInProgress,
	}
	e.Kitchen.PrepTasks[task.ID] = task

	e.publish(events.PreparationStarted, map[string]interface{}{
		"taskId":       task.ID,
		"stationId":    station.ID,
		"ingredientId": ingredientID,
		"action":       string(action),
	})
	return ok(map[string]interface{}{"taskId": task.ID, "stationId": station.ID})
}

// CompletePreparation finishes a prep task, scoring quality from how close
// progress landed to 100.
func (e *Engine) CompletePreparation(taskID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completePreparation(taskID, e.now())
}

func (e *Engine) completePreparation(taskID string, now time.Time) Result {
	task, exists := e.Kitchen.PrepTasks[taskID]
	if !exists {
		return fail(fmt.Sprintf("preparation task %s not found", taskID))
	}

	progress := taskProgress(task.StartTime, task.Duration, now)
	task.Progress = progress
	quality := clamp(100-abs(progress-100), 0, 100)
	task.Status = models.TaskCompleted
	delete(e.Kitchen.PrepTasks, taskID)

	if err := e.releaseStation(task.StationID); err != nil {
		return fail(err.Error())
	}

	e.publish(events.PreparationCompleted, map[string]interface{}{
		"taskId":       task.ID,
		"ingredientId": task.IngredientID,
		"quality":      quality,
	})
	return ok(map[string]interface{}{"taskId": task.ID, "quality": quality})
}

// advancePreparation polls prep tasks and auto-completes the ones that have
// run their full duration.
func (e *Engine) advancePreparation(now time.Time) {
	for id, task := range e.Kitchen.PrepTasks {
		task.Progress = taskProgress(task.StartTime, task.Duration, now)
		if task.Progress >= 100 {
			e.completePreparation(id, now)
		}
	}
}

// taskProgress maps elapsed time over a duration onto a 0-100+ scale.
func taskProgress(start time.Time, durationSeconds float64, now time.Time) float64 {
	if durationSeconds <= 0 {
		return 100
	}
	return now.Sub(start).Seconds() / durationSeconds * 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// occupyStation claims one slot on a station and marks it busy.
func (e *Engine) occupyStation(s *models.Equipment) {
	s.InUse++
	s.Status = models.EquipmentBusy
}

// releaseStation returns one slot on a station, applies wear, and restores
// idle status unless the wear broke it. A dangling station id is a hard
// failure of the calling operation.
func (e *Engine) releaseStation(stationID string) error {
	s := e.Kitchen.Station(stationID)
	if s == nil {
		return fmt.Errorf("station %s not found", stationID)
	}
	if s.InUse > 0 {
		s.InUse--
	}
	if s.Wear(e.tuning.WearPerUse) {
		e.publish(events.EquipmentBroken, map[string]interface{}{
			"equipmentId": s.ID,
		})
		return nil
	}
	if s.InUse == 0 {
		s.Status = models.EquipmentIdle
	}
	return nil
}
