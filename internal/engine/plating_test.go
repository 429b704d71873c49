package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
	"bistro/internal/models"
)

func startPlatingTask(t *testing.T, e *Engine) (*models.Order, string) {
	t.Helper()
	_, order := seatWithOrder(t, e)
	res := e.StartPlating(order.ID)
	require.True(t, res.Success)
	return order, res.Data["taskId"].(string)
}

func TestStartPlatingClaimsThePass(t *testing.T) {
	e, _ := newTestEngine(t)
	started := collect(e.Bus(), events.PlatingStarted)

	_, taskID := startPlatingTask(t, e)
	require.Contains(t, e.Kitchen.PlatingTasks, taskID)
	require.Len(t, *started, 1)

	// One plating pass in the default kitchen; a second task has nowhere
	// to go.
	e.Restaurant.CustomerCapacity = 4
	_, other := seatWithOrder(t, e)
	res := e.StartPlating(other.ID)
	require.False(t, res.Success)
	assert.Equal(t, "No available station", res.Message)
}

func TestAddPlatingItemIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	_, taskID := startPlatingTask(t, e)

	require.True(t, e.AddPlatingItem(taskID, "ing_tomato").Success)
	require.True(t, e.AddPlatingItem(taskID, "ing_tomato").Success)

	task := e.Kitchen.PlatingTasks[taskID]
	assert.Equal(t, []string{"ing_tomato"}, task.Items)
}

func TestAddGarnishIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	_, taskID := startPlatingTask(t, e)

	require.True(t, e.AddGarnish(taskID, "ing_basil").Success)
	require.True(t, e.AddGarnish(taskID, "ing_basil").Success)

	task := e.Kitchen.PlatingTasks[taskID]
	assert.Equal(t, []string{"ing_basil"}, task.Garnishes)
}

func TestCheckPlatingReportsMissingItems(t *testing.T) {
	e, _ := newTestEngine(t)
	_, taskID := startPlatingTask(t, e)

	check, res := e.CheckPlating(taskID)
	require.True(t, res.Success)
	assert.False(t, check.IsComplete)
	assert.ElementsMatch(t, []string{"ing_tomato", "ing_basil"}, check.MissingItems)
	assert.InDelta(t, 90.0, check.Quality, 1e-9)

	require.True(t, e.AddPlatingItem(taskID, "ing_tomato").Success)
	check, res = e.CheckPlating(taskID)
	require.True(t, res.Success)
	assert.Equal(t, []string{"ing_basil"}, check.MissingItems)
	assert.InDelta(t, 95.0, check.Quality, 1e-9)
}

func TestCompletePlatingRequiresCompletePlate(t *testing.T) {
	e, _ := newTestEngine(t)
	_, taskID := startPlatingTask(t, e)

	res := e.CompletePlating(taskID)
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "missing")
	require.Contains(t, e.Kitchen.PlatingTasks, taskID, "failed completion keeps the task open")
}

func TestCompletePlatingAdvancesOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	completed := collect(e.Bus(), events.PlatingCompleted)
	order, taskID := startPlatingTask(t, e)

	require.True(t, e.AddPlatingItem(taskID, "ing_tomato").Success)
	require.True(t, e.AddPlatingItem(taskID, "ing_basil").Success)
	require.True(t, e.AddGarnish(taskID, "garnish_chive").Success)

	res := e.CompletePlating(taskID)
	require.True(t, res.Success)
	assert.InDelta(t, 100.0, res.Data["quality"].(float64), 1e-9)

	assert.Equal(t, models.OrderPlated, order.Status)
	assert.NotContains(t, e.Kitchen.PlatingTasks, taskID)
	require.Len(t, *completed, 1)

	// The pass is free again.
	pass := e.Kitchen.FindAvailableStation(models.StationPlating)
	require.NotNil(t, pass)
}

func TestStartPlatingServedOrderFails(t *testing.T) {
	e, _ := newTestEngine(t)
	_, order := seatWithOrder(t, e)
	order.Status = models.OrderServed

	res := e.StartPlating(order.ID)
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "already been served")
}
