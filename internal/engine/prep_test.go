package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
	"bistro/internal/models"
)

func TestStartPreparationClaimsStation(t *testing.T) {
	e, _ := newTestEngine(t)
	started := collect(e.Bus(), events.PreparationStarted)

	res := e.StartPreparation("ing_tomato", models.ActionChop, 10)
	require.True(t, res.Success)

	stationID := res.Data["stationId"].(string)
	station := e.Kitchen.Station(stationID)
	require.NotNil(t, station)
	assert.Equal(t, models.StationPrep, station.Type)
	assert.Equal(t, models.EquipmentBusy, station.Status)
	assert.Equal(t, 1, station.InUse)
	require.Len(t, *started, 1)
}

func TestStartPreparationUnknownIngredient(t *testing.T) {
	e, _ := newTestEngine(t)
	res := e.StartPreparation("ing_unicorn", models.ActionChop, 10)
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
	assert.Empty(t, e.Kitchen.PrepTasks)
}

func TestStartPreparationWithAllStationsBusy(t *testing.T) {
	e, _ := newTestEngine(t)

	// The default kitchen carries two prep counters.
	require.True(t, e.StartPreparation("ing_tomato", models.ActionChop, 10).Success)
	require.True(t, e.StartPreparation("ing_basil", models.ActionChop, 10).Success)

	res := e.StartPreparation("ing_tomato", models.ActionSlice, 10)
	require.False(t, res.Success)
	assert.Equal(t, "No available station", res.Message)
	assert.Len(t, e.Kitchen.PrepTasks, 2, "failed start must not create a task")
}

func TestCompletePreparationQualityPeaksAtFullProgress(t *testing.T) {
	e, clock := newTestEngine(t)
	completed := collect(e.Bus(), events.PreparationCompleted)

	res := e.StartPreparation("ing_tomato", models.ActionChop, 10)
	require.True(t, res.Success)
	taskID := res.Data["taskId"].(string)
	stationID := res.Data["stationId"].(string)

	// Exactly on time: progress 100, quality 100.
	clock.Advance(10 * time.Second)
	done := e.CompletePreparation(taskID)
	require.True(t, done.Success)
	assert.InDelta(t, 100.0, done.Data["quality"].(float64), 1e-9)

	assert.Empty(t, e.Kitchen.PrepTasks)
	station := e.Kitchen.Station(stationID)
	assert.Equal(t, 0, station.InUse)
	require.Len(t, *completed, 1)
}

func TestCompletePreparationEarlyLosesQuality(t *testing.T) {
	e, clock := newTestEngine(t)

	res := e.StartPreparation("ing_tomato", models.ActionChop, 10)
	require.True(t, res.Success)

	// Half done: progress 50, quality 100 - |50-100| = 50.
	clock.Advance(5 * time.Second)
	done := e.CompletePreparation(res.Data["taskId"].(string))
	require.True(t, done.Success)
	assert.InDelta(t, 50.0, done.Data["quality"].(float64), 1e-9)
}

func TestAdvancePreparationAutoCompletes(t *testing.T) {
	e, clock := newTestEngine(t)
	completed := collect(e.Bus(), events.PreparationCompleted)

	res := e.StartPreparation("ing_tomato", models.ActionChop, 10)
	require.True(t, res.Success)

	clock.Advance(12 * time.Second)
	e.advancePreparation(clock.Now())

	assert.Empty(t, e.Kitchen.PrepTasks)
	require.Len(t, *completed, 1)
}

func TestStationWearBreaksEquipment(t *testing.T) {
	e, clock := newTestEngine(t)
	broken := collect(e.Bus(), events.EquipmentBroken)

	// Wear is 0.1 per completed use; ten cycles on the same counter kill it.
	var brokenID string
	for i := 0; i < 10; i++ {
		res := e.StartPreparation("ing_tomato", models.ActionChop, 1)
		require.True(t, res.Success)
		brokenID = res.Data["stationId"].(string)
		clock.Advance(1 * time.Second)
		require.True(t, e.CompletePreparation(res.Data["taskId"].(string)).Success)
	}

	station := e.Kitchen.Station(brokenID)
	assert.Equal(t, models.EquipmentBroken, station.Status)
	assert.Equal(t, 0.0, station.Reliability)
	assert.False(t, station.Available())
	require.Len(t, *broken, 1)

	// A broken station is skipped; the second counter still works.
	res := e.StartPreparation("ing_tomato", models.ActionChop, 1)
	require.True(t, res.Success)
	assert.NotEqual(t, brokenID, res.Data["stationId"].(string))
}

func TestRepairEquipmentRestoresService(t *testing.T) {
	e, _ := newTestEngine(t)

	s := e.Kitchen.FindAvailableStation(models.StationPrep)
	require.NotNil(t, s)
	s.Wear(1.0)
	require.Equal(t, models.EquipmentBroken, s.Status)

	require.True(t, e.Kitchen.RepairEquipment(s.ID, 1.0))
	assert.Equal(t, models.EquipmentIdle, s.Status)
	assert.True(t, s.Available())
}
