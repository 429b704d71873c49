package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/models"
)

func TestDefaultIsPlayable(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Port)
	assert.NotEmpty(t, cfg.Menu)
	assert.NotEmpty(t, cfg.Inventory)

	// Every recipe ingredient exists in the default pantry.
	stock := make(map[string]bool)
	for _, ing := range cfg.Inventory {
		stock[ing.ID] = true
	}
	for _, dish := range cfg.Menu {
		for _, id := range dish.Recipe.RequiredIngredients() {
			assert.True(t, stock[id], "dish %s needs unstocked ingredient %s", dish.ID, id)
		}
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Port, cfg.Port)
}

func TestLoadOverridesSelectively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
port: 9999
game:
  starting_funds: 1200
tuning:
  max_queue_length: 5
  tick_interval_ms: 250
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 1200.0, cfg.Game.StartingFunds)
	assert.Equal(t, 5, cfg.Tuning.MaxQueueLength)

	// Untouched fields keep their defaults.
	assert.Equal(t, Default().MetricsPort, cfg.MetricsPort)
	assert.NotEmpty(t, cfg.Menu)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEngineTuningConversion(t *testing.T) {
	cfg := Default()
	cfg.Tuning.TickIntervalMs = 250

	tuning := cfg.EngineTuning()
	assert.Equal(t, 250*time.Millisecond, tuning.TickInterval)
	assert.Equal(t, cfg.Tuning.MaxQueueLength, tuning.MaxQueueLength)
	assert.Equal(t, cfg.Tuning.DailyExpense, tuning.DailyExpense)
}

func TestBuildRestaurantSeedsMenuAndInventory(t *testing.T) {
	cfg := Default()
	r := cfg.BuildRestaurant()

	assert.Equal(t, cfg.Game.StartingFunds, r.Funds)
	assert.Equal(t, cfg.Game.CustomerCapacity, r.CustomerCapacity)
	assert.Len(t, r.Menu, len(cfg.Menu))
	assert.Len(t, r.Inventory, len(cfg.Inventory))
	assert.Len(t, r.UnlockedDishes, len(cfg.Menu))

	// The restaurant owns copies; mutating it must not touch the config.
	for _, ing := range r.Inventory {
		ing.Quantity = 0
	}
	assert.NotZero(t, cfg.Inventory[0].Quantity)
}

func TestBuildGameAppliesModeAndSettings(t *testing.T) {
	cfg := Default()
	cfg.Game.Mode = string(models.ModeAssistant)
	cfg.Game.Settings.GameSpeed = 2

	g := cfg.BuildGame()
	assert.Equal(t, models.ModeAssistant, g.Mode)
	assert.Equal(t, 2.0, g.Settings.GameSpeed)
	assert.Equal(t, models.PhasePreGame, g.Phase)
}
