package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bistro/internal/engine"
	"bistro/internal/models"
)

// Config is the application configuration. Every field has a usable
// default; a YAML file overrides selectively.
type Config struct {
	Port         int    `yaml:"port"`
	MetricsPort  int    `yaml:"metrics_port"`
	DatabasePath string `yaml:"database_path"`
	LogLevel     string `yaml:"log_level"`

	Game struct {
		Mode             string              `yaml:"mode"`
		StartingFunds    float64             `yaml:"starting_funds"`
		CustomerCapacity int                 `yaml:"customer_capacity"`
		Settings         models.GameSettings `yaml:"settings"`
	} `yaml:"game"`

	Tuning struct {
		MaxQueueLength      int     `yaml:"max_queue_length"`
		SpawnBaseRate       float64 `yaml:"spawn_base_rate"`
		SpawnDifficultyRate float64 `yaml:"spawn_difficulty_rate"`
		DailyExpense        float64 `yaml:"daily_expense"`
		WearPerUse          float64 `yaml:"wear_per_use"`
		MaxCustomersLost    int     `yaml:"max_customers_lost"`
		TickIntervalMs      int     `yaml:"tick_interval_ms"`
	} `yaml:"tuning"`

	Menu      []models.Dish       `yaml:"menu"`
	Inventory []models.Ingredient `yaml:"inventory"`

	Assistant struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"assistant"`
}

// Default returns the built-in configuration: a small menu and pantry so
// the sim is playable with no config file at all.
func Default() *Config {
	c := &Config{
		Port:         8080,
		MetricsPort:  9090,
		DatabasePath: "bistro.db",
		LogLevel:     "info",
	}
	c.Game.Mode = string(models.ModeManual)
	c.Game.StartingFunds = 500
	c.Game.CustomerCapacity = 8
	c.Game.Settings = models.GameSettings{SoundEnabled: true, GameSpeed: 1}

	t := engine.DefaultTuning()
	c.Tuning.MaxQueueLength = t.MaxQueueLength
	c.Tuning.SpawnBaseRate = t.SpawnBaseRate
	c.Tuning.SpawnDifficultyRate = t.SpawnDifficultyRate
	c.Tuning.DailyExpense = t.DailyExpense
	c.Tuning.WearPerUse = t.WearPerUse
	c.Tuning.MaxCustomersLost = t.MaxCustomersLost
	c.Tuning.TickIntervalMs = int(t.TickInterval / time.Millisecond)

	c.Inventory = []models.Ingredient{
		{ID: "ing_tomato", Name: "Tomato", Category: models.CategoryProduce, Quantity: 20, Cost: 1},
		{ID: "ing_pasta", Name: "Pasta", Category: models.CategoryDryGoods, Quantity: 20, Cost: 2},
		{ID: "ing_beef", Name: "Beef", Category: models.CategoryProtein, Quantity: 10, Cost: 5},
		{ID: "ing_cheese", Name: "Cheese", Category: models.CategoryDairy, Quantity: 15, Cost: 3},
		{ID: "ing_basil", Name: "Basil", Category: models.CategorySpices, Quantity: 30, Cost: 0.5},
	}
	c.Menu = []models.Dish{
		{
			ID: "dish_pasta", Name: "Pasta al Pomodoro", BasePrice: 14,
			Recipe: models.Recipe{Steps: []models.CookingStep{
				{IngredientIDs: []string{"ing_tomato"}, EquipmentType: models.StationPrep, Duration: 10, Action: models.ActionChop},
				{IngredientIDs: []string{"ing_pasta"}, EquipmentType: models.StationCooking, Duration: 20, Action: models.ActionBoil},
				{IngredientIDs: []string{"ing_basil"}, EquipmentType: models.StationPlating, Duration: 5, Action: models.ActionPlate},
			}},
		},
		{
			ID: "dish_burger", Name: "Bistro Burger", BasePrice: 18,
			Recipe: models.Recipe{Steps: []models.CookingStep{
				{IngredientIDs: []string{"ing_beef"}, EquipmentType: models.StationCooking, Duration: 25, Action: models.ActionGrill},
				{IngredientIDs: []string{"ing_cheese"}, EquipmentType: models.StationPlating, Duration: 5, Action: models.ActionPlate},
			}},
		},
	}

	c.Assistant.Provider = "openai"
	c.Assistant.Model = "gpt-4-turbo-preview"
	return c
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// EngineTuning converts the config block into engine tuning constants.
func (c *Config) EngineTuning() engine.Tuning {
	return engine.Tuning{
		MaxQueueLength:      c.Tuning.MaxQueueLength,
		SpawnBaseRate:       c.Tuning.SpawnBaseRate,
		SpawnDifficultyRate: c.Tuning.SpawnDifficultyRate,
		DailyExpense:        c.Tuning.DailyExpense,
		WearPerUse:          c.Tuning.WearPerUse,
		MaxCustomersLost:    c.Tuning.MaxCustomersLost,
		TickInterval:        time.Duration(c.Tuning.TickIntervalMs) * time.Millisecond,
	}
}

// BuildRestaurant seeds a restaurant from the configured menu, inventory,
// funds and capacity.
func (c *Config) BuildRestaurant() *models.Restaurant {
	opts := []models.RestaurantOption{
		models.WithFunds(c.Game.StartingFunds),
		models.WithCustomerCapacity(c.Game.CustomerCapacity),
	}
	r := models.NewRestaurant(opts...)
	for i := range c.Inventory {
		item := c.Inventory[i]
		r.Inventory[item.ID] = &item
	}
	for i := range c.Menu {
		dish := c.Menu[i]
		r.Menu[dish.ID] = &dish
		r.UnlockedDishes = append(r.UnlockedDishes, dish.ID)
	}
	return r
}

// BuildGame seeds the game session from config.
func (c *Config) BuildGame() *models.Game {
	return models.NewGame(
		models.WithMode(models.GameMode(c.Game.Mode)),
		models.WithSettings(c.Game.Settings),
	)
}
