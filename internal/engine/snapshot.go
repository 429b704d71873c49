package engine

import (
	"bistro/internal/models"
)

// GameSnapshot mirrors the session-level state.
type GameSnapshot struct {
	Mode        models.GameMode           `json:"mode"`
	Phase       models.GamePhase          `json:"phase"`
	Difficulty  float64                   `json:"difficulty"`
	TimeElapsed float64                   `json:"timeElapsed"`
	IsPaused    bool                      `json:"isPaused"`
	Metrics     models.PerformanceMetrics `json:"performanceMetrics"`
}

// RestaurantSnapshot summarizes the front of house.
type RestaurantSnapshot struct {
	Funds            float64             `json:"funds"`
	Reputation       float64             `json:"reputation"`
	CustomerCapacity int                 `json:"customerCapacity"`
	QueueLength      int                 `json:"queueLength"`
	Queue            []models.Customer   `json:"queue"`
	ActiveCustomers  []models.Customer   `json:"activeCustomers"`
	ActiveOrders     []models.Order      `json:"activeOrders"`
	Inventory        []models.Ingredient `json:"inventory"`
	Menu             []models.Dish       `json:"menu"`
}

// KitchenSnapshot summarizes the back of house.
type KitchenSnapshot struct {
	Stations      []models.Equipment `json:"stations"`
	PrepTasks     int                `json:"prepTasks"`
	CookProcesses int                `json:"cookProcesses"`
	PlatingTasks  int                `json:"platingTasks"`
}

// Snapshot is a serializable, side-effect-free view of the whole engine,
// built for the context/resource layer. Everything is copied; mutating a
// snapshot never touches live state.
type Snapshot struct {
	Game       GameSnapshot       `json:"game"`
	Restaurant RestaurantSnapshot `json:"restaurant"`
	Kitchen    KitchenSnapshot    `json:"kitchen"`
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Game: GameSnapshot{
			Mode:        e.Game.Mode,
			Phase:       e.Game.Phase,
			Difficulty:  e.Game.Difficulty,
			TimeElapsed: e.Game.TimeElapsed,
			IsPaused:    e.Game.IsPaused,
			Metrics:     e.Game.Metrics,
		},
		Restaurant: RestaurantSnapshot{
			Funds:            e.Restaurant.Funds,
			Reputation:       e.Restaurant.Reputation,
			CustomerCapacity: e.Restaurant.CustomerCapacity,
			QueueLength:      len(e.Restaurant.CustomerQueue),
		},
		Kitchen: KitchenSnapshot{
			PrepTasks:     len(e.Kitchen.PrepTasks),
			CookProcesses: len(e.Kitchen.CookProcesses),
			PlatingTasks:  len(e.Kitchen.PlatingTasks),
		},
	}

	for _, c := range e.Restaurant.CustomerQueue {
		snap.Restaurant.Queue = append(snap.Restaurant.Queue, *c)
	}
	for _, c := range e.Restaurant.ActiveCustomers {
		snap.Restaurant.ActiveCustomers = append(snap.Restaurant.ActiveCustomers, *c)
	}
	for _, o := range e.Restaurant.ActiveOrders {
		snap.Restaurant.ActiveOrders = append(snap.Restaurant.ActiveOrders, *o)
	}
	for _, i := range e.Restaurant.Inventory {
		snap.Restaurant.Inventory = append(snap.Restaurant.Inventory, *i)
	}
	for _, d := range e.Restaurant.Menu {
		snap.Restaurant.Menu = append(snap.Restaurant.Menu, *d)
	}
	for _, s := range e.Kitchen.Stations {
		snap.Kitchen.Stations = append(snap.Kitchen.Stations, *s)
	}
	return snap
}
