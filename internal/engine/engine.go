// Package engine implements the real-time restaurant simulation: the tick
// loop, difficulty scaling, customer lifecycle, the kitchen process state
// machines and the inventory/finance transaction logic. All mutating
// operations serialize on one mutex and report expected failures as Result
// values rather than errors.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"bistro/internal/events"
	"bistro/internal/models"
)

// Result is the outcome of an engine operation. Expected failures
// (not-found, insufficient funds or stock, capacity exceeded, invalid
// transitions) come back as Success=false with a message; they are never
// panics and never errors.
type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func ok(data map[string]interface{}) Result {
	return Result{Success: true, Data: data}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}

// Tuning collects the balance constants the simulation runs on.
type Tuning struct {
	MaxQueueLength      int           `yaml:"max_queue_length"`
	SpawnBaseRate       float64       `yaml:"spawn_base_rate"`
	SpawnDifficultyRate float64       `yaml:"spawn_difficulty_rate"`
	DailyExpense        float64       `yaml:"daily_expense"`
	WearPerUse          float64       `yaml:"wear_per_use"`
	MaxCustomersLost    int           `yaml:"max_customers_lost"`
	TickInterval        time.Duration `yaml:"tick_interval"`
}

// DefaultTuning returns the canonical balance constants.
func DefaultTuning() Tuning {
	return Tuning{
		MaxQueueLength:      15,
		SpawnBaseRate:       0.03,
		SpawnDifficultyRate: 0.01,
		DailyExpense:        50,
		WearPerUse:          0.1,
		MaxCustomersLost:    10,
		TickInterval:        100 * time.Millisecond,
	}
}

// Engine owns the four mutable stores (game, restaurant, kitchen, player),
// the event bus, the RNG and the clock. It is safe for concurrent use; the
// tick loop and request handlers serialize on the same mutex.
type Engine struct {
	mu sync.Mutex

	Game       *models.Game
	Restaurant *models.Restaurant
	Kitchen    *models.Kitchen
	Player     *models.Player

	bus    *events.Bus
	rng    *rand.Rand
	now    func() time.Time
	tuning Tuning

	// Pristine copies of the injected stores, taken at construction so
	// Reset can rebuild the configured baseline.
	seedRestaurant *models.Restaurant
	seedKitchen    *models.Kitchen
	seedPlayer     *models.Player

	running       bool
	stopCh        chan struct{}
	lastTick      time.Time
	customersLeft int
	qualitySum    float64
}

// Option configures a new Engine.
type Option func(*Engine)

// WithBus injects the event bus shared with external consumers.
func WithBus(b *events.Bus) Option {
	return func(e *Engine) { e.bus = b }
}

// WithRNG injects a seeded RNG for deterministic replay.
func WithRNG(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock injects the time source. Tests use a fake clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTuning overrides the balance constants.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithGame replaces the default game state.
func WithGame(g *models.Game) Option {
	return func(e *Engine) { e.Game = g }
}

// WithRestaurant replaces the default restaurant state.
func WithRestaurant(r *models.Restaurant) Option {
	return func(e *Engine) { e.Restaurant = r }
}

// WithKitchen replaces the default kitchen state.
func WithKitchen(k *models.Kitchen) Option {
	return func(e *Engine) { e.Kitchen = k }
}

// WithPlayer replaces the default player state.
func WithPlayer(p *models.Player) Option {
	return func(e *Engine) { e.Player = p }
}

// New creates an engine with default stores, a fresh bus, a time-seeded RNG
// and the wall clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		Game:       models.NewGame(),
		Restaurant: models.NewRestaurant(),
		Player:     models.NewPlayer(),
		tuning:     DefaultTuning(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = events.NewBus()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.Kitchen == nil {
		e.Kitchen = models.NewKitchen(defaultStations())
	}
	e.seedRestaurant = e.Restaurant.Clone()
	e.seedKitchen = e.Kitchen.Clone()
	e.seedPlayer = e.Player.Clone()
	return e
}

func defaultStations() []*models.Equipment {
	return []*models.Equipment{
		models.NewEquipment(models.WithEquipmentID("prep_1"), models.WithEquipmentName("prep counter"), models.OfStationType(models.StationPrep)),
		models.NewEquipment(models.WithEquipmentID("prep_2"), models.WithEquipmentName("prep counter"), models.OfStationType(models.StationPrep)),
		models.NewEquipment(models.WithEquipmentID("stove_1"), models.WithEquipmentName("stove"), models.OfStationType(models.StationCooking), models.WithCapacity(2)),
		models.NewEquipment(models.WithEquipmentID("oven_1"), models.WithEquipmentName("oven"), models.OfStationType(models.StationCooking), models.WithCapacity(1)),
		models.NewEquipment(models.WithEquipmentID("pass_1"), models.WithEquipmentName("plating pass"), models.OfStationType(models.StationPlating)),
	}
}

// Bus returns the engine's event bus for external subscribers.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// Tuning returns the active balance constants.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// Reset returns the engine to the preGame phase, preserving the game mode
// and user settings. Restaurant, kitchen and player state are rebuilt from
// the baseline the engine was constructed with, so configured funds,
// capacity, stations and stock levels all come back.
func (e *Engine) Reset() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.stopLocked()
	}

	e.Game.Reset()
	e.Restaurant = e.seedRestaurant.Clone()
	e.Kitchen = e.seedKitchen.Clone()
	e.Player = e.seedPlayer.Clone()
	e.customersLeft = 0
	e.qualitySum = 0
	return ok(nil)
}

// publish emits an event on the engine's bus.
func (e *Engine) publish(name string, payload map[string]interface{}) {
	e.bus.Publish(name, payload)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
