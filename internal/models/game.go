package models

// GameMode selects who drives the restaurant.
type GameMode string

const (
	ModeManual    GameMode = "manual"
	ModeAssistant GameMode = "assistant"
)

// GamePhase represents the lifecycle phase of a game session.
type GamePhase string

const (
	PhasePreGame  GamePhase = "preGame"
	PhaseActive   GamePhase = "active"
	PhaseGameOver GamePhase = "gameOver"
)

// PerformanceMetrics aggregates session-level outcomes.
type PerformanceMetrics struct {
	OrdersCompleted float64 `json:"ordersCompleted"`
	AverageQuality  float64 `json:"averageQuality"`
	CustomersServed float64 `json:"customersServed"`
	CustomersLost   float64 `json:"customersLost"`
}

// GameSettings holds user preferences that survive a reset.
type GameSettings struct {
	SoundEnabled bool    `json:"soundEnabled" yaml:"sound_enabled"`
	GameSpeed    float64 `json:"gameSpeed" yaml:"game_speed"`
}

// Game is the top-level session state. Difficulty grows without bound;
// TimeElapsed is monotonic while the phase is active.
type Game struct {
	Mode        GameMode           `json:"mode"`
	Difficulty  float64            `json:"difficulty"`
	TimeElapsed float64            `json:"timeElapsed"`
	IsPaused    bool               `json:"isPaused"`
	Phase       GamePhase          `json:"phase"`
	Metrics     PerformanceMetrics `json:"performanceMetrics"`
	Settings    GameSettings       `json:"settings"`
}

// GameOption overrides a default field on a new Game.
type GameOption func(*Game)

func WithMode(mode GameMode) GameOption {
	return func(g *Game) { g.Mode = mode }
}

func WithSettings(s GameSettings) GameOption {
	return func(g *Game) { g.Settings = s }
}

// NewGame creates a game in the preGame phase at base difficulty.
func NewGame(opts ...GameOption) *Game {
	g := &Game{
		Mode:       ModeManual,
		Difficulty: 1,
		Phase:      PhasePreGame,
		Settings:   GameSettings{SoundEnabled: true, GameSpeed: 1},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reset returns the session to preGame. Mode and settings are user
// preferences and are preserved.
func (g *Game) Reset() {
	g.Difficulty = 1
	g.TimeElapsed = 0
	g.IsPaused = false
	g.Phase = PhasePreGame
	g.Metrics = PerformanceMetrics{}
}
