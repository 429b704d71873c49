package models

// PlayerAction is a queued piece of work the player (or assistant) has
// committed to. Its effective duration is Duration divided by the player's
// speed; the tick loop completes it once that much time has elapsed.
type PlayerAction struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	Elapsed   float64 `json:"elapsed"`
	TargetID  string  `json:"targetId,omitempty"`
}

// Player holds the player's stats and pending actions.
type Player struct {
	Name          string         `json:"name"`
	Speed         float64        `json:"speed"`
	Skill         float64        `json:"skill"`
	PendingAction *PlayerAction  `json:"pendingAction,omitempty"`
	ActionQueue   []*PlayerAction `json:"actionQueue"`
}

// PlayerOption overrides a default field on a new Player.
type PlayerOption func(*Player)

func WithPlayerName(name string) PlayerOption {
	return func(p *Player) { p.Name = name }
}

func WithSpeed(s float64) PlayerOption {
	return func(p *Player) { p.Speed = s }
}

func WithSkill(s float64) PlayerOption {
	return func(p *Player) { p.Skill = s }
}

// Clone copies the player's identity and stats into a fresh player with no
// queued work.
func (p *Player) Clone() *Player {
	return &Player{
		Name:  p.Name,
		Speed: p.Speed,
		Skill: p.Skill,
	}
}

// NewPlayer creates a player with baseline speed and skill.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		Name:  "Chef",
		Speed: 1,
		Skill: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
