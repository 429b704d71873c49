package engine

import (
	"math"

	"bistro/internal/events"
)

// DifficultyModifiers are the knobs difficulty turns on the rest of the
// simulation. Only the patience modifier is clamped; order frequency and
// cooking difficulty grow without bound so late-game pressure keeps rising.
type DifficultyModifiers struct {
	Patience          float64 `json:"patienceMod"`
	OrderFrequency    float64 `json:"orderFrequencyMod"`
	CookingDifficulty float64 `json:"cookingDifficultyMod"`
}

// DifficultyFor computes the step-wise difficulty for an elapsed play time:
// 1 + 0.1 per full elapsed minute, unbounded.
func DifficultyFor(timeElapsedSeconds float64) float64 {
	return 1 + math.Floor(timeElapsedSeconds/60)*0.1
}

// Modifiers derives the scaling modifiers for a difficulty value.
func Modifiers(difficulty float64) DifficultyModifiers {
	return DifficultyModifiers{
		Patience:          math.Max(0.4, 1-difficulty*0.05),
		OrderFrequency:    1 + difficulty*0.1,
		CookingDifficulty: 1 + difficulty*0.05,
	}
}

// UpdateDifficulty recomputes difficulty from elapsed time and commits it
// only when it changed. Calling it twice within the same elapsed minute is
// a no-op the second time: no write, no event.
func (e *Engine) UpdateDifficulty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateDifficulty()
}

func (e *Engine) updateDifficulty() bool {
	next := DifficultyFor(e.Game.TimeElapsed)
	if next == e.Game.Difficulty {
		return false
	}
	e.Game.Difficulty = next
	e.publish(events.DifficultyChanged, map[string]interface{}{
		"difficulty": next,
	})
	return true
}
