// Package agent provides controllers that drive the runner simulation.
// Controllers only see the shared observation vector and answer with one
// action per tick; the simulation never learns how they decide.
package agent

import (
	"math/rand"

	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

// Policy decides an action from an observation.
// Implementations may keep state and are not required to be safe for
// concurrent use; give every entity its own Policy.
type Policy interface {
	Act(obs dino.Observation) core.Action
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(obs dino.Observation) core.Action

// Act calls f(obs).
func (f PolicyFunc) Act(obs dino.Observation) core.Action {
	return f(obs)
}

// Idle never acts.
type Idle struct{}

// Act always returns ActionNone.
func (Idle) Act(dino.Observation) core.Action {
	return core.ActionNone
}

// Random picks a uniformly random action every tick.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a seeded random policy.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Act returns a random action.
func (r *Random) Act(dino.Observation) core.Action {
	return core.Action(r.rng.Intn(core.NumActions))
}

// Heuristic jumps over ground obstacles once they come within TriggerGap
// world units and ignores floating ones, which pass over a standing runner.
type Heuristic struct {
	ScreenW    float64
	ScreenH    float64
	GroundLine float64 // Bottom edge of ground obstacles
	MinGap     float64 // Too close to clear: keep running
	TriggerGap float64
}

// NewHeuristic derives the heuristic's geometry from a config.
func NewHeuristic(cfg config.DinoConfig) *Heuristic {
	return &Heuristic{
		ScreenW:    cfg.Screen.Width,
		ScreenH:    cfg.Screen.Height,
		GroundLine: cfg.Screen.Height - cfg.Obstacles.GroundMargin,
		MinGap:     cfg.Player.Width,
		TriggerGap: 110,
	}
}

// Act returns ActionJump when a ground obstacle is inside the trigger band.
func (h *Heuristic) Act(obs dino.Observation) core.Action {
	if obs[2] == 0 {
		return core.ActionNone
	}

	gap := obs[1] * h.ScreenW
	bottom := (obs[3] + obs[2]) * h.ScreenH
	onGround := bottom >= h.GroundLine-1

	if onGround && gap > h.MinGap && gap <= h.TriggerGap {
		return core.ActionJump
	}
	return core.ActionNone
}
