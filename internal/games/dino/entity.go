package dino

import (
	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
)

// Entity is one independently controlled runner.
// X never changes: the world scrolls past the entity.
type Entity struct {
	X, Y      float64
	Width     float64
	Height    float64 // Always the standing or the crouching height
	Velocity  float64 // Vertical velocity, negative = up
	Jumping   bool
	Crouching bool
	Alive     bool
	Fitness   float64 // Accumulated reward for the current episode
}

// Rect returns the entity's collision rectangle.
func (e Entity) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.Width, e.Height)
}

// Physics holds the constants shared by all entities of a world.
type Physics struct {
	Gravity      float64
	JumpImpulse  float64
	GroundY      float64
	StandHeight  float64
	CrouchHeight float64
}

// NewPhysics derives the physics constants from a config.
func NewPhysics(cfg config.DinoConfig) Physics {
	return Physics{
		Gravity:      cfg.Physics.Gravity,
		JumpImpulse:  cfg.Physics.JumpImpulse,
		GroundY:      cfg.GroundY(),
		StandHeight:  cfg.Player.Height,
		CrouchHeight: cfg.Player.CrouchHeight,
	}
}

// Spawn returns a fresh, alive, standing entity on the ground line.
func (p Physics) Spawn(player config.PlayerConfig) Entity {
	return Entity{
		X:      player.X,
		Y:      p.GroundY,
		Width:  player.Width,
		Height: p.StandHeight,
		Alive:  true,
	}
}

// Apply advances one entity by one tick under the given action.
// Unrecognized actions behave like ActionNone.
func (p Physics) Apply(e *Entity, a core.Action) {
	if !a.Valid() {
		a = core.ActionNone
	}

	// Leaving crouch is immediate whenever the crouch action is released
	if e.Crouching && a != core.ActionCrouch {
		e.Crouching = false
		e.Height = p.StandHeight
	}

	switch a {
	case core.ActionJump:
		if !e.Jumping && !e.Crouching {
			e.Jumping = true
			e.Velocity = p.JumpImpulse
		}
	case core.ActionCrouch:
		if !e.Jumping {
			e.Crouching = true
			e.Height = p.CrouchHeight
		}
	}

	if !e.Jumping {
		return
	}

	// Semi-implicit Euler: move with the current velocity, then accelerate
	e.Y += e.Velocity
	e.Velocity += p.Gravity
	if e.Y >= p.GroundY {
		e.Y = p.GroundY
		e.Jumping = false
		e.Velocity = 0
	}
}

// AirTicks returns how many ticks a jump lasts from launch to landing.
func (p Physics) AirTicks() int {
	y, v := 0.0, p.JumpImpulse
	for n := 1; ; n++ {
		y += v
		v += p.Gravity
		if y >= 0 {
			return n
		}
	}
}
