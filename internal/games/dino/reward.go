package dino

import "github.com/vovakirdan/dino-evo/internal/core"

// Reward scores one entity for the tick it just survived.
// It reads the world but never mutates it; callers accumulate the result.
//
//   - every tick alive earns the survive reward
//   - jumping toward a floating obstacle inside the reaction window earns the jump bonus
//   - crouching toward a ground obstacle inside the reaction window earns the crouch bonus
//   - overlapping an obstacle costs the collision penalty
func Reward(e Entity, a core.Action, w *World) float64 {
	rc := w.cfg.Reward
	reward := rc.Survive

	if o, ok := closestObstacle(w.obstacles, w.cfg.Obstacles.Width); ok {
		gap := o.X - e.X
		inWindow := gap > rc.WindowMin && gap < rc.WindowMax
		switch {
		case inWindow && o.Kind == ObstacleFloating && a == core.ActionJump:
			reward += rc.JumpBonus
		case inWindow && o.Kind == ObstacleGround && a == core.ActionCrouch:
			reward += rc.CrouchBonus
		}
	}

	if Colliding(e, w.obstacles, w.cfg.Obstacles.Width) {
		reward -= rc.CollisionPenalty
	}

	return reward
}
