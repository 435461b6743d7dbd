// Package config provides YAML-based configuration loading for the runner
// simulation: world geometry, physics, obstacle generation, speed curve and
// reward constants.
package config

import (
	"errors"
	"fmt"
)

// DinoConfig contains every constant the simulation reads.
type DinoConfig struct {
	Screen    ScreenConfig   `yaml:"screen"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Player    PlayerConfig   `yaml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Speed     SpeedCurve     `yaml:"speed"`
	Reward    RewardConfig   `yaml:"reward"`
}

// ScreenConfig defines the logical world size in world units.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines vertical motion parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every airborne tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Initial velocity of a jump (negative = up)
}

// PlayerConfig defines entity geometry.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line is screen height minus this
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	CrouchHeight float64 `yaml:"crouch_height"`
}

// ObstacleConfig defines obstacle geometry and spawn scheduling.
type ObstacleConfig struct {
	Width              float64   `yaml:"width"`
	Heights            []float64 `yaml:"heights"`
	GroundMargin       float64   `yaml:"ground_margin"`
	FloatTopOffset     int       `yaml:"float_top_offset"`     // Highest floating y is screen height minus this
	FloatBottomOffset  int       `yaml:"float_bottom_offset"`  // Lowest floating y is screen height minus this
	FloatingAfterScore int       `yaml:"floating_after_score"` // Floating obstacles appear from this score on
	FloatingChance     float64   `yaml:"floating_chance"`
	MinInterval        int       `yaml:"min_interval"` // Ticks
	MaxInterval        int       `yaml:"max_interval"` // Ticks
}

// RewardConfig defines per-entity and shared reward constants.
type RewardConfig struct {
	Survive          float64 `yaml:"survive"`
	JumpBonus        float64 `yaml:"jump_bonus"`
	CrouchBonus      float64 `yaml:"crouch_bonus"`
	CollisionPenalty float64 `yaml:"collision_penalty"`
	WindowMin        float64 `yaml:"window_min"` // Exclusive
	WindowMax        float64 `yaml:"window_max"` // Exclusive
	Step             float64 `yaml:"step"`       // Shared reward while running
	Terminal         float64 `yaml:"terminal"`   // Shared reward when everyone is dead
}

// GroundY returns the y coordinate of a standing entity's top edge.
func (c DinoConfig) GroundY() float64 {
	return c.Screen.Height - c.Player.GroundOffset
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable world.
func (c DinoConfig) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	check(c.Physics.Gravity > 0, "gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse < 0, "jump_impulse must be negative, got %v", c.Physics.JumpImpulse)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Player.CrouchHeight > 0 && c.Player.CrouchHeight < c.Player.Height,
		"crouch_height must be in (0, height), got %v", c.Player.CrouchHeight)
	check(c.Obstacles.Width > 0, "obstacle width must be positive, got %v", c.Obstacles.Width)
	check(len(c.Obstacles.Heights) > 0, "obstacle heights must not be empty")
	check(c.Obstacles.FloatTopOffset >= c.Obstacles.FloatBottomOffset,
		"float_top_offset (%d) must be >= float_bottom_offset (%d)", c.Obstacles.FloatTopOffset, c.Obstacles.FloatBottomOffset)
	check(c.Obstacles.FloatingChance >= 0 && c.Obstacles.FloatingChance <= 1,
		"floating_chance must be in [0, 1], got %v", c.Obstacles.FloatingChance)
	check(c.Obstacles.MinInterval >= 0 && c.Obstacles.MinInterval <= c.Obstacles.MaxInterval,
		"spawn interval must satisfy 0 <= min <= max, got [%d, %d]", c.Obstacles.MinInterval, c.Obstacles.MaxInterval)
	check(c.Speed.Base > 0, "speed base must be positive, got %v", c.Speed.Base)
	check(c.Speed.Growth >= 1, "speed growth must be >= 1, got %v", c.Speed.Growth)
	check(c.Speed.Every > 0, "speed every must be positive, got %d", c.Speed.Every)
	check(c.Reward.WindowMin < c.Reward.WindowMax,
		"reaction window must satisfy min < max, got (%v, %v)", c.Reward.WindowMin, c.Reward.WindowMax)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string onto a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
