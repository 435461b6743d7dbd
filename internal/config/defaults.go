package config

import (
	_ "embed"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

// DefaultDinoConfig returns the default simulation configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Screen: ScreenConfig{
			Width:  800,
			Height: 300,
		},
		Physics: PhysicsConfig{
			Gravity:     0.8,
			JumpImpulse: -15,
		},
		Player: PlayerConfig{
			X:            50,
			GroundOffset: 50,
			Width:        40,
			Height:       40,
			CrouchHeight: 20,
		},
		Obstacles: ObstacleConfig{
			Width:              20,
			Heights:            []float64{20, 40},
			GroundMargin:       10,
			FloatTopOffset:     200,
			FloatBottomOffset:  100,
			FloatingAfterScore: 20,
			FloatingChance:     0.6,
			MinInterval:        48, // 800ms at 60 ticks/s
			MaxInterval:        120,
		},
		Speed: SpeedCurve{
			Base:   5,
			Growth: 1.1,
			Every:  5,
		},
		Reward: RewardConfig{
			Survive:          0.1,
			JumpBonus:        1.0,
			CrouchBonus:      0.8,
			CollisionPenalty: 2.0,
			WindowMin:        50,
			WindowMax:        100,
			Step:             0.1,
			Terminal:         -10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDinoYAML
}
