package dino

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/config"
)

func TestSpawnerRespectsInterval(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	s := NewSpawner(rand.New(rand.NewSource(1)), cfg)

	interval := s.Interval()
	if interval < cfg.Obstacles.MinInterval || interval > cfg.Obstacles.MaxInterval {
		t.Fatalf("interval %d outside [%d, %d]", interval, cfg.Obstacles.MinInterval, cfg.Obstacles.MaxInterval)
	}

	for tick := 1; tick <= interval; tick++ {
		if _, ok := s.MaybeSpawn(tick, 0); ok {
			t.Fatalf("spawned at tick %d before interval %d elapsed", tick, interval)
		}
	}

	o, ok := s.MaybeSpawn(interval+1, 0)
	if !ok {
		t.Fatalf("expected a spawn at tick %d", interval+1)
	}
	if o.X != cfg.Screen.Width {
		t.Errorf("spawn x = %v, expected right boundary %v", o.X, cfg.Screen.Width)
	}

	// Clock restarts on every spawn
	if _, ok := s.MaybeSpawn(interval+2, 0); ok {
		t.Error("spawner should reset its clock after a spawn")
	}
}

func TestSpawnerGroundOnlyBeforeThreshold(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	s := NewSpawner(rand.New(rand.NewSource(3)), cfg)

	tick := 0
	for n := 0; n < 200; n++ {
		tick += s.Interval() + 1
		o, ok := s.MaybeSpawn(tick, cfg.Obstacles.FloatingAfterScore-1)
		if !ok {
			t.Fatalf("expected spawn at tick %d", tick)
		}
		if o.Kind != ObstacleGround {
			t.Fatalf("floating obstacle before score threshold: %+v", o)
		}
		if o.Height != 20 && o.Height != 40 {
			t.Fatalf("unexpected height %v", o.Height)
		}
		// Resting on the ground line adjusted for its height
		if o.Y+o.Height != cfg.Screen.Height-cfg.Obstacles.GroundMargin {
			t.Fatalf("ground obstacle bottom = %v, expected %v", o.Y+o.Height, cfg.Screen.Height-cfg.Obstacles.GroundMargin)
		}
	}
}

func TestSpawnerFloatingMixAfterThreshold(t *testing.T) {
	cfg := config.DefaultDinoConfig()
	s := NewSpawner(rand.New(rand.NewSource(5)), cfg)

	const total = 2000
	floating := 0
	tick := 0
	top := cfg.Screen.Height - float64(cfg.Obstacles.FloatTopOffset)
	bottom := cfg.Screen.Height - float64(cfg.Obstacles.FloatBottomOffset)

	for n := 0; n < total; n++ {
		tick += s.Interval() + 1
		o, _ := s.MaybeSpawn(tick, cfg.Obstacles.FloatingAfterScore)
		if o.Kind != ObstacleFloating {
			continue
		}
		floating++
		if o.Y < top || o.Y > bottom {
			t.Fatalf("floating y %v outside band [%v, %v]", o.Y, top, bottom)
		}
	}

	ratio := float64(floating) / total
	if ratio < 0.55 || ratio > 0.65 {
		t.Errorf("floating ratio = %.3f, expected about 0.6", ratio)
	}
}

func TestClosestObstacle(t *testing.T) {
	obstacles := []Obstacle{
		{X: 300, Y: 250, Height: 40},
		{X: -25, Y: 250, Height: 40}, // right edge already past the boundary
		{X: 120, Y: 270, Height: 20},
		{X: 600, Y: 150, Height: 20, Kind: ObstacleFloating},
	}

	o, ok := closestObstacle(obstacles, 20)
	if !ok {
		t.Fatal("expected a closest obstacle")
	}
	if o.X != 120 {
		t.Errorf("closest x = %v, expected 120", o.X)
	}

	if _, ok := closestObstacle(nil, 20); ok {
		t.Error("no obstacles should yield none")
	}
}
