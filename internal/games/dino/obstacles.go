package dino

import (
	"math/rand"

	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
)

// ObstacleKind distinguishes the two placement classes.
type ObstacleKind uint8

const (
	ObstacleGround   ObstacleKind = iota // Rests on the ground line
	ObstacleFloating                     // Elevated inside the floating band
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	if k == ObstacleFloating {
		return "floating"
	}
	return "ground"
}

// Obstacle is a moving hazard. Width is shared by all obstacles of a world
// and is not stored per instance.
type Obstacle struct {
	X      float64
	Y      float64
	Height float64
	Kind   ObstacleKind
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect(width float64) core.Rect {
	return core.NewRect(o.X, o.Y, width, o.Height)
}

// Passed reports whether the obstacle's right edge is past the left boundary.
func (o Obstacle) Passed(width float64) bool {
	return o.X+width < 0
}

// Spawner decides when and what obstacle to spawn.
// All timing is in ticks so spawning is independent of host speed.
type Spawner struct {
	rng       *rand.Rand
	cfg       config.ObstacleConfig
	screenW   float64
	screenH   float64
	lastSpawn int // Tick of the last spawn
	interval  int // Ticks that must elapse before the next spawn
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, cfg config.DinoConfig) *Spawner {
	s := &Spawner{
		rng:     rng,
		cfg:     cfg.Obstacles,
		screenW: cfg.Screen.Width,
		screenH: cfg.Screen.Height,
	}
	s.Reset(0)
	return s
}

// Reset restarts the spawn clock at the given tick and draws a new interval.
func (s *Spawner) Reset(tick int) {
	s.lastSpawn = tick
	s.drawInterval()
}

// Interval returns the currently sampled inter-spawn interval.
func (s *Spawner) Interval() int {
	return s.interval
}

// MaybeSpawn returns a new obstacle when more than the sampled interval has
// elapsed since the last spawn.
func (s *Spawner) MaybeSpawn(tick, score int) (Obstacle, bool) {
	if tick-s.lastSpawn <= s.interval {
		return Obstacle{}, false
	}

	var o Obstacle
	if score >= s.cfg.FloatingAfterScore && s.rng.Float64() < s.cfg.FloatingChance {
		o = s.floating()
	} else {
		o = s.ground()
	}

	s.Reset(tick)
	return o, true
}

func (s *Spawner) ground() Obstacle {
	h := s.pickHeight()
	return Obstacle{
		X:      s.screenW,
		Y:      s.screenH - h - s.cfg.GroundMargin,
		Height: h,
		Kind:   ObstacleGround,
	}
}

func (s *Spawner) floating() Obstacle {
	h := s.pickHeight()
	// Inclusive integer band [H - top, H - bottom]
	span := s.cfg.FloatTopOffset - s.cfg.FloatBottomOffset
	y := s.screenH - float64(s.cfg.FloatTopOffset) + float64(s.rng.Intn(span+1))
	return Obstacle{
		X:      s.screenW,
		Y:      y,
		Height: h,
		Kind:   ObstacleFloating,
	}
}

func (s *Spawner) pickHeight() float64 {
	return s.cfg.Heights[s.rng.Intn(len(s.cfg.Heights))]
}

func (s *Spawner) drawInterval() {
	minI, maxI := s.cfg.MinInterval, s.cfg.MaxInterval
	s.interval = minI
	if maxI > minI {
		s.interval = minI + s.rng.Intn(maxI-minI+1)
	}
}

// closestObstacle returns the minimum-x obstacle that has not passed the
// left boundary. Obstacle counts are small, so a linear scan is enough.
func closestObstacle(obstacles []Obstacle, width float64) (Obstacle, bool) {
	var best Obstacle
	found := false
	for _, o := range obstacles {
		if o.Passed(width) {
			continue
		}
		if !found || o.X < best.X {
			best = o
			found = true
		}
	}
	return best, found
}
