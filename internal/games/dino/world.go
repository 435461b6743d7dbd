// Package dino implements a deterministic, steppable side-scrolling runner
// simulation driven by external controllers.
//
// A World advances any number of independent entities against a shared
// stream of obstacles. Each tick every living entity receives one action,
// moves, is tested for collisions and is scored; then obstacles spawn, move
// and are reaped. The World is a plain caller-owned value: separate worlds
// share nothing and may run on separate goroutines, but a single World must
// not be stepped concurrently.
package dino

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
)

// State is the episode state of a world.
type State uint8

const (
	StateRunning State = iota
	StateOver          // Absorbing until Reset
)

// String returns a human-readable name for the state.
func (s State) String() string {
	if s == StateOver {
		return "over"
	}
	return "running"
}

// ErrEpisodeOver is returned by Step once every entity is dead.
var ErrEpisodeOver = errors.New("dino: step after episode end, call Reset first")

// World owns all entities and obstacles of one simulation instance.
type World struct {
	cfg     config.DinoConfig
	physics Physics
	seed    int64
	rng     *rand.Rand
	spawner *Spawner

	entities  []Entity
	obstacles []Obstacle
	tick      int
	score     int
	speed     float64
	state     State
}

// New creates a world with a single entity. Call Reset to choose the
// population size. The same seed and action sequence always reproduce the
// same episode.
func New(cfg config.DinoConfig, seed int64) *World {
	w := &World{
		cfg:     cfg,
		physics: NewPhysics(cfg),
		seed:    seed,
	}
	w.Reset(1)
	return w
}

// Reseed changes the seed used by subsequent resets.
func (w *World) Reseed(seed int64) {
	w.seed = seed
}

// Seed returns the seed used by the last reset.
func (w *World) Seed() int64 {
	return w.seed
}

// Reset reinitializes entities, obstacles, score and speed and returns the
// initial observation. n below 1 is clamped to 1.
func (w *World) Reset(n int) Observation {
	n = max(n, 1)

	w.rng = rand.New(rand.NewSource(w.seed))
	w.spawner = NewSpawner(w.rng, w.cfg)

	if cap(w.entities) >= n {
		w.entities = w.entities[:n]
	} else {
		w.entities = make([]Entity, n)
	}
	for i := range w.entities {
		w.entities[i] = w.physics.Spawn(w.cfg.Player)
	}

	w.obstacles = w.obstacles[:0]
	w.tick = 0
	w.score = 0
	w.speed = w.cfg.Speed.At(0)
	w.state = StateRunning

	return w.Observation()
}

// Step advances the world by one tick.
//
// actions[i] drives entity i. Missing entries count as ActionNone, extra
// entries are ignored and unrecognized values behave like ActionNone. The
// returned reward is the shared episode signal; per-entity rewards are
// accumulated into each entity's fitness. Once done has been returned,
// further calls fail with ErrEpisodeOver and leave the world untouched.
func (w *World) Step(actions []core.Action) (Observation, float64, bool, error) {
	if w.state == StateOver {
		return w.Observation(), 0, true, ErrEpisodeOver
	}

	w.tick++

	width := w.cfg.Obstacles.Width
	for i := range w.entities {
		e := &w.entities[i]
		if !e.Alive {
			continue
		}

		a := core.ActionNone
		if i < len(actions) {
			a = actions[i]
		}

		w.physics.Apply(e, a)
		if Colliding(*e, w.obstacles, width) {
			e.Alive = false
			continue
		}
		e.Fitness += Reward(*e, a, w)
	}

	if o, ok := w.spawner.MaybeSpawn(w.tick, w.score); ok {
		w.obstacles = append(w.obstacles, o)
	}
	w.advanceObstacles()

	if w.Alive() == 0 {
		w.state = StateOver
		return w.Observation(), w.cfg.Reward.Terminal, true, nil
	}
	return w.Observation(), w.cfg.Reward.Step, false, nil
}

// StepInts is Step for controllers that produce raw integers.
func (w *World) StepInts(actions []int) (Observation, float64, bool, error) {
	parsed := make([]core.Action, len(actions))
	for i, v := range actions {
		parsed[i] = core.ParseAction(v)
	}
	return w.Step(parsed)
}

// advanceObstacles moves every obstacle left, reaps the ones that left the
// screen and recomputes the speed from the new score.
func (w *World) advanceObstacles() {
	width := w.cfg.Obstacles.Width
	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.X -= w.speed
		if o.Passed(width) {
			w.score++
			continue
		}
		kept = append(kept, o)
	}
	w.obstacles = kept
	w.speed = w.cfg.Speed.At(w.score)
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.DinoConfig {
	return w.cfg
}

// Tick returns the number of ticks since the last reset.
func (w *World) Tick() int {
	return w.tick
}

// Score returns the number of obstacles survived.
func (w *World) Score() int {
	return w.score
}

// Speed returns the current obstacle speed in world units per tick.
func (w *World) Speed() float64 {
	return w.speed
}

// State returns the episode state.
func (w *World) State() State {
	return w.state
}

// Done reports whether the episode has ended.
func (w *World) Done() bool {
	return w.state == StateOver
}

// Len returns the number of entities, alive or dead.
func (w *World) Len() int {
	return len(w.entities)
}

// Alive returns the number of living entities.
func (w *World) Alive() int {
	n := 0
	for _, e := range w.entities {
		if e.Alive {
			n++
		}
	}
	return n
}

// IsAlive reports whether entity i is alive. Out-of-range indices are dead.
func (w *World) IsAlive(i int) bool {
	return i >= 0 && i < len(w.entities) && w.entities[i].Alive
}

// Fitness returns the accumulated fitness of entity i.
func (w *World) Fitness(i int) float64 {
	if i < 0 || i >= len(w.entities) {
		return 0
	}
	return w.entities[i].Fitness
}

// Fitnesses returns the accumulated fitness of every entity in index order.
func (w *World) Fitnesses() []float64 {
	out := make([]float64, len(w.entities))
	for i, e := range w.entities {
		out[i] = e.Fitness
	}
	return out
}
