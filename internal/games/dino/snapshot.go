package dino

// EntityView is a read-only copy of an entity for renderers.
type EntityView struct {
	X, Y      float64
	Width     float64
	Height    float64
	Alive     bool
	Jumping   bool
	Crouching bool
	Fitness   float64
}

// ObstacleView is a read-only copy of an obstacle for renderers.
type ObstacleView struct {
	X, Y   float64
	Width  float64
	Height float64
	Kind   ObstacleKind
}

// Entities returns copies of all entities in index order.
func (w *World) Entities() []EntityView {
	out := make([]EntityView, len(w.entities))
	for i, e := range w.entities {
		out[i] = EntityView{
			X:         e.X,
			Y:         e.Y,
			Width:     e.Width,
			Height:    e.Height,
			Alive:     e.Alive,
			Jumping:   e.Jumping,
			Crouching: e.Crouching,
			Fitness:   e.Fitness,
		}
	}
	return out
}

// Obstacles returns copies of all live obstacles.
func (w *World) Obstacles() []ObstacleView {
	out := make([]ObstacleView, len(w.obstacles))
	for i, o := range w.obstacles {
		out[i] = ObstacleView{
			X:      o.X,
			Y:      o.Y,
			Width:  w.cfg.Obstacles.Width,
			Height: o.Height,
			Kind:   o.Kind,
		}
	}
	return out
}

// Snapshot captures the aggregate world state for determinism testing.
type Snapshot struct {
	Tick         int
	Score        int
	Speed        float64
	Alive        int
	State        State
	Obstacles    int
	Observation  Observation
	TotalFitness float64
}

// Snapshot returns the current world snapshot.
func (w *World) Snapshot() Snapshot {
	total := 0.0
	for _, e := range w.entities {
		total += e.Fitness
	}
	return Snapshot{
		Tick:         w.tick,
		Score:        w.score,
		Speed:        w.speed,
		Alive:        w.Alive(),
		State:        w.state,
		Obstacles:    len(w.obstacles),
		Observation:  w.Observation(),
		TotalFitness: total,
	}
}
