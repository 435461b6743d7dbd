package dino

import "github.com/vovakirdan/dino-evo/internal/core"

// ObservationSize is the length of the observation vector.
const ObservationSize = 4

// Observation is the compact numeric state shared by all controllers:
//
//	[0] entity 0 y / screen height
//	[1] clamp01((closest.x - entity 0 x) / screen width), 1 with no obstacle
//	[2] closest.height / screen height, 0 with no obstacle
//	[3] closest.y / screen height, 0 with no obstacle
//
// Only entity 0's position is reported. Every entity sees the same vector,
// so entity 0 is privileged: others act on its height, not their own.
type Observation [ObservationSize]float64

// Observation returns the current observation vector.
func (w *World) Observation() Observation {
	screenW, screenH := w.cfg.Screen.Width, w.cfg.Screen.Height

	var lead Entity
	if len(w.entities) > 0 {
		lead = w.entities[0]
	}

	o, ok := closestObstacle(w.obstacles, w.cfg.Obstacles.Width)
	if !ok {
		return Observation{lead.Y / screenH, 1.0, 0.0, 0.0}
	}
	return Observation{
		lead.Y / screenH,
		core.Clamp01((o.X - lead.X) / screenW),
		o.Height / screenH,
		o.Y / screenH,
	}
}

// Slice returns the observation as a slice for generic controllers.
func (o Observation) Slice() []float64 {
	return o[:]
}
