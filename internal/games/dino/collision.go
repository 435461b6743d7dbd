package dino

// Colliding reports whether the entity overlaps any obstacle.
// Rectangles are half-open, so edges that only touch do not collide.
func Colliding(e Entity, obstacles []Obstacle, obstacleWidth float64) bool {
	r := e.Rect()
	for _, o := range obstacles {
		if r.Intersects(o.Rect(obstacleWidth)) {
			return true
		}
	}
	return false
}
