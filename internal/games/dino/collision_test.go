package dino

import "testing"

func TestColliding(t *testing.T) {
	const width = 20
	standing := Entity{X: 50, Y: 250, Width: 40, Height: 40, Alive: true}
	crouching := Entity{X: 50, Y: 250, Width: 40, Height: 20, Crouching: true, Alive: true}

	tests := []struct {
		name      string
		entity    Entity
		obstacles []Obstacle
		expected  bool
	}{
		{"no obstacles", standing, nil, false},
		{"low ground obstacle overlapping", standing, []Obstacle{{X: 60, Y: 270, Height: 20}}, true},
		{"tall ground obstacle overlapping", standing, []Obstacle{{X: 80, Y: 250, Height: 40}}, true},
		{"obstacle right edge touching entity left edge", standing, []Obstacle{{X: 30, Y: 250, Height: 40}}, false},
		{"obstacle left edge touching entity right edge", standing, []Obstacle{{X: 90, Y: 250, Height: 40}}, false},
		{"crouching bottom touching low obstacle top", crouching, []Obstacle{{X: 60, Y: 270, Height: 20}}, false},
		{"crouching still hits tall obstacle", crouching, []Obstacle{{X: 60, Y: 250, Height: 40}}, true},
		{"floating band passes over standing entity", standing, []Obstacle{{X: 60, Y: 200, Height: 40, Kind: ObstacleFloating}}, false},
		{"floating obstacle bottom touching entity top", standing, []Obstacle{{X: 60, Y: 210, Height: 40, Kind: ObstacleFloating}}, false},
		{"any of several", standing, []Obstacle{{X: 500, Y: 250, Height: 40}, {X: 85, Y: 270, Height: 20}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Colliding(tc.entity, tc.obstacles, width); got != tc.expected {
				t.Errorf("Colliding() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
