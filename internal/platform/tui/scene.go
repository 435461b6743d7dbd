package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

// Scene glyphs
const (
	glyphRunner   = '█'
	glyphGround   = '▓'
	glyphFloating = '▒'
	glyphFloor    = '─'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// Scene draws a world into a character screen, scaling world units to cells.
type Scene struct {
	cfg   config.DinoConfig
	Title string
}

// NewScene creates a scene for worlds built from cfg.
func NewScene(cfg config.DinoConfig) *Scene {
	return &Scene{cfg: cfg}
}

// Draw clears dst and renders w. Entity 0 is drawn green on top of the
// others; dead entities are not drawn.
func (s *Scene) Draw(dst *core.Screen, w *dino.World) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}

	sx := float64(dst.Width()) / s.cfg.Screen.Width
	sy := float64(dst.Height()-hudRows) / s.cfg.Screen.Height

	floor := hudRows + int((s.cfg.Screen.Height-s.cfg.Obstacles.GroundMargin)*sy)
	dst.DrawHLine(0, floor, dst.Width(), glyphFloor, core.ColorGray)

	for _, o := range w.Obstacles() {
		glyph := glyphGround
		if o.Kind == dino.ObstacleFloating {
			glyph = glyphFloating
		}
		s.fill(dst, o.X, o.Y, o.Width, o.Height, sx, sy, glyph, core.ColorGray)
	}

	entities := w.Entities()
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		if !e.Alive {
			continue
		}
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorGreen
		}
		s.fill(dst, e.X, e.Y, e.Width, e.Height, sx, sy, glyphRunner, color)
	}

	s.drawHUD(dst, w)
}

func (s *Scene) fill(dst *core.Screen, x, y, w, h, sx, sy float64, r rune, c core.Color) {
	x0, x1 := span(x, x+w, sx)
	y0, y1 := span(y, y+h, sy)
	dst.FillRect(x0, y0+hudRows, x1, y1+hudRows, r, c)
}

// span maps the world interval [a, b) to cells, never narrower than one.
func span(a, b, scale float64) (int, int) {
	lo := int(math.Floor(a * scale))
	hi := int(math.Ceil(b * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (s *Scene) drawHUD(dst *core.Screen, w *dino.World) {
	hud := fmt.Sprintf("score %d  alive %d/%d  speed %.1f (level %d)  tick %d",
		w.Score(), w.Alive(), w.Len(), w.Speed(), s.cfg.Speed.Level(w.Score()), w.Tick())
	if s.Title != "" {
		hud = s.Title + "  " + hud
	}
	dst.DrawTextColored(0, 0, hud, core.ColorYellow)

	if w.Done() {
		dst.DrawTextCentered(hudRows+(dst.Height()-hudRows)/3, "GAME OVER", core.ColorRed)
	}
}
