package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-evo/internal/core"
)

// FrameRecorder writes every recorded screen to dir as frame_NNNN.txt.
// Write failures are logged and the frame is skipped; recording never
// stops the simulation. A nil *FrameRecorder records nothing.
type FrameRecorder struct {
	dir     string
	logger  *log.Logger
	frame   int
	saved   int
	skipped int
}

// NewFrameRecorder creates dir if needed. Returns nil if dir is empty.
func NewFrameRecorder(dir string, logger *log.Logger) (*FrameRecorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("tui: creating frame directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FrameRecorder{dir: dir, logger: logger}, nil
}

// Record writes the screen as the next frame.
func (r *FrameRecorder) Record(s *core.Screen) {
	if r == nil {
		return
	}

	path := filepath.Join(r.dir, fmt.Sprintf("frame_%04d.txt", r.frame))
	r.frame++

	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0o644); err != nil {
		r.skipped++
		r.logger.Warn("frame skipped", "path", path, "err", err)
		return
	}
	r.saved++
}

// Saved returns the number of frames written.
func (r *FrameRecorder) Saved() int {
	if r == nil {
		return 0
	}
	return r.saved
}

// Skipped returns the number of frames lost to write errors.
func (r *FrameRecorder) Skipped() int {
	if r == nil {
		return 0
	}
	return r.skipped
}
