// Package telemetry records training progress: a CSV history of
// per-generation statistics and a plain-text learning report.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/dino-evo/internal/evolve"
)

// HistoryWriter appends generation statistics to a CSV file.
// A nil *HistoryWriter discards everything, so callers need not check
// whether CSV output was requested.
type HistoryWriter struct {
	file          *os.File
	headerWritten bool
}

// NewHistoryWriter creates (or truncates) the CSV file at path.
// Returns nil if path is empty.
func NewHistoryWriter(path string) (*HistoryWriter, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &HistoryWriter{file: f}, nil
}

// Write appends one row. The header is written with the first row.
func (h *HistoryWriter) Write(stats evolve.GenerationStats) error {
	if h == nil {
		return nil
	}

	records := []evolve.GenerationStats{stats}
	if !h.headerWritten {
		if err := gocsv.Marshal(records, h.file); err != nil {
			return fmt.Errorf("telemetry: writing history: %w", err)
		}
		h.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, h.file); err != nil {
		return fmt.Errorf("telemetry: writing history: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (h *HistoryWriter) Close() error {
	if h == nil {
		return nil
	}
	return h.file.Close()
}

// ReadHistory loads a CSV written by HistoryWriter.
func ReadHistory(path string) ([]evolve.GenerationStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening %s: %w", path, err)
	}
	defer f.Close()

	var history []evolve.GenerationStats
	if err := gocsv.UnmarshalFile(f, &history); err != nil {
		return nil, fmt.Errorf("telemetry: parsing %s: %w", path, err)
	}
	return history, nil
}
