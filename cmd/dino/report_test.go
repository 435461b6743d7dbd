package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/evolve"
	"github.com/vovakirdan/dino-evo/internal/telemetry"
)

func TestRunReportFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	w, err := telemetry.NewHistoryWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []evolve.GenerationStats{
		{Generation: 0, Best: 4, Mean: 1, StdDev: 0.5},
		{Generation: 1, Best: 6, Mean: 2, StdDev: 0.5},
	} {
		if err := w.Write(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	reportCmd.SetOut(&buf)
	defer reportCmd.SetOut(nil)
	runReport(reportCmd, []string{path})

	out := buf.String()
	for _, want := range []string{"Final best fitness: 6.00", "+50.00%", "learning is progressing"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
