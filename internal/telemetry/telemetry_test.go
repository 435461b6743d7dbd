package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/evolve"
)

func TestHistoryWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "history.csv")
	h, err := NewHistoryWriter(path)
	if err != nil {
		t.Fatalf("NewHistoryWriter() failed: %v", err)
	}

	rows := []evolve.GenerationStats{
		{Generation: 0, Best: 3.5, Mean: 1.25, Min: 0.5, StdDev: 0.75, BestScore: 2},
		{Generation: 1, Best: 7, Mean: 2, Min: 1, StdDev: 1.5, BestScore: 4},
	}
	for _, r := range rows {
		if err := h.Write(r); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "generation,"); n != 1 {
		t.Errorf("expected one header line, found %d", n)
	}

	got, err := ReadHistory(path)
	if err != nil {
		t.Fatalf("ReadHistory() failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, expected %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d: got %+v, expected %+v", i, got[i], rows[i])
		}
	}
}

func TestNilHistoryWriter(t *testing.T) {
	h, err := NewHistoryWriter("")
	if err != nil || h != nil {
		t.Fatalf("expected disabled writer, got %v, %v", h, err)
	}
	if err := h.Write(evolve.GenerationStats{}); err != nil {
		t.Errorf("nil Write() = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("nil Close() = %v", err)
	}
}

func TestBuildReport(t *testing.T) {
	history := []evolve.GenerationStats{
		{Generation: 0, Best: 0, Mean: 0, BestScore: 0},
		{Generation: 1, Best: 2, Mean: 1, BestScore: 1},
		{Generation: 2, Best: 4, Mean: 2, BestScore: 5},
		{Generation: 3, Best: 3, Mean: 2.5, StdDev: 0.4, BestScore: 3},
	}

	r := BuildReport(history)

	if r.Generations != 4 || r.FinalBest != 3 || r.FinalMean != 2.5 || r.BestScore != 5 {
		t.Errorf("unexpected summary %+v", r)
	}

	// Generation 1 follows a zero best and has no rate
	expected := []Improvement{{Generation: 2, Percent: 100}, {Generation: 3, Percent: -25}}
	if len(r.Improvement) != len(expected) {
		t.Fatalf("expected %d rates, got %v", len(expected), r.Improvement)
	}
	for i, e := range expected {
		got := r.Improvement[i]
		if got.Generation != e.Generation || math.Abs(got.Percent-e.Percent) > 1e-9 {
			t.Errorf("rate %d: got %+v, expected %+v", i, got, e)
		}
	}

	if r.Progressing() {
		t.Error("last generation regressed, report should not be progressing")
	}
	if !r.Diverse() {
		t.Error("non-zero stddev should count as diverse")
	}
}

func TestReportWriteTo(t *testing.T) {
	r := BuildReport([]evolve.GenerationStats{
		{Generation: 0, Best: 1},
		{Generation: 1, Best: 1.5},
	})

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() reported %d bytes, wrote %d", n, buf.Len())
	}

	out := buf.String()
	for _, want := range []string{"Final best fitness: 1.50", "generation 1: +50.00%", "progressing"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	r := BuildReport(nil)
	if r.Generations != 0 || r.Progressing() {
		t.Errorf("unexpected empty report %+v", r)
	}
}
