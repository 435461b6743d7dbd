package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/dino-evo/internal/evolve"
)

// Report is a digest of a training history.
type Report struct {
	Generations int
	FinalBest   float64
	FinalMean   float64
	FinalStdDev float64
	BestScore   int

	// Improvement holds the percent change of the best fitness between
	// consecutive generations. Generations whose predecessor had a best
	// fitness of zero have no entry.
	Improvement []Improvement
}

// Improvement is the change of best fitness into one generation.
type Improvement struct {
	Generation int
	Percent    float64
}

// BuildReport derives a report from a history ordered by generation.
func BuildReport(history []evolve.GenerationStats) Report {
	var r Report
	if len(history) == 0 {
		return r
	}

	last := history[len(history)-1]
	r.Generations = len(history)
	r.FinalBest = last.Best
	r.FinalMean = last.Mean
	r.FinalStdDev = last.StdDev

	for i, s := range history {
		r.BestScore = max(r.BestScore, s.BestScore)
		if i == 0 {
			continue
		}
		prev := history[i-1].Best
		if prev == 0 {
			continue
		}
		r.Improvement = append(r.Improvement, Improvement{
			Generation: s.Generation,
			Percent:    (s.Best - prev) / abs(prev) * 100,
		})
	}
	return r
}

// Progressing reports whether the most recent improvement was positive.
func (r Report) Progressing() bool {
	if len(r.Improvement) == 0 {
		return false
	}
	return r.Improvement[len(r.Improvement)-1].Percent > 0
}

// Diverse reports whether the final generation still has spread in fitness.
func (r Report) Diverse() bool {
	return r.FinalStdDev > 0
}

// WriteTo writes the report as plain text.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	b.WriteString("Learning report\n")
	b.WriteString("===============\n\n")
	fmt.Fprintf(&b, "Generations:        %d\n", r.Generations)
	fmt.Fprintf(&b, "Final best fitness: %.2f\n", r.FinalBest)
	fmt.Fprintf(&b, "Final mean fitness: %.2f\n", r.FinalMean)
	fmt.Fprintf(&b, "Best score:         %d\n\n", r.BestScore)

	if len(r.Improvement) > 0 {
		b.WriteString("Improvement per generation:\n")
		for _, imp := range r.Improvement {
			fmt.Fprintf(&b, "  generation %d: %+.2f%%\n", imp.Generation, imp.Percent)
		}
		b.WriteString("\n")
	}

	b.WriteString("Analysis:\n")
	if r.Progressing() {
		b.WriteString("  learning is progressing\n")
	} else {
		b.WriteString("  learning may be stagnating\n")
	}
	if r.Diverse() {
		b.WriteString("  the population keeps fitness diversity\n")
	} else {
		b.WriteString("  the population has converged\n")
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
