// Package evolve trains feed-forward runner controllers with a genetic
// algorithm. Every generation the whole population runs side by side in a
// shared world; fitness is the reward an entity collected before dying.
package evolve

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
)

// GenerationStats summarizes the fitness distribution of one generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Best       float64 `csv:"best"`
	Mean       float64 `csv:"mean"`
	Min        float64 `csv:"min"`
	StdDev     float64 `csv:"stddev"`
	BestScore  int     `csv:"best_score"` // Highest episode score over the trials
}

// Result is the outcome of a finished or cancelled run.
type Result struct {
	Best        Individual // Fittest individual seen in any generation
	BestNetwork *agent.Network
	History     []GenerationStats
}

// Observer is called after every evaluated generation.
type Observer func(GenerationStats)

// Trainer evolves a population of network genomes.
type Trainer struct {
	cfg      Config
	sim      config.DinoConfig
	seed     int64
	rng      *rand.Rand
	logger   *log.Logger
	observer Observer
}

// NewTrainer validates cfg and creates a trainer. All randomness, both
// the genetic operators and the episode seeds, is derived from seed.
func NewTrainer(cfg Config, sim config.DinoConfig, seed int64) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Trainer{
		cfg:    cfg,
		sim:    sim,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard),
	}, nil
}

// SetLogger sets the logger used for progress output.
func (t *Trainer) SetLogger(l *log.Logger) {
	if l != nil {
		t.logger = l
	}
}

// OnGeneration registers a callback for per-generation statistics.
func (t *Trainer) OnGeneration(fn Observer) {
	t.observer = fn
}

// Run trains for the configured number of generations. On cancellation it
// returns what was learned so far together with the context error.
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	pop := make([]Individual, t.cfg.Population)
	for i := range pop {
		pop[i].Genome = agent.NewNetwork(t.cfg.Hidden, t.rng).Genome()
	}

	var res Result
	res.Best.Fitness = math.Inf(-1)

	for gen := 0; gen < t.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return t.finish(res), err
		}

		bestScore, err := t.evaluate(ctx, gen, pop)
		if err != nil {
			return t.finish(res), err
		}

		stats := summarize(gen, pop, bestScore)
		res.History = append(res.History, stats)

		rank(pop)
		if pop[0].Fitness > res.Best.Fitness {
			res.Best = Individual{
				Genome:  append([]float64(nil), pop[0].Genome...),
				Fitness: pop[0].Fitness,
			}
		}

		t.logger.Debug("generation evaluated",
			"gen", gen, "best", stats.Best, "mean", stats.Mean, "score", stats.BestScore)
		if t.observer != nil {
			t.observer(stats)
		}

		if gen < t.cfg.Generations-1 {
			pop = breed(pop, t.cfg, t.rng)
		}
	}

	return t.finish(res), nil
}

func (t *Trainer) finish(res Result) Result {
	if res.Best.Genome == nil {
		return res
	}
	n, err := agent.NetworkFromGenome(t.cfg.Hidden, res.Best.Genome)
	if err != nil {
		t.logger.Error("rebuild best network", "err", err)
		return res
	}
	res.BestNetwork = n
	return res
}

// TrialSeed returns the world seed of one trial of one generation.
func (t *Trainer) TrialSeed(gen, trial int) int64 {
	return t.seed + int64(gen)*1_000_003 + int64(trial)*7_919
}

// evaluate sets the fitness of every individual to its mean over all
// trials and returns the highest episode score reached.
func (t *Trainer) evaluate(ctx context.Context, gen int, pop []Individual) (int, error) {
	fitness := make([][]float64, t.cfg.Trials)
	scores := make([]int, t.cfg.Trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)

	for trial := 0; trial < t.cfg.Trials; trial++ {
		trial := trial
		g.Go(func() error {
			policies := make([]agent.Policy, len(pop))
			for i, ind := range pop {
				n, err := agent.NetworkFromGenome(t.cfg.Hidden, ind.Genome)
				if err != nil {
					return fmt.Errorf("evolve: individual %d: %w", i, err)
				}
				policies[i] = n
			}

			w := dino.New(t.sim, t.TrialSeed(gen, trial))
			ep, err := agent.RunEpisode(ctx, w, policies, t.cfg.MaxTicks)
			if err != nil {
				return err
			}
			fitness[trial] = ep.Fitness
			scores[trial] = ep.Score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best := 0
	for i := range pop {
		sum := 0.0
		for trial := range fitness {
			sum += fitness[trial][i]
		}
		pop[i].Fitness = sum / float64(t.cfg.Trials)
	}
	for _, s := range scores {
		best = max(best, s)
	}
	return best, nil
}

func summarize(gen int, pop []Individual, bestScore int) GenerationStats {
	f := make([]float64, len(pop))
	for i, ind := range pop {
		f[i] = ind.Fitness
	}

	stats := GenerationStats{
		Generation: gen,
		Best:       floats.Max(f),
		Min:        floats.Min(f),
		BestScore:  bestScore,
	}
	if len(f) > 1 {
		stats.Mean, stats.StdDev = stat.MeanStdDev(f, nil)
	} else {
		stats.Mean = f[0]
	}
	return stats
}
