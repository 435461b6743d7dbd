package evolve

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/config"
)

func smallConfig() Config {
	return Config{
		Population:     6,
		Generations:    3,
		Hidden:         2,
		Elite:          1,
		TournamentSize: 2,
		MutationRate:   0.2,
		MutationSigma:  0.5,
		Trials:         2,
		MaxTicks:       400,
		Workers:        2,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"tiny population", func(c *Config) { c.Population = 1 }, false},
		{"elite fills population", func(c *Config) { c.Elite = c.Population }, false},
		{"no trials", func(c *Config) { c.Trials = 0 }, false},
		{"rate above one", func(c *Config) { c.MutationRate = 1.5 }, false},
		{"negative sigma", func(c *Config) { c.MutationSigma = -1 }, false},
		{"unbounded ticks", func(c *Config) { c.MaxTicks = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestTournamentPicksFittest(t *testing.T) {
	pop := []Individual{{Fitness: 1}, {Fitness: 5}, {Fitness: 3}}
	rng := rand.New(rand.NewSource(1))

	// A large tournament with replacement almost surely contains the best
	for i := 0; i < 20; i++ {
		if got := tournament(pop, 64, rng); got.Fitness != 5 {
			t.Fatalf("tournament() picked fitness %v", got.Fitness)
		}
	}
}

func TestMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := []float64{1, 2, 3}

	mutate(g, 0, 1, rng)
	if g[0] != 1 || g[1] != 2 || g[2] != 3 {
		t.Errorf("rate 0 should not change genome, got %v", g)
	}

	mutate(g, 1, 1, rng)
	if g[0] == 1 && g[1] == 2 && g[2] == 3 {
		t.Error("rate 1 should change genome")
	}
}

func TestCrossoverTakesParentGenes(t *testing.T) {
	a := []float64{1, 1, 1, 1, 1, 1}
	b := []float64{2, 2, 2, 2, 2, 2}
	child := crossover(a, b, rand.New(rand.NewSource(3)))
	for i, v := range child {
		if v != 1 && v != 2 {
			t.Errorf("gene %d = %v is from neither parent", i, v)
		}
	}
}

func TestBreedKeepsElite(t *testing.T) {
	cfg := smallConfig()
	cfg.Elite = 2
	ranked := make([]Individual, cfg.Population)
	for i := range ranked {
		ranked[i] = Individual{Genome: []float64{float64(i), 0}, Fitness: float64(len(ranked) - i)}
	}

	next := breed(ranked, cfg, rand.New(rand.NewSource(4)))
	if len(next) != len(ranked) {
		t.Fatalf("next generation has %d individuals, expected %d", len(next), len(ranked))
	}
	for i := 0; i < cfg.Elite; i++ {
		if next[i].Genome[0] != ranked[i].Genome[0] {
			t.Errorf("elite %d not preserved", i)
		}
	}

	// Elites are copies
	next[0].Genome[0] = 99
	if ranked[0].Genome[0] == 99 {
		t.Error("elite genome should not alias its parent")
	}
}

func TestTrainerRun(t *testing.T) {
	cfg := smallConfig()
	tr, err := NewTrainer(cfg, config.DefaultDinoConfig(), 42)
	if err != nil {
		t.Fatalf("NewTrainer() failed: %v", err)
	}

	var seen []GenerationStats
	tr.OnGeneration(func(s GenerationStats) { seen = append(seen, s) })

	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(res.History) != cfg.Generations || len(seen) != cfg.Generations {
		t.Fatalf("expected %d generations, got history %d observed %d",
			cfg.Generations, len(res.History), len(seen))
	}
	best := res.History[0].Best
	for i, s := range res.History {
		if s.Generation != i {
			t.Errorf("history[%d].Generation = %d", i, s.Generation)
		}
		if s.Min > s.Mean+1e-9 || s.Mean > s.Best+1e-9 {
			t.Errorf("generation %d: expected min <= mean <= best, got %+v", i, s)
		}
		best = max(best, s.Best)
	}
	if res.Best.Fitness != best {
		t.Errorf("Best.Fitness = %v, expected %v", res.Best.Fitness, best)
	}
	if res.BestNetwork == nil || res.BestNetwork.Hidden() != cfg.Hidden {
		t.Error("expected a rebuilt best network")
	}
}

func TestTrainerDeterministic(t *testing.T) {
	run := func() []GenerationStats {
		tr, err := NewTrainer(smallConfig(), config.DefaultDinoConfig(), 7)
		if err != nil {
			t.Fatal(err)
		}
		res, err := tr.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res.History
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("generation %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestTrainerCancelled(t *testing.T) {
	tr, err := NewTrainer(smallConfig(), config.DefaultDinoConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := tr.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(res.History) != 0 {
		t.Errorf("expected no generations, got %d", len(res.History))
	}
}

func TestTrialSeedsDistinct(t *testing.T) {
	tr, err := NewTrainer(smallConfig(), config.DefaultDinoConfig(), 5)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int64]bool)
	for gen := 0; gen < 10; gen++ {
		for trial := 0; trial < 10; trial++ {
			s := tr.TrialSeed(gen, trial)
			if seen[s] {
				t.Fatalf("seed %d repeated", s)
			}
			seen[s] = true
		}
	}
}
