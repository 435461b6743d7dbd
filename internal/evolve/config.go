package evolve

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable trainer settings.
var ErrInvalidConfig = errors.New("evolve: invalid config")

// Config controls a training run.
type Config struct {
	Population     int     `yaml:"population"`
	Generations    int     `yaml:"generations"`
	Hidden         int     `yaml:"hidden"` // Hidden layer width of every network
	Elite          int     `yaml:"elite"`  // Copied unchanged into the next generation
	TournamentSize int     `yaml:"tournament_size"`
	MutationRate   float64 `yaml:"mutation_rate"` // Per-weight probability
	MutationSigma  float64 `yaml:"mutation_sigma"`
	Trials         int     `yaml:"trials"`    // Independent worlds per generation
	MaxTicks       int     `yaml:"max_ticks"` // 0 means until everyone dies
	Workers        int     `yaml:"workers"`   // Concurrent trials
}

// DefaultConfig returns settings that train a competent runner in a few
// dozen generations.
func DefaultConfig() Config {
	return Config{
		Population:     50,
		Generations:    50,
		Hidden:         8,
		Elite:          2,
		TournamentSize: 3,
		MutationRate:   0.1,
		MutationSigma:  0.3,
		Trials:         1,
		MaxTicks:       5000,
		Workers:        4,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	var errs []error
	if c.Population < 2 {
		errs = append(errs, fmt.Errorf("population must be at least 2, got %d", c.Population))
	}
	if c.Generations < 1 {
		errs = append(errs, fmt.Errorf("generations must be positive, got %d", c.Generations))
	}
	if c.Hidden < 1 {
		errs = append(errs, fmt.Errorf("hidden must be positive, got %d", c.Hidden))
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		errs = append(errs, fmt.Errorf("elite must be in [0, population), got %d", c.Elite))
	}
	if c.TournamentSize < 1 {
		errs = append(errs, fmt.Errorf("tournament size must be positive, got %d", c.TournamentSize))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate))
	}
	if c.MutationSigma < 0 {
		errs = append(errs, fmt.Errorf("mutation sigma must not be negative, got %v", c.MutationSigma))
	}
	if c.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be positive, got %d", c.Trials))
	}
	if c.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("max ticks must not be negative, got %d", c.MaxTicks))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
