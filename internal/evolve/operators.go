package evolve

import (
	"math/rand"
	"sort"
)

// Individual is one genome and the fitness it earned in its generation.
type Individual struct {
	Genome  []float64
	Fitness float64
}

// tournament samples size individuals with replacement and returns the fittest.
func tournament(pop []Individual, size int, rng *rand.Rand) Individual {
	winner := pop[rng.Intn(len(pop))]
	for i := 1; i < size; i++ {
		c := pop[rng.Intn(len(pop))]
		if c.Fitness > winner.Fitness {
			winner = c
		}
	}
	return winner
}

// crossover takes every weight from either parent with equal probability.
func crossover(a, b []float64, rng *rand.Rand) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		if rng.Intn(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// mutate adds gaussian noise to each weight with probability rate.
func mutate(genome []float64, rate, sigma float64, rng *rand.Rand) {
	for i := range genome {
		if rng.Float64() < rate {
			genome[i] += rng.NormFloat64() * sigma
		}
	}
}

// rank sorts pop by fitness, best first. Ties keep their order.
func rank(pop []Individual) {
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Fitness > pop[j].Fitness
	})
}

// breed builds the next generation from a ranked population.
func breed(ranked []Individual, cfg Config, rng *rand.Rand) []Individual {
	next := make([]Individual, 0, len(ranked))
	for i := 0; i < cfg.Elite && i < len(ranked); i++ {
		g := make([]float64, len(ranked[i].Genome))
		copy(g, ranked[i].Genome)
		next = append(next, Individual{Genome: g})
	}

	for len(next) < len(ranked) {
		a := tournament(ranked, cfg.TournamentSize, rng)
		b := tournament(ranked, cfg.TournamentSize, rng)
		child := crossover(a.Genome, b.Genome, rng)
		mutate(child, cfg.MutationRate, cfg.MutationSigma, rng)
		next = append(next, Individual{Genome: child})
	}
	return next
}
