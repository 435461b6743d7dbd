package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dino-evo/internal/evolve"
)

// ErrRunNotFound is returned for run ids that do not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Run is one stored training run.
type Run struct {
	ID          int64
	Seed        int64
	Population  int
	Generations int
	BestFitness float64
	BestScore   int
	Finished    bool
	CreatedAt   time.Time
}

// CreateRun starts a training run record and returns its id.
func (s *Store) CreateRun(seed int64, population, generations int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (seed, population, generations) VALUES (?, ?, ?)",
		seed, population, generations,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun stores the final result of a run.
func (s *Store) FinishRun(runID int64, bestFitness float64, bestScore int) error {
	result, err := s.db.Exec(
		`UPDATE runs SET best_fitness = ?, best_score = ?, finished = 1 WHERE id = ?`,
		bestFitness, bestScore, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return nil
}

// SaveGeneration records the statistics of one generation of a run.
// Saving the same generation twice replaces the earlier row.
func (s *Store) SaveGeneration(runID int64, g evolve.GenerationStats) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO generations (run_id, generation, best, mean, min, stddev, best_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, g.Generation, g.Best, g.Mean, g.Min, g.StdDev, g.BestScore,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, population, generations, best_fitness, best_score, finished, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Population, &r.Generations,
			&r.BestFitness, &r.BestScore, &r.Finished, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID returns a single run.
func (s *Store) RunByID(runID int64) (*Run, error) {
	var r Run
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, seed, population, generations, best_fitness, best_score, finished, created_at
		 FROM runs WHERE id = ?`,
		runID,
	).Scan(&r.ID, &r.Seed, &r.Population, &r.Generations, &r.BestFitness, &r.BestScore, &r.Finished, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// RunGenerations returns the stored generations of a run in order.
func (s *Store) RunGenerations(runID int64) ([]evolve.GenerationStats, error) {
	rows, err := s.db.Query(
		`SELECT generation, best, mean, min, stddev, best_score
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var history []evolve.GenerationStats
	for rows.Next() {
		var g evolve.GenerationStats
		if err := rows.Scan(&g.Generation, &g.Best, &g.Mean, &g.Min, &g.StdDev, &g.BestScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan generation: %w", err)
		}
		history = append(history, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return history, nil
}
