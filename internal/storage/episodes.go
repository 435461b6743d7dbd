package storage

import (
	"fmt"
	"time"
)

// EpisodeRecord is the outcome of one evaluated episode.
type EpisodeRecord struct {
	ID          int64
	Policy      string
	Seed        int64
	Entities    int
	Score       int
	Ticks       int
	BestFitness float64
	CreatedAt   time.Time
}

// PolicyStats aggregates the stored episodes of one policy.
type PolicyStats struct {
	Policy     string
	Episodes   int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// SaveEpisode records an episode and returns its id.
func (s *Store) SaveEpisode(e EpisodeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes (policy, seed, entities, score, ticks, best_fitness)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Policy, e.Seed, e.Entities, e.Score, e.Ticks, e.BestFitness,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopEpisodes retrieves the best episodes of a policy ordered by score.
// An empty policy matches every policy.
func (s *Store) TopEpisodes(policy string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, policy, seed, entities, score, ticks, best_fitness, created_at
		 FROM episodes
		 WHERE ? = '' OR policy = ?
		 ORDER BY score DESC, best_fitness DESC, id ASC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var entries []EpisodeRecord
	for rows.Next() {
		var e EpisodeRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Policy, &e.Seed, &e.Entities, &e.Score, &e.Ticks, &e.BestFitness, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// AllPolicyStats returns aggregated episode statistics keyed by policy.
func (s *Store) AllPolicyStats() (map[string]*PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM episodes
		 GROUP BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PolicyStats)
	for rows.Next() {
		var ps PolicyStats
		var lastPlayed any
		if err := rows.Scan(&ps.Policy, &ps.Episodes, &ps.HighScore, &ps.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Policy] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
