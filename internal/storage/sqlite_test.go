package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/dino-evo/internal/evolve"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveEpisode(EpisodeRecord{Policy: "idle", Score: 3}); err != nil {
		t.Fatalf("SaveEpisode() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent and data must survive
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	eps, err := store.TopEpisodes("idle", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(eps) != 1 || eps[0].Score != 3 {
		t.Errorf("expected the stored episode, got %+v", eps)
	}
}

func TestTopEpisodes(t *testing.T) {
	store := openTemp(t)

	records := []EpisodeRecord{
		{Policy: "heuristic", Seed: 1, Entities: 1, Score: 100, Ticks: 2000, BestFitness: 200},
		{Policy: "heuristic", Seed: 2, Entities: 1, Score: 50, Ticks: 1000, BestFitness: 100},
		{Policy: "heuristic", Seed: 3, Entities: 1, Score: 200, Ticks: 4000, BestFitness: 400},
		{Policy: "random", Seed: 1, Entities: 10, Score: 5, Ticks: 300, BestFitness: 12.5},
	}
	for _, r := range records {
		if _, err := store.SaveEpisode(r); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}

	eps, err := store.TopEpisodes("heuristic", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(eps) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(eps))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, e := range expected {
		if eps[i].Score != e {
			t.Errorf("episode %d: expected score %d, got %d", i, e, eps[i].Score)
		}
	}
	if eps[0].Seed != 3 || eps[0].Ticks != 4000 || eps[0].BestFitness != 400 {
		t.Errorf("unexpected top episode %+v", eps[0])
	}

	limited, err := store.TopEpisodes("heuristic", 2)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 episodes with limit, got %d", len(limited))
	}

	all, err := store.TopEpisodes("", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 episodes across policies, got %d", len(all))
	}

	none, err := store.TopEpisodes("network", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no episodes, got %d", len(none))
	}
}

func TestAllPolicyStats(t *testing.T) {
	store := openTemp(t)

	for _, score := range []int{10, 20, 30} {
		if _, err := store.SaveEpisode(EpisodeRecord{Policy: "heuristic", Score: score}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveEpisode(EpisodeRecord{Policy: "idle", Score: 1}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.AllPolicyStats()
	if err != nil {
		t.Fatalf("AllPolicyStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 policies, got %d", len(stats))
	}

	h := stats["heuristic"]
	if h == nil {
		t.Fatal("missing heuristic stats")
	}
	if h.Episodes != 3 || h.HighScore != 30 || h.AvgScore != 20 {
		t.Errorf("unexpected heuristic stats %+v", h)
	}
}

func TestRunLifecycle(t *testing.T) {
	store := openTemp(t)

	runID, err := store.CreateRun(42, 50, 3)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	history := []evolve.GenerationStats{
		{Generation: 0, Best: 1.5, Mean: 0.5, Min: 0.1, StdDev: 0.3, BestScore: 1},
		{Generation: 1, Best: 4, Mean: 1, Min: 0.1, StdDev: 0.9, BestScore: 3},
		{Generation: 2, Best: 9, Mean: 2.5, Min: 0.2, StdDev: 2, BestScore: 7},
	}
	// Out of order on purpose
	for _, i := range []int{2, 0, 1} {
		if err := store.SaveGeneration(runID, history[i]); err != nil {
			t.Fatalf("SaveGeneration() failed: %v", err)
		}
	}

	run, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Finished {
		t.Error("run should not be finished yet")
	}

	if err := store.FinishRun(runID, 9, 7); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, err = store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if !run.Finished || run.BestFitness != 9 || run.BestScore != 7 || run.Seed != 42 || run.Population != 50 {
		t.Errorf("unexpected run %+v", run)
	}

	got, err := store.RunGenerations(runID)
	if err != nil {
		t.Fatalf("RunGenerations() failed: %v", err)
	}
	if len(got) != len(history) {
		t.Fatalf("Expected %d generations, got %d", len(history), len(got))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Errorf("generation %d: got %+v, expected %+v", i, got[i], history[i])
		}
	}
}

func TestSaveGenerationReplaces(t *testing.T) {
	store := openTemp(t)
	runID, err := store.CreateRun(1, 10, 1)
	if err != nil {
		t.Fatal(err)
	}

	_ = store.SaveGeneration(runID, evolve.GenerationStats{Generation: 0, Best: 1})
	if err := store.SaveGeneration(runID, evolve.GenerationStats{Generation: 0, Best: 2}); err != nil {
		t.Fatalf("SaveGeneration() failed: %v", err)
	}

	got, err := store.RunGenerations(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Best != 2 {
		t.Errorf("expected a single replaced row, got %+v", got)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	store := openTemp(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := store.CreateRun(int64(i), 10, 5)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	runs, err := store.Runs(2)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("expected newest first, got %d, %d", runs[0].ID, runs[1].ID)
	}
}

func TestMissingRun(t *testing.T) {
	store := openTemp(t)

	if _, err := store.RunByID(99); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("RunByID() = %v, expected ErrRunNotFound", err)
	}
	if err := store.FinishRun(99, 1, 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun() = %v, expected ErrRunNotFound", err)
	}
}
