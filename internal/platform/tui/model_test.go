package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/storage"
)

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func TestPlayModeJump(t *testing.T) {
	m, err := NewModel(Options{
		Mode:    ModePlay,
		Config:  config.DefaultDinoConfig(),
		Runtime: runtimeConfig(1),
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m.Advance()

	e := m.World().Entities()[0]
	if !e.Jumping {
		t.Error("space should make the player jump")
	}

	// The jump is consumed by one tick
	if m.input != core.ActionNone {
		t.Errorf("pending input = %v, expected none", m.input)
	}
}

func TestPlayModeCrouchHold(t *testing.T) {
	m, err := NewModel(Options{
		Mode:    ModePlay,
		Config:  config.DefaultDinoConfig(),
		Runtime: runtimeConfig(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	for i := 0; i < crouchHoldTicks; i++ {
		m.Advance()
		if !m.World().Entities()[0].Crouching {
			t.Fatalf("tick %d: expected crouch to be held", i)
		}
	}
	m.Advance()
	if m.World().Entities()[0].Crouching {
		t.Error("crouch should be released after the hold")
	}
}

func TestPlayModeCompanions(t *testing.T) {
	m, err := NewModel(Options{
		Mode:       ModePlay,
		Config:     config.DefaultDinoConfig(),
		Runtime:    runtimeConfig(1),
		Policy:     "heuristic",
		Population: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.World().Len() != 4 {
		t.Errorf("expected 4 entities, got %d", m.World().Len())
	}
	if m.policies[0] != nil {
		t.Error("entity 0 should be keyboard controlled")
	}
	for i := 1; i < 4; i++ {
		if m.policies[i] == nil {
			t.Errorf("companion %d has no policy", i)
		}
	}
}

func TestUnknownPolicy(t *testing.T) {
	_, err := NewModel(Options{
		Mode:       ModeWatch,
		Config:     config.DefaultDinoConfig(),
		Runtime:    runtimeConfig(1),
		Policy:     "nope",
		Population: 2,
	})
	if err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestWatchModeRestartsAndSaves(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, err := NewModel(Options{
		Mode:       ModeWatch,
		Config:     config.DefaultDinoConfig(),
		Runtime:    runtimeConfig(5),
		Policy:     "idle",
		Population: 3,
		Store:      store,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10000 && !m.World().Done(); i++ {
		m.Advance()
	}
	if !m.World().Done() {
		t.Fatal("idle population should die")
	}

	for i := 0; i < restartDelayTicks; i++ {
		m.Advance()
	}
	if m.World().Done() || m.World().Tick() != 0 {
		t.Errorf("expected a fresh episode, done=%v tick=%d", m.World().Done(), m.World().Tick())
	}
	if m.World().Seed() != 6 {
		t.Errorf("restart should advance the seed, got %d", m.World().Seed())
	}

	eps, err := store.TopEpisodes("idle", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(eps) != 1 || eps[0].Entities != 3 || eps[0].Seed != 5 {
		t.Errorf("expected one saved episode, got %+v", eps)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m, err := NewModel(Options{
		Mode:       ModeWatch,
		Config:     config.DefaultDinoConfig(),
		Runtime:    runtimeConfig(1),
		Policy:     "idle",
		Population: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m.Advance()
	if m.World().Tick() != 0 {
		t.Error("paused viewer should not step")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m.Advance()
	if m.World().Tick() != 1 {
		t.Error("unpaused viewer should step")
	}
}

func TestHistoryModelViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runID, err := store.CreateRun(1, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveEpisode(storage.EpisodeRecord{Policy: "heuristic", Score: 4}); err != nil {
		t.Fatal(err)
	}

	m := NewHistoryModel(store, 100, 30)
	if len(m.table.Rows()) != 1 {
		t.Fatalf("expected one run row, got %d", len(m.table.Rows()))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.view != viewEpisodes || len(m.table.Rows()) != 1 {
		t.Errorf("tab should show episodes, view=%v rows=%d", m.view, len(m.table.Rows()))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistoryModel)
	if m.view != viewGenerations || m.runID != runID {
		t.Errorf("enter should open run %d, view=%v run=%d", runID, m.view, m.runID)
	}
	if m.View() == "" {
		t.Error("generations view should render")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(HistoryModel)
	if m.view != viewRuns {
		t.Error("esc should return to runs")
	}
}
