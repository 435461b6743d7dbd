package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
	"github.com/vovakirdan/dino-evo/internal/registry"
	"github.com/vovakirdan/dino-evo/internal/storage"
)

// Mode selects who controls entity 0.
type Mode int

const (
	ModeWatch Mode = iota // Every entity is driven by a policy
	ModePlay              // Entity 0 follows the keyboard
)

const (
	// Terminals report key presses, not releases; a crouch press is held
	// for this many ticks.
	crouchHoldTicks = 12

	// Ticks the final frame stays on screen before a watch episode restarts.
	restartDelayTicks = 90
)

// Options configures a viewer Model.
type Options struct {
	Mode       Mode
	Config     config.DinoConfig
	Runtime    core.RuntimeConfig
	Policy     string // Registry id of the policy (watch) or companions (play)
	Population int    // Entities in watch mode, companions + 1 in play mode
	Network    *agent.Network
	Store      *storage.Store
	Recorder   *FrameRecorder
	Logger     *log.Logger
}

// Model is the Bubble Tea model that steps a world in real time.
type Model struct {
	opts   Options
	world  *dino.World
	scene  *Scene
	screen *core.Screen
	logger *log.Logger

	policies []agent.Policy // nil entry: keyboard controlled
	obs      dino.Observation
	actions  []core.Action

	input       core.Action
	crouchTicks int

	seed       int64
	episode    int
	overTicks  int
	paused     bool
	quitting   bool
	scoreSaved bool
}

// NewModel creates a viewer. In play mode Population may be 1 (no companions).
func NewModel(opts Options) (*Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Population < 1 {
		opts.Population = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	n := opts.Population
	first := 0
	if opts.Mode == ModePlay {
		first = 1
	}

	policies := make([]agent.Policy, n)
	if n > first {
		ps, err := registry.CreateN(opts.Policy, n-first, registry.Options{
			Seed:    opts.Runtime.Seed,
			Config:  opts.Config,
			Network: opts.Network,
		})
		if err != nil {
			return nil, err
		}
		copy(policies[first:], ps)
	}

	m := &Model{
		opts:     opts,
		world:    dino.New(opts.Config, opts.Runtime.Seed),
		scene:    NewScene(opts.Config),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		logger:   opts.Logger,
		policies: policies,
		actions:  make([]core.Action, n),
		seed:     opts.Runtime.Seed,
	}
	m.scene.Title = m.title()
	m.obs = m.world.Reset(n)
	return m, nil
}

func (m *Model) title() string {
	if m.opts.Mode == ModePlay {
		return "PLAY"
	}
	return fmt.Sprintf("WATCH %s #%d", m.opts.Policy, m.episode+1)
}

// World returns the world being viewed.
func (m *Model) World() *dino.World {
	return m.world
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is in world units; only the screen changes
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.Advance()
		return m, tickCmd(m.opts.Runtime.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "p", "esc":
		m.paused = !m.paused
		return m, nil
	case "r":
		if m.world.Done() {
			m.restart()
		}
		return m, nil
	}

	if m.opts.Mode != ModePlay {
		return m, nil
	}
	switch msg.String() {
	case " ", "space", "up", "w":
		m.input = core.ActionJump
		m.crouchTicks = 0
	case "down", "s":
		m.crouchTicks = crouchHoldTicks
	}
	return m, nil
}

// Advance performs one viewer tick: it steps the world unless paused,
// records the frame and handles episode end.
func (m *Model) Advance() {
	if m.paused {
		return
	}

	if m.world.Done() {
		m.overTicks++
		if m.opts.Mode == ModeWatch && m.overTicks >= restartDelayTicks {
			m.restart()
		}
		return
	}

	for i, p := range m.policies {
		m.actions[i] = core.ActionNone
		if !m.world.IsAlive(i) {
			continue
		}
		if p == nil {
			m.actions[i] = m.playerAction()
			continue
		}
		m.actions[i] = p.Act(m.obs)
	}
	m.input = core.ActionNone

	obs, _, done, err := m.world.Step(m.actions)
	if err != nil {
		m.logger.Error("step failed", "err", err)
		return
	}
	m.obs = obs

	if m.opts.Recorder != nil {
		m.scene.Draw(m.screen, m.world)
		m.opts.Recorder.Record(m.screen)
	}

	if done {
		m.episodeOver()
	}
}

func (m *Model) playerAction() core.Action {
	if m.input == core.ActionJump {
		return core.ActionJump
	}
	if m.crouchTicks > 0 {
		m.crouchTicks--
		return core.ActionCrouch
	}
	return core.ActionNone
}

// episodeOver saves the result once per episode.
func (m *Model) episodeOver() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	policy := m.opts.Policy
	if m.opts.Mode == ModePlay {
		policy = "human"
	}
	fitness := m.world.Fitnesses()
	best := 0.0
	for i, f := range fitness {
		if i == 0 || f > best {
			best = f
		}
	}

	m.logger.Info("episode over", "policy", policy, "score", m.world.Score(), "ticks", m.world.Tick())
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveEpisode(storage.EpisodeRecord{
		Policy:      policy,
		Seed:        m.world.Seed(),
		Entities:    m.world.Len(),
		Score:       m.world.Score(),
		Ticks:       m.world.Tick(),
		BestFitness: best,
	}); err != nil {
		m.logger.Warn("could not save episode", "err", err)
	}
}

// restart begins the next episode with a fresh seed.
func (m *Model) restart() {
	m.episode++
	m.world.Reseed(m.seed + int64(m.episode))
	m.obs = m.world.Reset(len(m.policies))
	m.scene.Title = m.title()
	m.overTicks = 0
	m.scoreSaved = false
	m.input = core.ActionNone
	m.crouchTicks = 0
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Draw(m.screen, m.world)

	dir := filepath.Join(os.Getenv("HOME"), ".dino", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("dino_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Draw(m.screen, m.world)
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, "PAUSED", core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with a new viewer.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
