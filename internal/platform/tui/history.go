package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-evo/internal/evolve"
	"github.com/vovakirdan/dino-evo/internal/storage"
)

const (
	maxRuns     = 100
	maxEpisodes = 100
)

type historyView int

const (
	viewRuns historyView = iota
	viewEpisodes
	viewGenerations
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Tab    key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs/episodes"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generations"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses stored training runs, their generations and
// evaluated episodes.
type HistoryModel struct {
	store       *storage.Store
	view        historyView
	runs        []storage.Run
	episodes    []storage.EpisodeRecord
	generations []evolve.GenerationStats
	runID       int64
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
}

// NewHistoryModel creates a history browser showing the runs table.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load() {
	if m.store == nil {
		return
	}
	m.runs, m.err = m.store.Runs(maxRuns)
	if m.err != nil {
		return
	}
	m.episodes, m.err = m.store.TopEpisodes("", maxEpisodes)
}

func (m *HistoryModel) columns() []table.Column {
	switch m.view {
	case viewEpisodes:
		return []table.Column{
			{Title: "Policy", Width: 12},
			{Title: "Score", Width: 7},
			{Title: "Ticks", Width: 8},
			{Title: "Entities", Width: 9},
			{Title: "Fitness", Width: 10},
			{Title: "Date", Width: 14},
		}
	case viewGenerations:
		return []table.Column{
			{Title: "Gen", Width: 5},
			{Title: "Best", Width: 10},
			{Title: "Mean", Width: 10},
			{Title: "Min", Width: 10},
			{Title: "StdDev", Width: 10},
			{Title: "Score", Width: 7},
		}
	}
	return []table.Column{
		{Title: "Run", Width: 5},
		{Title: "Seed", Width: 12},
		{Title: "Pop", Width: 5},
		{Title: "Gens", Width: 5},
		{Title: "Best", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Date", Width: 14},
	}
}

// createTable creates a new table with the columns of the current view.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) updateTableRows() {
	var rows []table.Row
	switch m.view {
	case viewRuns:
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			rows[i] = table.Row{
				fmt.Sprintf("%d", r.ID),
				fmt.Sprintf("%d", r.Seed),
				fmt.Sprintf("%d", r.Population),
				fmt.Sprintf("%d", r.Generations),
				fmt.Sprintf("%.2f", r.BestFitness),
				fmt.Sprintf("%d", r.BestScore),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	case viewEpisodes:
		rows = make([]table.Row, len(m.episodes))
		for i, e := range m.episodes {
			rows[i] = table.Row{
				e.Policy,
				fmt.Sprintf("%d", e.Score),
				fmt.Sprintf("%d", e.Ticks),
				fmt.Sprintf("%d", e.Entities),
				fmt.Sprintf("%.2f", e.BestFitness),
				e.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	case viewGenerations:
		rows = make([]table.Row, len(m.generations))
		for i, g := range m.generations {
			rows[i] = table.Row{
				fmt.Sprintf("%d", g.Generation),
				fmt.Sprintf("%.2f", g.Best),
				fmt.Sprintf("%.2f", g.Mean),
				fmt.Sprintf("%.2f", g.Min),
				fmt.Sprintf("%.2f", g.StdDev),
				fmt.Sprintf("%d", g.BestScore),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *HistoryModel) switchView(v historyView) {
	m.view = v
	// Columns change per view; rows must be cleared first
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.updateTableRows()
}

// openRun loads the generations of the highlighted run.
func (m *HistoryModel) openRun() {
	idx := m.table.Cursor()
	if m.store == nil || idx < 0 || idx >= len(m.runs) {
		return
	}
	m.runID = m.runs[idx].ID
	m.generations, m.err = m.store.RunGenerations(m.runID)
	m.switchView(viewGenerations)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.view == viewGenerations {
				m.switchView(viewRuns)
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			if m.view == viewRuns {
				m.switchView(viewEpisodes)
			} else {
				m.switchView(viewRuns)
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.view == viewRuns {
				m.openRun()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "TRAINING RUNS"
	switch m.view {
	case viewEpisodes:
		title = "BEST EPISODES"
	case viewGenerations:
		title = fmt.Sprintf("RUN #%d GENERATIONS", m.runID)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	}
	if len(m.table.Rows()) == 0 {
		switch m.view {
		case viewEpisodes:
			return emptyStyle.Render("No episodes recorded yet.\nRun `dino run` to evaluate a policy.")
		case viewGenerations:
			return emptyStyle.Render("This run stored no generations.")
		}
		return emptyStyle.Render("No training runs yet.\nRun `dino train` to start one.")
	}
	return m.table.View()
}

// centerText pads each line of text to center it within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
