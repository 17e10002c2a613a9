package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/storage"
)

// Stats browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show scenario list sidebar
	sidebarWidth       = 20  // Width of scenario list sidebar
	maxRuns            = 100 // Max runs to load
)

// StatsKeyMap defines the key bindings for the stats browser.
type StatsKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev scenario"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for browsing recorded runs.
type StatsModel struct {
	scenarios   []registry.GameInfo
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	summary     *storage.ScenarioStats
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewStatsModel creates a stats browser starting at the given scenario.
func NewStatsModel(store *storage.Store, scenario string, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		scenarios:   registry.List(),
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, s := range m.scenarios {
		if s.ID == scenario {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[m.cursor].ID)
	}

	return m
}

// createTable creates a new table sized to the window.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Grid", Width: 9},
		{Title: "Agents", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Tags", Width: 6},
		{Title: "Mean", Width: 7},
		{Title: "Seed", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, summary and help
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

// loadRuns loads recent runs and the aggregate for a scenario.
func (m *StatsModel) loadRuns(scenario string) {
	m.runs = nil
	m.summary = nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(scenario, maxRuns); err == nil {
			m.runs = runs
		}
		if st, err := m.store.ScenarioStats(scenario); err == nil {
			m.summary = st
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		mean := "-"
		if r.Transfers > 0 {
			mean = fmt.Sprintf("%.1f", float64(r.Ticks)/float64(r.Transfers))
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Agents),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Transfers),
			mean,
			fmt.Sprintf("%d", r.Seed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats browser.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenarios)) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats browser.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN STATISTICS"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("RUN STATISTICS - %s", m.scenarios[m.cursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderTableBox())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the sidebar next to the table.
func (m StatsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenarios {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + s.ID))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", m.renderTableBox())
}

// renderTableBox renders the aggregate line and the runs table.
func (m StatsModel) renderTableBox() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nWatch or run a scenario to record one!"))
	}

	return boxStyle.Render(m.summaryLine() + "\n\n" + m.table.View())
}

// summaryLine formats the scenario aggregate.
func (m StatsModel) summaryLine() string {
	if m.summary == nil {
		return ""
	}
	return fmt.Sprintf("%d runs  %d ticks  %d tags  %.1f ticks/tag  longest %d",
		m.summary.Runs, m.summary.TotalTicks, m.summary.TotalTransfers,
		m.summary.MeanTicksPerTag(), m.summary.LongestRun)
}

// Scenario returns the currently selected scenario ID.
func (m StatsModel) Scenario() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor].ID
}

// RunStats runs the interactive stats browser.
func RunStats(store *storage.Store, scenario string, width, height int) error {
	p := tea.NewProgram(
		NewStatsModel(store, scenario, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
