package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tag/internal/core"
	"github.com/vovakirdan/tui-tag/internal/registry"
	"github.com/vovakirdan/tui-tag/internal/storage"
)

// helpHeight is the number of rows below the game screen used by the help bar.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for watching a scenario.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	started    time.Time
	err        error
	quitting   bool
}

// NewModel creates a viewer model and builds the first world.
// cfg.ScreenH is the full terminal height; the help bar is taken from it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = core.Clamp(cfg.TickRate, MinTickRate, MaxTickRate)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-helpHeight)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset rebuilds the world for the current screen and seed.
func (m *Model) reset() error {
	gameCfg := m.config
	gameCfg.ScreenH = m.screen.Height()
	if err := m.game.Reset(gameCfg); err != nil {
		return err
	}
	m.gameState = m.game.State()
	m.started = time.Now()
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		m.saveRun()
		m.config.Seed = time.Now().UnixNano()
		if err := m.reset(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}

	case core.ActionFaster:
		m.config.TickRate = core.Clamp(m.config.TickRate*2, MinTickRate, MaxTickRate)

	case core.ActionSlower:
		m.config.TickRate = core.Clamp(m.config.TickRate/2, MinTickRate, MaxTickRate)

	case core.ActionNone:

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize rebuilds the world for the new window size.
// The current run is recorded first.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.saveRun()
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-helpHeight))
	m.help.Width = msg.Width

	if err := m.reset(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the simulation by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run if it advanced at all.
func (m *Model) saveRun() {
	if m.store == nil {
		return
	}
	s := m.game.Summary()
	if s.Ticks == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the viewer continues regardless
	m.store.SaveRun(storage.Run{
		Scenario:  s.Scenario,
		Width:     s.Width,
		Height:    s.Height,
		Agents:    s.Agents,
		Seed:      s.Seed,
		Ticks:     s.Ticks,
		Transfers: s.Transfers,
		Duration:  time.Since(m.started),
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Err returns the error that stopped the viewer, if any.
func (m Model) Err() error {
	return m.err
}

// TickRate returns the current tick rate.
func (m Model) TickRate() int {
	return m.config.TickRate
}

// Run starts the Bubble Tea program for the given scenario.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(game, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
