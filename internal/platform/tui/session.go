package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/sokoban"
)

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeScoreboard
)

// SessionModel manages the full session flow: level menu -> game -> menu,
// with the records table one key away. Used for SSH sessions and for local
// play when no level is given.
type SessionModel struct {
	opts       Options
	mode       sessionMode
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	watcher    *level.Watcher
	quitting   bool
}

// NewSessionModel creates a session over opts.Game.Source.
func NewSessionModel(opts Options) SessionModel {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	return SessionModel{
		opts: opts,
		mode: modeMenu,
		menu: NewMenuModel(opts.Game.Source, opts.Store, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
}

// WithWatcher attaches a level directory watcher. The session rescans the
// directory on every change, in the menu as well as in a game.
func (m SessionModel) WithWatcher(w *level.Watcher) SessionModel {
	m.watcher = w
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForLevelChange(m.watcher))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
	case LevelsChangedMsg:
		return m.handleLevelsChanged()
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.mode = modeScoreboard
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.scoreboard.Init()
	}

	if lvl := m.menu.Selected(); lvl > 0 {
		gameOpts := m.opts.Game
		gameOpts.StartLevel = lvl
		m.game = NewModel(sokoban.New(gameOpts), m.opts)
		m.game.inSession = true
		m.mode = modeGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a level is being played.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScoreboard handles updates when the records table is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The standalone scoreboard quits its program on back; here it only
	// closes the table.
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best results reflect the last game.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.mode = modeMenu
	m.game = Model{}
	m.menu = NewMenuModel(m.opts.Game.Source, m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
	return m, m.menu.Init()
}

// handleLevelsChanged rescans the watched directory and hands the new
// source to the menu and the running game.
func (m SessionModel) handleLevelsChanged() (tea.Model, tea.Cmd) {
	if m.opts.WatchDir != "" {
		if src, err := level.NewDirSource(m.opts.WatchDir); err == nil {
			m.opts.Game.Source = src
			switch m.mode {
			case modeGame:
				//nolint:errcheck // A broken level shows up as the failed state
				m.game.Game().SetSource(src)
			case modeMenu:
				cursor := m.menu.cursor
				m.menu = NewMenuModel(src, m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
				m.menu.cursor = min(cursor, max(len(m.menu.items)-1, 0))
				m.menu.updateScroll()
			}
		}
	}
	return m, waitForLevelChange(m.watcher)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Mode returns "menu", "game" or "scoreboard".
func (m SessionModel) Mode() string {
	switch m.mode {
	case modeGame:
		return "game"
	case modeScoreboard:
		return "scoreboard"
	default:
		return "menu"
	}
}

// RunSession runs the level menu locally until the user quits.
func RunSession(opts Options) error {
	if opts.Game.Source == nil {
		return errors.New("tui: session needs a level source")
	}
	model := NewSessionModel(opts)

	if opts.WatchDir != "" {
		w, err := level.NewWatcher(opts.WatchDir)
		if err != nil {
			return fmt.Errorf("watching %s: %w", opts.WatchDir, err)
		}
		defer w.Close()
		model = model.WithWatcher(w)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
