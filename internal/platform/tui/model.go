package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/sokoban"
	"github.com/vovakirdan/slimekoban/internal/storage"
)

// Options configure a terminal game or session.
type Options struct {
	Game     sokoban.Options
	Store    *storage.Store // nil disables records
	Player   string         // SSH user, empty for local play
	WatchDir string         // Level directory to hot-reload, empty disables
	Runtime  core.RuntimeConfig
}

// LevelsChangedMsg is sent when a file in the watched level directory changed.
type LevelsChangedMsg struct {
	File string
}

// Model is the Bubble Tea model for playing a level pack.
type Model struct {
	game       *sokoban.Game
	screen     *core.Screen
	store      *storage.Store
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	watcher    *level.Watcher
	watchDir   string
	inSession  bool // quit returns to the level menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *sokoban.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		player:     opts.Player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		watchDir:   opts.WatchDir,
	}
}

// WithWatcher attaches a level directory watcher for hot reload.
func (m Model) WithWatcher(w *level.Watcher) Model {
	m.watcher = w
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Load failures leave the game in its failed state, which View shows.
	//nolint:errcheck // Reported by the game itself
	m.game.Reset(m.config)

	return tea.Batch(tickCmd(m.config.TickRate), waitForLevelChange(m.watcher))
}

// waitForLevelChange blocks until the watcher reports a changed level file.
func waitForLevelChange(w *level.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-w.Events
		if !ok {
			return nil
		}
		return LevelsChangedMsg{File: name}
	}
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

	case LevelsChangedMsg:
		return m.handleLevelsChanged()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		if m.inSession {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The board is re-centered; progress on the level is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		if ev.Kind == core.EventLevelCleared {
			m.saveCompletion(ev)
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveCompletion records a cleared level.
func (m Model) saveCompletion(ev core.Event) {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveCompletion(storage.Completion{
		Pack:   m.game.Sequence().Source().Name(),
		Level:  ev.Level,
		Title:  ev.Name,
		Moves:  ev.Moves,
		Pushes: ev.Pushes,
		Player: m.player,
	})
}

// handleLevelsChanged rescans the level directory and reloads the current level.
func (m Model) handleLevelsChanged() (tea.Model, tea.Cmd) {
	if m.watchDir != "" {
		src, err := level.NewDirSource(m.watchDir)
		if err == nil {
			//nolint:errcheck // A broken level shows up as the failed state
			m.game.SetSource(src)
		}
	}
	return m, waitForLevelChange(m.watcher)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".slimekoban", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := CurrentTheme().Help.Render(m.help.View(m.keyMapper.Keys()))
	boardH := m.config.ScreenH - lipgloss.Height(helpView)
	if boardH < 1 {
		boardH = 1
	}

	m.screen.Resize(m.config.ScreenW, boardH)
	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpView
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Game returns the running game.
func (m Model) Game() *sokoban.Game {
	return m.game
}

// Run plays the pack in the terminal until the user quits.
func Run(opts Options) error {
	game := sokoban.New(opts.Game)
	model := NewModel(game, opts)

	if opts.WatchDir != "" {
		w, err := level.NewWatcher(opts.WatchDir)
		if err != nil {
			return fmt.Errorf("watching %s: %w", opts.WatchDir, err)
		}
		defer w.Close()
		model = model.WithWatcher(w)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
