package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slimekoban/internal/registry"
	"github.com/vovakirdan/slimekoban/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show pack list sidebar
	sidebarWidth       = 20 // Width of pack list sidebar
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pack"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pack"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pack"),
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

// ScoreboardModel shows the best completion of every level, one pack at a time.
type ScoreboardModel struct {
	packs       []string       // Registered packs plus packs found in the records
	packCursor  int            // Currently selected pack index
	store       *storage.Store // Records storage
	records     []storage.Completion
	stats       *storage.PackStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show pack list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		packs:       scoreboardPacks(store),
		packCursor:  0,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	// Load records for first pack
	if len(m.packs) > 0 {
		m.loadRecords(m.packs[0])
	}

	return m
}

// scoreboardPacks merges the registered packs with the packs that have
// records, such as level directories played earlier.
func scoreboardPacks(store *storage.Store) []string {
	seen := make(map[string]bool)
	var packs []string
	for _, p := range registry.List() {
		seen[p.ID] = true
		packs = append(packs, p.ID)
	}
	if store != nil {
		if recorded, err := store.Packs(); err == nil {
			for _, p := range recorded {
				if !seen[p] {
					seen[p] = true
					packs = append(packs, p)
				}
			}
		}
	}
	sort.Strings(packs)
	return packs
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Title", Width: 16},
		{Title: "Moves", Width: 6},
		{Title: "Pushes", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Each cell is padded by one column on both sides; spare width goes to titles.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := tableWidth - used; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	th := CurrentTheme()
	s := table.DefaultStyles()
	s.Header = th.Header.
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(th.Border).
		BorderBottom(true)
	s.Selected = th.MenuItemActive
	t.SetStyles(s)

	return t
}

// loadRecords loads the best completion per level of the given pack.
func (m *ScoreboardModel) loadRecords(pack string) {
	if m.store == nil {
		m.records = nil
		m.stats = nil
		m.updateTableRows()
		return
	}

	records, err := m.store.BestPerLevel(pack)
	if err != nil {
		m.records = nil
	} else {
		m.records = records
	}
	m.stats, err = m.store.Stats(pack)
	if err != nil {
		m.stats = nil
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current records.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		player := r.Player
		if player == "" {
			player = "local"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Level),
			r.Title,
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Pushes),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPack), key.Matches(msg, m.keys.Right):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.loadRecords(m.packs[m.packCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack), key.Matches(msg, m.keys.Left):
			if len(m.packs) > 0 {
				m.packCursor--
				if m.packCursor < 0 {
					m.packCursor = len(m.packs) - 1
				}
				m.loadRecords(m.packs[m.packCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	th := CurrentTheme()
	titleStyle := th.Header.MarginBottom(1)

	title := "BEST RESULTS"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("BEST RESULTS - %s", m.packs[m.packCursor])
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if m.stats != nil && m.stats.Completions > 0 {
		line := fmt.Sprintf("%d levels cleared, %d completions, %d moves in total",
			m.stats.LevelsCleared, m.stats.Completions, m.stats.TotalMoves)
		b.WriteString(th.MenuDescription.Render(centerText(line, m.width)))
	}
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: pack tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(th.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// panel is the rounded frame around the pack list and the table.
func panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme().Border).
		Padding(0, 1)
}

// shorten cuts a pack name to n runes.
func shorten(name string, n int) string {
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	return string(r[:n-1]) + "."
}

// renderWideLayout renders the scoreboard with sidebar for pack selection.
func (m ScoreboardModel) renderWideLayout() string {
	th := CurrentTheme()

	var sidebar strings.Builder
	sidebar.WriteString(th.Header.Render("Packs"))
	sidebar.WriteString("\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		line := "  " + shorten(p, sidebarWidth-6)
		if i == m.packCursor {
			line = th.MenuItemActive.Render("> " + shorten(p, sidebarWidth-6))
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panel().Width(sidebarWidth).Render(sidebar.String()),
		"  ",
		panel().Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the scoreboard with pack tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	th := CurrentTheme()
	var b strings.Builder

	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		name := " " + shorten(p, 10) + " "
		if i == m.packCursor {
			tabs[i] = th.MenuItemActive.Render(name)
		} else {
			tabs[i] = th.MenuDescription.Render(name)
		}
	}

	// Fall back to the current pack with arrows when the tabs do not fit
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.packs) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.packs[m.packCursor])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panel().Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.records) == 0 {
		return CurrentTheme().EmptyNotice.Render("No levels cleared yet.\nClear a level to set a record!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
