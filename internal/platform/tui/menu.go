package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/storage"
)

// MenuItem is one level in the level picker.
type MenuItem struct {
	Level int // 1-indexed
	Title string
	Best  *storage.Completion // nil if never cleared
}

// MenuModel is the level picker shown at the start of a session.
type MenuModel struct {
	pack           string
	items          []MenuItem
	cursor         int
	scrollOffset   int
	width          int
	height         int
	keyMapper      *KeyMapper
	selected       int // 1-indexed level, 0 while choosing
	quitting       bool
	openScoreboard bool
}

// NewMenuModel creates a level picker for src. Best results are read
// from store when it is not nil.
func NewMenuModel(src level.Source, store *storage.Store, width, height int) MenuModel {
	items := make([]MenuItem, src.Len())
	for i := range items {
		items[i] = MenuItem{Level: i + 1, Title: src.Title(i)}
		if store != nil {
			if best, err := store.Best(src.Name(), i+1); err == nil {
				items[i].Best = best
			}
		}
	}

	return MenuModel{
		pack:      src.Name(),
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].Level
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// visibleItems returns how many levels fit between header and footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	th := CurrentTheme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(th.MenuTitle.Render("S L I M E K O B A N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(th.MenuDescription.Render(fmt.Sprintf("Pack %q: select a level", m.pack)), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(th.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		style := th.MenuItemNormal
		if item.Best != nil {
			style = th.MenuItemSolved
		}
		if i == m.cursor {
			cursor = "> "
			style = th.MenuItemActive
		}

		line := fmt.Sprintf("%s%2d. %-20s", cursor, item.Level, item.Title)
		if item.Best != nil {
			line += fmt.Sprintf("  best %d/%d", item.Best.Moves, item.Best.Pushes)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(th.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen 1-indexed level, or 0.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the records table.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
