package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles of the menus and the help bar.
// Board colors come from core.Color and are mapped in render.go.
type Theme struct {
	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style

	// Table and scoreboard styles
	Border      lipgloss.Color
	Header      lipgloss.Style
	EmptyNotice lipgloss.Style

	// Help bar below the board
	Help lipgloss.Style
}

// DefaultTheme returns the default slime-green theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true), // Slime green
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Border:      lipgloss.Color("240"),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		EmptyNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without 256 colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true)
	theme.MenuItemSolved = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return theme
}
