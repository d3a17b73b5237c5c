package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/gxpassess/internal/models"
)

var (
	// Colors of the maturity buckets.
	ExcellentColor = lipgloss.Color("#00C853")
	GoodColor      = lipgloss.Color("#2979FF")
	ModerateColor  = lipgloss.Color("#FFA500")
	ErrorColor     = lipgloss.Color("#FF0000")
	MutedColor     = lipgloss.Color("#808080")
	AccentColor    = lipgloss.Color("#00FFFF")

	// Base styles.
	BaseStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			MarginBottom(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ExcellentColor)
)

// FormatShortcuts formats keyboard shortcuts with consistent styling.
func FormatShortcuts(shortcuts ...string) string {
	style := lipgloss.NewStyle().
		Foreground(AccentColor).
		Background(lipgloss.Color("#333333")).
		Padding(0, 1)

	formatted := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		formatted[i] = style.Render(s)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, formatted...)
}

// ProgressBar renders a completion bar of width cells followed by the
// percentage.
func ProgressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

// StatusStyle colors an area status.
func StatusStyle(s models.AreaStatus) lipgloss.Style {
	switch s {
	case models.StatusExcellent:
		return lipgloss.NewStyle().Foreground(ExcellentColor)
	case models.StatusGood:
		return lipgloss.NewStyle().Foreground(GoodColor)
	default:
		return lipgloss.NewStyle().Foreground(ModerateColor)
	}
}
