package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskfold/taskfold/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for hints

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)
)

// PriorityIcon returns the colored dot for a task priority.
func PriorityIcon(p models.TaskPriority) string {
	switch p {
	case models.PriorityCritical:
		return "🔴"
	case models.PriorityHigh:
		return "🟠"
	case models.PriorityMedium:
		return "🟡"
	case models.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

// StatusIcon returns the marker for a task status.
func StatusIcon(s models.TaskStatus) string {
	switch s {
	case models.StatusPending:
		return "⬜"
	case models.StatusInProgress:
		return "🚧"
	case models.StatusBlocked:
		return "⛔"
	case models.StatusCompleted:
		return "✅"
	default:
		return "❓"
	}
}
