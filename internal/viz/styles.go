package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	GraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	// One accent per order, reused by the live legend and compare table.
	OrderStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	}
)

// ProgressBar renders run progress as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
