package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rvalverdem/takt/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusIndicator returns a colored work order status string such as "● ACTIVE".
func StatusIndicator(status domain.WorkOrderStatus) string {
	switch status {
	case domain.WorkOrderActive:
		return StyleGreen.Render("● ACTIVE")
	case domain.WorkOrderPaused:
		return StyleYellow.Render("● PAUSED")
	case domain.WorkOrderCompleted:
		return StyleBlue.Render("● COMPLETED")
	case domain.WorkOrderCancelled:
		return StyleRed.Render("● CANCELLED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// ScanIndicator colors a scan action: green for IN, blue for OUT.
func ScanIndicator(kind domain.ScanKind) string {
	if kind == domain.ScanIn {
		return StyleGreen.Render("IN ")
	}
	return StyleBlue.Render("OUT")
}
