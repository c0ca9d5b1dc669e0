package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/limbkern/internal/ui"
)

// Style variables for the calibration dashboard.
// Initialized from the ui palette via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	winStyle        lipgloss.Style
	loseStyle       lipgloss.Style
	errorStyle      lipgloss.Style
	sparkStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
	statusDoneStyle lipgloss.Style
	statusRunStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui palette.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	p := ui.CurrentPalette()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	winStyle = lipgloss.NewStyle().
		Foreground(p.Success)

	loseStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	sparkStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	statusRunStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
}
