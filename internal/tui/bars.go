package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, monitorCount int, dirty bool, width int) string {
	var parts []string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts = append(parts, dot+" daemon connected", fmt.Sprintf("monitors:%d", monitorCount))
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		parts = append(parts, dot+" daemon not running", "preview only")
	}
	if dirty {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("unsaved"))
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(editing bool, width int) string {
	help := "←/→: divisions  ↑/↓: inset  e: hotkeys  m: refresh monitors  r: revert  ctrl-s: save  q: quit"
	if editing {
		help = "tab: next field  enter: submit  esc: cancel"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
