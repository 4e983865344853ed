package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/slotcycle/internal/config"
)

// formFields are the values bound to the hotkey form.
type formFields struct {
	centerHotkey string
	cycleHotkey  string
	logLevel     string
}

func (m model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.editing = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.editing = false
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.editing = false
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *model) startEditing() {
	m.fields = formFields{
		centerHotkey: m.cfg.CenterHotkey,
		cycleHotkey:  m.cfg.CycleHotkey,
		logLevel:     m.cfg.LogLevel,
	}

	w := max(m.width-4, 40)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("center_hotkey").
				Title("Center Hotkey").
				Description("X11 keybinding that moves the window to the center slot").
				Validate(validateHotkey).
				Value(&m.fields.centerHotkey),

			huh.NewInput().
				Key("cycle_hotkey").
				Title("Cycle Hotkey").
				Description("X11 keybinding that moves the window to the next slot").
				Validate(validateHotkey).
				Value(&m.fields.cycleHotkey),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&m.fields.logLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	m.editing = true
}

func validateHotkey(s string) error {
	_, _, err := config.ParseHotkey(strings.TrimSpace(s))
	return err
}

func (m *model) applyForm() {
	prev := *m.cfg
	m.cfg.CenterHotkey = strings.TrimSpace(m.fields.centerHotkey)
	m.cfg.CycleHotkey = strings.TrimSpace(m.fields.cycleHotkey)
	m.cfg.LogLevel = m.fields.logLevel

	if err := m.cfg.Validate(); err != nil {
		*m.cfg = prev
		m.setMessage(err.Error(), true)
	}
}

func (m model) viewEditing(height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Hotkeys") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(1, 2)

	return style.Render(header + "\n\n" + m.form.View())
}
