package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/slotcycle/internal/config"
	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/platform"
)

// daemonClient is the part of the IPC client the TUI uses.
type daemonClient interface {
	GetMonitors() (*ipc.MonitorsData, error)
	Reload() error
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	original   *config.Config
	client     daemonClient

	monitors        []platform.Rect
	monitorNames    []string
	daemonConnected bool

	// Hotkey form
	editing bool
	form    *huh.Form
	fields  formFields

	message  string
	isError  bool
	fatalErr error

	width  int
	height int
}

func newModel(configPath string, client daemonClient) (model, error) {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return model{}, err
		}
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		return model{}, err
	}

	m := model{
		configPath: configPath,
		cfg:        res.Config,
		original:   cloneConfig(res.Config),
		client:     client,
	}
	m.refreshMonitors()
	return m, nil
}

func cloneConfig(cfg *config.Config) *config.Config {
	c := *cfg
	return &c
}

func (m *model) refreshMonitors() {
	m.monitors = []platform.Rect{fallbackMonitor}
	m.monitorNames = []string{"preview"}
	m.daemonConnected = false

	if m.client == nil {
		return
	}
	data, err := m.client.GetMonitors()
	if err != nil || len(data.Monitors) == 0 {
		return
	}

	m.daemonConnected = true
	m.monitors = m.monitors[:0]
	m.monitorNames = m.monitorNames[:0]
	for _, mon := range data.Monitors {
		m.monitors = append(m.monitors, platform.Rect{
			X:      mon.WorkX,
			Y:      mon.WorkY,
			Width:  mon.WorkWidth,
			Height: mon.WorkHeight,
		})
		m.monitorNames = append(m.monitorNames, mon.Name)
	}
}

func (m model) dirty() bool {
	return *m.cfg != *m.original
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	// The form captures all input while active; only ctrl+c escapes.
	if m.editing {
		return m.updateEditing(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.setDivisions(m.cfg.Divisions - 1)
	case "right", "l":
		m.setDivisions(m.cfg.Divisions + 1)
	case "down", "j":
		m.setInset(m.cfg.Inset - 1)
	case "up", "k":
		m.setInset(m.cfg.Inset + 1)
	case "e":
		m.startEditing()
		return m, m.form.Init()
	case "r":
		m.cfg = cloneConfig(m.original)
		m.setMessage("reverted unsaved changes", false)
	case "m":
		m.refreshMonitors()
	case "ctrl+s":
		m.save()
	}
	return m, nil
}

func (m *model) setDivisions(n int) {
	m.cfg.Divisions = min(max(n, 1), config.MaxDivisions)
	m.message = ""
}

func (m *model) setInset(n int) {
	m.cfg.Inset = min(max(n, 0), config.MaxInset)
	m.message = ""
}

func (m *model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// save writes the config and asks a running daemon to reload it.
func (m *model) save() {
	if err := m.cfg.SaveTo(m.configPath); err != nil {
		m.setMessage(fmt.Sprintf("save failed: %v", err), true)
		return
	}
	m.original = cloneConfig(m.cfg)

	if m.client == nil || !m.daemonConnected {
		m.setMessage("saved to "+m.configPath+" (daemon not running)", false)
		return
	}
	if err := m.client.Reload(); err != nil {
		m.setMessage(fmt.Sprintf("saved, but daemon reload failed: %v", err), true)
		return
	}
	m.setMessage("saved and reloaded", false)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, len(m.monitors), m.dirty(), m.width)
	helpBar := renderHelpBar(m.editing, m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(helpBar)
	contentHeight := max(m.height-usedHeight, 1)

	var content string
	if m.editing && m.form != nil {
		content = m.viewEditing(contentHeight)
	} else {
		content = m.viewLayout(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}

func (m model) viewLayout(height int) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(16).
		Align(lipgloss.Right).
		PaddingRight(2)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		row("Divisions", fmt.Sprintf("%d  (←/→)", m.cfg.Divisions)),
		row("Inset", fmt.Sprintf("%dpx  (↑/↓)", m.cfg.Inset)),
		row("Center hotkey", m.cfg.CenterHotkey),
		row("Cycle hotkey", m.cfg.CycleHotkey),
		row("Log level", m.cfg.LogLevel),
		row("Monitors", strings.Join(m.monitorNames, ", ")),
		"",
		dimStyle.Render("  " + summarizeSlots(m.monitors, m.cfg.Divisions, m.cfg.Inset)),
		"",
	}

	previewWidth := max(m.width-4, 5)
	previewHeight := max(height-len(lines)-3, 3)
	for _, line := range renderASCIIPreview(m.monitors, m.cfg.Divisions, m.cfg.Inset, previewWidth, previewHeight) {
		lines = append(lines, "  "+line)
	}

	if m.message != "" {
		color := lipgloss.Color("42")
		if m.isError {
			color = lipgloss.Color("196")
		}
		lines = append(lines, "", lipgloss.NewStyle().Foreground(color).Render("  "+m.message))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(1, 0).
		Render(strings.Join(lines, "\n"))
}
