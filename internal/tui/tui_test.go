package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/slotcycle/internal/config"
	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/platform"
)

type fakeClient struct {
	monitors  []ipc.MonitorInfo
	err       error
	reloads   int
	reloadErr error
}

func (f *fakeClient) GetMonitors() (*ipc.MonitorsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.MonitorsData{Monitors: f.monitors}, nil
}

func (f *fakeClient) Reload() error {
	f.reloads++
	return f.reloadErr
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestRenderASCIIPreview_TwoSlots(t *testing.T) {
	monitors := []platform.Rect{{X: 0, Y: 0, Width: 1000, Height: 500}}
	got := renderASCIIPreview(monitors, 2, 0, 21, 5)
	want := []string{
		"+---------+---------+",
		"|         |         |",
		"|    0    |    1    |",
		"|         |         |",
		"+---------+---------+",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderASCIIPreview_TooSmall(t *testing.T) {
	got := renderASCIIPreview([]platform.Rect{fallbackMonitor}, 2, 0, 4, 2)
	if len(got) != 2 || strings.TrimSpace(got[0]) != "" {
		t.Fatalf("expected blank canvas, got %q", got)
	}
}

func TestSummarizeSlots(t *testing.T) {
	monitors := []platform.Rect{{Width: 1920, Height: 1080}, {X: 1920, Width: 1280, Height: 1024}}
	got := summarizeSlots(monitors, 2, 2)
	if got != "4 slots • 960×1080 px on monitor 0" {
		t.Fatalf("summary = %q", got)
	}
}

func TestModel_AdjustsAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := newModel(path, &fakeClient{err: errors.New("no daemon")})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if m.daemonConnected || len(m.monitors) != 1 {
		t.Fatalf("expected fallback monitor without daemon")
	}

	m = press(t, m, "right", "right", "up")
	if m.cfg.Divisions != 4 || m.cfg.Inset != config.DefaultInset+1 {
		t.Fatalf("divisions=%d inset=%d", m.cfg.Divisions, m.cfg.Inset)
	}
	if !m.dirty() {
		t.Fatalf("expected unsaved changes")
	}

	m = press(t, m, "left", "left", "left", "left", "left")
	if m.cfg.Divisions != 1 {
		t.Fatalf("divisions should clamp at 1, got %d", m.cfg.Divisions)
	}

	m = press(t, m, "r")
	if m.dirty() {
		t.Fatalf("revert should drop changes")
	}
}

func TestModel_SaveReloadsDaemon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	client := &fakeClient{monitors: []ipc.MonitorInfo{
		{Name: "eDP-1", WorkX: 0, WorkY: 0, WorkWidth: 1920, WorkHeight: 1048},
		{Name: "DP-1", WorkX: 1920, WorkY: 0, WorkWidth: 2560, WorkHeight: 1440},
	}}
	m, err := newModel(path, client)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if diff := cmp.Diff([]string{"eDP-1", "DP-1"}, m.monitorNames); diff != "" {
		t.Fatalf("monitor names mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "right", "ctrl+s")
	if client.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", client.reloads)
	}
	if m.dirty() || m.isError {
		t.Fatalf("unexpected state after save: dirty=%v msg=%q", m.dirty(), m.message)
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload saved config: %v", err)
	}
	if res.Config.Divisions != 3 {
		t.Fatalf("saved divisions = %d, want 3", res.Config.Divisions)
	}
}

func TestModel_ApplyFormRejectsDuplicateHotkeys(t *testing.T) {
	m, err := newModel(filepath.Join(t.TempDir(), "config.yaml"), nil)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}

	m.fields = formFields{centerHotkey: "Mod4-x", cycleHotkey: "mod4-X", logLevel: "info"}
	m.applyForm()
	if !m.isError {
		t.Fatalf("expected validation error")
	}
	if m.cfg.CenterHotkey != config.DefaultCenterHotkey {
		t.Fatalf("config should be unchanged, got %q", m.cfg.CenterHotkey)
	}

	m.fields = formFields{centerHotkey: " Mod4-x ", cycleHotkey: "Mod4-Tab", logLevel: "debug"}
	m.message = ""
	m.applyForm()
	if m.cfg.CenterHotkey != "Mod4-x" || m.cfg.LogLevel != "debug" {
		t.Fatalf("form not applied: %+v", m.cfg)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	m, err := newModel(filepath.Join(t.TempDir(), "config.yaml"), nil)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view before the first size message")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := next.(model).View()
	if !strings.Contains(view, "Divisions") || !strings.Contains(view, "daemon not running") {
		t.Fatalf("view missing expected content:\n%s", view)
	}
}
