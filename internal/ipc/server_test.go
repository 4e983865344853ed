package ipc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/slots"
)

type fakeController struct {
	mu       sync.Mutex
	placed   []int
	resets   int
	enabled  bool
	reloads  int
	reloadFn func() error
	displays []platform.Display
}

func (f *fakeController) Center() (slots.Placement, error) {
	return f.Place(1)
}

func (f *fakeController) Cycle() (slots.Placement, error) {
	f.mu.Lock()
	next := 0
	if n := len(f.placed); n > 0 {
		next = (f.placed[n-1] + 1) % 4
	}
	f.mu.Unlock()
	return f.Place(next)
}

func (f *fakeController) Place(slot int) (slots.Placement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot > 100 {
		return slots.Placement{}, errors.New("window vanished")
	}
	f.placed = append(f.placed, slot)
	return slots.Placement{
		Slot:   slot,
		Placed: true,
		Window: 7,
		Rect:   platform.Rect{X: slot * 100, Width: 100, Height: 50},
	}, nil
}

func (f *fakeController) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeController) Enable() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = true
	return nil
}

func (f *fakeController) Disable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = false
}

func (f *fakeController) Reload() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	if f.reloadFn != nil {
		return f.reloadFn()
	}
	return nil
}

func (f *fakeController) Status() StatusData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return StatusData{Enabled: f.enabled, Divisions: 2, DaemonRunning: true}
}

type fakeCounts struct {
	placed  []int
	enabled bool
	resets  int
	reloads int
}

func (f *fakeController) counts() fakeCounts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeCounts{
		placed:  append([]int(nil), f.placed...),
		enabled: f.enabled,
		resets:  f.resets,
		reloads: f.reloads,
	}
}

func (f *fakeController) Monitors() ([]platform.Display, error) {
	return f.displays, nil
}

func (f *fakeController) Slots() ([]slots.SlotInfo, error) {
	return []slots.SlotInfo{
		{Slot: 0, Monitor: 0, Section: 0, Rect: platform.Rect{Width: 500, Height: 800}},
		{Slot: 1, Monitor: 0, Section: 1, Rect: platform.Rect{X: 500, Width: 500, Height: 800}},
	}, nil
}

func startTestServer(t *testing.T, ctrl Controller) *Client {
	t.Helper()

	// Unix socket paths are length limited; keep the directory short.
	dir, err := os.MkdirTemp("", "sc-ipc")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	socketPath := filepath.Join(dir, "s.sock")
	server := NewServerAt(socketPath, ctrl)
	if err := server.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(server.Stop)

	return NewClientAt(socketPath)
}

func TestServer_PlacementCommands(t *testing.T) {
	ctrl := &fakeController{}
	client := startTestServer(t, ctrl)

	first, err := client.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	second, err := client.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if first.Slot != 0 || second.Slot != 1 {
		t.Fatalf("unexpected cycle slots %d, %d", first.Slot, second.Slot)
	}

	placed, err := client.Place(3)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	want := PlacementData{Slot: 3, Placed: true, Window: 7, Rect: platform.Rect{X: 300, Width: 100, Height: 50}}
	if diff := cmp.Diff(want, *placed); diff != "" {
		t.Fatalf("placement mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.Center(); err != nil {
		t.Fatalf("center: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 3, 1}, ctrl.counts().placed); diff != "" {
		t.Fatalf("placed slots mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_PlacementErrorIsReported(t *testing.T) {
	client := startTestServer(t, &fakeController{})

	_, err := client.Place(500)
	if err == nil || !strings.Contains(err.Error(), "window vanished") {
		t.Fatalf("expected daemon error, got %v", err)
	}
}

func TestServer_SessionCommands(t *testing.T) {
	ctrl := &fakeController{}
	client := startTestServer(t, ctrl)

	if err := client.Enable(); err != nil {
		t.Fatalf("enable: %v", err)
	}
	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Enabled || !status.DaemonRunning {
		t.Fatalf("unexpected status %+v", status)
	}

	if err := client.Disable(); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if ctrl.counts().enabled {
		t.Fatalf("controller still enabled")
	}

	if err := client.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := ctrl.counts().resets; got != 1 {
		t.Fatalf("resets = %d, want 1", got)
	}

	if err := client.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestServer_ReloadFailure(t *testing.T) {
	ctrl := &fakeController{reloadFn: func() error { return errors.New("divisions: out of range") }}
	client := startTestServer(t, ctrl)

	err := client.Reload()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected reload error, got %v", err)
	}
	if got := ctrl.counts().reloads; got != 1 {
		t.Fatalf("reloads = %d, want 1", got)
	}
}

func TestServer_MonitorsAndSlots(t *testing.T) {
	ctrl := &fakeController{displays: []platform.Display{{
		ID:     1,
		Name:   "eDP-1",
		Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Usable: platform.Rect{X: 0, Y: 32, Width: 1920, Height: 1048},
	}}}
	client := startTestServer(t, ctrl)

	monitors, err := client.GetMonitors()
	if err != nil {
		t.Fatalf("monitors: %v", err)
	}
	want := []MonitorInfo{{
		ID: 1, Name: "eDP-1",
		X: 0, Y: 0, Width: 1920, Height: 1080,
		WorkX: 0, WorkY: 32, WorkWidth: 1920, WorkHeight: 1048,
	}}
	if diff := cmp.Diff(want, monitors.Monitors); diff != "" {
		t.Fatalf("monitors mismatch (-want +got):\n%s", diff)
	}

	data, err := client.ListSlots()
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if data.Divisions != 2 || len(data.Slots) != 2 || data.Slots[1].Rect.X != 500 {
		t.Fatalf("unexpected slots %+v", data)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	s := &Server{controller: &fakeController{}}
	resp := s.handleCommand(&Request{Command: "FROB"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "FROB") {
		t.Fatalf("unexpected response %+v", resp)
	}

	resp = s.handleCommand(&Request{Command: CommandPlace, Payload: []byte(`{"slot":"x"}`)})
	if resp.Status != "ERROR" {
		t.Fatalf("expected error for bad payload, got %+v", resp)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}
