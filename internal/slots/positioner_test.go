package slots

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/slotcycle/internal/platform"
)

type fakeWindow struct {
	frame     platform.Rect
	maximized bool
	minWidth  int
}

// fakeBackend emulates a window manager that resizes but refuses to move a
// window whose minimum width exceeds the requested area.
type fakeBackend struct {
	displays []platform.Display
	active   platform.WindowID
	windows  map[platform.WindowID]*fakeWindow
	onDisp   int

	activeErr   error
	maxErr      error
	unmaximized int
	moveResizes []platform.Rect
	moves       [][2]int
}

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{
		displays: displays,
		windows:  make(map[platform.WindowID]*fakeWindow),
	}
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	return f.active, f.activeErr
}

func (f *fakeBackend) DisplayIndexForWindow(displays []platform.Display, _ platform.WindowID) int {
	want := f.displays[f.onDisp].ID
	for i, d := range displays {
		if d.ID == want {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) Maximized(id platform.WindowID) (bool, error) {
	if f.maxErr != nil {
		return false, f.maxErr
	}
	return f.windows[id].maximized, nil
}

func (f *fakeBackend) Unmaximize(id platform.WindowID) error {
	f.unmaximized++
	f.windows[id].maximized = false
	return nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, r platform.Rect) error {
	f.moveResizes = append(f.moveResizes, r)
	w := f.windows[id]
	if r.Width < w.minWidth {
		w.frame.Width = w.minWidth
		w.frame.Height = r.Height
		return nil
	}
	w.frame = r
	return nil
}

func (f *fakeBackend) Move(id platform.WindowID, x, y int) error {
	f.moves = append(f.moves, [2]int{x, y})
	f.windows[id].frame.X = x
	f.windows[id].frame.Y = y
	return nil
}

func (f *fakeBackend) FrameBounds(id platform.WindowID) (platform.Rect, error) {
	return f.windows[id].frame, nil
}

func display(id, x, w, h int) platform.Display {
	r := platform.Rect{X: x, Y: 0, Width: w, Height: h}
	return platform.Display{ID: id, Bounds: r, Usable: r}
}

func TestPositioner_CycleVisitsAllSlotsAcrossMonitors(t *testing.T) {
	// Displays are reported out of order; slots must follow x order.
	backend := newFakeBackend(display(7, 1000, 800, 600), display(3, 0, 1000, 800))
	backend.active = 42
	backend.windows[42] = &fakeWindow{}

	p := NewPositioner(backend, Options{Divisions: 2})

	want := []platform.Rect{
		{X: 0, Y: 0, Width: 500, Height: 800},
		{X: 500, Y: 0, Width: 500, Height: 800},
		{X: 1000, Y: 0, Width: 400, Height: 600},
		{X: 1400, Y: 0, Width: 400, Height: 600},
		{X: 0, Y: 0, Width: 500, Height: 800},
	}
	for i, w := range want {
		placement, err := p.Cycle()
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if !placement.Placed {
			t.Fatalf("cycle %d: expected window to be placed", i)
		}
		if placement.Slot != i%4 {
			t.Fatalf("cycle %d: slot = %d, want %d", i, placement.Slot, i%4)
		}
		if diff := cmp.Diff(w, backend.windows[42].frame); diff != "" {
			t.Fatalf("cycle %d frame mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestPositioner_CenterUsesWindowMonitor(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800), display(1, 1000, 900, 600))
	backend.active = 1
	backend.onDisp = 1
	backend.windows[1] = &fakeWindow{}

	p := NewPositioner(backend, Options{Divisions: 3, Inset: 2})
	placement, err := p.Center()
	if err != nil {
		t.Fatalf("center: %v", err)
	}
	if placement.Slot != 4 {
		t.Fatalf("center slot = %d, want 4", placement.Slot)
	}
	want := platform.Rect{X: 1302, Y: 0, Width: 300, Height: 600}
	if diff := cmp.Diff(want, placement.Rect); diff != "" {
		t.Fatalf("center rect mismatch (-want +got):\n%s", diff)
	}

	// Cycling continues from the center slot.
	next, err := p.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if next.Slot != 5 {
		t.Fatalf("cycle after center = %d, want 5", next.Slot)
	}
}

func TestPositioner_NoActiveWindowIsNoop(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800))
	p := NewPositioner(backend, Options{Divisions: 2})

	placement, err := p.Cycle()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if placement.Placed {
		t.Fatalf("expected nothing to be placed")
	}
	if _, ok := p.State().Last(); ok {
		t.Fatalf("state must not advance without a window")
	}
	if len(backend.moveResizes) != 0 {
		t.Fatalf("unexpected move/resize calls: %v", backend.moveResizes)
	}

	backend.activeErr = errors.New("property not set")
	if _, err := p.Center(); err != nil {
		t.Fatalf("lookup failure should be treated as no window, got %v", err)
	}
}

func TestPositioner_ResetAndPlace(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1200, 800))
	backend.active = 9
	backend.windows[9] = &fakeWindow{}

	p := NewPositioner(backend, Options{Divisions: 3})
	if _, err := p.Place(-1); err != nil {
		t.Fatalf("place: %v", err)
	}
	if last, _ := p.State().Last(); last != 2 {
		t.Fatalf("place(-1) should wrap to 2, got %d", last)
	}

	p.Reset()
	placement, err := p.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if placement.Slot != 0 {
		t.Fatalf("cycle after reset = %d, want 0", placement.Slot)
	}
}

func TestPositioner_Slots(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800), display(1, 1000, 800, 600))
	p := NewPositioner(backend, Options{Divisions: 2})

	infos, err := p.Slots()
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(infos) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(infos))
	}
	if infos[3].Monitor != 1 || infos[3].Section != 1 || infos[3].Rect.X != 1400 {
		t.Fatalf("unexpected slot 3: %+v", infos[3])
	}

	p.SetGeometry(3, 0)
	infos, err = p.Slots()
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(infos) != 6 {
		t.Fatalf("expected 6 slots after SetGeometry, got %d", len(infos))
	}
}

func TestApplyPlacement_UnmaximizesFirst(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800))
	backend.windows[5] = &fakeWindow{maximized: true}

	rect := platform.Rect{X: 0, Y: 0, Width: 500, Height: 800}
	if err := ApplyPlacement(backend, 5, rect); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if backend.unmaximized != 1 {
		t.Fatalf("expected one unmaximize, got %d", backend.unmaximized)
	}
	if len(backend.moves) != 0 {
		t.Fatalf("no corrective move expected, got %v", backend.moves)
	}
}

func TestApplyPlacement_RemovesWhenOnlyResized(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800))
	backend.windows[5] = &fakeWindow{
		frame:    platform.Rect{X: 10, Y: 10, Width: 300, Height: 300},
		minWidth: 600,
	}

	rect := platform.Rect{X: 500, Y: 0, Width: 500, Height: 800}
	if err := ApplyPlacement(backend, 5, rect); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diff := cmp.Diff([][2]int{{500, 0}}, backend.moves); diff != "" {
		t.Fatalf("corrective move mismatch (-want +got):\n%s", diff)
	}
	frame := backend.windows[5].frame
	if frame.X != 500 || frame.Y != 0 || frame.Width != 600 {
		t.Fatalf("unexpected final frame %+v", frame)
	}
	if backend.unmaximized != 0 {
		t.Fatalf("unexpected unmaximize")
	}
}

func TestPositioner_LogsMaximizedLookupFailure(t *testing.T) {
	backend := newFakeBackend(display(0, 0, 1000, 800))
	backend.active = 5
	backend.windows[5] = &fakeWindow{maximized: true}
	backend.maxErr = errors.New("BadWindow")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewPositioner(backend, Options{Divisions: 2, Logger: logger})

	placement, err := p.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if !placement.Placed {
		t.Fatalf("placement should continue without the maximized state")
	}
	if backend.unmaximized != 0 {
		t.Fatalf("unexpected unmaximize")
	}
	if out := buf.String(); !strings.Contains(out, "maximized state lookup failed") || !strings.Contains(out, "BadWindow") {
		t.Fatalf("expected debug log for the failed lookup, got:\n%s", out)
	}
}
