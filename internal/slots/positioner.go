package slots

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/slotcycle/internal/platform"
)

// ErrNoActiveWindow is returned internally when no window has focus.
// Positioner actions log it and report Placement.Placed == false.
var ErrNoActiveWindow = errors.New("no active window")

// Placement describes the outcome of one positioning action.
type Placement struct {
	Slot   int               `json:"slot"`
	Placed bool              `json:"placed"`
	Window platform.WindowID `json:"window,omitempty"`
	Rect   platform.Rect     `json:"rect"`
}

// SlotInfo describes one slot of the current layout.
type SlotInfo struct {
	Slot    int           `json:"slot"`
	Monitor int           `json:"monitor"`
	Section int           `json:"section"`
	Rect    platform.Rect `json:"rect"`
}

// Options configures a Positioner.
type Options struct {
	Divisions int
	Inset     int
	Logger    *slog.Logger
}

// Positioner moves the focused window between slots. All actions are
// serialised; the last-used slot is the only state it keeps.
type Positioner struct {
	backend platform.Backend
	logger  *slog.Logger

	mu        sync.Mutex
	divisions int
	inset     int
	state     State
}

// NewPositioner creates a positioner over backend.
func NewPositioner(backend platform.Backend, opts Options) *Positioner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Positioner{
		backend:   backend,
		logger:    logger,
		divisions: max(opts.Divisions, 1),
		inset:     max(opts.Inset, 0),
	}
}

// SetGeometry updates the division count and inset. The session state is
// kept and wrapped into range on the next cycle.
func (p *Positioner) SetGeometry(divisions, inset int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.divisions = max(divisions, 1)
	p.inset = max(inset, 0)
}

// Divisions returns the configured division count.
func (p *Positioner) Divisions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.divisions
}

// State returns a snapshot of the session state.
func (p *Positioner) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset forgets the last slot.
func (p *Positioner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = State{}
	p.logger.Debug("slot state reset")
}

// Monitors queries all displays and returns them ordered left to right.
func (p *Positioner) Monitors() ([]platform.Display, error) {
	displays, err := p.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("failed to query displays: %w", err)
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays found")
	}
	return SortDisplays(displays), nil
}

// Slots lists every slot of the current layout.
func (p *Positioner) Slots() ([]SlotInfo, error) {
	displays, err := p.Monitors()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	divisions, inset := p.divisions, p.inset
	p.mu.Unlock()

	areas := WorkAreas(displays)
	total := Total(divisions, len(areas))
	infos := make([]SlotInfo, 0, total)
	for pos := 0; pos < total; pos++ {
		monitor, section := Locate(pos, divisions, len(areas))
		infos = append(infos, SlotInfo{
			Slot:    pos,
			Monitor: monitor,
			Section: section,
			Rect:    SlotRect(pos, divisions, areas, inset),
		})
	}
	return infos, nil
}

// Cycle moves the focused window to the slot after the last one used.
func (p *Positioner) Cycle() (Placement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.placeLocked("cycle", func(displays []platform.Display, _ platform.WindowID) int {
		return p.state.Next(p.divisions, len(displays))
	})
}

// Center moves the focused window to the center slot of its monitor.
func (p *Positioner) Center() (Placement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.placeLocked("center", func(displays []platform.Display, window platform.WindowID) int {
		idx := p.backend.DisplayIndexForWindow(displays, window)
		if idx < 0 || idx >= len(displays) {
			idx = 0
		}
		return CenterSlot(p.divisions, idx)
	})
}

// Place moves the focused window to slot pos (wrapped into range).
func (p *Positioner) Place(pos int) (Placement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.placeLocked("place", func(displays []platform.Display, _ platform.WindowID) int {
		return Wrap(pos, p.divisions, len(displays))
	})
}

func (p *Positioner) placeLocked(action string, pick func([]platform.Display, platform.WindowID) int) (Placement, error) {
	window, err := p.activeWindow()
	if errors.Is(err, ErrNoActiveWindow) {
		p.logger.Info("no active window, skipping", "action", action)
		return Placement{}, nil
	}
	if err != nil {
		return Placement{}, err
	}

	displays, err := p.Monitors()
	if err != nil {
		return Placement{}, err
	}

	pos := pick(displays, window)
	rect := SlotRect(pos, p.divisions, WorkAreas(displays), p.inset)

	if err := applyPlacement(p.backend, window, rect, p.logger); err != nil {
		return Placement{}, fmt.Errorf("%s: %w", action, err)
	}
	p.state = p.state.With(pos)

	p.logger.Info("window placed",
		"action", action,
		"window", window,
		"slot", pos,
		"x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height,
	)

	return Placement{Slot: pos, Placed: true, Window: window, Rect: rect}, nil
}

func (p *Positioner) activeWindow() (platform.WindowID, error) {
	window, err := p.backend.ActiveWindow()
	if err != nil {
		p.logger.Debug("active window lookup failed", "error", err)
		return 0, ErrNoActiveWindow
	}
	if window == 0 {
		return 0, ErrNoActiveWindow
	}
	return window, nil
}

// ApplyPlacement unmaximizes window if needed and moves it into rect. When
// the frame does not end up at rect's origin (window managers may resize
// without moving when the minimum size exceeds rect) a single move is
// re-issued.
func ApplyPlacement(backend platform.Backend, window platform.WindowID, rect platform.Rect) error {
	return applyPlacement(backend, window, rect, slog.Default())
}

func applyPlacement(backend platform.Backend, window platform.WindowID, rect platform.Rect, logger *slog.Logger) error {
	maximized, err := backend.Maximized(window)
	if err != nil {
		logger.Debug("maximized state lookup failed, not unmaximizing", "window", window, "error", err)
	}
	if maximized {
		if err := backend.Unmaximize(window); err != nil {
			return err
		}
	}

	if err := backend.MoveResize(window, rect); err != nil {
		return fmt.Errorf("failed to move window %d: %w", window, err)
	}

	frame, err := backend.FrameBounds(window)
	if err == nil && frame.X == rect.X && frame.Y == rect.Y {
		return nil
	}

	if err := backend.Move(window, rect.X, rect.Y); err != nil {
		return fmt.Errorf("failed to re-move window %d: %w", window, err)
	}
	return nil
}
