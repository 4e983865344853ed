package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaxHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert = "_NET_WM_STATE_MAXIMIZED_VERT"

	// _NET_WM_STATE action for removing a property.
	wmStateRemove = 0
)

// MoveResizeWindow moves and resizes a window's frame to the specified geometry.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	c.XUtil.Sync()
	return nil
}

// MoveWindow moves a window's frame without touching its size.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	c.XUtil.Sync()
	return nil
}

// MaximizedState reports whether the window is maximized horizontally and/or vertically.
func (c *Connection) MaximizedState(windowID xproto.Window) (horz, vert bool, err error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, false, err
	}

	for _, state := range states {
		switch state {
		case stateMaxHorz:
			horz = true
		case stateMaxVert:
			vert = true
		}
	}
	return horz, vert, nil
}

// UnmaximizeWindow removes both maximized states from a window in one request.
func (c *Connection) UnmaximizeWindow(windowID xproto.Window) error {
	if err := ewmh.WmStateReqExtra(c.XUtil, windowID, wmStateRemove, stateMaxHorz, stateMaxVert, 2); err != nil {
		return fmt.Errorf("failed to unmaximize window %d: %w", windowID, err)
	}
	return nil
}

// FrameGeometry returns the geometry of the window including decorations.
func (c *Connection) FrameGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	rect, err := xwindow.New(c.XUtil, windowID).DecorGeometry()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get frame geometry: %w", err)
	}
	return rect.X(), rect.Y(), rect.Width(), rect.Height(), nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// GetActiveWindow returns the focused window, or 0 when nothing has focus.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
