package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Backend abstracts the window-system operations needed to place windows.
type Backend interface {
	// Displays returns every active display with its work area in Usable.
	Displays() ([]Display, error)
	// ActiveWindow returns the focused window, or 0 when none has focus.
	ActiveWindow() (WindowID, error)
	// DisplayIndexForWindow returns the index into displays of the display
	// showing windowID.
	DisplayIndexForWindow(displays []Display, windowID WindowID) int
	Maximized(windowID WindowID) (bool, error)
	Unmaximize(windowID WindowID) error
	MoveResize(windowID WindowID, bounds Rect) error
	Move(windowID WindowID, x, y int) error
	// FrameBounds returns the window geometry including decorations.
	FrameBounds(windowID WindowID) (Rect, error)
}
