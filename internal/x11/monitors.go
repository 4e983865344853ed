package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// WorkAreas returns a copy of monitors with each geometry reduced to the
// usable work area (panels and docks excluded).
func (c *Connection) WorkAreas(monitors []Monitor) []Monitor {
	out := make([]Monitor, len(monitors))
	copy(out, monitors)

	struts := c.dockStrutList()
	root := c.rootSize()
	for i := range out {
		if applyDockStruts(&out[i], struts, root) {
			continue
		}
		c.clipToWorkarea(&out[i])
	}
	return out
}

// MonitorIndexForWindow returns the index in monitors of the monitor holding
// the center of windowID, falling back to the pointer position and then 0.
func (c *Connection) MonitorIndexForWindow(monitors []Monitor, windowID xproto.Window) int {
	if idx := findMonitorForWindow(c, monitors, windowID); idx >= 0 {
		return idx
	}
	if idx := findMonitorForPointer(c, monitors); idx >= 0 {
		return idx
	}
	return 0
}

// clipToWorkarea intersects monitor with the current desktop's _NET_WORKAREA.
func (c *Connection) clipToWorkarea(monitor *Monitor) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	x1 := max(monitor.X, int(wa.X))
	y1 := max(monitor.Y, int(wa.Y))
	x2 := min(monitor.X+monitor.Width, int(wa.X)+int(wa.Width))
	y2 := min(monitor.Y+monitor.Height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		monitor.X = x1
		monitor.Y = y1
		monitor.Width = x2 - x1
		monitor.Height = y2 - y1
	}
}

type rootSize struct {
	width  int
	height int
}

func (c *Connection) rootSize() rootSize {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return rootSize{}
	}
	return rootSize{width: int(geom.Width), height: int(geom.Height)}
}

// dockStrutList collects the partial struts of every dock window. Docks that
// only set _NET_WM_STRUT are widened to span the whole root window.
func (c *Connection) dockStrutList() []*ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}
	root := c.rootSize()

	var out []*ewmh.WmStrutPartial
	for _, windowID := range clients {
		if !c.isDock(windowID) {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out = append(out, sp)
			continue
		}

		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil && root.width > 0 {
			out = append(out, &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(root.height - 1),
				RightEndY:  uint(root.height - 1),
				TopEndX:    uint(root.width - 1),
				BottomEndX: uint(root.width - 1),
			})
		}
	}
	return out
}

func (c *Connection) isDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

// applyDockStruts shrinks monitor by the struts overlapping it and reports
// whether any applied.
func applyDockStruts(monitor *Monitor, struts []*ewmh.WmStrutPartial, root rootSize) bool {
	if root.width == 0 || root.height == 0 {
		return false
	}

	var acc dockStruts
	for _, sp := range struts {
		updateStrutsForMonitor(monitor, root.width, root.height, sp, &acc)
	}

	if acc.left == 0 && acc.right == 0 && acc.top == 0 && acc.bottom == 0 {
		return false
	}

	monitor.X += acc.left
	monitor.Y += acc.top
	monitor.Width -= (acc.left + acc.right)
	monitor.Height -= (acc.top + acc.bottom)

	if monitor.Width < 1 {
		monitor.Width = 1
	}
	if monitor.Height < 1 {
		monitor.Height = 1
	}

	return true
}

func updateStrutsForMonitor(monitor *Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := monitor.X
	monY1 := monitor.Y
	monX2 := monitor.X + monitor.Width
	monY2 := monitor.Y + monitor.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
		acc.top = max(acc.top, isect.h)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
		acc.bottom = max(acc.bottom, isect.h)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
		acc.left = max(acc.left, isect.w)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
		acc.right = max(acc.right, isect.w)
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

func findMonitorForWindow(c *Connection, monitors []Monitor, windowID xproto.Window) int {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return -1
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return -1
	}

	return monitorAt(monitors,
		int(translate.DstX)+int(geom.Width)/2,
		int(translate.DstY)+int(geom.Height)/2)
}

func findMonitorForPointer(c *Connection, monitors []Monitor) int {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return -1
	}
	return monitorAt(monitors, int(pointer.RootX), int(pointer.RootY))
}

func monitorAt(monitors []Monitor, x, y int) int {
	for i, mon := range monitors {
		if x >= mon.X && x < mon.X+mon.Width && y >= mon.Y && y < mon.Y+mon.Height {
			return i
		}
	}
	return -1
}
