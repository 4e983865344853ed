// Package slots computes horizontal window slots across monitors and places
// the focused window into them.
//
// Every monitor work area is split into N equal sections ("divisions").
// Slots are numbered left to right across monitors ordered by x, so slot
// pos lives on monitor pos/N, section pos%N.
package slots

import (
	"sort"

	"github.com/1broseidon/slotcycle/internal/platform"
)

// State remembers the last slot used in a session. The zero value means no
// slot has been used yet.
type State struct {
	last  int
	valid bool
}

// Last returns the last slot and whether one has been recorded.
func (s State) Last() (int, bool) {
	return s.last, s.valid
}

// With returns a state recording pos as the last slot.
func (s State) With(pos int) State {
	return State{last: pos, valid: true}
}

// Next is NextSlot applied to s.
func (s State) Next(divisions, monitorCount int) int {
	return NextSlot(s, divisions, monitorCount)
}

// NextSlot returns 0 for an empty state, otherwise the slot after the last
// one, wrapping after divisions*monitorCount slots.
func NextSlot(state State, divisions, monitorCount int) int {
	prev, ok := state.Last()
	if !ok {
		return 0
	}
	return Wrap(prev+1, divisions, monitorCount)
}

// Total returns the number of slots for the given layout.
func Total(divisions, monitorCount int) int {
	return max(divisions, 1) * max(monitorCount, 1)
}

// Wrap maps any integer onto [0, Total(divisions, monitorCount)).
func Wrap(pos, divisions, monitorCount int) int {
	total := Total(divisions, monitorCount)
	pos %= total
	if pos < 0 {
		pos += total
	}
	return pos
}

// CenterSlot returns the slot used by the "center" action on the given
// monitor: its second section, or its only section when divisions is 1.
func CenterSlot(divisions, monitorIndex int) int {
	divisions = max(divisions, 1)
	return monitorIndex*divisions + min(1, divisions-1)
}

// SortDisplays returns a copy of displays ordered left to right by the x of
// their work area, then top to bottom.
func SortDisplays(displays []platform.Display) []platform.Display {
	out := make([]platform.Display, len(displays))
	copy(out, displays)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Usable.X != out[j].Usable.X {
			return out[i].Usable.X < out[j].Usable.X
		}
		return out[i].Usable.Y < out[j].Usable.Y
	})
	return out
}

// WorkAreas extracts the usable rectangles of displays, preserving order.
func WorkAreas(displays []platform.Display) []platform.Rect {
	areas := make([]platform.Rect, len(displays))
	for i, d := range displays {
		areas[i] = d.Usable
	}
	return areas
}

// Locate splits a slot into its monitor index and section.
func Locate(pos, divisions, monitorCount int) (monitor, section int) {
	divisions = max(divisions, 1)
	pos = Wrap(pos, divisions, monitorCount)
	return pos / divisions, pos % divisions
}

// SlotBounds returns the exact section of a monitor addressed by pos.
// Section edges sit at floor(k*width/divisions) so neighbouring sections
// share an edge and together span the whole work area.
func SlotBounds(pos, divisions int, monitors []platform.Rect) platform.Rect {
	if len(monitors) == 0 {
		return platform.Rect{}
	}
	divisions = max(divisions, 1)

	monitorIndex, section := Locate(pos, divisions, len(monitors))
	m := monitors[monitorIndex]

	left := section * m.Width / divisions
	right := (section + 1) * m.Width / divisions

	return platform.Rect{
		X:      m.X + left,
		Y:      m.Y,
		Width:  right - left,
		Height: m.Height,
	}
}

// SlotRect is SlotBounds shifted right by inset pixels. The width stays one
// full section, so a window overlaps its right neighbour by inset pixels.
func SlotRect(pos, divisions int, monitors []platform.Rect, inset int) platform.Rect {
	r := SlotBounds(pos, divisions, monitors)
	if inset > 0 {
		r.X += inset
	}
	return r
}
