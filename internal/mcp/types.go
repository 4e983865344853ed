package mcp

import "github.com/1broseidon/slotcycle/internal/platform"

// CenterWindowInput is the input for the center_window tool.
type CenterWindowInput struct{}

// CycleWindowInput is the input for the cycle_window tool.
type CycleWindowInput struct{}

// PlaceWindowInput is the input for the place_window tool.
type PlaceWindowInput struct {
	Slot int `json:"slot" jsonschema:"required,Slot index counted left to right across monitors. Out-of-range values wrap."`
}

// PlacementOutput is the output for the center, cycle and place tools.
type PlacementOutput struct {
	Slot   int           `json:"slot"`
	Placed bool          `json:"placed"`
	Window uint32        `json:"window,omitempty"`
	Rect   platform.Rect `json:"rect"`
	Note   string        `json:"note,omitempty"`
}

// ListSlotsInput is the input for the list_slots tool.
type ListSlotsInput struct{}

// SlotEntry describes one slot.
type SlotEntry struct {
	Slot    int           `json:"slot"`
	Monitor int           `json:"monitor"`
	Section int           `json:"section"`
	Rect    platform.Rect `json:"rect"`
}

// ListSlotsOutput is the output for the list_slots tool.
type ListSlotsOutput struct {
	Divisions int         `json:"divisions"`
	LastSlot  *int        `json:"last_slot,omitempty"`
	Slots     []SlotEntry `json:"slots"`
}

// ResetSlotsInput is the input for the reset_slots tool.
type ResetSlotsInput struct{}

// ResetSlotsOutput is the output for the reset_slots tool.
type ResetSlotsOutput struct {
	Reset bool `json:"reset"`
}
