package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/slotcycle/internal/slots"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandCenter      CommandType = "CENTER"
	CommandCycle       CommandType = "CYCLE"
	CommandPlace       CommandType = "PLACE"
	CommandReset       CommandType = "RESET"
	CommandEnable      CommandType = "ENABLE"
	CommandDisable     CommandType = "DISABLE"
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandListSlots   CommandType = "LIST_SLOTS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Enabled       bool   `json:"enabled"`
	Divisions     int    `json:"divisions"`
	Inset         int    `json:"inset"`
	LastSlot      *int   `json:"last_slot"`
	CenterHotkey  string `json:"center_hotkey"`
	CycleHotkey   string `json:"cycle_hotkey"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	WorkX      int    `json:"work_x"`
	WorkY      int    `json:"work_y"`
	WorkWidth  int    `json:"work_width"`
	WorkHeight int    `json:"work_height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SlotsData represents the data returned by LIST_SLOTS
type SlotsData struct {
	Divisions int              `json:"divisions"`
	Slots     []slots.SlotInfo `json:"slots"`
}

// PlacePayload is the payload of PLACE.
type PlacePayload struct {
	Slot int `json:"slot"`
}

// PlacementData is returned by CENTER, CYCLE and PLACE.
type PlacementData = slots.Placement

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
