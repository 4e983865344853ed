// Package mcp exposes the daemon's placement actions as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/slotcycle/internal/ipc"
)

const (
	ServerName    = "slotcycle"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client used by the tools.
type Daemon interface {
	Center() (*ipc.PlacementData, error)
	Cycle() (*ipc.PlacementData, error)
	Place(slot int) (*ipc.PlacementData, error)
	Reset() error
	ListSlots() (*ipc.SlotsData, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server is the MCP server for slotcycle.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates a new MCP server that forwards tool calls to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "center_window",
		Description: "Move the focused window to the center slot of the monitor it is on. With two divisions this is the right half. Cycling continues from that slot.",
	}, s.handleCenterWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cycle_window",
		Description: "Move the focused window to the next slot, left to right across all monitors, wrapping after the last one. The first call of a session uses slot 0.",
	}, s.handleCycleWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_window",
		Description: "Move the focused window to an explicit slot. Slot = monitor index * divisions + section. Use list_slots to see the current layout.",
	}, s.handlePlaceWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_slots",
		Description: "List every slot with its monitor, section and screen rectangle, plus the last slot used.",
	}, s.handleListSlots)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_slots",
		Description: "Forget the last slot used so the next cycle_window starts again at slot 0.",
	}, s.handleResetSlots)
}

func (s *Server) handleCenterWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ CenterWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	p, err := s.daemon.Center()
	if err != nil {
		return nil, PlacementOutput{}, fmt.Errorf("center_window: %w", err)
	}
	return nil, placementOutput(p), nil
}

func (s *Server) handleCycleWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ CycleWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	p, err := s.daemon.Cycle()
	if err != nil {
		return nil, PlacementOutput{}, fmt.Errorf("cycle_window: %w", err)
	}
	return nil, placementOutput(p), nil
}

func (s *Server) handlePlaceWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args PlaceWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	p, err := s.daemon.Place(args.Slot)
	if err != nil {
		return nil, PlacementOutput{}, fmt.Errorf("place_window: %w", err)
	}
	if p.Placed && p.Slot != args.Slot {
		log.Printf("place_window: slot %d wrapped to %d", args.Slot, p.Slot)
	}
	return nil, placementOutput(p), nil
}

func (s *Server) handleListSlots(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListSlotsInput) (*mcpsdk.CallToolResult, ListSlotsOutput, error) {
	data, err := s.daemon.ListSlots()
	if err != nil {
		return nil, ListSlotsOutput{}, fmt.Errorf("list_slots: %w", err)
	}

	out := ListSlotsOutput{
		Divisions: data.Divisions,
		Slots:     make([]SlotEntry, 0, len(data.Slots)),
	}
	for _, info := range data.Slots {
		out.Slots = append(out.Slots, SlotEntry{
			Slot:    info.Slot,
			Monitor: info.Monitor,
			Section: info.Section,
			Rect:    info.Rect,
		})
	}

	// Status is best effort; the layout is still useful without it.
	if status, err := s.daemon.GetStatus(); err == nil {
		out.LastSlot = status.LastSlot
	}
	return nil, out, nil
}

func (s *Server) handleResetSlots(_ context.Context, _ *mcpsdk.CallToolRequest, _ ResetSlotsInput) (*mcpsdk.CallToolResult, ResetSlotsOutput, error) {
	if err := s.daemon.Reset(); err != nil {
		return nil, ResetSlotsOutput{}, fmt.Errorf("reset_slots: %w", err)
	}
	return nil, ResetSlotsOutput{Reset: true}, nil
}

func placementOutput(p *ipc.PlacementData) PlacementOutput {
	out := PlacementOutput{
		Slot:   p.Slot,
		Placed: p.Placed,
		Window: uint32(p.Window),
		Rect:   p.Rect,
	}
	if !p.Placed {
		out.Note = "no focused window; nothing was moved"
	}
	return out
}
