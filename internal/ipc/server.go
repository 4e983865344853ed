package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/runtimepath"
	"github.com/1broseidon/slotcycle/internal/slots"
)

// Controller is the daemon surface exposed over IPC.
type Controller interface {
	Center() (slots.Placement, error)
	Cycle() (slots.Placement, error)
	Place(slot int) (slots.Placement, error)
	Reset()
	Enable() error
	Disable()
	Reload() error
	Status() StatusData
	Monitors() ([]platform.Display, error)
	Slots() ([]slots.SlotInfo, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	controller   Controller
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default socket path.
func NewServer(controller Controller) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, controller), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, controller Controller) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		controller: controller,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandCenter:
		return placementResponse(s.controller.Center())
	case CommandCycle:
		return placementResponse(s.controller.Cycle())
	case CommandPlace:
		return s.handlePlace(req.Payload)
	case CommandReset:
		s.controller.Reset()
		return okResponse(nil)
	case CommandEnable:
		if err := s.controller.Enable(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to enable: %v", err))
		}
		return okResponse(nil)
	case CommandDisable:
		s.controller.Disable()
		return okResponse(nil)
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return okResponse(s.controller.Status())
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandListSlots:
		return s.handleListSlots()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handlePlace(payload json.RawMessage) *Response {
	var req PlacePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid place payload: %v", err))
	}
	return placementResponse(s.controller.Place(req.Slot))
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")
	if err := s.controller.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	log.Println("IPC: Config reloaded successfully")
	return okResponse(nil)
}

// handleGetMonitors returns information about all monitors
func (s *Server) handleGetMonitors() *Response {
	displays, err := s.controller.Monitors()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		monitorInfos[i] = MonitorInfo{
			ID:         d.ID,
			Name:       d.Name,
			X:          d.Bounds.X,
			Y:          d.Bounds.Y,
			Width:      d.Bounds.Width,
			Height:     d.Bounds.Height,
			WorkX:      d.Usable.X,
			WorkY:      d.Usable.Y,
			WorkWidth:  d.Usable.Width,
			WorkHeight: d.Usable.Height,
		}
	}

	return okResponse(MonitorsData{Monitors: monitorInfos})
}

func (s *Server) handleListSlots() *Response {
	infos, err := s.controller.Slots()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list slots: %v", err))
	}
	return okResponse(SlotsData{
		Divisions: s.controller.Status().Divisions,
		Slots:     infos,
	})
}

func placementResponse(p slots.Placement, err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return okResponse(p)
}

func okResponse(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
