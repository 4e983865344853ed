package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/slotcycle/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the socket at socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) simple(cmd CommandType) error {
	_, err := c.sendRequest(&Request{Command: cmd})
	return err
}

func (c *Client) placement(req *Request) (*PlacementData, error) {
	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data PlacementData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse placement data: %w", err)
	}
	return &data, nil
}

// Center moves the focused window to the center slot of its monitor.
func (c *Client) Center() (*PlacementData, error) {
	return c.placement(&Request{Command: CommandCenter})
}

// Cycle moves the focused window to the next slot.
func (c *Client) Cycle() (*PlacementData, error) {
	return c.placement(&Request{Command: CommandCycle})
}

// Place moves the focused window to an explicit slot.
func (c *Client) Place(slot int) (*PlacementData, error) {
	payload, err := json.Marshal(PlacePayload{Slot: slot})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal place payload: %w", err)
	}
	return c.placement(&Request{Command: CommandPlace, Payload: payload})
}

// Reset clears the daemon's last-used slot.
func (c *Client) Reset() error {
	return c.simple(CommandReset)
}

// Enable binds the daemon's hotkeys.
func (c *Client) Enable() error {
	return c.simple(CommandEnable)
}

// Disable unbinds the daemon's hotkeys and resets its slot state.
func (c *Client) Disable() error {
	return c.simple(CommandDisable)
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.simple(CommandReload)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// ListSlots retrieves the current slot layout.
func (c *Client) ListSlots() (*SlotsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListSlots})
	if err != nil {
		return nil, err
	}

	var data SlotsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse slots data: %w", err)
	}
	return &data, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
