package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/wm"
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

	if resp.Status == StatusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends cmd with an optional payload and decodes the reply into out
// when out is non-nil.
func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Open opens (or restores) the window for an item and returns its id.
func (c *Client) Open(req OpenPayload) (string, error) {
	var data OpenData
	if err := c.call(CommandOpen, req, &data); err != nil {
		return "", err
	}
	return data.WindowID, nil
}

func (c *Client) Close(windowID string) error {
	return c.call(CommandClose, WindowPayload{WindowID: windowID}, nil)
}

func (c *Client) Minimize(windowID string) error {
	return c.call(CommandMinimize, WindowPayload{WindowID: windowID}, nil)
}

func (c *Client) Restore(windowID string) error {
	return c.call(CommandRestore, WindowPayload{WindowID: windowID}, nil)
}

// Maximize toggles the maximized state of a window.
func (c *Client) Maximize(windowID string) error {
	return c.call(CommandMaximize, WindowPayload{WindowID: windowID}, nil)
}

func (c *Client) Focus(windowID string) error {
	return c.call(CommandFocus, WindowPayload{WindowID: windowID}, nil)
}

// Move places a window. With snap set the position is treated as a drop
// point and edge snapping and bounce apply.
func (c *Client) Move(windowID string, x, y int, snap bool) error {
	return c.call(CommandMove, MovePayload{WindowID: windowID, X: x, Y: y, Snap: snap}, nil)
}

func (c *Client) Resize(windowID string, width, height int) error {
	return c.call(CommandResize, ResizePayload{WindowID: windowID, Width: width, Height: height}, nil)
}

// Drag runs one step of a drag gesture. windowID is only used by PhaseBegin.
func (c *Client) Drag(phase, windowID string, x, y int) (bool, error) {
	var data GestureData
	err := c.call(CommandDrag, GesturePayload{Phase: phase, WindowID: windowID, X: x, Y: y}, &data)
	return data.Accepted, err
}

// ResizeGesture runs one step of an edge/corner resize gesture.
func (c *Client) ResizeGesture(phase, windowID string, h gesture.Handle, x, y int) (bool, error) {
	payload := GesturePayload{Phase: phase, WindowID: windowID, X: x, Y: y}
	if phase == PhaseBegin {
		payload.Handle = h.String()
	}
	var data GestureData
	err := c.call(CommandResizeGesture, payload, &data)
	return data.Accepted, err
}

// ListWindows returns a snapshot of the whole desktop.
func (c *Client) ListWindows() (*wm.Desktop, error) {
	var desk wm.Desktop
	if err := c.call(CommandListWindows, nil, &desk); err != nil {
		return nil, err
	}
	return &desk, nil
}

func (c *Client) ListOpenItems() ([]string, error) {
	var data OpenItemsData
	if err := c.call(CommandListOpenItems, nil, &data); err != nil {
		return nil, err
	}
	return data.ItemIDs, nil
}

// SetViewport resizes the daemon's viewport.
func (c *Client) SetViewport(width, height int) (*ViewportData, error) {
	var data ViewportData
	if err := c.call(CommandSetViewport, ViewportPayload{Width: width, Height: height}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetCatalog() ([]content.Item, error) {
	var data CatalogData
	if err := c.call(CommandGetCatalog, nil, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
