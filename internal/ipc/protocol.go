package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/layout"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload        CommandType = "RELOAD"
	CommandGetStatus     CommandType = "GET_STATUS"
	CommandOpen          CommandType = "OPEN"
	CommandClose         CommandType = "CLOSE"
	CommandMinimize      CommandType = "MINIMIZE"
	CommandRestore       CommandType = "RESTORE"
	CommandMaximize      CommandType = "MAXIMIZE"
	CommandFocus         CommandType = "FOCUS"
	CommandMove          CommandType = "MOVE"
	CommandResize        CommandType = "RESIZE"
	CommandDrag          CommandType = "DRAG"
	CommandResizeGesture CommandType = "RESIZE_GESTURE"
	CommandListWindows   CommandType = "LIST_WINDOWS"
	CommandListOpenItems CommandType = "LIST_OPEN_ITEMS"
	CommandSetViewport   CommandType = "SET_VIEWPORT"
	CommandGetCatalog    CommandType = "GET_CATALOG"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Gesture phases for DRAG and RESIZE_GESTURE.
const (
	PhaseBegin  = "begin"
	PhaseMove   = "move"
	PhaseEnd    = "end"
	PhaseCancel = "cancel"
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
	SessionID     string          `json:"session_id"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	DaemonRunning bool            `json:"daemon_running"`
	WindowCount   int             `json:"window_count"`
	ActiveID      string          `json:"active_id"`
	Viewport      layout.Viewport `json:"viewport"`
}

// OpenPayload opens a catalog item. Title and Type describe an item that is
// not in the catalog; they are ignored for catalog items.
type OpenPayload struct {
	ItemID string       `json:"item_id"`
	Title  string       `json:"title,omitempty"`
	Type   content.Type `json:"type,omitempty"`
	URL    string       `json:"url,omitempty"`
	Origin *geom.Rect   `json:"origin,omitempty"`
}

type OpenData struct {
	WindowID string `json:"window_id"`
}

// WindowPayload targets one window for CLOSE, MINIMIZE, RESTORE, MAXIMIZE and FOCUS.
type WindowPayload struct {
	WindowID string `json:"window_id"`
}

type MovePayload struct {
	WindowID string `json:"window_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Snap     bool   `json:"snap,omitempty"`
}

type ResizePayload struct {
	WindowID string `json:"window_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// GesturePayload drives DRAG and RESIZE_GESTURE. WindowID and Handle are
// only read by the begin phase.
type GesturePayload struct {
	Phase    string `json:"phase"`
	WindowID string `json:"window_id,omitempty"`
	Handle   string `json:"handle,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// GestureData reports whether the gesture step was accepted.
type GestureData struct {
	Accepted bool `json:"accepted"`
}

type ViewportPayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ViewportData struct {
	Applied  bool            `json:"applied"`
	Viewport layout.Viewport `json:"viewport"`
}

type OpenItemsData struct {
	ItemIDs []string `json:"item_ids"`
}

type CatalogData struct {
	Items []content.Item `json:"items"`
}

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
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
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
