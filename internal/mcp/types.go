package mcp

import (
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
)

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	ItemID string `json:"item_id" jsonschema:"Catalog item id to open (see list_catalog)"`
	Title  string `json:"title,omitempty" jsonschema:"Window title when the item is not in the catalog"`
	Type   string `json:"type,omitempty" jsonschema:"Content type when the item is not in the catalog (e.g. notes, blog, browser)"`
	URL    string `json:"url,omitempty" jsonschema:"Optional content URL for items outside the catalog"`
}

// OpenWindowOutput is the output for the open_window tool.
type OpenWindowOutput struct {
	WindowID string `json:"window_id"`
}

// WindowInput targets a single window.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id, e.g. window-about-me"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id"`
	X        int    `json:"x" jsonschema:"New left edge in desktop pixels"`
	Y        int    `json:"y" jsonschema:"New top edge in desktop pixels"`
	Snap     bool   `json:"snap,omitempty" jsonschema:"Treat the position as a drop: snap to a screen edge or bounce back on screen"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"Window id"`
	Width    int    `json:"width" jsonschema:"New width; clamped to the minimum window size"`
	Height   int    `json:"height" jsonschema:"New height; clamped to the minimum window size"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeMinimized *bool `json:"include_minimized,omitempty" jsonschema:"Include minimized windows (default: true)"`
}

// WindowInfo describes one window.
type WindowInfo struct {
	WindowID  string    `json:"window_id"`
	ItemID    string    `json:"item_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Renderer  string    `json:"renderer"`
	Phase     string    `json:"phase"`
	Rect      geom.Rect `json:"rect"`
	ZIndex    int       `json:"z_index"`
	Active    bool      `json:"active"`
	Minimized bool      `json:"minimized"`
	Maximized bool      `json:"maximized"`
	SnapEdge  string    `json:"snap_edge,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	ActiveID string       `json:"active_id"`
	Viewport geom.Size    `json:"viewport"`
	Windows  []WindowInfo `json:"windows"`
}

// ListCatalogInput is the input for the list_catalog tool.
type ListCatalogInput struct{}

// ListCatalogOutput is the output for the list_catalog tool.
type ListCatalogOutput struct {
	Items []content.Item `json:"items"`
}

// SetViewportInput is the input for the set_viewport tool.
type SetViewportInput struct {
	Width  int `json:"width" jsonschema:"Viewport width in pixels"`
	Height int `json:"height" jsonschema:"Viewport height in pixels"`
}

// SetViewportOutput is the output for the set_viewport tool.
type SetViewportOutput struct {
	Applied  bool      `json:"applied"`
	Viewport geom.Size `json:"viewport"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	SessionID     string    `json:"session_id"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	WindowCount   int       `json:"window_count"`
	ActiveID      string    `json:"active_id"`
	Viewport      geom.Size `json:"viewport"`
}
