package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Desktop is the daemon surface the tools drive. *ipc.Client satisfies it.
type Desktop interface {
	Open(req ipc.OpenPayload) (string, error)
	Close(windowID string) error
	Minimize(windowID string) error
	Restore(windowID string) error
	Maximize(windowID string) error
	Focus(windowID string) error
	Move(windowID string, x, y int, snap bool) error
	Resize(windowID string, width, height int) error
	ListWindows() (*wm.Desktop, error)
	GetCatalog() ([]content.Item, error)
	SetViewport(width, height int) (*ipc.ViewportData, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server exposes the window manager as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
}

// NewServer creates a new MCP server that forwards to desktop.
func NewServer(desktop Desktop) *Server {
	s := &Server{desktop: desktop}
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
		Name:        "open_window",
		Description: "Open the window for a catalog item, or restore and focus it if it is already open. Items outside the catalog need a type. Returns the window id.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. The close animation runs before the window is removed.",
	}, s.windowAction("Closed", s.desktop.Close))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window to the dock. Focus moves to the next visible window.",
	}, s.windowAction("Minimized", s.desktop.Minimize))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window and focus it.",
	}, s.windowAction("Restored", s.desktop.Restore))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Toggle a window between maximized and its previous geometry. Snapped windows are not affected.",
	}, s.windowAction("Toggled maximize for", s.desktop.Maximize))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front and make it active.",
	}, s.windowAction("Focused", s.desktop.Focus))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window. With snap set, a position near the left, right or top screen edge snaps the window and a mostly off-screen position bounces back.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window. Sizes below the minimum window size are clamped.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open windows in stacking order, bottom first, with geometry and state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_catalog",
		Description: "List the items that can be opened as windows.",
	}, s.handleListCatalog)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_viewport",
		Description: "Resize the desktop viewport. Snapped windows follow their edge and free windows are pulled back on screen.",
	}, s.handleSetViewport)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the daemon session, uptime, window count and viewport.",
	}, s.handleGetStatus)
}
