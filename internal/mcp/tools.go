package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/ipc"
)

func textResult(format string, args ...any) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func requireWindowID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("window_id is required")
	}
	return id, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, OpenWindowOutput, error) {
	itemID := strings.TrimSpace(args.ItemID)
	if itemID == "" {
		return nil, OpenWindowOutput{}, fmt.Errorf("item_id is required")
	}
	id, err := s.desktop.Open(ipc.OpenPayload{
		ItemID: itemID,
		Title:  args.Title,
		Type:   content.Type(args.Type),
		URL:    args.URL,
	})
	if err != nil {
		return nil, OpenWindowOutput{}, fmt.Errorf("failed to open %q: %w", itemID, err)
	}
	return nil, OpenWindowOutput{WindowID: id}, nil
}

// windowAction builds a handler for the single-window operations.
func (s *Server) windowAction(verb string, op func(string) error) func(context.Context, *mcpsdk.CallToolRequest, WindowInput) (*mcpsdk.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, any, error) {
		id, err := requireWindowID(args.WindowID)
		if err != nil {
			return nil, nil, err
		}
		if err := op(id); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", id, err)
		}
		return textResult("%s %s", verb, id), nil, nil
	}
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, any, error) {
	id, err := requireWindowID(args.WindowID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.desktop.Move(id, args.X, args.Y, args.Snap); err != nil {
		return nil, nil, fmt.Errorf("failed to move %s: %w", id, err)
	}
	return textResult("Moved %s to (%d, %d)", id, args.X, args.Y), nil, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, any, error) {
	id, err := requireWindowID(args.WindowID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.desktop.Resize(id, args.Width, args.Height); err != nil {
		return nil, nil, fmt.Errorf("failed to resize %s: %w", id, err)
	}
	return textResult("Resized %s to %dx%d", id, args.Width, args.Height), nil, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	desk, err := s.desktop.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}
	includeMinimized := args.IncludeMinimized == nil || *args.IncludeMinimized

	out := ListWindowsOutput{
		ActiveID: desk.ActiveID,
		Viewport: geom.Size{Width: desk.Viewport.Width, Height: desk.Viewport.Height},
		Windows:  make([]WindowInfo, 0, len(desk.Windows)),
	}
	for _, w := range desk.Windows {
		if w.Minimized && !includeMinimized {
			continue
		}
		out.Windows = append(out.Windows, WindowInfo{
			WindowID:  w.ID,
			ItemID:    w.ItemID,
			Title:     w.Title,
			Type:      string(w.Type),
			Renderer:  w.Renderer,
			Phase:     w.Phase.String(),
			Rect:      w.Rect,
			ZIndex:    w.ZIndex,
			Active:    w.Active,
			Minimized: w.Minimized,
			Maximized: w.Maximized,
			SnapEdge:  w.SnapEdge,
		})
	}
	// Stacking order for deterministic output.
	sort.SliceStable(out.Windows, func(i, j int) bool {
		return out.Windows[i].ZIndex < out.Windows[j].ZIndex
	})
	return nil, out, nil
}

func (s *Server) handleListCatalog(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListCatalogInput) (*mcpsdk.CallToolResult, ListCatalogOutput, error) {
	items, err := s.desktop.GetCatalog()
	if err != nil {
		return nil, ListCatalogOutput{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return nil, ListCatalogOutput{Items: items}, nil
}

func (s *Server) handleSetViewport(_ context.Context, _ *mcpsdk.CallToolRequest, args SetViewportInput) (*mcpsdk.CallToolResult, SetViewportOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, SetViewportOutput{}, fmt.Errorf("width and height must be > 0")
	}
	data, err := s.desktop.SetViewport(args.Width, args.Height)
	if err != nil {
		return nil, SetViewportOutput{}, fmt.Errorf("failed to set viewport: %w", err)
	}
	return nil, SetViewportOutput{
		Applied:  data.Applied,
		Viewport: geom.Size{Width: data.Viewport.Width, Height: data.Viewport.Height},
	}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	st, err := s.desktop.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("failed to get status: %w", err)
	}
	return nil, GetStatusOutput{
		SessionID:     st.SessionID,
		UptimeSeconds: st.UptimeSeconds,
		WindowCount:   st.WindowCount,
		ActiveID:      st.ActiveID,
		Viewport:      geom.Size{Width: st.Viewport.Width, Height: st.Viewport.Height},
	}, nil
}
