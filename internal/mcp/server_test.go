package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/wm"
)

type fakeDesktop struct {
	calls   []string
	opened  []ipc.OpenPayload
	desk    wm.Desktop
	catalog []content.Item
	failOn  string
}

func (f *fakeDesktop) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.HasPrefix(call, f.failOn) {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeDesktop) Open(req ipc.OpenPayload) (string, error) {
	f.opened = append(f.opened, req)
	if err := f.record("open " + req.ItemID); err != nil {
		return "", err
	}
	return "window-" + req.ItemID, nil
}

func (f *fakeDesktop) Close(id string) error    { return f.record("close " + id) }
func (f *fakeDesktop) Minimize(id string) error { return f.record("minimize " + id) }
func (f *fakeDesktop) Restore(id string) error  { return f.record("restore " + id) }
func (f *fakeDesktop) Maximize(id string) error { return f.record("maximize " + id) }
func (f *fakeDesktop) Focus(id string) error    { return f.record("focus " + id) }

func (f *fakeDesktop) Move(id string, x, y int, snap bool) error {
	if snap {
		return f.record("move-snap " + id)
	}
	return f.record("move " + id)
}

func (f *fakeDesktop) Resize(id string, w, h int) error { return f.record("resize " + id) }

func (f *fakeDesktop) ListWindows() (*wm.Desktop, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	return &f.desk, nil
}

func (f *fakeDesktop) GetCatalog() ([]content.Item, error) {
	if err := f.record("catalog"); err != nil {
		return nil, err
	}
	return f.catalog, nil
}

func (f *fakeDesktop) SetViewport(w, h int) (*ipc.ViewportData, error) {
	if err := f.record("viewport"); err != nil {
		return nil, err
	}
	return &ipc.ViewportData{Applied: true, Viewport: layout.Viewport{Width: w, Height: h}}, nil
}

func (f *fakeDesktop) GetStatus() (*ipc.StatusData, error) {
	if err := f.record("status"); err != nil {
		return nil, err
	}
	return &ipc.StatusData{
		SessionID:     "abc",
		UptimeSeconds: 12,
		DaemonRunning: true,
		WindowCount:   len(f.desk.Windows),
		ActiveID:      f.desk.ActiveID,
		Viewport:      f.desk.Viewport,
	}, nil
}

func TestHandleOpenWindow(t *testing.T) {
	fake := &fakeDesktop{}
	s := NewServer(fake)

	_, out, err := s.handleOpenWindow(context.Background(), nil, OpenWindowInput{ItemID: " tunes ", Title: "Tunes", Type: "blog"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if out.WindowID != "window-tunes" {
		t.Fatalf("window id = %q", out.WindowID)
	}
	if got := fake.opened[0]; got.ItemID != "tunes" || got.Type != content.TypeBlog || got.Title != "Tunes" {
		t.Fatalf("payload = %+v", got)
	}

	if _, _, err := s.handleOpenWindow(context.Background(), nil, OpenWindowInput{}); err == nil {
		t.Fatalf("expected error for empty item_id")
	}
}

func TestWindowActions(t *testing.T) {
	fake := &fakeDesktop{}
	s := NewServer(fake)

	tests := []struct {
		verb string
		op   func(string) error
		call string
		text string
	}{
		{"Closed", fake.Close, "close window-a", "Closed window-a"},
		{"Minimized", fake.Minimize, "minimize window-a", "Minimized window-a"},
		{"Restored", fake.Restore, "restore window-a", "Restored window-a"},
		{"Focused", fake.Focus, "focus window-a", "Focused window-a"},
	}
	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			fake.calls = nil
			h := s.windowAction(tt.verb, tt.op)
			res, _, err := h(context.Background(), nil, WindowInput{WindowID: "window-a"})
			if err != nil {
				t.Fatalf("%s: %v", tt.verb, err)
			}
			if len(fake.calls) != 1 || fake.calls[0] != tt.call {
				t.Fatalf("calls = %v", fake.calls)
			}
			text := res.Content[0].(*mcpsdk.TextContent).Text
			if text != tt.text {
				t.Fatalf("text = %q, want %q", text, tt.text)
			}
		})
	}

	h := s.windowAction("Closed", fake.Close)
	if _, _, err := h(context.Background(), nil, WindowInput{WindowID: "  "}); err == nil {
		t.Fatalf("expected error for blank window_id")
	}
}

func TestHandleMoveAndResize(t *testing.T) {
	fake := &fakeDesktop{}
	s := NewServer(fake)

	if _, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{WindowID: "w", X: 5, Y: 400, Snap: true}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, _, err := s.handleResizeWindow(context.Background(), nil, ResizeWindowInput{WindowID: "w", Width: 10, Height: 10}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	want := []string{"move-snap w", "resize w"}
	if strings.Join(fake.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v", fake.calls)
	}

	fake.failOn = "resize"
	_, _, err := s.handleResizeWindow(context.Background(), nil, ResizeWindowInput{WindowID: "w", Width: 1, Height: 1})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected wrapped desktop error, got %v", err)
	}
}

func TestHandleListWindows(t *testing.T) {
	fake := &fakeDesktop{desk: wm.Desktop{
		Viewport: layout.Viewport{Width: 1440, Height: 900},
		ActiveID: "window-b",
		Windows: []wm.WindowView{
			{ID: "window-b", ItemID: "b", ZIndex: 12, Active: true, Rect: geom.Rect{X: 130, Y: 130, Width: 800, Height: 600}},
			{ID: "window-a", ItemID: "a", ZIndex: 11, Minimized: true},
		},
	}}
	s := NewServer(fake)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Windows) != 2 || out.Windows[0].WindowID != "window-a" {
		t.Fatalf("expected stacking order bottom first, got %+v", out.Windows)
	}
	if out.Viewport.Width != 1440 || out.ActiveID != "window-b" {
		t.Fatalf("out = %+v", out)
	}
	if out.Windows[1].Phase != "closed" {
		t.Fatalf("phase = %q", out.Windows[1].Phase)
	}

	no := false
	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{IncludeMinimized: &no})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Windows) != 1 || out.Windows[0].WindowID != "window-b" {
		t.Fatalf("expected minimized window filtered, got %+v", out.Windows)
	}
}

func TestHandleSetViewport(t *testing.T) {
	fake := &fakeDesktop{}
	s := NewServer(fake)

	if _, _, err := s.handleSetViewport(context.Background(), nil, SetViewportInput{Width: 0, Height: 700}); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if len(fake.calls) != 0 {
		t.Fatalf("invalid viewport reached the desktop: %v", fake.calls)
	}
	_, out, err := s.handleSetViewport(context.Background(), nil, SetViewportInput{Width: 1024, Height: 768})
	if err != nil {
		t.Fatalf("set viewport: %v", err)
	}
	if !out.Applied || out.Viewport != (geom.Size{Width: 1024, Height: 768}) {
		t.Fatalf("out = %+v", out)
	}
}

func TestServer_ListsToolsOverSession(t *testing.T) {
	fake := &fakeDesktop{catalog: []content.Item{{ID: "notes", Title: "Notes", Type: content.TypeNotes}}}
	s := NewServer(fake)

	ctx := context.Background()
	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{
		"close_window", "focus_window", "get_status", "list_catalog", "list_windows",
		"maximize_window", "minimize_window", "move_window", "open_window",
		"resize_window", "restore_window", "set_viewport",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v", names)
	}

	call, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "focus_window",
		Arguments: map[string]any{"window_id": "window-notes"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if call.IsError {
		t.Fatalf("focus_window returned error: %+v", call.Content)
	}
	if fake.calls[len(fake.calls)-1] != "focus window-notes" {
		t.Fatalf("calls = %v", fake.calls)
	}
}
