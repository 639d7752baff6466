package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/gesture"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/wm"
	"github.com/google/uuid"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	catalog      *content.Catalog
	cfgMu        sync.RWMutex
	loadConfig   func() (*config.Config, error)
	mgr          *wm.Manager
	sessionID    string
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, mgr *wm.Manager, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	catalog, err := cfg.ContentCatalog()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		catalog:    catalog,
		loadConfig: config.Load,
		mgr:        mgr,
		sessionID:  uuid.NewString(),
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// SetConfigLoader replaces the function RELOAD uses to read config.
func (s *Server) SetConfigLoader(fn func() (*config.Config, error)) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.loadConfig = fn
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// SessionID identifies this daemon run.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

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

// handleConnection serves one request line and closes the connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

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

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandOpen:
		return s.handleOpen(req.Payload)
	case CommandClose:
		return s.handleWindow(req.Payload, s.mgr.Close)
	case CommandMinimize:
		return s.handleWindow(req.Payload, s.mgr.Minimize)
	case CommandRestore:
		return s.handleWindow(req.Payload, s.mgr.Restore)
	case CommandMaximize:
		return s.handleWindow(req.Payload, s.mgr.Maximize)
	case CommandFocus:
		return s.handleWindow(req.Payload, s.mgr.Focus)
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandResize:
		return s.handleResize(req.Payload)
	case CommandDrag:
		return s.handleDrag(req.Payload)
	case CommandResizeGesture:
		return s.handleResizeGesture(req.Payload)
	case CommandListWindows:
		return ok(s.mgr.Snapshot())
	case CommandListOpenItems:
		return ok(OpenItemsData{ItemIDs: s.mgr.ListOpenItemIDs()})
	case CommandSetViewport:
		return s.handleSetViewport(req.Payload)
	case CommandGetCatalog:
		return s.handleGetCatalog()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decodePayload(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	return json.Unmarshal(payload, out)
}

// handleReload re-reads config and applies it to the running manager.
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")
	if err := s.Reload(); err != nil {
		return NewErrorResponse(err.Error())
	}
	log.Println("IPC: Config reloaded successfully")
	return ok(nil)
}

// Reload re-reads config through the configured loader, swaps the catalog
// and applies the new settings to the manager. The daemon calls it on
// SIGHUP; RELOAD requests go through it too.
func (s *Server) Reload() error {
	s.cfgMu.RLock()
	load := s.loadConfig
	s.cfgMu.RUnlock()

	newCfg, err := load()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	catalog, err := newCfg.ContentCatalog()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	settings := newCfg.Settings()
	if newCfg.Viewport.Source == config.ViewportX11 {
		// The display owns the size; keep what the poller last applied.
		current := s.mgr.Viewport()
		settings.Viewport.Width, settings.Viewport.Height = current.Width, current.Height
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.catalog = catalog
	s.cfgMu.Unlock()

	s.mgr.Apply(settings)

	select {
	case s.reloadChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *Server) handleGetStatus() *Response {
	desk := s.mgr.Snapshot()
	return ok(StatusData{
		SessionID:     s.sessionID,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
		WindowCount:   len(desk.Windows),
		ActiveID:      desk.ActiveID,
		Viewport:      desk.Viewport,
	})
}

func (s *Server) handleOpen(payload json.RawMessage) *Response {
	var req OpenPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	req.ItemID = strings.TrimSpace(req.ItemID)
	if req.ItemID == "" {
		return NewErrorResponse("item_id is required")
	}

	s.cfgMu.RLock()
	item, found := s.catalog.Lookup(req.ItemID)
	s.cfgMu.RUnlock()
	if !found {
		if req.Type == "" {
			return NewErrorResponse(fmt.Sprintf("Unknown item: %s (pass a type to open an item outside the catalog)", req.ItemID))
		}
		item = content.Item{ID: req.ItemID, Title: req.Title, Type: req.Type, URL: req.URL}
		if item.Title == "" {
			item.Title = req.ItemID
		}
	}

	id := s.mgr.Open(item, req.Origin)
	log.Printf("IPC: opened %s as %s", item.ID, id)
	return ok(OpenData{WindowID: id})
}

func (s *Server) handleWindow(payload json.RawMessage, op func(id string)) *Response {
	var req WindowPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	op(req.WindowID)
	return ok(nil)
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var req MovePayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	s.mgr.Move(req.WindowID, req.X, req.Y, req.Snap)
	return ok(nil)
}

func (s *Server) handleResize(payload json.RawMessage) *Response {
	var req ResizePayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	s.mgr.Resize(req.WindowID, req.Width, req.Height)
	return ok(nil)
}

func (s *Server) handleDrag(payload json.RawMessage) *Response {
	var req GesturePayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid drag payload: %v", err))
	}
	pointer := geom.Point{X: req.X, Y: req.Y}

	var accepted bool
	switch req.Phase {
	case PhaseBegin:
		if req.WindowID == "" {
			return NewErrorResponse("window_id is required")
		}
		accepted = s.mgr.BeginDrag(req.WindowID, pointer)
	case PhaseMove:
		accepted = s.mgr.DragTo(pointer)
	case PhaseEnd:
		accepted = s.mgr.EndDrag(pointer)
	case PhaseCancel:
		accepted = s.mgr.CancelGesture()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown drag phase: %q", req.Phase))
	}
	return ok(GestureData{Accepted: accepted})
}

func (s *Server) handleResizeGesture(payload json.RawMessage) *Response {
	var req GesturePayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize gesture payload: %v", err))
	}
	pointer := geom.Point{X: req.X, Y: req.Y}

	var accepted bool
	switch req.Phase {
	case PhaseBegin:
		if req.WindowID == "" {
			return NewErrorResponse("window_id is required")
		}
		h, err := gesture.ParseHandle(req.Handle)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		accepted = s.mgr.BeginResize(req.WindowID, h, pointer)
	case PhaseMove:
		accepted = s.mgr.ResizeTo(pointer)
	case PhaseEnd:
		accepted = s.mgr.EndResize(pointer)
	case PhaseCancel:
		accepted = s.mgr.CancelGesture()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown resize phase: %q", req.Phase))
	}
	return ok(GestureData{Accepted: accepted})
}

func (s *Server) handleSetViewport(payload json.RawMessage) *Response {
	var req ViewportPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid viewport payload: %v", err))
	}
	applied := s.mgr.ResizeViewport(req.Width, req.Height)
	return ok(ViewportData{Applied: applied, Viewport: s.mgr.Viewport()})
}

func (s *Server) handleGetCatalog() *Response {
	s.cfgMu.RLock()
	items := s.catalog.Items()
	s.cfgMu.RUnlock()
	return ok(CatalogData{Items: items})
}

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

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}
