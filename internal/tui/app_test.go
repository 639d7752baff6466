package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/wm"
)

type fakeDesktop struct {
	desk    wm.Desktop
	catalog []content.Item
	calls   []string
	listErr error
}

func (f *fakeDesktop) ListWindows() (*wm.Desktop, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	d := f.desk
	return &d, nil
}

func (f *fakeDesktop) GetCatalog() ([]content.Item, error) { return f.catalog, nil }

func (f *fakeDesktop) Open(req ipc.OpenPayload) (string, error) {
	f.calls = append(f.calls, "open "+req.ItemID)
	id := "window-" + req.ItemID
	f.desk.Windows = append(f.desk.Windows, wm.WindowView{ID: id, ItemID: req.ItemID, Phase: anim.PhaseOpening, ZIndex: 13, Active: true})
	f.desk.ActiveID = id
	return id, nil
}

func (f *fakeDesktop) Close(id string) error {
	f.calls = append(f.calls, "close "+id)
	return nil
}

func (f *fakeDesktop) Minimize(id string) error {
	f.calls = append(f.calls, "minimize "+id)
	return nil
}

func (f *fakeDesktop) Restore(id string) error {
	f.calls = append(f.calls, "restore "+id)
	return nil
}

func (f *fakeDesktop) Maximize(id string) error {
	f.calls = append(f.calls, "maximize "+id)
	return nil
}

func (f *fakeDesktop) Focus(id string) error {
	f.calls = append(f.calls, "focus "+id)
	return nil
}

func (f *fakeDesktop) Move(id string, x, y int, snap bool) error {
	f.calls = append(f.calls, "move "+id)
	return nil
}

func newFake() *fakeDesktop {
	return &fakeDesktop{
		desk: wm.Desktop{
			Viewport: layout.Viewport{Width: 1440, Height: 900},
			ActiveID: "window-b",
			Windows: []wm.WindowView{
				{ID: "window-a", ItemID: "a", Title: "A", Phase: anim.PhaseOpen, ZIndex: 11, Minimized: true},
				{ID: "window-b", ItemID: "b", Title: "B", Phase: anim.PhaseOpen, ZIndex: 12, Active: true,
					Rect: geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}},
			},
		},
		catalog: []content.Item{
			{ID: "a", Title: "A", Type: content.TypeNotes},
			{ID: "c", Title: "C", Type: content.TypeBlog},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a model that has already seen one snapshot and the catalog.
func loaded(t *testing.T, fake *fakeDesktop) model {
	t.Helper()
	m := newModel(fake, time.Second)
	next, _ := m.Update(m.fetchSnapshot("")())
	next, _ = next.Update(next.(model).fetchCatalog()())
	next, _ = next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(model)
}

// press sends a key and runs the resulting command, feeding its message back.
func press(t *testing.T, m model, k string) model {
	t.Helper()
	next, cmd := m.Update(key(k))
	if cmd != nil {
		next, _ = next.Update(cmd())
	}
	return next.(model)
}

func TestModel_SelectsActiveWindowOnFirstSnapshot(t *testing.T) {
	m := loaded(t, newFake())
	if !m.connected {
		t.Fatalf("expected connected")
	}
	if m.selectedID != "window-b" {
		t.Fatalf("selected = %q", m.selectedID)
	}
	if len(m.catalog.Items()) != 2 {
		t.Fatalf("catalog items = %d", len(m.catalog.Items()))
	}
	if first := m.catalog.Items()[0].(catalogItem); !first.isOpen {
		t.Fatalf("expected item a marked open")
	}
}

func TestModel_DesktopKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		calls []string
	}{
		{"focus active", []string{"enter"}, []string{"focus window-b"}},
		{"restore minimized", []string{"h", "enter"}, []string{"restore window-a"}},
		{"wraps selection", []string{"l", "f"}, []string{"restore window-a"}},
		{"minimize", []string{"m"}, []string{"minimize window-b"}},
		{"maximize", []string{"z"}, []string{"maximize window-b"}},
		{"close", []string{"x"}, []string{"close window-b"}},
		{"move", []string{"L"}, []string{"move window-b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			m := loaded(t, fake)
			for _, k := range tt.keys {
				m = press(t, m, k)
			}
			if strings.Join(fake.calls, ",") != strings.Join(tt.calls, ",") {
				t.Fatalf("calls = %v, want %v", fake.calls, tt.calls)
			}
		})
	}
}

func TestModel_CatalogOpenSelectsNewWindow(t *testing.T) {
	fake := newFake()
	m := loaded(t, fake)

	m = press(t, m, "tab")
	if m.focus != paneCatalog {
		t.Fatalf("expected catalog pane focused")
	}
	m = press(t, m, "down")
	m = press(t, m, "enter")

	if len(fake.calls) != 1 || fake.calls[0] != "open c" {
		t.Fatalf("calls = %v", fake.calls)
	}
	if m.selectedID != "window-c" {
		t.Fatalf("selected = %q", m.selectedID)
	}
	if m.statusText != "opened c" {
		t.Fatalf("status = %q", m.statusText)
	}
}

func TestModel_DisconnectedDaemon(t *testing.T) {
	fake := newFake()
	fake.listErr = errors.New("failed to connect to daemon")
	m := newModel(fake, time.Second)
	next, _ := m.Update(m.fetchSnapshot("")())
	m = next.(model)
	if m.connected {
		t.Fatalf("expected disconnected")
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if view := next.View(); !strings.Contains(view, "daemon not running") {
		t.Fatalf("expected not running status in view")
	}
	// Keys without a selection do nothing.
	if _, cmd := next.Update(key("m")); cmd != nil {
		t.Fatalf("expected no command without a selected window")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := loaded(t, newFake())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
