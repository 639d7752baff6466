package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
)

// pane identifies which part of the view receives keys.
type pane int

const (
	paneDesktop pane = iota
	paneCatalog
)

const (
	sidebarWidth = 28
	moveStep     = 40
)

// snapshotMsg carries a fresh desktop snapshot, optionally with the label of
// the action that triggered it.
type snapshotMsg struct {
	desk     *wm.Desktop
	err      error
	status   string
	selectID string
}

type catalogMsg struct {
	items []content.Item
	err   error
}

type tickMsg time.Time

// model is the root bubbletea model for the desktop view.
type model struct {
	desktop Desktop
	refresh time.Duration

	desk       *wm.Desktop
	connected  bool
	selectedID string
	items      []content.Item
	catalog    list.Model
	focus      pane

	statusText string

	width  int
	height int
}

func newModel(desktop Desktop, refresh time.Duration) model {
	return model{
		desktop: desktop,
		refresh: refresh,
		catalog: newCatalogList(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchSnapshot(""), m.fetchCatalog(), m.tick())
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) fetchSnapshot(status string) tea.Cmd {
	desktop := m.desktop
	return func() tea.Msg {
		desk, err := desktop.ListWindows()
		return snapshotMsg{desk: desk, err: err, status: status}
	}
}

func (m model) fetchCatalog() tea.Cmd {
	desktop := m.desktop
	return func() tea.Msg {
		items, err := desktop.GetCatalog()
		return catalogMsg{items: items, err: err}
	}
}

// act runs op against the daemon and then refreshes the snapshot.
func (m model) act(label string, op func() error) tea.Cmd {
	desktop := m.desktop
	return func() tea.Msg {
		if err := op(); err != nil {
			return snapshotMsg{err: fmt.Errorf("%s: %w", label, err)}
		}
		desk, err := desktop.ListWindows()
		return snapshotMsg{desk: desk, err: err, status: label}
	}
}

// open opens itemID and selects the resulting window in the dock.
func (m model) open(itemID string) tea.Cmd {
	desktop := m.desktop
	return func() tea.Msg {
		id, err := desktop.Open(ipc.OpenPayload{ItemID: itemID})
		if err != nil {
			return snapshotMsg{err: fmt.Errorf("open %s: %w", itemID, err)}
		}
		desk, err := desktop.ListWindows()
		return snapshotMsg{desk: desk, err: err, status: "opened " + itemID, selectID: id}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.catalog.SetSize(sidebarWidth, m.bodyHeight())
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchSnapshot(""), m.tick())

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil

	case catalogMsg:
		if msg.err != nil {
			m.statusText = "catalog: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		m.rebuildCatalog()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.focus == paneDesktop {
				m.focus = paneCatalog
			} else {
				m.focus = paneDesktop
			}
			return m, nil
		}
		if m.focus == paneCatalog {
			return m.updateCatalog(msg)
		}
		return m.updateDesktop(msg)
	}
	return m, nil
}

func (m *model) applySnapshot(msg snapshotMsg) {
	if msg.err != nil {
		m.statusText = msg.err.Error()
		if !strings.Contains(msg.err.Error(), "daemon error") {
			m.connected = false
		}
		return
	}
	m.connected = true
	m.desk = msg.desk
	if msg.status != "" {
		m.statusText = msg.status
	}
	if msg.selectID != "" {
		m.selectedID = msg.selectID
	}

	if _, ok := m.windowByID(m.selectedID); !ok {
		m.selectedID = ""
		if m.desk.ActiveID != "" {
			m.selectedID = m.desk.ActiveID
		} else if len(m.desk.Windows) > 0 {
			m.selectedID = m.desk.Windows[0].ID
		}
	}
	m.rebuildCatalog()
}

func (m *model) rebuildCatalog() {
	open := make(map[string]bool)
	if m.desk != nil {
		for _, w := range m.desk.Windows {
			open[w.ItemID] = true
		}
	}
	m.catalog.SetItems(buildCatalogItems(m.items, open))
}

func (m model) windowByID(id string) (wm.WindowView, bool) {
	if m.desk == nil || id == "" {
		return wm.WindowView{}, false
	}
	for _, w := range m.desk.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return wm.WindowView{}, false
}

// moveSelection steps through the dock, wrapping at either end.
func (m *model) moveSelection(delta int) {
	if m.desk == nil || len(m.desk.Windows) == 0 {
		return
	}
	idx := 0
	for i, w := range m.desk.Windows {
		if w.ID == m.selectedID {
			idx = i
			break
		}
	}
	n := len(m.desk.Windows)
	idx = ((idx+delta)%n + n) % n
	m.selectedID = m.desk.Windows[idx].ID
}

func (m model) updateDesktop(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveSelection(-1)
		return m, nil
	case "right", "l":
		m.moveSelection(1)
		return m, nil
	}

	w, ok := m.windowByID(m.selectedID)
	if !ok {
		return m, nil
	}
	id := w.ID

	switch msg.String() {
	case "enter", "f":
		if w.Minimized {
			return m, m.act("restored "+id, func() error { return m.desktop.Restore(id) })
		}
		return m, m.act("focused "+id, func() error { return m.desktop.Focus(id) })
	case "m":
		return m, m.act("minimized "+id, func() error { return m.desktop.Minimize(id) })
	case "z":
		return m, m.act("toggled maximize "+id, func() error { return m.desktop.Maximize(id) })
	case "x":
		return m, m.act("closed "+id, func() error { return m.desktop.Close(id) })
	case "H", "J", "K", "L":
		dx, dy := 0, 0
		switch msg.String() {
		case "H":
			dx = -moveStep
		case "L":
			dx = moveStep
		case "K":
			dy = -moveStep
		case "J":
			dy = moveStep
		}
		x, y := w.Rect.X+dx, w.Rect.Y+dy
		return m, m.act(fmt.Sprintf("moved %s to %d,%d", id, x, y), func() error {
			return m.desktop.Move(id, x, y, true)
		})
	}
	return m, nil
}

func (m model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		sel, ok := m.catalog.SelectedItem().(catalogItem)
		if !ok {
			return m, nil
		}
		return m, m.open(sel.item.ID)
	}
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

// bodyHeight is the height left for the desktop canvas and sidebar:
// total minus status bar, dock and help bar.
func (m model) bodyHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, m.desk, m.statusText, m.width)
	dock := renderDock(m.desk, m.selectedID, m.width)
	helpBar := renderHelpBar(m.focus, m.width)

	bodyHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(dock) - lipgloss.Height(helpBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	canvasWidth := m.width - sidebarWidth - 1
	if canvasWidth < 5 {
		canvasWidth = 5
	}

	canvas := strings.Join(renderDesktop(m.desk, canvasWidth, bodyHeight), "\n")
	if m.focus == paneDesktop {
		canvas = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Render(canvas)
	} else {
		canvas = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(canvas)
	}
	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(bodyHeight).
		PaddingLeft(1).
		Render(m.catalog.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		body,
		dock,
		helpBar,
	)
}
