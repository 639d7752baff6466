package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/deskwm/internal/wm"
)

// dockLabelWidth caps a dock entry's title in terminal cells.
const dockLabelWidth = 18

var (
	activeDockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	dockItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	minimizedDockStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Background(lipgloss.Color("236")).
				Italic(true).
				Padding(0, 1)

	dockGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")
)

// renderDock renders one entry per window in open order. The selected entry
// is bracketed, the active window highlighted and minimized windows dimmed.
func renderDock(desk *wm.Desktop, selectedID string, width int) string {
	style := lipgloss.NewStyle().Width(width).Background(lipgloss.Color("235"))
	if desk == nil || len(desk.Windows) == 0 {
		return style.Foreground(lipgloss.Color("241")).Padding(0, 1).Render("dock empty")
	}

	var items []string
	for _, w := range desk.Windows {
		label := ansi.Truncate(w.Title, dockLabelWidth, "…")
		if w.ID == selectedID {
			label = "[" + label + "]"
		}
		switch {
		case w.Minimized:
			items = append(items, minimizedDockStyle.Render(label))
		case w.Active:
			items = append(items, activeDockStyle.Render(label))
		default:
			items = append(items, dockItemStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(items, dockGap.Render())...)
	return style.Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, desk *wm.Desktop, status string, width int) string {
	var text string
	if connected && desk != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{
			dot + " daemon connected",
			fmt.Sprintf("%d windows", len(desk.Windows)),
			fmt.Sprintf("viewport %dx%d", desk.Viewport.Width, desk.Viewport.Height),
		}
		if desk.ActiveID != "" {
			parts = append(parts, "active:"+desk.ActiveID)
		}
		if desk.Gesture != "" && desk.Gesture != "idle" {
			parts = append(parts, "gesture:"+desk.Gesture)
		}
		text = strings.Join(parts, "  ")
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		text = dot + " daemon not running"
	}
	if status != "" {
		text += "  " + status
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(text)
}

// renderHelpBar renders the bottom help/keybinding bar for the focused pane.
func renderHelpBar(p pane, width int) string {
	help := "←/→: select  enter: focus  m: minimize  z: maximize  x: close  H/J/K/L: move  tab: catalog  q: quit"
	if p == paneCatalog {
		help = "↑/↓: select  enter: open  tab: desktop  q: quit"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
