package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskwm/internal/content"
)

// catalogItem implements list.Item for the catalog sidebar.
type catalogItem struct {
	item   content.Item
	isOpen bool
}

func (i catalogItem) Title() string {
	if i.isOpen {
		return "* " + i.item.Title
	}
	return "  " + i.item.Title
}

func (i catalogItem) Description() string { return string(i.item.Type) }
func (i catalogItem) FilterValue() string { return i.item.Title }

func newCatalogList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Catalog"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	return l
}

// buildCatalogItems marks the items that currently have a window.
func buildCatalogItems(items []content.Item, openItems map[string]bool) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, catalogItem{item: it, isOpen: openItems[it.ID]})
	}
	return out
}
