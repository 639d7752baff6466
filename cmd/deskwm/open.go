package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/ipc"
)

func runOpen(args []string) int {
	fs := newFlagSet("open", "open [--title T --type TYPE --url URL] [--origin x,y,w,h] [item-id]",
		"Open the window for a catalog item, or restore and focus it if it is\n"+
			"already open. Without an item id an interactive picker is shown.\n"+
			"Items outside the catalog need --type.")
	title := fs.String("title", "", "Window title for items outside the catalog")
	typ := fs.String("type", "", "Content type for items outside the catalog")
	url := fs.String("url", "", "Content URL for items outside the catalog")
	origin := fs.String("origin", "", "Launching icon rect x,y,w,h the window grows from")
	if code := parseFlags(fs, args, -1); code >= 0 {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "open takes at most one item id")
		fs.Usage()
		return 2
	}

	req := ipc.OpenPayload{
		Title: *title,
		Type:  content.Type(*typ),
		URL:   *url,
	}
	if *origin != "" {
		r, err := parseRect(*origin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		req.Origin = &r
	}

	client := ipc.NewClient()
	if fs.NArg() == 1 {
		req.ItemID = fs.Arg(0)
	} else {
		itemID, err := pickItem(client)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return 130
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		req.ItemID = itemID
	}

	id, err := client.Open(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(id)
	return 0
}

// pickItem shows the catalog in an interactive select. Items that already
// have a window are marked.
func pickItem(client *ipc.Client) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("open requires an item id when stdin is not a terminal")
	}

	items, err := client.GetCatalog()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("catalog is empty")
	}
	open, err := client.ListOpenItems()
	if err != nil {
		return "", err
	}

	var choice string
	sel := huh.NewSelect[string]().
		Title("Open").
		Options(catalogOptions(items, open)...).
		Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func catalogOptions(items []content.Item, openIDs []string) []huh.Option[string] {
	isOpen := make(map[string]bool, len(openIDs))
	for _, id := range openIDs {
		isOpen[id] = true
	}
	opts := make([]huh.Option[string], 0, len(items))
	for _, it := range items {
		label := fmt.Sprintf("%s (%s)", it.Title, it.Type)
		if isOpen[it.ID] {
			label = "* " + label
		}
		opts = append(opts, huh.NewOption(label, it.ID))
	}
	return opts
}
