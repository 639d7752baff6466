package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/tui"
)

func runView(args []string) int {
	fs := newFlagSet("view", "view [--refresh DURATION]",
		"Live view of the desktop: a scaled preview of every window, the dock\n"+
			"and the catalog. Keys act on the running daemon.")
	refresh := fs.Duration("refresh", tui.DefaultRefresh, "How often to poll the daemon")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(client, *refresh); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
