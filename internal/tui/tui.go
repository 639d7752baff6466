package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
)

// DefaultRefresh is how often the view polls the daemon.
const DefaultRefresh = 500 * time.Millisecond

// Desktop is the daemon surface the view reads and drives. *ipc.Client
// satisfies it.
type Desktop interface {
	ListWindows() (*wm.Desktop, error)
	GetCatalog() ([]content.Item, error)
	Open(req ipc.OpenPayload) (string, error)
	Close(windowID string) error
	Minimize(windowID string) error
	Restore(windowID string) error
	Maximize(windowID string) error
	Focus(windowID string) error
	Move(windowID string, x, y int, snap bool) error
}

// Run starts the full-screen desktop view and blocks until the user quits.
func Run(desktop Desktop, refresh time.Duration) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	p := tea.NewProgram(newModel(desktop, refresh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
