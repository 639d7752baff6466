package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "close", "minimize", "restore", "maximize", "focus":
		os.Exit(runWindowCommand(os.Args[1], os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "items":
		os.Exit(runItems(os.Args[2:]))
	case "viewport":
		os.Exit(runViewport(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  open [item-id]      Open (or restore) a catalog item's window")
	fmt.Fprintln(w, "  close <window-id>   Close a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window to the dock")
	fmt.Fprintln(w, "  restore <id>        Restore a minimized window")
	fmt.Fprintln(w, "  maximize <id>       Toggle maximize")
	fmt.Fprintln(w, "  focus <id>          Bring a window to the front")
	fmt.Fprintln(w, "  move <id> <x> <y>   Move a window (--snap to drop with edge snapping)")
	fmt.Fprintln(w, "  resize <id> <w> <h> Resize a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List open windows")
	fmt.Fprintln(w, "  items               List catalog items")
	fmt.Fprintln(w, "  viewport <w> <h>    Resize the desktop viewport")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  view                Open the live desktop view")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

// newFlagSet builds a ContinueOnError flag set whose usage prints usage and
// description to stderr.
func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm "+usage)
		if description != "" {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, description)
		}
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and returns the exit code to use when parsing
// fails, or -1 to continue.
func parseFlags(fs *flag.FlagSet, args []string, nargs int) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if nargs >= 0 && fs.NArg() != nargs {
		fmt.Fprintf(os.Stderr, "%s takes %d argument(s)\n", fs.Name(), nargs)
		fs.Usage()
		return 2
	}
	return -1
}

func parseInts(fs *flag.FlagSet, args ...string) ([]int, bool) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid number %q\n", a)
			fs.Usage()
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("expected x,y,w,h, got %q", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Rect{}, fmt.Errorf("invalid rect component %q: %w", p, err)
		}
		vals[i] = v
	}
	return geom.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "status", "Show daemon status via IPC.")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	running := color.New(color.FgGreen).Sprint("true")
	if !status.DaemonRunning {
		running = color.New(color.FgRed).Sprint("false")
	}
	fmt.Fprintf(color.Output, "daemon_running: %s\n", running)
	fmt.Printf("session_id:     %s\n", status.SessionID)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("active_window:  %s\n", status.ActiveID)
	fmt.Printf("viewport:       %dx%d\n", status.Viewport.Width, status.Viewport.Height)
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "reload", "Ask the daemon to re-read its configuration.")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runWindowCommand(name string, args []string) int {
	fs := newFlagSet(name, name+" <window-id>", "")
	if code := parseFlags(fs, args, 1); code >= 0 {
		return code
	}
	id := fs.Arg(0)

	client := ipc.NewClient()
	ops := map[string]func(string) error{
		"close":    client.Close,
		"minimize": client.Minimize,
		"restore":  client.Restore,
		"maximize": client.Maximize,
		"focus":    client.Focus,
	}
	if err := ops[name](id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMove(args []string) int {
	fs := newFlagSet("move", "move [--snap] <window-id> <x> <y>",
		"Move a window. With --snap the position is a drop point: edges snap and\nmostly off-screen windows bounce back.")
	snap := fs.Bool("snap", false, "Apply edge snapping and bounce")
	if code := parseFlags(fs, args, 3); code >= 0 {
		return code
	}
	vals, ok := parseInts(fs, fs.Arg(1), fs.Arg(2))
	if !ok {
		return 2
	}
	if err := ipc.NewClient().Move(fs.Arg(0), vals[0], vals[1], *snap); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runResize(args []string) int {
	fs := newFlagSet("resize", "resize <window-id> <width> <height>", "Resize a window. Sizes are clamped to the minimum window size.")
	if code := parseFlags(fs, args, 3); code >= 0 {
		return code
	}
	vals, ok := parseInts(fs, fs.Arg(1), fs.Arg(2))
	if !ok {
		return 2
	}
	if err := ipc.NewClient().Resize(fs.Arg(0), vals[0], vals[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runList(args []string) int {
	fs := newFlagSet("list", "list [--json]", "List open windows in open order.")
	jsonOut := fs.Bool("json", false, "Print the full desktop snapshot as JSON")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	desk, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(desk)
	}
	printWindows(color.Output, desk)
	return 0
}

func printWindows(w io.Writer, desk *wm.Desktop) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"), bold.Sprint("PHASE"), bold.Sprint("Z"), bold.Sprint("RECT"), bold.Sprint("STATE"))
	for _, win := range desk.Windows {
		var state []string
		if win.Active {
			state = append(state, "active")
		}
		if win.Minimized {
			state = append(state, "minimized")
		}
		if win.Maximized {
			state = append(state, "maximized")
		}
		if win.Snapped {
			state = append(state, "snapped:"+win.SnapEdge)
		}
		r := win.Rect
		tbl.AddRow(win.ID, win.Title, win.Phase, win.ZIndex,
			fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.Width, r.Height), strings.Join(state, ","))
	}
	tbl.RightAlign(3)
	fmt.Fprintln(w, tbl)
}

func runItems(args []string) int {
	fs := newFlagSet("items", "items [--open]", "List catalog items, or with --open the items that have a window.")
	openOnly := fs.Bool("open", false, "Only list items with an open window")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	if *openOnly {
		ids, err := client.ListOpenItems()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return 0
	}

	items, err := client.GetCatalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"), bold.Sprint("TYPE"))
	for _, it := range items {
		tbl.AddRow(it.ID, it.Title, it.Type)
	}
	fmt.Fprintln(color.Output, tbl)
	return 0
}

func runViewport(args []string) int {
	fs := newFlagSet("viewport", "viewport <width> <height>", "Resize the desktop viewport.")
	if code := parseFlags(fs, args, 2); code >= 0 {
		return code
	}
	vals, ok := parseInts(fs, fs.Arg(0), fs.Arg(1))
	if !ok {
		return 2
	}
	data, err := ipc.NewClient().SetViewport(vals[0], vals[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !data.Applied {
		fmt.Printf("viewport unchanged: %dx%d\n", data.Viewport.Width, data.Viewport.Height)
		if data.Viewport.Width != vals[0] || data.Viewport.Height != vals[1] {
			return 1
		}
		return 0
	}
	fmt.Printf("viewport: %dx%d\n", data.Viewport.Width, data.Viewport.Height)
	return 0
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
