package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/slots"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "center":
		os.Exit(runCenter(os.Args[2:]))
	case "cycle":
		os.Exit(runCycle(os.Args[2:]))
	case "place":
		os.Exit(runPlace(os.Args[2:]))
	case "reset":
		os.Exit(runSimple("reset", "Forget the last slot so the next cycle starts at slot 0.", os.Args[2:], (*ipc.Client).Reset))
	case "enable":
		os.Exit(runSimple("enable", "Bind the center and cycle hotkeys.", os.Args[2:], (*ipc.Client).Enable))
	case "disable":
		os.Exit(runSimple("disable", "Unbind the hotkeys and reset the slot state.", os.Args[2:], (*ipc.Client).Disable))
	case "reload":
		os.Exit(runSimple("reload", "Reload the daemon configuration from disk.", os.Args[2:], (*ipc.Client).Reload))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "slots":
		os.Exit(runSlots(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: slotcycle <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the slotcycle daemon (foreground)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  center              Move the focused window to the center slot")
	fmt.Fprintln(w, "  cycle               Move the focused window to the next slot")
	fmt.Fprintln(w, "  place <slot>        Move the focused window to a given slot")
	fmt.Fprintln(w, "  reset               Forget the last slot")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  enable              Bind hotkeys")
	fmt.Fprintln(w, "  disable             Unbind hotkeys and reset state")
	fmt.Fprintln(w, "  reload              Reload configuration")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List monitors and work areas")
	fmt.Fprintln(w, "  slots               List slots of the current layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Edit the slot layout interactively")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'slotcycle <command> --help' for command-specific options.")
}

// newFlagSet returns a flag set whose usage prints usage followed by the
// flag defaults.
func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slotcycle %s\n", usage)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, description)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags returns -1 when parsing succeeded, otherwise the exit code.
func parseFlags(fs *flag.FlagSet, args []string, maxArgs int) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > maxArgs {
		fmt.Fprintf(os.Stderr, "%s: too many arguments\n", fs.Name())
		fs.Usage()
		return 2
	}
	return -1
}

func runSimple(name, description string, args []string, call func(*ipc.Client) error) int {
	fs := newFlagSet(name, name, description)
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	if err := call(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "status [--json]", "Show daemon status via IPC.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(status)
	}

	last := "none"
	if status.LastSlot != nil {
		last = strconv.Itoa(*status.LastSlot)
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("enabled:        %v\n", status.Enabled)
	fmt.Printf("divisions:      %d\n", status.Divisions)
	fmt.Printf("inset:          %d\n", status.Inset)
	fmt.Printf("last_slot:      %s\n", last)
	fmt.Printf("center_hotkey:  %s\n", status.CenterHotkey)
	fmt.Printf("cycle_hotkey:   %s\n", status.CycleHotkey)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := newFlagSet("monitors", "monitors [--json]", "List monitors ordered left to right with their work areas.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	data, err := ipc.NewClient().GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(data)
	}
	for i, m := range data.Monitors {
		fmt.Printf("%d: %-10s %dx%d+%d+%d  work %dx%d+%d+%d\n",
			i, m.Name,
			m.Width, m.Height, m.X, m.Y,
			m.WorkWidth, m.WorkHeight, m.WorkX, m.WorkY)
	}
	return 0
}

func runSlots(args []string) int {
	fs := newFlagSet("slots", "slots [--json]", "List every slot of the current layout.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	data, err := ipc.NewClient().ListSlots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(data)
	}
	fmt.Print(formatSlots(data.Slots))
	return 0
}

func formatSlots(infos []slots.SlotInfo) string {
	var b strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&b, "slot %-2d monitor %d section %d  %dx%d+%d+%d\n",
			info.Slot, info.Monitor, info.Section,
			info.Rect.Width, info.Rect.Height, info.Rect.X, info.Rect.Y)
	}
	return b.String()
}

func formatPlacement(p *slots.Placement) string {
	if !p.Placed {
		return "no focused window"
	}
	return fmt.Sprintf("window 0x%x -> slot %d (%dx%d+%d+%d)",
		uint32(p.Window), p.Slot, p.Rect.Width, p.Rect.Height, p.Rect.X, p.Rect.Y)
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
