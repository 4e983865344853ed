package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/1broseidon/slotcycle/internal/config"
	"github.com/1broseidon/slotcycle/internal/ipc"
	"github.com/1broseidon/slotcycle/internal/platform"
	"github.com/1broseidon/slotcycle/internal/slots"
)

func runCenter(args []string) int {
	fs := newFlagSet("center", "center [--direct]",
		"Move the focused window to the center slot of its monitor.")
	direct := fs.Bool("direct", false, "Act over a fresh X connection instead of the daemon (no slot state)")
	path := fs.String("path", "", "Config file path for --direct (default: ~/.config/slotcycle/config.yaml)")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}

	if *direct {
		return withDirectPositioner(*path, func(p *slots.Positioner) (slots.Placement, error) {
			return p.Center()
		})
	}
	return reportPlacement(ipc.NewClient().Center())
}

func runCycle(args []string) int {
	fs := newFlagSet("cycle", "cycle", "Move the focused window to the slot after the last one used.")
	if code := parseFlags(fs, args, 0); code >= 0 {
		return code
	}
	return reportPlacement(ipc.NewClient().Cycle())
}

func runPlace(args []string) int {
	fs := newFlagSet("place", "place [--direct] <slot>",
		"Move the focused window to slot (monitor index * divisions + section).\n"+
			"Slots wrap around, so -1 is the last slot of the rightmost monitor.")
	direct := fs.Bool("direct", false, "Act over a fresh X connection instead of the daemon (no slot state)")
	path := fs.String("path", "", "Config file path for --direct (default: ~/.config/slotcycle/config.yaml)")
	if code := parseFlags(fs, slotArgs(args), 1); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "place requires <slot>")
		fs.Usage()
		return 2
	}

	slot, err := parseSlot(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *direct {
		return withDirectPositioner(*path, func(p *slots.Positioner) (slots.Placement, error) {
			return p.Place(slot)
		})
	}
	return reportPlacement(ipc.NewClient().Place(slot))
}

// slotArgs moves a trailing negative slot behind "--" so the flag parser
// does not read it as a flag.
func slotArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	last := args[len(args)-1]
	if n, err := strconv.Atoi(last); err != nil || n >= 0 {
		return args
	}
	for _, a := range args[:len(args)-1] {
		if a == "--" {
			return args
		}
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	return append(out, "--", last)
}

func parseSlot(arg string) (int, error) {
	slot, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid slot %q: must be an integer", arg)
	}
	return slot, nil
}

func reportPlacement(p *slots.Placement, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(formatPlacement(p))
	return 0
}

// withDirectPositioner runs action on a positioner bound to a new display
// connection. The slot state lives only for this call.
func withDirectPositioner(path string, action func(*slots.Positioner) (slots.Placement, error)) int {
	cfg, _, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	p := slots.NewPositioner(backend, slots.Options{
		Divisions: cfg.Divisions,
		Inset:     cfg.Inset,
		Logger:    newLogger(cfg, nil),
	})
	placement, err := action(p)
	return reportPlacement(&placement, err)
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, "", err
	}
	return res.Config, path, nil
}
