// Package tui is an interactive editor for the slot layout. It previews
// the slots of the connected monitors and writes the result back to the
// config file.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/slotcycle/internal/ipc"
)

// Run starts the TUI for the config at configPath and blocks until the
// user quits.
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	m, err := newModel(configPath, ipc.NewClient())
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.fatalErr != nil {
		return fm.fatalErr
	}
	return nil
}
