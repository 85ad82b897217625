//go:build windows

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// EnableVirtualTerminal turns on VT sequence processing for the console
// attached to standard output and VT input for standard input.
func EnableVirtualTerminal() error {
	out := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(out, &mode); err != nil {
		return fmt.Errorf("GetConsoleMode(stdout): %w", err)
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
		if err := windows.SetConsoleMode(out, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			return fmt.Errorf("SetConsoleMode(stdout): %w", err)
		}
	}

	in := windows.Handle(os.Stdin.Fd())
	if err := windows.GetConsoleMode(in, &mode); err != nil {
		return fmt.Errorf("GetConsoleMode(stdin): %w", err)
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_INPUT == 0 {
		if err := windows.SetConsoleMode(in, mode|windows.ENABLE_VIRTUAL_TERMINAL_INPUT); err != nil {
			return fmt.Errorf("SetConsoleMode(stdin): %w", err)
		}
	}
	return nil
}
