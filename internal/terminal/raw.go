package terminal

import (
	"errors"
	"fmt"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by MakeRaw when input is not a terminal device.
var ErrNotTerminal = errors.New("input is not a terminal")

// MakeRaw puts the input terminal into raw mode: no echo, no line
// buffering, no signal keys. The size query depends on it, since a cooked
// terminal would echo the reply and hold it until a newline arrives.
func (t *Terminal) MakeRaw() error {
	if t.inFd < 0 {
		return ErrNotTerminal
	}
	if t.saved != nil {
		return nil
	}
	state, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.saved = state
	return nil
}

// Restore returns the terminal to the mode it had before MakeRaw. It is
// safe to call more than once.
func (t *Terminal) Restore() error {
	if t.saved == nil {
		return nil
	}
	state := t.saved
	t.saved = nil
	if err := term.Restore(t.inFd, state); err != nil {
		return fmt.Errorf("restore terminal mode: %w", err)
	}
	return nil
}
