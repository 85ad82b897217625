// Package terminal talks to the user's terminal with raw control sequences.
//
// A Terminal exclusively owns one input stream and one output stream for its
// lifetime. The input stream is shared with the keyboard, so callers must not
// read it elsewhere while a size query is in flight.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/stlalpha/vedit/internal/ansi"
)

// ScreenSize is the terminal's text area in character cells.
type ScreenSize struct {
	Width  int
	Height int
}

func (s ScreenSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Valid reports whether both dimensions are at least one cell.
func (s ScreenSize) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

// Terminal writes control sequences to out and reads device replies from in.
type Terminal struct {
	in  io.Reader
	out io.Writer

	inFd  int // -1 unless in is a terminal device
	saved *term.State
}

// New returns a Terminal over the given streams. When in is a terminal
// device, raw mode and non-blocking drain use its file descriptor.
func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: in, out: out, inFd: -1}
	if f, ok := in.(*os.File); ok {
		if fd := int(f.Fd()); term.IsTerminal(fd) {
			t.inFd = fd
		}
	}
	return t
}

// NewStdio returns a Terminal over the process's standard input and output.
func NewStdio() *Terminal {
	return New(os.Stdin, os.Stdout)
}

// IsTerminal reports whether the input stream is a terminal device.
func (t *Terminal) IsTerminal() bool {
	return t.inFd >= 0
}

// WriteString writes printable text at the current cursor position.
func (t *Terminal) WriteString(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(t.out, s)
	return err
}

// MoveCursor moves the cursor count cells in dir using single-step
// relative moves. A zero count writes nothing; a negative count panics.
func (t *Terminal) MoveCursor(dir ansi.Direction, count int) error {
	return t.WriteString(ansi.CursorSteps(dir, count))
}

// SetForeground sets the character color, optionally bright.
func (t *Terminal) SetForeground(c ansi.Color, bright bool) error {
	return t.WriteString(ansi.Foreground(c, bright))
}

// SetColors sets foreground, background and a single attribute.
func (t *Terminal) SetColors(fg, bg ansi.Color, attr ansi.Attribute) error {
	return t.WriteString(ansi.Colors(fg, bg, attr))
}

// ResetAttributes restores the terminal's default colors and attributes.
func (t *Terminal) ResetAttributes() error {
	return t.WriteString(ansi.Reset())
}

// EnterAlternateScreen switches to the alternate screen so the shell's
// scrollback survives the editing session.
func (t *Terminal) EnterAlternateScreen() error {
	return t.WriteString(ansi.AltScreenOn())
}

// LeaveAlternateScreen switches back to the normal screen.
func (t *Terminal) LeaveAlternateScreen() error {
	return t.WriteString(ansi.AltScreenOff())
}

// ReadKey blocks for one byte of keyboard input.
func (t *Terminal) ReadKey() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(t.in, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
