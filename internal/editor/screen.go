package editor

import (
	"fmt"

	"github.com/stlalpha/vedit/internal/ansi"
)

// statusText describes the current file for the status line.
func (s *Session) statusText() string {
	fb := s.Current()
	line, col := fb.Cursor()
	text := fmt.Sprintf(" %s  %s  %s  %d:%d  [%d/%d]", fb.Name(), fb.Format(), s.screen, line, col, s.current+1, len(s.files))
	if err := fb.OpenErr(); err != nil {
		text += "  " + err.Error()
	}
	return text
}

// DrawStatus writes a one-line status on the top row of the screen: file
// name, format, screen size, cursor position and, when the file could not
// be read, the reason. It only uses relative cursor moves, so it first
// climbs the full screen height and then returns to column one.
func (s *Session) DrawStatus() error {
	if s.state != Ready {
		return ErrNotReady
	}

	fg, bg, attr := statusFg, statusBg, statusAttr
	if s.Current().OpenErr() != nil {
		fg, bg, attr = statusErrFg, statusErrBg, statusErrAttr
	}

	steps := []func() error{
		func() error { return s.console.MoveCursor(ansi.Up, s.screen.Height) },
		func() error { return s.console.MoveCursor(ansi.Left, s.screen.Width) },
		func() error { return s.console.SetColors(fg, bg, attr) },
		func() error { return s.console.WriteString(ansi.FitVisible(s.statusText(), s.screen.Width)) },
		s.console.ResetAttributes,
		func() error { return s.console.MoveCursor(ansi.Left, s.screen.Width) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("draw status: %w", err)
		}
	}
	return nil
}
