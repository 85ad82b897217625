package editor

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/stlalpha/vedit/internal/ansi"
	"github.com/stlalpha/vedit/internal/logging"
	"github.com/stlalpha/vedit/internal/terminal"
)

var (
	// ErrNotReady is returned by drawing operations before Start has
	// learned the screen size and laid out the current file.
	ErrNotReady = errors.New("session not ready")
	// ErrNoSuchFile is returned when an index or ID names no open file.
	ErrNoSuchFile = errors.New("no such file in session")
)

// Console is the part of the terminal the session drives.
// *terminal.Terminal implements it.
type Console interface {
	Drain() (int, error)
	QuerySize() (terminal.ScreenSize, error)
	MoveCursor(dir ansi.Direction, count int) error
	SetColors(fg, bg ansi.Color, attr ansi.Attribute) error
	ResetAttributes() error
	WriteString(s string) error
}

// State tracks how far session start-up has progressed.
type State int

const (
	Uninitialized State = iota
	SizeKnown
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case SizeKnown:
		return "size-known"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures how a session opens and names files.
type Options struct {
	// DefaultFormat is recorded on every file the session opens. Zero
	// means DefaultFormat.
	DefaultFormat TextFormat
	// UntitledDir is where new unnamed files are placed.
	UntitledDir string
	// Exists overrides the filesystem check used when naming new files.
	Exists func(path string) bool
	// Decoders overrides the built-in decoder for individual formats.
	Decoders map[TextFormat]Decoder
}

// Session owns the open files, which one is current and the last known
// screen size. Buffers hold no reference back to the session.
type Session struct {
	id      uuid.UUID
	console Console
	opts    Options

	files   []*FileBuffer
	current int
	screen  terminal.ScreenSize
	state   State
}

// NewSession opens one buffer per path, in order. Files that cannot be
// read still get a buffer, with the failure recorded on it. With no paths
// a single new untitled file is created. The only error is running out of
// untitled names.
func NewSession(console Console, opts Options, paths ...string) (*Session, error) {
	if !opts.DefaultFormat.Valid() {
		opts.DefaultFormat = DefaultFormat
	}
	s := &Session{
		id:      uuid.New(),
		console: console,
		opts:    opts,
	}
	for _, p := range paths {
		s.files = append(s.files, s.open(p))
	}
	if len(s.files) == 0 {
		fb, err := s.newUntitled()
		if err != nil {
			return nil, err
		}
		s.files = append(s.files, fb)
	}
	logging.Debug("session %s: created with %d file(s)", s.id, len(s.files))
	return s, nil
}

func (s *Session) open(path string) *FileBuffer {
	dec, ok := s.opts.Decoders[s.opts.DefaultFormat]
	if !ok {
		dec = DecoderFor(s.opts.DefaultFormat)
	}
	fb := OpenWithDecoder(path, s.opts.DefaultFormat, dec)
	if err := fb.OpenErr(); err != nil {
		log.Printf("WARN: session %s: cannot read %s: %v", s.id, path, err)
	} else {
		logging.Debug("session %s: opened %s (%d lines, %s)", s.id, path, fb.LineCount(), fb.Format())
	}
	return fb
}

func (s *Session) newUntitled() (*FileBuffer, error) {
	var (
		path string
		err  error
	)
	if s.opts.Exists != nil {
		dir := s.opts.UntitledDir
		path, err = UniqueName(func(name string) bool {
			return s.opts.Exists(filepath.Join(dir, name))
		})
		if err == nil && dir != "" {
			path = filepath.Join(dir, path)
		}
	} else {
		path, err = UniqueNameIn(s.opts.UntitledDir)
	}
	if err != nil {
		return nil, fmt.Errorf("new file: %w", err)
	}
	return s.open(path), nil
}

// Start drains stray keyboard input, asks the terminal for its size and
// lays the current file out over the whole screen. Nothing may be drawn
// before Start has returned nil once. On error the state is unchanged.
func (s *Session) Start() error {
	n, err := s.console.Drain()
	if err != nil {
		return fmt.Errorf("drain keyboard buffer: %w", err)
	}
	if n > 0 {
		logging.Debug("session %s: discarded %d pending input byte(s)", s.id, n)
	}

	size, err := s.console.QuerySize()
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}
	s.screen = size
	s.state = SizeKnown

	if err := s.fitAll(); err != nil {
		return err
	}
	s.state = Ready
	log.Printf("INFO: session %s ready: screen %s, %d file(s), current %s", s.id, s.screen, len(s.files), s.Current().Path())
	return nil
}

// layoutCurrent gives the current file the whole screen and brings its
// cursor into view.
func (s *Session) layoutCurrent() error {
	fb := s.Current()
	if err := fb.SetWindow(Rect{X: 1, Y: 1, Width: s.screen.Width, Height: s.screen.Height}); err != nil {
		return fmt.Errorf("lay out %s: %w", fb.Path(), err)
	}
	fb.ScrollToCursor()
	return nil
}

// fitAll lays out the current file and pulls every other window inside
// the screen.
func (s *Session) fitAll() error {
	for i, fb := range s.files {
		if i != s.current {
			fb.FitWindow(s.screen)
		}
	}
	return s.layoutCurrent()
}

// relayout re-fits the current file once the screen size is known.
func (s *Session) relayout() error {
	if s.state == Uninitialized {
		return nil
	}
	return s.layoutCurrent()
}

// Resize records a new screen size, for example after SIGWINCH, lays the
// current file out again and shrinks the other windows to fit.
func (s *Session) Resize(size terminal.ScreenSize) error {
	if s.state == Uninitialized {
		return ErrNotReady
	}
	if !size.Valid() {
		return fmt.Errorf("resize to %s: %w", size, ErrInvalidWindow)
	}
	s.screen = size
	if err := s.fitAll(); err != nil {
		return err
	}
	s.state = Ready
	logging.Debug("session %s: resized to %s", s.id, size)
	return nil
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the start-up state.
func (s *Session) State() State { return s.state }

// Screen returns the last screen size reported by the terminal.
func (s *Session) Screen() terminal.ScreenSize { return s.screen }

// Len returns the number of open files. It is never zero.
func (s *Session) Len() int { return len(s.files) }

// Files returns the open files in open order.
func (s *Session) Files() []*FileBuffer {
	return append([]*FileBuffer(nil), s.files...)
}

// CurrentIndex returns the index of the current file.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the current file.
func (s *Session) Current() *FileBuffer { return s.files[s.current] }

// Select makes file i current.
func (s *Session) Select(i int) error {
	if i < 0 || i >= len(s.files) {
		return fmt.Errorf("select %d of %d: %w", i, len(s.files), ErrNoSuchFile)
	}
	s.current = i
	return s.relayout()
}

// Next makes the following file current, wrapping to the first.
func (s *Session) Next() error {
	return s.Select((s.current + 1) % len(s.files))
}

// Prev makes the preceding file current, wrapping to the last.
func (s *Session) Prev() error {
	return s.Select((s.current + len(s.files) - 1) % len(s.files))
}

// Open opens another file and makes it current.
func (s *Session) Open(path string) (*FileBuffer, error) {
	fb := s.open(path)
	s.files = append(s.files, fb)
	return fb, s.Select(len(s.files) - 1)
}

// NewFile creates another untitled file and makes it current.
func (s *Session) NewFile() (*FileBuffer, error) {
	fb, err := s.newUntitled()
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, fb)
	return fb, s.Select(len(s.files) - 1)
}

// Close drops the file with the given ID. Closing the last file leaves a
// fresh untitled one in its place, so a session always has a current file.
func (s *Session) Close(id uuid.UUID) error {
	idx := -1
	for i, fb := range s.files {
		if fb.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("close %s: %w", id, ErrNoSuchFile)
	}

	if len(s.files) == 1 {
		fb, err := s.newUntitled()
		if err != nil {
			return fmt.Errorf("close %s: %w", id, err)
		}
		s.files[0] = fb
		s.current = 0
		return s.relayout()
	}

	closed := s.files[idx]
	s.files = append(s.files[:idx], s.files[idx+1:]...)
	switch {
	case idx < s.current:
		s.current--
	case s.current >= len(s.files):
		s.current = len(s.files) - 1
	}
	logging.Debug("session %s: closed %s", s.id, closed.Path())
	return s.relayout()
}
