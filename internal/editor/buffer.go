package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stlalpha/vedit/internal/terminal"
)

// ErrInvalidWindow is returned for a window with a coordinate or size
// below one.
var ErrInvalidWindow = errors.New("invalid window rectangle")

// Rect is a screen rectangle. X and Y are 1-based cell coordinates of the
// top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Valid reports whether the rectangle has a 1-based origin and at least
// one cell in each direction.
func (r Rect) Valid() bool {
	return r.X >= 1 && r.Y >= 1 && r.Width >= 1 && r.Height >= 1
}

// FileBuffer is one open file: its lines, where the cursor is, which part
// of the content is visible and where on screen it is drawn. All
// coordinates are 1-based.
type FileBuffer struct {
	id      uuid.UUID
	path    string
	content []string // 1-based access through Line; terminators stripped

	cursorLine, cursorCol int
	topLine, leftCol      int
	window                Rect

	format  TextFormat
	openErr error
}

func newFileBuffer(path string, format TextFormat) *FileBuffer {
	if !format.Valid() {
		format = DefaultFormat
	}
	return &FileBuffer{
		id:         uuid.New(),
		path:       path,
		cursorLine: 1,
		cursorCol:  1,
		topLine:    1,
		leftCol:    1,
		window:     Rect{X: 1, Y: 1, Width: 1, Height: 1},
		format:     format,
	}
}

// Open loads path as a buffer in the given format. A missing file gives an
// empty buffer; a file that exists but cannot be read gives an empty
// buffer with OpenErr set. Open itself never fails.
func Open(path string, format TextFormat) *FileBuffer {
	return OpenWithDecoder(path, format, DecoderFor(format))
}

// OpenWithDecoder is Open with a caller-supplied decoder for the format.
func OpenWithDecoder(path string, format TextFormat, dec Decoder) *FileBuffer {
	fb := newFileBuffer(path, format)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fb
		}
		fb.openErr = err
		return fb
	}

	f, err := os.Open(path)
	if err != nil {
		fb.openErr = err
		return fb
	}
	defer f.Close()

	lines, err := dec.Decode(f)
	if err != nil {
		fb.openErr = fmt.Errorf("decode: %w", err)
		return fb
	}
	fb.content = lines
	return fb
}

// ID identifies the buffer within a session.
func (fb *FileBuffer) ID() uuid.UUID { return fb.id }

// Path returns the backing path, which may not exist on disk yet.
func (fb *FileBuffer) Path() string { return fb.path }

// Name returns the last element of the path.
func (fb *FileBuffer) Name() string { return filepath.Base(fb.path) }

// Format returns the text format recorded when the file was opened.
func (fb *FileBuffer) Format() TextFormat { return fb.format }

// OpenErr is non-nil when the file exists but could not be read.
func (fb *FileBuffer) OpenErr() error { return fb.openErr }

// LineCount returns the number of content lines.
func (fb *FileBuffer) LineCount() int { return len(fb.content) }

// Line returns line n (1-based), or "" outside the content.
func (fb *FileBuffer) Line(n int) string {
	if n < 1 || n > len(fb.content) {
		return ""
	}
	return fb.content[n-1]
}

// LineLength returns the number of runes on line n.
func (fb *FileBuffer) LineLength(n int) int {
	return utf8.RuneCountInString(fb.Line(n))
}

// Lines returns a copy of the content.
func (fb *FileBuffer) Lines() []string {
	return append([]string(nil), fb.content...)
}

// Cursor returns the cursor line and column.
func (fb *FileBuffer) Cursor() (line, col int) {
	return fb.cursorLine, fb.cursorCol
}

// SetCursor moves the cursor, clamping it into the content. The line may
// be one past the last line, which stands for an empty trailing line; the
// column may be one past the end of its line.
func (fb *FileBuffer) SetCursor(line, col int) {
	line = clamp(line, 1, len(fb.content)+1)
	col = clamp(col, 1, fb.LineLength(line)+1)
	fb.cursorLine, fb.cursorCol = line, col
}

// Viewport returns the content coordinate shown in the window's top-left
// cell.
func (fb *FileBuffer) Viewport() (topLine, leftCol int) {
	return fb.topLine, fb.leftCol
}

// Window returns the screen rectangle the buffer is drawn into.
func (fb *FileBuffer) Window() Rect { return fb.window }

// SetWindow assigns the screen rectangle.
func (fb *FileBuffer) SetWindow(r Rect) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidWindow, r)
	}
	fb.window = r
	return nil
}

// FitWindow shrinks and shifts the window so it lies inside a screen of
// the given size.
func (fb *FileBuffer) FitWindow(size terminal.ScreenSize) {
	w := fb.window
	w.Width = clamp(w.Width, 1, size.Width)
	w.Height = clamp(w.Height, 1, size.Height)
	w.X = clamp(w.X, 1, size.Width-w.Width+1)
	w.Y = clamp(w.Y, 1, size.Height-w.Height+1)
	fb.window = w
}

// ScrollToCursor moves the viewport as little as possible so the cursor
// cell is inside the window.
func (fb *FileBuffer) ScrollToCursor() {
	if fb.cursorLine < fb.topLine {
		fb.topLine = fb.cursorLine
	} else if bottom := fb.topLine + fb.window.Height - 1; fb.cursorLine > bottom {
		fb.topLine = fb.cursorLine - fb.window.Height + 1
	}
	if fb.cursorCol < fb.leftCol {
		fb.leftCol = fb.cursorCol
	} else if right := fb.leftCol + fb.window.Width - 1; fb.cursorCol > right {
		fb.leftCol = fb.cursorCol - fb.window.Width + 1
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
