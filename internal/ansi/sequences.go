// Package ansi builds the control sequences the editor writes to the
// terminal. Every function here is pure: it returns the bytes to emit and
// leaves the writing to the terminal package.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// ESC is the escape byte that starts every control sequence.
const ESC = 0x1B

// csi is the Control Sequence Introducer, ESC '['.
const csi = "\x1B["

// SizeReplyLead is the fixed prefix of the terminal's answer to SizeRequest.
const SizeReplyLead = "\x1B[8;"

// Direction is a relative cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionFinal = [...]byte{Up: 'A', Down: 'B', Right: 'C', Left: 'D'}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// CursorStep returns the sequence that moves the cursor one cell in d.
func CursorStep(d Direction) string {
	if !d.Valid() {
		panic(fmt.Sprintf("ansi: invalid direction %d", int(d)))
	}
	return csi + string(directionFinal[d])
}

// CursorSteps returns n single-step moves in d. Zero steps is the empty
// string; a negative count is a caller bug.
func CursorSteps(d Direction, n int) string {
	if n < 0 {
		panic(fmt.Sprintf("ansi: negative cursor step count %d", n))
	}
	if n == 0 {
		return ""
	}
	return strings.Repeat(CursorStep(d), n)
}

// Color is one of the eight base SGR colors.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (c Color) String() string {
	if c.Valid() {
		return colorNames[c]
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is inside the 8-color range.
func (c Color) Valid() bool {
	return c >= Black && c <= White
}

// Attribute is a single SGR text attribute. Only one may accompany a
// color change.
type Attribute int

const (
	AttrNone             Attribute = 0
	AttrBright           Attribute = 1
	AttrItalic           Attribute = 3
	AttrUnderline        Attribute = 4
	AttrBrightBackground Attribute = 5
	AttrStrikeout        Attribute = 9
	AttrDoubleUnderline  Attribute = 21
)

// Valid reports whether a is one of the supported attribute codes.
func (a Attribute) Valid() bool {
	switch a {
	case AttrNone, AttrBright, AttrItalic, AttrUnderline, AttrBrightBackground, AttrStrikeout, AttrDoubleUnderline:
		return true
	}
	return false
}

func mustColor(c Color) {
	if !c.Valid() {
		panic(fmt.Sprintf("ansi: color %d outside the 8-color range", int(c)))
	}
}

// Reset returns the sequence that clears all text attributes.
func Reset() string {
	return csi + "0m"
}

// Foreground sets the character color, optionally bright.
func Foreground(c Color, bright bool) string {
	mustColor(c)
	if bright {
		return fmt.Sprintf("%s%d;1m", csi, 30+int(c))
	}
	return fmt.Sprintf("%s%dm", csi, 30+int(c))
}

// Colors sets foreground, background and at most one attribute. AttrNone
// leaves the attribute field out of the sequence.
func Colors(fg, bg Color, attr Attribute) string {
	mustColor(fg)
	mustColor(bg)
	if !attr.Valid() {
		panic(fmt.Sprintf("ansi: unsupported attribute %d", int(attr)))
	}
	if attr == AttrNone {
		return fmt.Sprintf("%s%d;%dm", csi, 30+int(fg), 40+int(bg))
	}
	return fmt.Sprintf("%s%d;%d;%dm", csi, 30+int(fg), 40+int(bg), int(attr))
}

// AltScreenOn switches to the alternate screen buffer.
func AltScreenOn() string {
	return csi + "?1049h"
}

// AltScreenOff returns to the normal screen buffer and its scrollback.
func AltScreenOff() string {
	return csi + "?1049l"
}

// SizeRequest asks the terminal to report its text area in cells.
func SizeRequest() string {
	return csi + "18t"
}
