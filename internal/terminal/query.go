package terminal

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/stlalpha/vedit/internal/ansi"
)

// maxSizeDigits bounds each dimension in the size reply.
const maxSizeDigits = 4

// ErrProtocol is returned when the terminal's reply does not follow the
// size report grammar.
var ErrProtocol = errors.New("terminal protocol violation")

// ProtocolError describes where a size reply went wrong.
type ProtocolError struct {
	Field string // "lead", "height" or "width"
	Msg   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("terminal size reply: %s: %s", e.Field, e.Msg)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}

// QuerySize asks the terminal for its size and blocks until the reply
// ESC [ 8 ; <height> ; <width> t has been read.
//
// The reply is read byte by byte from the same stream as the keyboard, so
// a key pressed between the request and the reply corrupts the parse.
// Callers drain pending input first (see Drain) and must not read the input
// concurrently. There is no timeout: a terminal that never answers blocks
// forever.
func (t *Terminal) QuerySize() (ScreenSize, error) {
	if err := t.WriteString(ansi.SizeRequest()); err != nil {
		return ScreenSize{}, fmt.Errorf("write size request: %w", err)
	}
	return t.readSizeReply()
}

func (t *Terminal) readSizeReply() (ScreenSize, error) {
	for i := 0; i < len(ansi.SizeReplyLead); i++ {
		b, err := t.readByte()
		if err != nil {
			return ScreenSize{}, err
		}
		if b != ansi.SizeReplyLead[i] {
			return ScreenSize{}, &ProtocolError{
				Field: "lead",
				Msg:   fmt.Sprintf("byte %d is %q, want %q", i, b, ansi.SizeReplyLead[i]),
			}
		}
	}

	height, err := t.readDimension("height", ';')
	if err != nil {
		return ScreenSize{}, err
	}
	width, err := t.readDimension("width", 't')
	if err != nil {
		return ScreenSize{}, err
	}
	return ScreenSize{Width: width, Height: height}, nil
}

// readDimension reads decimal digits up to the terminator byte.
func (t *Terminal) readDimension(field string, terminator byte) (int, error) {
	var digits [maxSizeDigits]byte
	n := 0
	for {
		b, err := t.readByte()
		if err != nil {
			return 0, err
		}
		if b == terminator {
			break
		}
		if b < '0' || b > '9' {
			return 0, &ProtocolError{Field: field, Msg: fmt.Sprintf("unexpected byte %q", b)}
		}
		if n == len(digits) {
			return 0, &ProtocolError{Field: field, Msg: fmt.Sprintf("more than %d digits", maxSizeDigits)}
		}
		digits[n] = b
		n++
	}

	v, err := strconv.Atoi(string(digits[:n]))
	if err != nil {
		return 0, &ProtocolError{Field: field, Msg: fmt.Sprintf("%q is not a number", digits[:n])}
	}
	if v < 1 {
		return 0, &ProtocolError{Field: field, Msg: "must be at least 1"}
	}
	return v, nil
}

// readByte reads exactly one byte without read-ahead, leaving anything
// after the reply on the stream for the keyboard reader.
func (t *Terminal) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(t.in, b[:]); err != nil {
		return 0, fmt.Errorf("read size reply: %w", err)
	}
	return b[0], nil
}
