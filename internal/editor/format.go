package editor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextFormat is the on-disk encoding of a file. It is fixed when the file
// is opened and kept unchanged so a later save can write the same bytes
// back.
type TextFormat int

const (
	ASCII TextFormat = iota + 1
	UTF16LE
	UTF16BE
	UTF8
)

// DefaultFormat is used for new files and when no format is configured.
const DefaultFormat = UTF8

// maxLineBytes bounds a single decoded line.
const maxLineBytes = 16 << 20

func (f TextFormat) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case UTF16LE:
		return "utf16le"
	case UTF16BE:
		return "utf16be"
	case UTF8:
		return "utf8"
	}
	return fmt.Sprintf("TextFormat(%d)", int(f))
}

// Valid reports whether f is one of the four supported formats.
func (f TextFormat) Valid() bool {
	return f >= ASCII && f <= UTF8
}

// ParseTextFormat maps a config name to a TextFormat. Names are case
// insensitive; "utf-8", "utf-16le" and "utf-16be" are accepted as well.
func ParseTextFormat(name string) (TextFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return ASCII, nil
	case "utf16le", "utf-16le":
		return UTF16LE, nil
	case "utf16be", "utf-16be":
		return UTF16BE, nil
	case "utf8", "utf-8":
		return UTF8, nil
	}
	return 0, fmt.Errorf("unknown text format %q", name)
}

// Decoder turns a file's raw bytes into lines without terminators.
// Formats plug in their own Decoder; the file model only keeps the tag.
type Decoder interface {
	Decode(r io.Reader) ([]string, error)
}

// encodingDecoder decodes through an x/text encoding into UTF-8 lines.
type encodingDecoder struct {
	enc encoding.Encoding
}

func (d encodingDecoder) Decode(r io.Reader) ([]string, error) {
	return readLines(transform.NewReader(r, d.enc.NewDecoder()))
}

// DecoderFor returns the built-in decoder for f. ASCII is read as UTF-8,
// of which it is a subset. Unknown formats fall back to UTF-8. A leading
// byte order mark is consumed and never reaches the content; for UTF-16 it
// also overrides the byte order.
func DecoderFor(f TextFormat) Decoder {
	switch f {
	case UTF16LE:
		return encodingDecoder{unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	case UTF16BE:
		return encodingDecoder{unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
	default:
		return encodingDecoder{unicode.UTF8BOM}
	}
}

// readLines splits r into lines. "\n", "\r\n" and a lone "\r" end a line
// and are dropped; a last line without terminator is kept.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	sc.Split(scanLines)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': need one more byte to tell "\r\n" from a lone "\r".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
