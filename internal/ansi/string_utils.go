package ansi

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// escapeEnd returns the index just past the CSI sequence starting at i.
// s[i] must be ESC and s[i+1] '['.
func escapeEnd(s string, i int) int {
	i += 2
	for i < len(s) && !(s[i] >= 0x40 && s[i] <= 0x7E) {
		i++
	}
	if i < len(s) {
		i++ // final byte
	}
	return i
}

func isCSI(s string, i int) bool {
	return s[i] == ESC && i+1 < len(s) && s[i+1] == '['
}

// VisibleWidth returns the number of terminal cells s occupies, ignoring
// CSI sequences. East Asian wide runes count as two cells.
func VisibleWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if isCSI(s, i) {
			i = escapeEnd(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runewidth.RuneWidth(r)
		i += size
	}
	return width
}

// TruncateVisible cuts s down to at most maxWidth cells. Escape sequences
// are kept, and a trailing reset is appended when one was seen before the
// cut so colors do not bleed past the truncation point.
func TruncateVisible(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))

	width := 0
	sawReset := false
	for i := 0; i < len(s); {
		if isCSI(s, i) {
			end := escapeEnd(s, i)
			seq := s[i:end]
			result.WriteString(seq)
			if seq == Reset() || seq == "\x1B[m" {
				sawReset = true
			}
			i = end
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth {
			if sawReset && !strings.HasSuffix(result.String(), Reset()) {
				result.WriteString(Reset())
			}
			break
		}
		result.WriteString(s[i : i+size])
		width += w
		i += size
	}
	return result.String()
}

// PadVisible right-pads s with padChar up to width cells.
func PadVisible(s string, width int, padChar rune) string {
	w := VisibleWidth(s)
	pw := runewidth.RuneWidth(padChar)
	if w >= width || pw == 0 {
		return s
	}
	return s + strings.Repeat(string(padChar), (width-w)/pw)
}

// FitVisible truncates and pads s to exactly width cells. A non-positive
// width returns s unchanged.
func FitVisible(s string, width int) string {
	if width <= 0 {
		return s
	}
	return PadVisible(TruncateVisible(s, width), width, ' ')
}
