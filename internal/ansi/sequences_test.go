package ansi

import (
	"strings"
	"testing"
)

func TestCursorStep(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{Up, "\x1b[A"},
		{Down, "\x1b[B"},
		{Right, "\x1b[C"},
		{Left, "\x1b[D"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := CursorStep(tt.dir); got != tt.want {
				t.Errorf("CursorStep(%v) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}

func TestCursorStepsCount(t *testing.T) {
	if got := CursorSteps(Left, 0); got != "" {
		t.Errorf("zero steps should be empty, got %q", got)
	}
	got := CursorSteps(Right, 5)
	if n := strings.Count(got, "\x1b[C"); n != 5 || len(got) != 15 {
		t.Errorf("CursorSteps(Right, 5) = %q", got)
	}
}

func TestCursorStepsNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative count")
		}
	}()
	CursorSteps(Up, -1)
}

func TestOpposite(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v opposite twice is %v", d, d.Opposite().Opposite())
		}
		if d.Opposite() == d {
			t.Errorf("%v is its own opposite", d)
		}
	}
}

func TestForeground(t *testing.T) {
	if got := Foreground(Red, false); got != "\x1b[31m" {
		t.Errorf("Foreground(Red) = %q", got)
	}
	if got := Foreground(White, true); got != "\x1b[37;1m" {
		t.Errorf("Foreground(White, bright) = %q", got)
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg Color
		attr   Attribute
		want   string
	}{
		{"no attribute", Red, White, AttrNone, "\x1b[31;47m"},
		{"bright", Red, White, AttrBright, "\x1b[31;47;1m"},
		{"double underline", White, Black, AttrDoubleUnderline, "\x1b[37;40;21m"},
		{"strikeout", Cyan, Blue, AttrStrikeout, "\x1b[36;44;9m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Colors(tt.fg, tt.bg, tt.attr); got != tt.want {
				t.Errorf("Colors = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorPreconditions(t *testing.T) {
	calls := map[string]func(){
		"foreground out of range": func() { Foreground(Color(8), false) },
		"negative background":     func() { Colors(Red, Color(-1), AttrNone) },
		"bad attribute":           func() { Colors(Red, Blue, Attribute(2)) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			call()
		})
	}
}

func TestFixedSequences(t *testing.T) {
	if Reset() != "\x1b[0m" {
		t.Errorf("Reset = %q", Reset())
	}
	if AltScreenOn() != "\x1b[?1049h" || AltScreenOff() != "\x1b[?1049l" {
		t.Errorf("alt screen = %q / %q", AltScreenOn(), AltScreenOff())
	}
	if SizeRequest() != "\x1b[18t" {
		t.Errorf("SizeRequest = %q", SizeRequest())
	}
}
