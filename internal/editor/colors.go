package editor

import "github.com/stlalpha/vedit/internal/ansi"

// Status line palette.
const (
	statusFg      = ansi.White
	statusBg      = ansi.Blue
	statusAttr    = ansi.AttrBright
	statusErrFg   = ansi.Yellow
	statusErrBg   = ansi.Red
	statusErrAttr = ansi.AttrBright
)
