package terminal

import (
	"fmt"
	"io"
)

// Drain discards input that is already waiting to be read, such as keys
// typed before the editor took over the terminal. It never blocks waiting
// for more input and returns the number of bytes thrown away.
func (t *Terminal) Drain() (int, error) {
	total := 0
	for {
		n, err := t.pending()
		if err != nil {
			return total, fmt.Errorf("check pending input: %w", err)
		}
		if n == 0 {
			return total, nil
		}
		discarded, err := io.CopyN(io.Discard, t.in, int64(n))
		total += int(discarded)
		if err != nil {
			return total, fmt.Errorf("drain input: %w", err)
		}
	}
}

// pending returns how many input bytes can be read without blocking.
func (t *Terminal) pending() (int, error) {
	if t.inFd >= 0 {
		return fdPending(t.inFd)
	}
	if l, ok := t.in.(interface{ Len() int }); ok {
		return l.Len(), nil
	}
	return 0, nil
}
