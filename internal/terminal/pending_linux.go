//go:build linux

package terminal

import "golang.org/x/sys/unix"

// fdPending asks the tty driver how many bytes are queued for reading.
// TestPTYDrainThenQuery covers this path against a real pty.
func fdPending(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCINQ)
}
