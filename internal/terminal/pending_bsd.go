//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

// fionread is _IOR('f', 127, int), the same value on darwin and the BSDs.
const fionread = 0x4004667f

// fdPending asks the tty driver how many bytes are queued for reading.
// TestPTYDrainThenQuery covers this path against a real pty.
func fdPending(fd int) (int, error) {
	return unix.IoctlGetInt(fd, fionread)
}
