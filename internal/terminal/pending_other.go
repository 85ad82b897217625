//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

// fdPending has no portable implementation here; nothing is drained.
func fdPending(fd int) (int, error) {
	return 0, nil
}
