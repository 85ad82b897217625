//go:build !windows

package terminal

// EnableVirtualTerminal is a no-op outside Windows; terminal emulators
// interpret VT sequences natively.
func EnableVirtualTerminal() error {
	return nil
}
