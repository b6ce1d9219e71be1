//go:build !linux

package diag

// IsTerminal always reports false on platforms without a termios probe;
// use ColorAlways to force colour there.
func IsTerminal(fd uintptr) bool {
	return false
}
