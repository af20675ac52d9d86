//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package shell

import "io"

// isTerminal always reports false; scripts still work everywhere.
func isTerminal(io.Reader) bool { return false }
