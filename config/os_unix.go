//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// characters which may not appear in file name, path separators are added
// at run time
const forbiddenInName = "\x00"

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
