package config

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// longest file name produced from lesson titles, in bytes
const maxNameLength = 120

// CleanFileName turns arbitrary text (usually lesson title) into a file name:
// characters not allowed by the platform and control characters are
// dropped, white space runs become single space, leading dots are removed.
func CleanFileName(in string) string {
	forbidden := forbiddenInName + string(os.PathSeparator) + string(os.PathListSeparator) + "/"
	out := strings.Map(func(sym rune) rune {
		if strings.ContainsRune(forbidden, sym) {
			return -1
		}
		if unicode.IsSpace(sym) {
			return ' '
		}
		if unicode.IsControl(sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.Join(strings.Fields(out), " "), ".")
	for len(out) > maxNameLength {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}
	out = strings.TrimSpace(out)
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
