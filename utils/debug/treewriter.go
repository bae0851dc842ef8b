// Package debug produces indented text dumps of documents and editor state.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TreeWriter accumulates tree dump line by line, depth is the nesting level
// of the line.
type TreeWriter struct {
	w      strings.Builder
	indent string
	limit  int
}

// Option configures TreeWriter.
type Option func(*TreeWriter)

// WithIndent sets string repeated once per depth level.
func WithIndent(s string) Option {
	return func(tw *TreeWriter) {
		tw.indent = s
	}
}

// WithTextLimit clips text block values longer than n runes, 0 disables
// clipping.
func WithTextLimit(n int) Option {
	return func(tw *TreeWriter) {
		tw.limit = max(n, 0)
	}
}

func NewTreeWriter(opts ...Option) *TreeWriter {
	tw := &TreeWriter{indent: "  "}
	for _, opt := range opts {
		opt(tw)
	}
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value so markup and white space stay on one line.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value, tw.limit))
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func encodeText(raw string, limit int) string {
	if raw == "" {
		return raw
	}
	if n := utf8.RuneCountInString(raw); limit > 0 && n > limit {
		cut := 0
		for range limit {
			_, size := utf8.DecodeRuneInString(raw[cut:])
			cut += size
		}
		return strconv.Quote(raw[:cut]) + "... (" + strconv.Itoa(n-limit) + " more)"
	}
	return strconv.Quote(raw)
}
