// Package css handles inline style declarations of markup elements as an
// ordered property map.
package css

import (
	"iter"
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	// handles "0"
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "property: value" pair of a style attribute.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

// String returns declaration as it would appear in style attribute.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value.Raw + " !important"
	}
	return d.Property + ": " + d.Value.Raw
}

// Style is an ordered set of declarations, property names are unique.
type Style struct {
	decls []Declaration
}

// Len returns number of declarations.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decls)
}

// Get returns the value for a property, or empty Value if not found.
func (s *Style) Get(name string) (Value, bool) {
	if i := s.index(name); i >= 0 {
		return s.decls[i].Value, true
	}
	return Value{}, false
}

// Has reports whether property is declared.
func (s *Style) Has(name string) bool {
	return s.index(name) >= 0
}

// All iterates over declarations in source order.
func (s *Style) All() iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		if s == nil {
			return
		}
		for _, d := range s.decls {
			if !yield(d) {
				return
			}
		}
	}
}

// Set replaces declaration for the property keeping its position, or appends
// it when property is not present.
func (s *Style) Set(d Declaration) {
	d.Property = strings.ToLower(d.Property)
	if i := s.index(d.Property); i >= 0 {
		s.decls[i] = d
		return
	}
	s.decls = append(s.decls, d)
}

// Merge sets every declaration of other in order.
func (s *Style) Merge(other *Style) {
	for d := range other.All() {
		s.Set(d)
	}
}

// Remove deletes listed properties, returns number of removed declarations.
func (s *Style) Remove(names ...string) int {
	if s == nil || len(s.decls) == 0 {
		return 0
	}
	kept := s.decls[:0]
	removed := 0
	for _, d := range s.decls {
		drop := false
		for _, n := range names {
			if strings.EqualFold(d.Property, n) {
				drop = true
				break
			}
		}
		if drop {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	s.decls = kept
	return removed
}

// Properties returns property names in order.
func (s *Style) Properties() []string {
	names := make([]string, 0, s.Len())
	for d := range s.All() {
		names = append(names, d.Property)
	}
	return names
}

// String returns style attribute text. Output is stable: parsing it back
// yields the same declarations in the same order.
func (s *Style) String() string {
	if s.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range s.decls {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(d.String())
	}
	sb.WriteByte(';')
	return sb.String()
}

func (s *Style) index(name string) int {
	if s == nil {
		return -1
	}
	for i, d := range s.decls {
		if strings.EqualFold(d.Property, name) {
			return i
		}
	}
	return -1
}
