// Package block implements the structured block model of lesson markup:
// classification of elements, conversion of a markup document into ordered
// blocks and serialization of blocks back into markup.
package block

import (
	"slices"
	"strconv"

	"lbe/common"
)

// Size is either auto (zero value) or explicit positive size in pixels.
type Size struct {
	px int
}

// Auto returns size without explicit value.
func Auto() Size {
	return Size{}
}

// Pixels returns explicit size, non positive values are auto.
func Pixels(n int) Size {
	if n <= 0 {
		return Size{}
	}
	return Size{px: n}
}

func (s Size) IsAuto() bool {
	return s.px <= 0
}

// Px returns pixel value, 0 for auto.
func (s Size) Px() int {
	if s.IsAuto() {
		return 0
	}
	return s.px
}

func (s Size) String() string {
	if s.IsAuto() {
		return "auto"
	}
	return strconv.Itoa(s.px)
}

// Mobile width bounds in percent.
const (
	MinMobileWidth     = 25
	DefaultMobileWidth = 100
)

// ClampMobileWidth brings percentage into allowed range.
func ClampMobileWidth(v int) int {
	return min(max(v, MinMobileWidth), DefaultMobileWidth)
}

// Block is a unit of editable lesson content. Markup is the only source of
// truth for content, everything else is derived from it or is sizing
// metadata persisted in data attributes.
type Block struct {
	ID          string
	Kind        common.BlockKind
	TagName     string // upper case, empty for raw blocks
	Markup      string
	PreviewText string
	Width       Size
	Height      Size
	MobileWidth int // percent
	IsCard      bool
}

// IsSized reports whether block carries any layout annotation which changes
// its serialized form.
func (b *Block) IsSized() bool {
	return !b.Width.IsAuto() || !b.Height.IsAuto() || b.MobileWidth != DefaultMobileWidth
}

// Document is an ordered sequence of blocks with unique ids.
type Document []Block

// Index returns position of block with given id or -1.
func (d Document) Index(id string) int {
	return slices.IndexFunc(d, func(b Block) bool { return b.ID == id })
}

// Clone returns independent copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return slices.Clone(d)
}

// Move relocates block from position "from" so it ends up at position "to"
// of the resulting document. Out of range "to" is clamped, returns false if
// "from" is invalid. Like the rest of mutating helpers it reuses d storage,
// only returned value is valid afterwards.
func (d Document) Move(from, to int) (Document, bool) {
	if from < 0 || from >= len(d) {
		return d, false
	}
	b := d[from]
	d = slices.Delete(d, from, from+1)
	to = min(max(to, 0), len(d))
	return slices.Insert(d, to, b), true
}

// Insert puts block at position i clamped to [0, len].
func (d Document) Insert(i int, b Block) Document {
	i = min(max(i, 0), len(d))
	return slices.Insert(d, i, b)
}

// Remove deletes block at position i, returns false if i is out of range.
func (d Document) Remove(i int) (Document, bool) {
	if i < 0 || i >= len(d) {
		return d, false
	}
	return slices.Delete(d, i, i+1), true
}

// IDs returns block ids in document order.
func (d Document) IDs() []string {
	ids := make([]string, len(d))
	for i := range d {
		ids[i] = d[i].ID
	}
	return ids
}

// Markups returns block markup in document order.
func (d Document) Markups() []string {
	ms := make([]string, len(d))
	for i := range d {
		ms[i] = d[i].Markup
	}
	return ms
}
