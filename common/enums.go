// Package common holds enumerations shared between the block model, the
// editor session and the command line tooling.
package common

//go:generate go tool go-enum --marshal --names --values

// Classification of a block, used for labeling only.
// ENUM(text, card, media, content, list, table, divider, figure, element)
type BlockKind string

// Resize handle a pointer drag started from.
// ENUM(n, s, e, w, ne, nw, se, sw)
type ResizeDirection string

// GrowsRight reports whether positive horizontal delta widens the block.
func (d ResizeDirection) GrowsRight() bool {
	return d == ResizeDirectionE || d == ResizeDirectionNe || d == ResizeDirectionSe
}

// GrowsLeft reports whether negative horizontal delta widens the block.
func (d ResizeDirection) GrowsLeft() bool {
	return d == ResizeDirectionW || d == ResizeDirectionNw || d == ResizeDirectionSw
}

// GrowsDown reports whether positive vertical delta makes the block taller.
func (d ResizeDirection) GrowsDown() bool {
	return d == ResizeDirectionS || d == ResizeDirectionSe || d == ResizeDirectionSw
}

// GrowsUp reports whether negative vertical delta makes the block taller.
func (d ResizeDirection) GrowsUp() bool {
	return d == ResizeDirectionN || d == ResizeDirectionNe || d == ResizeDirectionNw
}

// IsCorner reports whether handle changes both axes.
func (d ResizeDirection) IsCorner() bool {
	return len(d) == 2
}

// Drop intent relative to the hovered block's vertical midpoint.
// ENUM(above, below)
type DropPosition string

// Horizontal alignment of a block in the editing surface, transient UI state.
// ENUM(left, center, right)
type Alignment string

// Operation of a scripted editing step.
// ENUM(drag, resize, insert, append, delete, duplicate, mobile-width, edit, select, align, lock, reset)
type EditOp string
