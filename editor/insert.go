package editor

import (
	"lbe/common"
)

// Insertion places a new block dragged in from the palette. It mirrors
// Reorder without a source index.
type Insertion struct {
	markup   string
	active   bool
	hover    int
	position common.DropPosition
}

// Begin starts dragging palette template.
func (in *Insertion) Begin(markup string) {
	*in = Insertion{markup: markup, active: true}
}

// Active reports insertion drag in progress.
func (in *Insertion) Active() bool {
	return in.active
}

// Hover records drop intent over block i.
func (in *Insertion) Hover(i int, pointerY float64, rect Rect) bool {
	if !in.active {
		return false
	}
	in.hover, in.position = i, positionIn(pointerY, rect)
	return true
}

// Drop returns insertion index for drop on block "target": after it when
// pointer was in its lower half, before it otherwise.
func (in *Insertion) Drop(target, length int) (at int, markup string, ok bool) {
	if !in.active {
		return 0, "", false
	}
	at = target
	if in.position == common.DropPositionBelow {
		at = target + 1
	}
	return min(max(at, 0), length), in.markup, true
}

// End resets the state machine.
func (in *Insertion) End() {
	*in = Insertion{}
}
