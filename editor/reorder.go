package editor

import (
	"lbe/common"
)

// Point is pointer position in editing surface coordinates.
type Point struct {
	X, Y float64
}

// Rect is vertical extent of a rendered block.
type Rect struct {
	Top, Height float64
}

// positionIn returns drop intent for pointer relative to vertical midpoint.
func positionIn(pointerY float64, r Rect) common.DropPosition {
	if pointerY < r.Top+r.Height/2 {
		return common.DropPositionAbove
	}
	return common.DropPositionBelow
}

// Reorder is drag and drop state machine working on block indices only.
// Zero value is ready to use.
type Reorder struct {
	dragged  int
	dragging bool
	hover    int
	position common.DropPosition // empty until first accepted hover
}

// BeginDrag starts dragging block at index i. Any drag in progress is
// discarded.
func (r *Reorder) BeginDrag(i int) {
	*r = Reorder{dragged: i, dragging: true}
}

// Dragged returns index of the dragged block.
func (r *Reorder) Dragged() (int, bool) {
	return r.dragged, r.dragging
}

// Active reports drag in progress.
func (r *Reorder) Active() bool {
	return r.dragging
}

// Hover records hovered block and drop intent. Hovering over nothing being
// dragged or over the dragged block itself is ignored.
func (r *Reorder) Hover(i int, pointerY float64, rect Rect) bool {
	if !r.dragging || i == r.dragged {
		return false
	}
	r.hover, r.position = i, positionIn(pointerY, rect)
	return true
}

// Target returns last accepted hover.
func (r *Reorder) Target() (int, common.DropPosition, bool) {
	if r.position == "" {
		return 0, "", false
	}
	return r.hover, r.position, true
}

// Drop computes where dragged block lands when dropped on block "to" of a
// document with given length. Returned "at" is an index in the document with
// dragged block already removed. Drop does not end the drag.
func (r *Reorder) Drop(to, length int) (from, at int, ok bool) {
	if !r.dragging || r.dragged == to || r.dragged < 0 || r.dragged >= length {
		return 0, 0, false
	}
	from = r.dragged
	if r.position == common.DropPositionBelow {
		if from < to {
			at = to
		} else {
			at = to + 1
		}
	} else {
		if from < to {
			at = to - 1
		} else {
			at = to
		}
	}
	return from, min(max(at, 0), length-1), true
}

// EndDrag resets the state machine, used both on completion and cancel.
func (r *Reorder) EndDrag() {
	*r = Reorder{}
}
