package editor

import (
	"maps"
	"slices"

	"github.com/maruel/natural"

	"lbe/common"
	"lbe/utils/debug"
)

// UIState holds transient per-block presentation state. It is keyed by block
// id and lives beside the document so block records stay pure content.
type UIState struct {
	selected  string
	hovered   string
	settings  map[string]bool
	aspect    map[string]bool
	alignment map[string]common.Alignment
}

// NewUIState returns empty side tables.
func NewUIState() *UIState {
	return &UIState{
		settings:  make(map[string]bool),
		aspect:    make(map[string]bool),
		alignment: make(map[string]common.Alignment),
	}
}

// Select makes block current, empty id clears selection.
func (u *UIState) Select(id string) {
	u.selected = id
}

// Selected returns id of the selected block.
func (u *UIState) Selected() (string, bool) {
	return u.selected, u.selected != ""
}

// Hover records block under pointer, empty id clears it.
func (u *UIState) Hover(id string) {
	u.hovered = id
}

func (u *UIState) Hovered() (string, bool) {
	return u.hovered, u.hovered != ""
}

// SetSettingsOpen opens or closes block settings panel.
func (u *UIState) SetSettingsOpen(id string, open bool) {
	setFlag(u.settings, id, open)
}

func (u *UIState) SettingsOpen(id string) bool {
	return u.settings[id]
}

// SetAspectLock toggles aspect ratio lock used when resizing the block.
func (u *UIState) SetAspectLock(id string, lock bool) {
	setFlag(u.aspect, id, lock)
}

func (u *UIState) AspectLock(id string) bool {
	return u.aspect[id]
}

// SetAlignment sets block alignment, left is the default and is not stored.
func (u *UIState) SetAlignment(id string, a common.Alignment) {
	if a == common.AlignmentLeft || a == "" {
		delete(u.alignment, id)
		return
	}
	u.alignment[id] = a
}

func (u *UIState) Alignment(id string) common.Alignment {
	if a, ok := u.alignment[id]; ok {
		return a
	}
	return common.AlignmentLeft
}

// Forget drops everything known about block id.
func (u *UIState) Forget(id string) {
	if u.selected == id {
		u.selected = ""
	}
	if u.hovered == id {
		u.hovered = ""
	}
	delete(u.settings, id)
	delete(u.aspect, id)
	delete(u.alignment, id)
}

// Prune keeps state only for blocks in live and returns number of ids
// forgotten.
func (u *UIState) Prune(live []string) int {
	keep := make(map[string]struct{}, len(live))
	for _, id := range live {
		keep[id] = struct{}{}
	}
	var gone []string
	for _, id := range u.ids() {
		if _, ok := keep[id]; !ok {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		u.Forget(id)
	}
	return len(gone)
}

// ids returns every id state is kept for in natural order.
func (u *UIState) ids() []string {
	set := make(map[string]struct{})
	for _, id := range []string{u.selected, u.hovered} {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	for id := range u.settings {
		set[id] = struct{}{}
	}
	for id := range u.aspect {
		set[id] = struct{}{}
	}
	for id := range u.alignment {
		set[id] = struct{}{}
	}
	return slices.SortedFunc(maps.Keys(set), func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
}

func (u *UIState) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "UIState")
	for _, id := range u.ids() {
		tw.Line(1, "%s selected=%t hovered=%t settings=%t aspect-lock=%t align=%s",
			id, id == u.selected, id == u.hovered, u.settings[id], u.aspect[id], u.Alignment(id))
	}
	return tw.String()
}

func setFlag(m map[string]bool, id string, v bool) {
	if v {
		m[id] = true
		return
	}
	delete(m, id)
}
