package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lbe/common"
	"lbe/config"
	"lbe/editor"
)

func TestResize_Directions(t *testing.T) {
	start := editor.Dimensions{Width: 370, Height: 100}
	tests := []struct {
		dir  common.ResizeDirection
		want editor.Dimensions
	}{
		{common.ResizeDirectionE, editor.Dimensions{Width: 390, Height: 100}},
		{common.ResizeDirectionW, editor.Dimensions{Width: 350, Height: 100}},
		{common.ResizeDirectionS, editor.Dimensions{Width: 370, Height: 110}},
		{common.ResizeDirectionN, editor.Dimensions{Width: 370, Height: 90}},
		{common.ResizeDirectionSe, editor.Dimensions{Width: 390, Height: 110}},
		{common.ResizeDirectionSw, editor.Dimensions{Width: 350, Height: 110}},
		{common.ResizeDirectionNe, editor.Dimensions{Width: 390, Height: 90}},
		{common.ResizeDirectionNw, editor.Dimensions{Width: 350, Height: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			r := editor.NewResize(nil, nil)
			r.Begin(0, tt.dir, editor.Point{X: 100, Y: 100}, start, false)
			assert.Equal(t, tt.want, r.Move(editor.Point{X: 120, Y: 110}))
		})
	}
}

func TestResize_Minimums(t *testing.T) {
	r := editor.NewResize(nil, nil)
	r.Begin(0, common.ResizeDirectionNw, editor.Point{}, editor.Dimensions{Width: 100, Height: 50}, false)
	assert.Equal(t, editor.Dimensions{Width: 60, Height: 30}, r.Move(editor.Point{X: 500, Y: 500}))
}

func TestResize_SnapToBreakpoint(t *testing.T) {
	r := editor.NewResize(nil, nil)
	r.Begin(3, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 200, Height: 80}, false)

	assert.Equal(t, 215, r.Move(editor.Point{X: 14}).Width)
	assert.Equal(t, 215, r.Move(editor.Point{X: 22}).Width)
	assert.Equal(t, 224, r.Move(editor.Point{X: 24}).Width, "outside threshold")
	assert.Equal(t, 215, r.Move(editor.Point{X: 9}).Width)

	i, d, ok := r.End()
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	assert.Equal(t, editor.Dimensions{Width: 215, Height: 80}, d)
	assert.False(t, r.Active())
}

func TestResize_NearestBreakpointWins(t *testing.T) {
	cfg := editor.DefaultResizeConfig()
	cfg.Breakpoints = []float64{0.5, 0.52}
	cfg.SnapThreshold = 10
	r := editor.NewResize(&cfg, nil)

	// 215 and 223.6 are both within reach of 221
	r.Begin(0, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 200, Height: 80}, false)
	assert.Equal(t, 224, r.Move(editor.Point{X: 21}).Width)
}

func TestResize_AspectLock(t *testing.T) {
	tests := []struct {
		name  string
		dir   common.ResizeDirection
		start editor.Dimensions
		move  editor.Point
		want  editor.Dimensions
	}{
		{"corner width primary", common.ResizeDirectionSe, editor.Dimensions{Width: 200, Height: 100}, editor.Point{X: 100}, editor.Dimensions{Width: 300, Height: 150}},
		{"height primary", common.ResizeDirectionN, editor.Dimensions{Width: 200, Height: 100}, editor.Point{Y: -20}, editor.Dimensions{Width: 240, Height: 120}},
		{"snap recomputes height", common.ResizeDirectionSe, editor.Dimensions{Width: 200, Height: 100}, editor.Point{X: 14}, editor.Dimensions{Width: 215, Height: 108}},
		{"zero height means square", common.ResizeDirectionSe, editor.Dimensions{Width: 200}, editor.Point{X: 10}, editor.Dimensions{Width: 215, Height: 215}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := editor.NewResize(nil, nil)
			r.Begin(0, tt.dir, editor.Point{}, tt.start, true)
			assert.Equal(t, tt.want, r.Move(tt.move))
		})
	}
}

func TestResize_VerticalHandleSnapsWidth(t *testing.T) {
	r := editor.NewResize(nil, nil)
	r.Begin(0, common.ResizeDirectionS, editor.Point{}, editor.Dimensions{Width: 212, Height: 100}, false)
	assert.Equal(t, editor.Dimensions{Width: 215, Height: 110}, r.Move(editor.Point{Y: 10}))

	r.Begin(0, common.ResizeDirectionN, editor.Point{}, editor.Dimensions{Width: 200, Height: 100}, false)
	assert.Equal(t, editor.Dimensions{Width: 200, Height: 90}, r.Move(editor.Point{Y: 10}), "outside threshold")
}

func TestResize_EndWithoutMove(t *testing.T) {
	r := editor.NewResize(&config.ResizeConfig{MinWidth: 1, MinHeight: 1, ReferenceWidth: 100}, nil)
	_, _, ok := r.End()
	assert.False(t, ok, "nothing started")

	r.Begin(0, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 50, Height: 50}, false)
	_, _, ok = r.End()
	assert.False(t, ok, "pointer never moved")

	r.Begin(0, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 50, Height: 50}, false)
	r.Move(editor.Point{X: 5})
	r.Cancel()
	assert.False(t, r.Active())
	_, _, ok = r.End()
	assert.False(t, ok, "cancelled")
	assert.Equal(t, editor.Dimensions{}, r.Move(editor.Point{X: 5}))
}
