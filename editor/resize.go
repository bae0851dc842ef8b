package editor

import (
	"math"

	"go.uber.org/zap"

	"lbe/common"
	"lbe/config"
)

// Dimensions are block sizes in pixels.
type Dimensions struct {
	Width, Height int
}

// Resize is pointer drag state machine computing new size of a single block.
// The document is never touched: live dimensions are reported by Move and
// committed by the session only after End.
type Resize struct {
	log *zap.Logger
	cfg config.ResizeConfig

	active    bool
	moved     bool
	index     int
	dir       common.ResizeDirection
	start     Point
	startSize Dimensions
	aspect    float64
	lock      bool
	current   Dimensions
}

// DefaultResizeConfig mirrors defaults of configuration template.
func DefaultResizeConfig() config.ResizeConfig {
	return config.ResizeConfig{
		MinWidth:       60,
		MinHeight:      30,
		SnapThreshold:  8,
		ReferenceWidth: 430,
		Breakpoints:    []float64{0.25, 0.33, 0.5, 0.66, 0.75, 1.0},
	}
}

// NewResize creates resize controller, nil configuration means defaults.
func NewResize(cfg *config.ResizeConfig, log *zap.Logger) *Resize {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resize{log: log.Named("resize"), cfg: DefaultResizeConfig()}
	if cfg != nil {
		r.cfg = *cfg
	}
	return r
}

// Begin starts resizing block at index from handle dir. Start size is what
// block actually renders as, its stored size may be auto. Resize in progress,
// if any, is discarded.
func (r *Resize) Begin(index int, dir common.ResizeDirection, pointer Point, rendered Dimensions, aspectLock bool) {
	aspect := 1.0
	if rendered.Width > 0 && rendered.Height > 0 {
		aspect = float64(rendered.Width) / float64(rendered.Height)
	}
	r.active, r.moved = true, false
	r.index, r.dir = index, dir
	r.start, r.startSize, r.current = pointer, rendered, rendered
	r.aspect, r.lock = aspect, aspectLock
}

// Active reports resize in progress.
func (r *Resize) Active() bool {
	return r.active
}

// Index returns index of the block being resized.
func (r *Resize) Index() (int, bool) {
	return r.index, r.active
}

// Move returns live dimensions for pointer position.
func (r *Resize) Move(pointer Point) Dimensions {
	if !r.active {
		return Dimensions{}
	}
	dx, dy := pointer.X-r.start.X, pointer.Y-r.start.Y
	w, h := float64(r.startSize.Width), float64(r.startSize.Height)

	switch {
	case r.dir.GrowsRight():
		w += dx
	case r.dir.GrowsLeft():
		w -= dx
	}
	switch {
	case r.dir.GrowsDown():
		h += dy
	case r.dir.GrowsUp():
		h -= dy
	}

	widthPrimary := r.dir.IsCorner() || r.dir == common.ResizeDirectionE || r.dir == common.ResizeDirectionW
	if r.lock {
		if widthPrimary {
			h = w / r.aspect
		} else {
			w = h * r.aspect
		}
	}

	w = max(w, float64(r.cfg.MinWidth))
	h = max(h, float64(r.cfg.MinHeight))

	if snapped, ok := r.snap(w); ok {
		w = snapped
		if r.lock {
			h = max(w/r.aspect, float64(r.cfg.MinHeight))
		}
	}

	r.current = Dimensions{Width: int(math.Round(w)), Height: int(math.Round(h))}
	r.moved = true
	return r.current
}

// snap returns nearest breakpoint width within threshold.
func (r *Resize) snap(w float64) (float64, bool) {
	best, found := 0.0, false
	bestDist := float64(r.cfg.SnapThreshold)
	for _, bp := range r.cfg.Breakpoints {
		target := float64(r.cfg.ReferenceWidth) * bp
		if d := math.Abs(w - target); d <= bestDist {
			best, bestDist, found = target, d, true
		}
	}
	if found {
		r.log.Debug("Width snapped", zap.Float64("candidate", w), zap.Float64("snapped", best))
	}
	return best, found
}

// End finishes resize and returns dimensions to commit. Nothing is
// returned when pointer never moved.
func (r *Resize) End() (index int, d Dimensions, ok bool) {
	index, d, ok = r.index, r.current, r.active && r.moved
	r.Cancel()
	return index, d, ok
}

// Cancel discards resize in progress.
func (r *Resize) Cancel() {
	cfg, log := r.cfg, r.log
	*r = Resize{cfg: cfg, log: log}
}
