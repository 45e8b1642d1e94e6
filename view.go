package charts

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AxisPermission is a bitmask of view operations an axis allows.
type AxisPermission uint8

const (
	AxisPan  AxisPermission = 1 << iota // drag translates the window
	AxisZoom                            // wheel and pinch scale the window
)

// AxisPanZoom allows every view operation.
const AxisPanZoom = AxisPan | AxisZoom

// ViewState is the user navigation state of one axis. Offset is the start of
// the visible window in scale units and Zoom is the base span divided by the
// visible span. An axis that was never panned or zoomed is not anchored and
// follows its data.
type ViewState struct {
	Offset   float64 `json:"offset"`
	Zoom     float64 `json:"zoom"`
	Anchored bool    `json:"anchored"`
}

// IdentityView is the view of an axis showing its whole base domain.
func IdentityView() ViewState {
	return ViewState{Zoom: 1}
}

// viewBounds limits the visible window: it always lies in [lo, hi] and is
// never narrower than minSpan.
type viewBounds struct {
	lo, hi  float64
	minSpan float64
}

func newViewBounds(min, max, panMargin, minVisible float64) viewBounds {
	span := max - min
	m := panMargin * span
	return viewBounds{
		lo:      min - m,
		hi:      max + m,
		minSpan: minVisible * span,
	}
}

func (b viewBounds) clamp(lo, span float64) (float64, float64) {
	span = clamp(span, b.minSpan, b.hi-b.lo)
	lo = clamp(lo, b.lo, b.hi-span)
	return lo, span
}

func (b viewBounds) state(s Scale, lo, span float64) ViewState {
	lo, span = b.clamp(lo, span)
	return ViewState{Offset: lo, Zoom: s.BaseSpan() / span, Anchored: true}
}

// zoomWindow scales the visible window by factor around anchorPixel. The unit
// under the anchor keeps its pixel unless the result has to be clamped.
// Non-positive factors fall to the widest allowed window.
func zoomWindow(s Scale, b viewBounds, factor, anchorPixel float64) ViewState {
	lo, span := s.Window()
	base := s.BaseSpan()
	if base <= 0 || span <= 0 {
		return s.View
	}
	oldZoom := base / span
	var newZoom float64
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		newZoom = base / (b.hi - b.lo)
	} else {
		newZoom = oldZoom * factor
	}
	newSpan := base / newZoom
	a := s.PixelToUnit(anchorPixel)
	newLo := a - (a-lo)*(oldZoom/newZoom)
	return b.state(s, newLo, newSpan)
}

// panWindow translates the visible window so content follows a pointer that
// moved dPix pixels along the scale.
func panWindow(s Scale, b viewBounds, dPix float64) ViewState {
	lo, span := s.Window()
	pl := s.PixelLength()
	if pl == 0 || span <= 0 {
		return s.View
	}
	du := -dPix * span / pl
	return b.state(s, lo+du, span)
}

// viewAnim eases a window back to the base domain. Progress is tweened in
// [0, 1] and applied in float64 so temporal axes keep their precision.
type viewAnim struct {
	tween          *gween.Tween
	fromLo, fromSp float64
}

func newViewAnim(s Scale, duration float32, easeFn ease.TweenFunc) *viewAnim {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	lo, span := s.Window()
	return &viewAnim{
		tween:  gween.New(0, 1, duration, easeFn),
		fromLo: lo,
		fromSp: span,
	}
}

// step advances the animation and returns the view for the new progress and
// whether it finished.
func (a *viewAnim) step(s Scale, dt float32) (ViewState, bool) {
	f, done := a.tween.Update(dt)
	if done {
		return IdentityView(), true
	}
	t := float64(f)
	lo := a.fromLo + (s.Min-a.fromLo)*t
	span := a.fromSp + (s.BaseSpan()-a.fromSp)*t
	if span <= 0 {
		return IdentityView(), true
	}
	return ViewState{Offset: lo, Zoom: s.BaseSpan() / span, Anchored: true}, false
}
