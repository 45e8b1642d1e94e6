package charts

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/tanema/gween/ease"
	"golang.org/x/text/language"
)

// AxisState tracks how far an axis got in the current invalidate cycle.
type AxisState uint8

const (
	AxisUninitialized AxisState = iota // range unknown
	AxisMeasuring                      // scale computed, margin not yet measured
	AxisReady                          // ticks, labels and margin are current
)

func (s AxisState) String() string {
	switch s {
	case AxisMeasuring:
		return "measuring"
	case AxisReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// axisOwner supplies the data range an attached series contributes to an
// axis. ok is false while the owner is not registered with a chart.
type axisOwner interface {
	rangeFor(a *Axis) (r Range, ok bool)
}

// Axis owns the scale of one data dimension: its tick generation, label
// margin and view state. An axis is either attached to one or more cartesian
// series, which render it, or registered with a chart on its own.
type Axis struct {
	unitBase

	Name   string
	Side   Side
	Type   ScaleType
	Domain DomainKind
	Title  string

	// TickCount is the desired number of tick intervals. Defaults to
	// DefaultTickCount; label overlap may lower it down to 2.
	TickCount int

	// Format overrides label formatting for numeric and temporal axes.
	Format func(v float64) string

	// Locale selects digit grouping for numeric labels. Location is the
	// time zone for temporal labels (UTC when nil).
	Locale   language.Tag
	Location *time.Location

	// LabelRotation rotates tick labels, in radians. Negative values hang
	// bottom labels down-left.
	LabelRotation float64

	// Grid draws a gridline across the plot at every tick.
	Grid bool

	Permissions AxisPermission

	// PanMargin is the fraction of the axis extent the view may move past
	// either end. MinVisibleSpan is the narrowest window as a fraction of
	// the extent.
	PanMargin      float64
	MinVisibleSpan float64

	fixed  *Range
	owners []axisOwner

	state    AxisState
	rng      Range
	dataLo   float64
	dataHi   float64
	count    int
	step     float64
	ticks    []Tick
	units    []float64
	err      error
	reported uint64

	margin   float64
	measured float64 // axis length the margin was measured for
	stale    bool    // view changed since the ticks were generated
	scale    Scale
	strip    Rect
	anim     *viewAnim
	attached bool
}

// NewAxis creates a numeric linear axis on the given side.
func NewAxis(name string, side Side) *Axis {
	return &Axis{
		unitBase:       newUnitBase(),
		Name:           name,
		Side:           side,
		TickCount:      DefaultTickCount,
		Grid:           true,
		Permissions:    AxisPanZoom,
		PanMargin:      0.05,
		MinVisibleSpan: 1e-6,
		measured:       -1,
		scale:          Scale{View: IdentityView()},
	}
}

// NewCategoryAxis creates a categorical axis with the given categories.
// Categories contributed by attached series are appended in order of first
// appearance when none are given.
func NewCategoryAxis(name string, side Side, categories ...string) *Axis {
	a := NewAxis(name, side)
	a.Type = ScaleCategory
	a.Domain = DomainCategorical
	a.Permissions = AxisPan | AxisZoom
	if len(categories) > 0 {
		a.SetCategories(categories...)
	}
	return a
}

// NewTimeAxis creates a temporal axis. Values are unix seconds.
func NewTimeAxis(name string, side Side) *Axis {
	a := NewAxis(name, side)
	a.Domain = DomainTemporal
	return a
}

// NewLogAxis creates a base-10 logarithmic axis.
func NewLogAxis(name string, side Side) *Axis {
	a := NewAxis(name, side)
	a.Type = ScaleLog
	return a
}

// Kind implements Renderable.
func (a *Axis) Kind() UnitKind { return UnitAxis }

// Order implements Renderable.
func (a *Axis) Order() int { return a.orderOr(OrderAxis) }

// Invalidate drops the computed scale, ticks and margin. The view survives.
func (a *Axis) Invalidate() {
	a.state = AxisUninitialized
	a.measured = -1
}

// SetRange fixes the numeric range instead of deriving it from series data.
func (a *Axis) SetRange(min, max float64) {
	a.fixed = &Range{Min: min, Max: max}
	a.Invalidate()
}

// SetCategories fixes the ordered category set.
func (a *Axis) SetCategories(categories ...string) {
	a.fixed = &Range{Categories: append([]string(nil), categories...)}
	a.Invalidate()
}

// ClearRange returns to deriving the range from attached series.
func (a *Axis) ClearRange() {
	a.fixed = nil
	a.Invalidate()
}

// State returns the axis state for the current invalidate cycle.
func (a *Axis) State() AxisState { return a.state }

// Err returns the range error raised by the last CalculateScale, if any.
func (a *Axis) Err() error { return a.err }

// Range returns the range the scale was last computed from.
func (a *Axis) Range() Range { return a.rng }

// Ticks returns a copy of the generated ticks.
func (a *Axis) Ticks() []Tick { return append([]Tick(nil), a.ticks...) }

// Step returns the tick step in scale units.
func (a *Axis) Step() float64 { return a.step }

// Margin returns the last measured margin.
func (a *Axis) Margin() float64 { return a.margin }

// Strip returns the rectangle the axis last drew into.
func (a *Axis) Strip() Rect { return a.strip }

// Scale returns the axis scale as last placed.
func (a *Axis) Scale() Scale { return a.scale }

// View returns the current view state.
func (a *Axis) View() ViewState { return a.scale.View }

func (a *Axis) tickCount() int {
	if a.TickCount < 2 {
		return DefaultTickCount
	}
	return a.TickCount
}

func (a *Axis) scaleType() ScaleType {
	if a.Domain == DomainCategorical {
		return ScaleCategory
	}
	return a.Type
}

func (a *Axis) attach(o axisOwner) {
	a.owners = append(a.owners, o)
	a.attached = true
}

func (a *Axis) collectRange() Range {
	if a.fixed != nil {
		return *a.fixed
	}
	r := emptyRange()
	for _, o := range a.owners {
		if part, ok := o.rangeFor(a); ok {
			r.union(part)
		}
	}
	return r
}

// prepare computes the scale once per invalidate cycle and reports a range
// error once per frame.
func (a *Axis) prepare(rc *RenderContext) {
	if a.state == AxisUninitialized {
		a.CalculateScale(a.collectRange())
	}
	if a.err != nil && rc != nil && a.reported != rc.Frame {
		a.reported = rc.Frame
		rc.Report(a.err)
	}
}

// checkRange returns the numeric bounds of r in ascending order. Empty ranges
// give def silently; non-finite bounds and spans too wide for float64 give
// def and set a *RangeError.
func (a *Axis) checkRange(r Range, defLo, defHi float64) (float64, float64) {
	if r.Empty() {
		return defLo, defHi
	}
	min, max := r.Min, r.Max
	if min > max {
		min, max = max, min
	}
	switch {
	case !finite(min) || !finite(max):
		a.err = &RangeError{Axis: a.Name, Min: r.Min, Max: r.Max, Reason: "bounds must be finite"}
	case !finite(max - min):
		a.err = &RangeError{Axis: a.Name, Min: r.Min, Max: r.Max, Reason: "span overflows float64"}
	default:
		return min, max
	}
	return defLo, defHi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// degenerate widens an empty span symmetrically around its single value.
func degenerate(min, max float64) (float64, float64) {
	if min != max {
		return min, max
	}
	if min == 0 {
		return -1, 1
	}
	h := math.Abs(min) / 2
	return min - h, max + h
}

// CalculateScale derives the base domain and ticks from r. Logarithmic axes
// given non-positive values fall back to [1, 10] and return a *RangeError,
// which is also kept in Err.
func (a *Axis) CalculateScale(r Range) error {
	s := &a.scale
	prevLo, prevSpan := s.Window()
	keep := s.View.Anchored && s.BaseSpan() > 0

	a.state = AxisMeasuring
	a.measured = -1
	a.rng = r
	a.err = nil
	a.count = a.tickCount()
	s.Type = a.scaleType()
	s.Domain = a.Domain

	switch s.Type {
	case ScaleCategory:
		n := len(r.Categories)
		if n == 0 {
			n = 1
		}
		s.Min, s.Max = 0, float64(n)
	case ScaleLog:
		min, max := a.checkRange(r, 1, 10)
		if min <= 0 {
			a.err = &RangeError{Axis: a.Name, Min: min, Max: max, Reason: "logarithmic axis needs positive values"}
			min, max = 1, 10
		}
		lo, hi := math.Floor(math.Log10(min)), math.Ceil(math.Log10(max))
		if hi <= lo {
			hi = lo + 1
		}
		a.dataLo, a.dataHi = lo, hi
		s.Min, s.Max = lo, hi
	default:
		min, max := a.checkRange(r, 0, 1)
		a.dataLo, a.dataHi = degenerate(min, max)
		if !finite(a.dataLo) || !finite(a.dataHi) {
			a.err = &RangeError{Axis: a.Name, Min: min, Max: max, Reason: "span overflows float64"}
			a.dataLo, a.dataHi = 0, 1
		}
		// Near the float64 limits the nice bounds can overflow; keep the
		// data bounds then.
		s.Min, s.Max = a.dataLo, a.dataHi
		if lo, hi, _, _ := a.nice(a.dataLo, a.dataHi, a.count); finite(lo) && finite(hi) {
			s.Min, s.Max = lo, hi
		}
	}

	if s.View.Anchored {
		b := a.bounds()
		lo, span := s.View.Offset, s.BaseSpan()/s.View.Zoom
		if keep {
			lo, span = prevLo, prevSpan
		}
		if s.View.Zoom <= 0 && !keep {
			span = b.hi - b.lo
		}
		s.View = b.state(*s, lo, span)
	}
	a.compute(a.count)
	if a.err != nil {
		Logger().Warn("axis range invalid", "axis", a.Name, "error", a.err)
	}
	return a.err
}

func (a *Axis) stepFor(span float64, count int) float64 {
	if a.Domain == DomainTemporal {
		return TimeStep(span, count)
	}
	return NiceStep(span, count)
}

func (a *Axis) nice(min, max float64, count int) (lo, hi, step float64, ticks []float64) {
	return multiples(min, max, a.stepFor(max-min, count))
}

func (a *Axis) bounds() viewBounds {
	return newViewBounds(a.scale.Min, a.scale.Max, a.PanMargin, a.MinVisibleSpan)
}

// compute generates ticks for count intervals. Without a view the base
// domain is re-derived so the ticks still cover the data; with a view the
// ticks are the step multiples inside the visible window.
func (a *Axis) compute(count int) {
	s := &a.scale
	var units []float64
	step := 1.0
	switch s.Type {
	case ScaleCategory:
		n := len(a.rng.Categories)
		units = make([]float64, 0, n)
		for i := 0; i < n; i++ {
			u := float64(i) + 0.5
			if s.View.Anchored {
				if lo, hi := s.Visible(); u < lo || u > hi {
					continue
				}
			}
			units = append(units, u)
		}
	case ScaleLog:
		lo, hi := s.Min, s.Max
		if s.View.Anchored {
			lo, hi = s.Visible()
		}
		if dl, dh := math.Ceil(lo-1e-9), math.Floor(hi+1e-9); dh-dl >= 1 {
			units = decadeTicks(dl, dh)
		} else {
			step = NiceStep(hi-lo, count)
			units = windowTicks(lo, hi, step)
		}
	default:
		if s.View.Anchored {
			lo, hi := s.Visible()
			step = a.stepFor(hi-lo, count)
			units = windowTicks(lo, hi, step)
		} else if lo, hi, st, us := a.nice(a.dataLo, a.dataHi, count); finite(lo) && finite(hi) {
			s.Min, s.Max, step, units = lo, hi, st, us
		} else {
			// Coarser steps can round past the float64 range near its limits.
			step = a.stepFor(s.Max-s.Min, count)
			units = windowTicks(s.Min, s.Max, step)
		}
	}
	a.step = step
	a.units = units
	a.ticks = a.ticks[:0]
	lab := newLabeler(a, step)
	for _, u := range units {
		v := a.unitValue(u)
		a.ticks = append(a.ticks, Tick{Value: v, Pixel: s.UnitToPixel(u), Label: lab.label(v)})
	}
	a.stale = false
}

// unitValue maps a tick unit to its data value.
func (a *Axis) unitValue(u float64) float64 {
	switch a.scale.Type {
	case ScaleCategory:
		return math.Floor(u)
	case ScaleLog:
		return math.Pow(10, u)
	default:
		return u
	}
}

// extents returns the size of a label along and across the axis direction.
func (a *Axis) extents(st Style, label string) (along, across float64) {
	w, h := st.TextWidth(label), st.LineHeight()
	c, s := math.Abs(math.Cos(a.LabelRotation)), math.Abs(math.Sin(a.LabelRotation))
	x, y := w*c+h*s, w*s+h*c
	if a.Side.Horizontal() {
		return x, y
	}
	return y, x
}

// overlaps reports whether adjacent labels collide on an axis length pixels
// long.
func (a *Axis) overlaps(st Style, length float64) bool {
	if len(a.ticks) < 2 || length <= 0 {
		return false
	}
	lo, span := a.scale.Window()
	if span <= 0 {
		return false
	}
	prevPos, prevHalf := 0.0, 0.0
	for i, t := range a.ticks {
		pos := (a.units[i] - lo) / span * length
		along, _ := a.extents(st, t.Label)
		half := along / 2
		if i > 0 && pos-prevPos < prevHalf+half+st.LabelGap {
			return true
		}
		prevPos, prevHalf = pos, half
	}
	return false
}

// tickLevels adapts an axis to scale.Ticker. Level l asks for t0-l
// intervals, so higher levels give fewer ticks.
type tickLevels struct {
	a  *Axis
	t0 int
}

func (l tickLevels) CountTicks(level int) int {
	l.a.compute(l.t0 - level)
	return len(l.a.units)
}

func (l tickLevels) TicksAtLevel(level int) interface{} {
	l.a.compute(l.t0 - level)
	return append([]float64(nil), l.a.units...)
}

// fitCount returns how many labels as wide as the widest current one fit
// side by side on an axis length pixels long.
func (a *Axis) fitCount(st Style, length float64) int {
	var widest float64
	for _, t := range a.ticks {
		along, _ := a.extents(st, t.Label)
		widest = math.Max(widest, along)
	}
	if widest+st.LabelGap <= 0 {
		return len(a.ticks)
	}
	return max(2, int(length/(widest+st.LabelGap))+1)
}

// reduceTicks lowers the tick count until labels stop overlapping on an axis
// length pixels long, never going below two intervals.
func (a *Axis) reduceTicks(st Style, length float64) {
	t0 := a.tickCount()
	a.count = t0
	a.compute(t0)
	if a.scale.Type == ScaleCategory || t0 <= 2 || !a.overlaps(st, length) {
		return
	}
	opts := scale.TickOptions{Max: a.fitCount(st, length), MinLevel: 0, MaxLevel: t0 - 2}
	level, ok := opts.FindLevel(tickLevels{a: a, t0: t0}, 0)
	if !ok {
		level = t0 - 2
	}
	// Labels narrower than the widest may still collide at their real
	// positions.
	for ; level < t0-2; level++ {
		a.compute(t0 - level)
		if !a.overlaps(st, length) {
			break
		}
	}
	a.count = t0 - level
	a.compute(a.count)
}

// MeasureMargin returns the strip thickness the axis needs beside a plot in
// area: tick marks, the widest label, the title line and padding.
func (a *Axis) MeasureMargin(rc *RenderContext, area Rect) float64 {
	a.prepare(rc)
	length := area.Width
	if !a.Side.Horizontal() {
		length = area.Height
	}
	if a.state == AxisReady && a.measured == length && !a.stale {
		return a.margin
	}
	st := rc.Style
	a.reduceTicks(st, length)

	var across float64
	for _, t := range a.ticks {
		_, c := a.extents(st, t.Label)
		across = math.Max(across, c)
	}
	m := st.TickLength + st.LabelGap + across + st.LabelGap
	if a.Title != "" {
		m += st.LineHeight() + st.LabelGap
	}
	a.margin = m
	a.measured = length
	a.state = AxisReady
	return m
}

// place maps the scale onto the plot edge the axis runs along.
func (a *Axis) place(plot Rect) Scale {
	s := &a.scale
	if a.Side.Horizontal() {
		s.PixelStart, s.PixelEnd = plot.X, plot.X+plot.Width
	} else {
		s.PixelStart, s.PixelEnd = plot.Y+plot.Height, plot.Y
	}
	for i := range a.ticks {
		a.ticks[i].Pixel = s.UnitToPixel(a.units[i])
	}
	return *s
}

// stripRect returns the margin strip of thickness m on side of plot.
func stripRect(side Side, plot Rect, m float64) Rect {
	switch side {
	case SideLeft:
		return Rect{X: plot.X - m, Y: plot.Y, Width: m, Height: plot.Height}
	case SideRight:
		return Rect{X: plot.X + plot.Width, Y: plot.Y, Width: m, Height: plot.Height}
	case SideBottom:
		return Rect{X: plot.X, Y: plot.Y + plot.Height, Width: plot.Width, Height: m}
	default:
		return Rect{X: plot.X, Y: plot.Y - m, Width: plot.Width, Height: m}
	}
}

// RenderAxis draws the axis strip beside plot and its gridlines across plot,
// using the scale lent for this frame when there is one.
func (a *Axis) RenderAxis(rc *RenderContext, area, plot Rect) {
	s := a.scale
	if h, ok := rc.Borrow(a); ok {
		if lent, err := h.Get(); err == nil {
			s = lent
		}
	}
	st := rc.Style
	surf := rc.Surface
	lh := st.LineHeight()
	a.strip = stripRect(a.Side, plot, a.margin).Intersect(area)

	left, right := plot.X, plot.X+plot.Width
	top, bottom := plot.Y, plot.Y+plot.Height
	switch a.Side {
	case SideLeft:
		surf.Line(left, top, left, bottom, 1, st.Foreground)
	case SideRight:
		surf.Line(right, top, right, bottom, 1, st.Foreground)
	case SideBottom:
		surf.Line(left, bottom, right, bottom, 1, st.Foreground)
	case SideTop:
		surf.Line(left, top, right, top, 1, st.Foreground)
	}

	tl, gap := st.TickLength, st.LabelGap
	rot := a.LabelRotation
	prevEnd := math.Inf(-1)
	for i, t := range a.ticks {
		p := s.UnitToPixel(a.units[i])
		if !s.InPixelRange(p) {
			continue
		}
		if a.Grid {
			if a.Side.Horizontal() {
				surf.Line(p, top, p, bottom, 1, st.Grid)
			} else {
				surf.Line(left, p, right, p, 1, st.Grid)
			}
		}
		var x, y float64
		align := TextAlignCenter
		switch a.Side {
		case SideLeft:
			surf.Line(left-tl, p, left, p, 1, st.Foreground)
			x, y, align = left-tl-gap, p-lh/2, TextAlignRight
		case SideRight:
			surf.Line(right, p, right+tl, p, 1, st.Foreground)
			x, y, align = right+tl+gap, p-lh/2, TextAlignLeft
		case SideBottom:
			surf.Line(p, bottom, p, bottom+tl, 1, st.Foreground)
			x, y = p, bottom+tl+gap
			if rot < 0 {
				align = TextAlignRight
			} else if rot > 0 {
				align = TextAlignLeft
			}
		case SideTop:
			surf.Line(p, top-tl, p, top, 1, st.Foreground)
			x, y = p, top-tl-gap-lh
			if rot < 0 {
				y, align = top-tl-gap, TextAlignLeft
			} else if rot > 0 {
				y, align = top-tl-gap, TextAlignRight
			}
		}
		along, _ := a.extents(st, t.Label)
		pos := p
		if !a.Side.Horizontal() {
			pos = -p // labels run bottom-up
		}
		if pos-along/2 < prevEnd+gap {
			continue
		}
		prevEnd = pos + along/2
		surf.Text(t.Label, x, y, rot, st.Font, st.Foreground, align)
	}

	if a.Title == "" {
		return
	}
	m := a.margin
	switch a.Side {
	case SideBottom:
		surf.Text(a.Title, left+plot.Width/2, bottom+m-gap-lh, 0, st.Font, st.Foreground, TextAlignCenter)
	case SideTop:
		surf.Text(a.Title, left+plot.Width/2, top-m+gap, 0, st.Font, st.Foreground, TextAlignCenter)
	case SideLeft:
		surf.Text(a.Title, left-m+gap, top+plot.Height/2, -math.Pi/2, st.Font, st.Foreground, TextAlignCenter)
	case SideRight:
		surf.Text(a.Title, right+m-gap-lh, top+plot.Height/2, -math.Pi/2, st.Font, st.Foreground, TextAlignCenter)
	}
}

// Render draws a free-standing axis on its side of area and returns the rest
// of area.
func (a *Axis) Render(rc *RenderContext, area Rect) Rect {
	m := a.MeasureMargin(rc, area)
	rest := area
	switch a.Side {
	case SideLeft:
		m = math.Min(m, area.Width)
		rest.X += m
		rest.Width -= m
	case SideRight:
		m = math.Min(m, area.Width)
		rest.Width -= m
	case SideBottom:
		m = math.Min(m, area.Height)
		rest.Height -= m
	case SideTop:
		m = math.Min(m, area.Height)
		rest.Y += m
		rest.Height -= m
	}
	rc.Lend(a, a.place(rest))
	a.RenderAxis(rc, area, rest)
	return rest
}

// Pan moves the view by dPix pixels along the axis. It reports whether the
// view changed; axes without AxisPan ignore the call.
func (a *Axis) Pan(dPix float64) bool {
	if a.Permissions&AxisPan == 0 || dPix == 0 {
		return false
	}
	return a.setView(panWindow(a.scale, a.bounds(), dPix))
}

// Zoom scales the view by factor keeping the value under anchorPixel in
// place. Factors above 1 zoom in. Axes without AxisZoom ignore the call.
func (a *Axis) Zoom(factor, anchorPixel float64) bool {
	if a.Permissions&AxisZoom == 0 || factor == 1 {
		return false
	}
	return a.setView(zoomWindow(a.scale, a.bounds(), factor, anchorPixel))
}

// SetView replaces the view, clamped to the current bounds when the scale is
// known. A view that is not anchored resets to the whole domain.
func (a *Axis) SetView(v ViewState) {
	a.anim = nil
	if !v.Anchored {
		a.setView(IdentityView())
		return
	}
	if a.scale.BaseSpan() <= 0 {
		a.setView(v)
		return
	}
	b := a.bounds()
	span := b.hi - b.lo
	if v.Zoom > 0 {
		span = a.scale.BaseSpan() / v.Zoom
	}
	a.setView(b.state(a.scale, v.Offset, span))
}

// ResetView returns the view to the whole domain, easing over duration
// seconds. A zero duration resets immediately.
func (a *Axis) ResetView(duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 || !a.scale.View.Anchored || a.scale.BaseSpan() <= 0 {
		a.anim = nil
		a.setView(IdentityView())
		return
	}
	a.anim = newViewAnim(a.scale, duration, easeFn)
}

// Animating reports whether a view reset is in progress.
func (a *Axis) Animating() bool { return a.anim != nil }

func (a *Axis) setView(v ViewState) bool {
	if v == a.scale.View {
		return false
	}
	a.scale.View = v
	a.stale = true
	return true
}

// advance steps a running reset animation.
func (a *Axis) advance(dt float32) bool {
	if a.anim == nil {
		return false
	}
	v, done := a.anim.step(a.scale, dt)
	if done {
		a.anim = nil
	}
	a.scale.View = v
	a.stale = true
	return true
}
