package charts

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Chart owns the ordered registry of renderables, runs frames and routes
// input. Frames and event handling never interleave: events dispatched while
// a frame or another dispatch is running are queued and applied right after
// it, in arrival order.
type Chart struct {
	stateMu sync.Mutex

	surface     Surface
	opts        options
	style       StyleSource
	cancelStyle func()

	units     []Renderable
	nextIndex int
	coord     CoordinateSystem
	nSeries   int

	dirty atomic.Bool
	frame uint64

	qmu   sync.Mutex
	busy  bool
	queue []Event

	entries []renderEntry
	sortBuf []renderEntry
	steps   []foldStep

	input    inputState
	hover    *Hit
	handlers handlerRegistry
	pending  []func()
	report   FrameReport
}

// New creates a chart drawing to surface. The style source, if any, is
// subscribed to once here.
func New(surface Surface, opts ...Option) *Chart {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.style == nil {
		o.style = NewStaticStyle(DefaultStyle())
	}
	c := &Chart{
		surface: surface,
		opts:    o,
		style:   o.style,
		input:   newInputState(),
	}
	c.cancelStyle = c.style.Subscribe(c.Invalidate)
	c.dirty.Store(true)
	return c
}

// Surface returns the surface passed to New.
func (c *Chart) Surface() Surface { return c.surface }

// Close cancels the style subscription.
func (c *Chart) Close() {
	if c.cancelStyle != nil {
		c.cancelStyle()
		c.cancelStyle = nil
	}
}

// CoordinateSystem returns the tag fixed by the first registered series, or
// CoordNone when no series is registered.
func (c *Chart) CoordinateSystem() CoordinateSystem {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.coord
}

// Register adds u to the chart. A series whose coordinate system differs
// from the chart's fails with a *MismatchError and leaves the registry
// unchanged.
func (c *Chart) Register(u Renderable) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	b := u.base()
	if b.chart != nil {
		return ErrAlreadyRegistered
	}
	s, isSeries := u.(Series)
	switch {
	case isSeries:
		cs := s.CoordinateSystem()
		if c.coord != CoordNone && cs != c.coord {
			return &MismatchError{Chart: c.coord, Series: cs}
		}
		for _, a := range s.Axes() {
			if a.chart != nil {
				return fmt.Errorf("%w: axis %q is registered on its own", ErrAxisOwned, a.Name)
			}
		}
	default:
		if a, ok := u.(*Axis); ok && a.attached {
			return fmt.Errorf("%w: axis %q", ErrAxisOwned, a.Name)
		}
	}

	b.chart = c
	b.index = c.nextIndex
	c.nextIndex++
	c.units = append(c.units, u)
	if isSeries {
		if c.coord == CoordNone {
			c.coord = s.CoordinateSystem()
		}
		c.nSeries++
	}
	Logger().Info("unit registered", "kind", unitKindName(u.Kind()), "index", b.index, "coord", c.coord)
	c.Invalidate()
	return nil
}

// Unregister removes u and reports whether it was registered. Removing the
// last series clears the coordinate system tag.
func (c *Chart) Unregister(u Renderable) bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	b := u.base()
	if b.chart != c {
		return false
	}
	i := slices.Index(c.units, u)
	if i < 0 {
		return false
	}
	c.units = slices.Delete(c.units, i, i+1)
	index := b.index
	b.chart = nil
	b.index = -1

	if s, ok := u.(Series); ok {
		c.nSeries--
		if c.nSeries == 0 {
			c.coord = CoordNone
		}
		if c.hover != nil && c.hover.Series == s {
			c.hover = nil
		}
		c.input.release(s)
	}
	Logger().Info("unit unregistered", "kind", unitKindName(u.Kind()), "index", index)
	c.Invalidate()
	return true
}

// Units returns the registered units in registration order.
func (c *Chart) Units() []Renderable {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return slices.Clone(c.units)
}

// Len returns the number of registered units.
func (c *Chart) Len() int {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return len(c.units)
}

// Invalidate marks the chart dirty. It is safe from any goroutine; calls
// before the next frame coalesce into one invalidate broadcast at the start
// of that frame. View state is not touched.
func (c *Chart) Invalidate() {
	c.dirty.Store(true)
}

// RenderFrame renders one frame at size (logical pixels) and returns its
// report. Per-unit errors never abort the frame.
func (c *Chart) RenderFrame(size Size) FrameReport {
	c.qmu.Lock()
	c.busy = true
	c.qmu.Unlock()

	c.stateMu.Lock()
	report := c.renderLocked(size)
	report.Stats.Drained = c.drainLocked()
	c.report = report
	fns := c.takePending()
	c.stateMu.Unlock()

	c.debugLog(report)
	run(fns)
	return report
}

func (c *Chart) renderLocked(size Size) FrameReport {
	var stats FrameStats
	var t0 time.Time
	if c.opts.debug {
		t0 = time.Now()
	}

	c.frame++
	if c.dirty.Swap(false) {
		for _, u := range c.units {
			u.Invalidate()
		}
	}
	st := c.style.Style().withDefaults()
	c.assignSlots(st)
	full := Rect{Width: size.Width, Height: size.Height}
	area := full.Inset(c.opts.margins)
	rc := newRenderContext(c, c.surface, size, st, area, c.frame)
	if c.hover != nil {
		h := *c.hover
		rc.Hover = &h
	}
	c.entries = c.entries[:0]
	for _, u := range c.units {
		c.entries = append(c.entries, renderEntry{unit: u, order: u.Order(), index: u.base().index})
	}

	if c.opts.debug {
		stats.BuildTime = time.Since(t0)
		t0 = time.Now()
	}

	c.sortEntries()

	if c.opts.debug {
		stats.SortTime = time.Since(t0)
		t0 = time.Now()
	}

	rc.Surface.Rect(full, st.Background, nil, 0)
	c.fold(rc, area)
	rc.end()

	if c.opts.debug {
		stats.FoldTime = time.Since(t0)
	}
	stats.Units = len(c.entries)

	for _, err := range rc.errs {
		Logger().Warn("render error", "frame", c.frame, "error", err)
	}
	return FrameReport{Frame: c.frame, Errors: rc.errs, Stats: stats}
}

// assignSlots gives every series a run of palette slots as wide as its
// current legend entries, in registration order.
func (c *Chart) assignSlots(st Style) {
	slot := 0
	for _, u := range c.units {
		if s, ok := u.(Series); ok {
			s.series().slot = slot
			slot += max(1, len(s.legendEntries(st)))
		}
	}
}

// LastFrame returns the report of the most recent frame.
func (c *Chart) LastFrame() FrameReport {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.report
}

// FoldStep records the rectangle a unit received and the one it returned in
// the most recent frame.
type FoldStep = foldStep

// FoldSteps returns the fold of the most recent frame in render order.
func (c *Chart) FoldSteps() []FoldStep {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return slices.Clone(c.steps)
}

// Dispatch routes a pointer, wheel or pinch event. It returns false when the
// event was queued because a frame or another dispatch is in progress; the
// queued event is applied as soon as that finishes.
func (c *Chart) Dispatch(ev Event) bool {
	c.qmu.Lock()
	if c.busy {
		c.queue = append(c.queue, ev)
		c.qmu.Unlock()
		return false
	}
	c.busy = true
	c.qmu.Unlock()

	c.stateMu.Lock()
	c.handle(ev)
	c.drainLocked()
	fns := c.takePending()
	c.stateMu.Unlock()

	run(fns)
	return true
}

// drainLocked applies queued events until the queue is empty and clears the
// busy flag.
func (c *Chart) drainLocked() int {
	n := 0
	for {
		c.qmu.Lock()
		if len(c.queue) == 0 {
			c.busy = false
			c.qmu.Unlock()
			return n
		}
		batch := c.queue
		c.queue = nil
		c.qmu.Unlock()
		for _, ev := range batch {
			c.handle(ev)
			n++
		}
	}
}

func (c *Chart) takePending() []func() {
	fns := c.pending
	c.pending = nil
	return fns
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// seriesLocked returns the registered series in registration order.
func (c *Chart) seriesLocked() []Series {
	var out []Series
	for _, u := range c.units {
		if s, ok := u.(Series); ok {
			out = append(out, s)
		}
	}
	return out
}

// Series returns the registered series in registration order.
func (c *Chart) Series() []Series {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.seriesLocked()
}

func (c *Chart) legendEntries(st Style) []LegendEntry {
	var out []LegendEntry
	for _, s := range c.seriesLocked() {
		out = append(out, s.legendEntries(st)...)
	}
	return out
}

// axesLocked returns every axis reachable from the registry: free-standing
// axes and the axes of registered series, each once.
func (c *Chart) axesLocked() []*Axis {
	var out []*Axis
	seen := make(map[*Axis]bool)
	add := func(a *Axis) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	for _, u := range c.units {
		switch v := u.(type) {
		case *Axis:
			add(v)
		case Series:
			for _, a := range v.Axes() {
				add(a)
			}
		}
	}
	return out
}

// Axes returns every axis the chart renders.
func (c *Chart) Axes() []*Axis {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.axesLocked()
}

// seriesAt returns the topmost series whose plot contains (x, y): the
// highest order wins, then the latest registration.
func (c *Chart) seriesAt(x, y float64) Series {
	var best Series
	for _, s := range c.seriesLocked() {
		if !s.PlotRect().Contains(x, y) {
			continue
		}
		if best == nil || s.Order() > best.Order() ||
			(s.Order() == best.Order() && s.base().index > best.base().index) {
			best = s
		}
	}
	return best
}

// HitTest returns the data point nearest (x, y) across every series, within
// the chart hit tolerance. Ties go to the lowest data index, then the lowest
// registration index.
func (c *Chart) HitTest(x, y float64) (Hit, bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.hitTestLocked(x, y)
}

func (c *Chart) hitTestLocked(x, y float64) (Hit, bool) {
	set := hitSet{tol: c.opts.hitTolerance}
	p := Vec2{X: x, Y: y}
	for _, s := range c.seriesLocked() {
		if h, ok := s.HitTest(p, c.opts.hitTolerance); ok {
			set.offer(h)
		}
	}
	return set.result()
}

// HoverTarget returns the current hover target.
func (c *Chart) HoverTarget() (Hit, bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.hover == nil {
		return Hit{}, false
	}
	return *c.hover, true
}
