package charts

import (
	"errors"
	"fmt"
	"time"
)

// Renderable is a unit the chart orders and folds the drawing area through.
// The set of variants is closed: Series implementations, *Axis, *Legend and
// *Tooltip.
type Renderable interface {
	Kind() UnitKind
	// Order is the ordering key. Lower orders render first and consume area
	// first; ties keep registration order.
	Order() int
	// Invalidate drops cached measurements and scales.
	Invalidate()
	// Render draws into area and returns the area left for the next unit.
	// The result must lie within area.
	Render(rc *RenderContext, area Rect) Rect

	base() *unitBase
}

// unitBase carries the registration bookkeeping shared by every renderable.
type unitBase struct {
	chart    *Chart
	index    int // registration index, -1 while unregistered
	order    int
	hasOrder bool
}

func newUnitBase() unitBase {
	return unitBase{index: -1}
}

func (u *unitBase) base() *unitBase { return u }

// SetOrder overrides the default ordering key.
func (u *unitBase) SetOrder(order int) {
	u.order = order
	u.hasOrder = true
}

func (u *unitBase) orderOr(def int) int {
	if u.hasOrder {
		return u.order
	}
	return def
}

// Index returns the registration index, or -1 when the unit is not
// registered.
func (u *unitBase) Index() int { return u.index }

// Registered reports whether the unit belongs to a chart.
func (u *unitBase) Registered() bool { return u.chart != nil }

// renderEntry is one unit in render order.
type renderEntry struct {
	unit  Renderable
	order int
	index int
}

// --- Merge sort ---

// entryLessOrEqual returns true if a should render before or with b.
// Using <= for the registration index keeps the sort stable.
func entryLessOrEqual(a, b renderEntry) bool {
	if a.order != b.order {
		return a.order < b.order
	}
	return a.index <= b.index
}

// sortEntries sorts c.entries in place using c.sortBuf as scratch space.
// Bottom-up merge sort: no allocations once the buffer reached its
// high-water mark.
func (c *Chart) sortEntries() {
	n := len(c.entries)
	if n <= 1 {
		return
	}
	if cap(c.sortBuf) < n {
		c.sortBuf = make([]renderEntry, n)
	}
	c.sortBuf = c.sortBuf[:n]

	a := c.entries
	b := c.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(c.entries, c.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []renderEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if entryLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// --- Fold ---

// foldStep records the rectangles one unit received and returned.
type foldStep struct {
	Unit Renderable
	In   Rect
	Out  Rect
}

// fold threads area through every entry in order. A unit returning a larger
// rectangle is clipped to what it received; a panicking unit is recovered
// and the fold continues with the rectangle it received.
func (c *Chart) fold(rc *RenderContext, area Rect) []foldStep {
	steps := c.steps[:0]
	for _, e := range c.entries {
		rc.cur = unitRef{kind: e.unit.Kind(), index: e.index}
		out, err := renderUnit(rc, e.unit, area)
		if err != nil {
			rc.Report(err)
		}
		if out.Width < 0 {
			out.Width = 0
		}
		if out.Height < 0 {
			out.Height = 0
		}
		if !out.Within(area) {
			rc.Report(fmt.Errorf("%w: %+v from %+v", ErrAreaGrew, out, area))
			clipped := out.Intersect(area)
			if !clipped.Within(area) {
				clipped = Rect{X: area.X, Y: area.Y}
			}
			out = clipped
		}
		steps = append(steps, foldStep{Unit: e.unit, In: area, Out: out})
		area = out
	}
	c.steps = steps
	return steps
}

var errRenderPanic = errors.New("charts: render panicked")

func renderUnit(rc *RenderContext, u Renderable, area Rect) (out Rect, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = area
			err = fmt.Errorf("%w: %v", errRenderPanic, r)
		}
	}()
	return u.Render(rc, area), nil
}

// FrameReport summarizes one RenderFrame call.
type FrameReport struct {
	Frame  uint64
	Errors []error
	Stats  FrameStats
}

// Err joins the per-unit errors of the frame, or returns nil.
func (r FrameReport) Err() error {
	return errors.Join(r.Errors...)
}

// FrameStats holds per-frame timing.
type FrameStats struct {
	BuildTime time.Duration // invalidate broadcast and context setup
	SortTime  time.Duration
	FoldTime  time.Duration
	Units     int
	Drained   int // events applied after the frame
}
