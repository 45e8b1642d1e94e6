package charts

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CartesianMode selects how a cartesian series draws its points.
type CartesianMode uint8

const (
	ModeLine CartesianMode = iota
	ModeScatter
	ModeBar
)

func (m CartesianMode) String() string {
	switch m {
	case ModeScatter:
		return "scatter"
	case ModeBar:
		return "bar"
	default:
		return "line"
	}
}

// DefaultPrecision is the number of decimal places Y values are rounded to.
const DefaultPrecision = 6

type cartPoint struct {
	x   float64 // value or unix seconds; unused on categorical X axes
	cat string
	y   decimal.Decimal
}

// Cartesian is an X/Y series. Y values are kept as fixed-precision decimals
// so aggregated categories and ranges do not accumulate float error.
type Cartesian struct {
	seriesBase

	Mode CartesianMode

	// BarWidth is the bar width as a fraction of the category band or of
	// the smallest gap between X values. Defaults to 0.8.
	BarWidth float64

	precision int32
	x, y      *Axis
	points    []cartPoint
	catIndex  map[string]int
	xcache    *Range
}

// NewCartesian creates a series drawn against exactly one horizontal X axis
// and one vertical Y axis. The axes may be shared with other series.
func NewCartesian(name string, mode CartesianMode, axes ...*Axis) (*Cartesian, error) {
	var x, y *Axis
	for _, a := range axes {
		switch {
		case a == nil:
			return nil, fmt.Errorf("%w: nil axis", ErrAxisDimension)
		case a.Side.Horizontal() && x == nil:
			x = a
		case !a.Side.Horizontal() && y == nil:
			y = a
		default:
			return nil, fmt.Errorf("%w: got %d axes", ErrAxisDimension, len(axes))
		}
	}
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: got %d axes", ErrAxisDimension, len(axes))
	}
	if y.scaleType() == ScaleCategory {
		return nil, fmt.Errorf("%w: Y axis %q is categorical", ErrAxisDimension, y.Name)
	}
	c := &Cartesian{
		seriesBase: newSeriesBase(name),
		Mode:       mode,
		BarWidth:   0.8,
		precision:  DefaultPrecision,
		x:          x,
		y:          y,
		catIndex:   make(map[string]int),
	}
	x.attach(c)
	y.attach(c)
	return c, nil
}

// CoordinateSystem implements Series.
func (c *Cartesian) CoordinateSystem() CoordinateSystem { return CoordCartesian }

// X returns the X axis.
func (c *Cartesian) X() *Axis { return c.x }

// Y returns the Y axis.
func (c *Cartesian) Y() *Axis { return c.y }

// Axes implements Series.
func (c *Cartesian) Axes() []*Axis { return []*Axis{c.x, c.y} }

// SetPrecision sets the decimal places Y values are rounded to on ingestion.
// Existing points are rounded again.
func (c *Cartesian) SetPrecision(places int32) {
	c.precision = places
	for i := range c.points {
		c.points[i].y = c.points[i].y.Round(places)
	}
	c.changed()
}

// Add appends a point. NaN and infinite Y values are dropped.
func (c *Cartesian) Add(x, y float64) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	c.AddDecimal(x, decimal.NewFromFloat(y))
}

// AddDecimal appends a point with an exact Y value.
func (c *Cartesian) AddDecimal(x float64, y decimal.Decimal) {
	c.points = append(c.points, cartPoint{x: x, y: y.Round(c.precision)})
	c.changed()
}

// AddTime appends a point on a temporal X axis.
func (c *Cartesian) AddTime(t time.Time, y float64) {
	c.Add(float64(t.UnixNano())/1e9, y)
}

// AddCategory adds y to category cat. Repeated categories are summed.
func (c *Cartesian) AddCategory(cat string, y float64) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	c.AddCategoryDecimal(cat, decimal.NewFromFloat(y))
}

// AddCategoryDecimal adds an exact y to category cat.
func (c *Cartesian) AddCategoryDecimal(cat string, y decimal.Decimal) {
	y = y.Round(c.precision)
	if i, ok := c.catIndex[cat]; ok {
		c.points[i].y = c.points[i].y.Add(y)
	} else {
		c.catIndex[cat] = len(c.points)
		c.points = append(c.points, cartPoint{cat: cat, y: y})
	}
	c.changed()
}

// Clear removes every point.
func (c *Cartesian) Clear() {
	c.points = c.points[:0]
	clear(c.catIndex)
	c.changed()
}

// Len returns the number of points.
func (c *Cartesian) Len() int { return len(c.points) }

// Point returns point i.
func (c *Cartesian) Point(i int) (x float64, cat string, y decimal.Decimal) {
	p := c.points[i]
	return p.x, p.cat, p.y
}

func (c *Cartesian) changed() {
	c.cached = nil
	c.xcache = nil
	if c.chart != nil {
		c.chart.Invalidate()
	}
}

// Invalidate implements Renderable.
func (c *Cartesian) Invalidate() {
	c.cached = nil
	c.xcache = nil
	c.x.Invalidate()
	c.y.Invalidate()
}

// ComputeRange returns the Y range. Bar series include zero unless the Y
// axis is logarithmic.
func (c *Cartesian) ComputeRange() Range {
	if c.cached != nil {
		return *c.cached
	}
	r := emptyRange()
	if len(c.points) > 0 {
		lo, hi := c.points[0].y, c.points[0].y
		for _, p := range c.points[1:] {
			lo = decimal.Min(lo, p.y)
			hi = decimal.Max(hi, p.y)
		}
		if c.Mode == ModeBar && c.y.scaleType() != ScaleLog {
			lo = decimal.Min(lo, decimal.Zero)
			hi = decimal.Max(hi, decimal.Zero)
		}
		r = Range{Min: lo.InexactFloat64(), Max: hi.InexactFloat64()}
	}
	c.cached = &r
	return r
}

// xRange returns the X range, or the categories in order of first
// appearance on a categorical X axis.
func (c *Cartesian) xRange() Range {
	if c.xcache != nil {
		return *c.xcache
	}
	r := emptyRange()
	if c.x.scaleType() == ScaleCategory {
		for _, p := range c.points {
			r.Categories = append(r.Categories, p.cat)
		}
	} else {
		for _, p := range c.points {
			r.extend(p.x)
		}
		if c.Mode == ModeBar && !r.Empty() {
			if g := c.minGap(); g > 0 {
				r.Min -= g / 2
				r.Max += g / 2
			}
		}
	}
	c.xcache = &r
	return r
}

// minGap returns the smallest positive distance between X values.
func (c *Cartesian) minGap() float64 {
	gap := math.Inf(1)
	for i := 1; i < len(c.points); i++ {
		if d := math.Abs(c.points[i].x - c.points[i-1].x); d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0
	}
	return gap
}

func (c *Cartesian) rangeFor(a *Axis) (Range, bool) {
	if c.chart == nil {
		return Range{}, false
	}
	switch a {
	case c.x:
		return c.xRange(), true
	case c.y:
		return c.ComputeRange(), true
	}
	return Range{}, false
}

// Render measures both axes, subtracts their margins to get the plot, lends
// the axis scales (drawing the axes it lends) and draws the points. The area
// is returned unchanged.
func (c *Cartesian) Render(rc *RenderContext, area Rect) Rect {
	plot := c.measure(rc, area, area)
	// Tick labels have to fit the plot edge they are drawn along, which is
	// shorter than area by the other axis' margin.
	plot = c.measure(rc, area, plot)
	c.plot = plot

	xs, okx := c.scaleFor(rc, c.x, area, plot)
	ys, oky := c.scaleFor(rc, c.y, area, plot)
	if !okx || !oky || plot.Empty() {
		return area
	}
	switch c.Mode {
	case ModeScatter:
		c.drawScatter(rc, plot, xs, ys)
	case ModeBar:
		c.drawBars(rc, plot, xs, ys)
	default:
		c.drawLine(rc, plot, xs, ys)
	}
	return area
}

// measure sizes both axes against along and returns area less their margins.
func (c *Cartesian) measure(rc *RenderContext, area, along Rect) Rect {
	var m Margins
	for _, a := range c.Axes() {
		addMargin(&m, a.Side, a.MeasureMargin(rc, along))
	}
	return insetSides(area, m)
}

// scaleFor lends the axis scale placed on plot, or borrows the one another
// series lent earlier in the frame. Only the lender draws the axis.
func (c *Cartesian) scaleFor(rc *RenderContext, a *Axis, area, plot Rect) (Scale, bool) {
	h, ok := rc.Borrow(a)
	if !ok {
		h = rc.Lend(a, a.place(plot))
		a.RenderAxis(rc, area, plot)
	}
	s, err := h.Get()
	if err != nil {
		rc.Report(err)
		return Scale{}, false
	}
	return s, true
}

// categories maps the X axis categories to band indexes.
func (c *Cartesian) categories() map[string]int {
	cats := c.x.Range().Categories
	m := make(map[string]int, len(cats))
	for i, cat := range cats {
		m[cat] = i
	}
	return m
}

// pixel returns the position of point i, or false when it has none.
func (c *Cartesian) pixel(i int, xs, ys Scale, cats map[string]int) (Vec2, bool) {
	p := c.points[i]
	var px float64
	if xs.Type == ScaleCategory {
		k, ok := cats[p.cat]
		if !ok {
			return Vec2{}, false
		}
		px = xs.CategoryToPixel(k)
	} else {
		px = xs.ValueToPixel(p.x)
	}
	py := ys.ValueToPixel(p.y.InexactFloat64())
	if math.IsNaN(px) || math.IsNaN(py) {
		return Vec2{}, false
	}
	return Vec2{X: px, Y: py}, true
}

func (c *Cartesian) drawLine(rc *RenderContext, plot Rect, xs, ys Scale) {
	st := rc.Style
	col := c.color(st)
	cats := c.categories()
	var run []Vec2
	flush := func() {
		if len(run) > 1 {
			rc.Surface.Path(run, false, nil, col, st.LineWidth)
		}
		run = run[:0]
	}
	var prev Vec2
	havePrev := false
	for i := range c.points {
		p, ok := c.pixel(i, xs, ys, cats)
		if !ok {
			flush()
			havePrev = false
			continue
		}
		if havePrev {
			a, b, in := clipSegment(prev, p, plot)
			if !in {
				flush()
			} else {
				if len(run) == 0 || run[len(run)-1] != a {
					flush()
					run = append(run, a)
				}
				run = append(run, b)
			}
		}
		prev, havePrev = p, true
	}
	flush()
}

func (c *Cartesian) drawScatter(rc *RenderContext, plot Rect, xs, ys Scale) {
	st := rc.Style
	col := c.color(st)
	cats := c.categories()
	for i := range c.points {
		p, ok := c.pixel(i, xs, ys, cats)
		if !ok || !plot.Contains(p.X, p.Y) {
			continue
		}
		rc.Surface.Path(circlePoints(p, st.MarkerRadius), true, col, nil, 0)
	}
}

// barRect returns the bar of point i clipped to plot.
func (c *Cartesian) barRect(i int, plot Rect, xs, ys Scale, cats map[string]int, width float64) (Rect, Vec2, bool) {
	p, ok := c.pixel(i, xs, ys, cats)
	if !ok {
		return Rect{}, p, false
	}
	base := clamp(ys.ValueToPixel(0), plot.Y, plot.Y+plot.Height)
	if ys.Type == ScaleLog {
		base = plot.Y + plot.Height
	}
	top, bottom := math.Min(p.Y, base), math.Max(p.Y, base)
	r := Rect{X: p.X - width/2, Y: top, Width: width, Height: bottom - top}.Intersect(plot)
	return r, p, r.Width > 0
}

func (c *Cartesian) barWidth(xs Scale) float64 {
	frac := c.BarWidth
	if frac <= 0 || frac > 1 {
		frac = 0.8
	}
	if xs.Type == ScaleCategory {
		return xs.UnitPixels() * frac
	}
	if g := c.minGap(); g > 0 {
		return math.Abs(xs.ValueToPixel(g)-xs.ValueToPixel(0)) * frac
	}
	return 8
}

func (c *Cartesian) drawBars(rc *RenderContext, plot Rect, xs, ys Scale) {
	st := rc.Style
	col := c.color(st)
	cats := c.categories()
	w := c.barWidth(xs)
	for i := range c.points {
		r, _, ok := c.barRect(i, plot, xs, ys, cats, w)
		if !ok {
			continue
		}
		rc.Surface.Rect(r, col, nil, 0)
	}
}

// HitTest implements Series using the axis scales of the last frame. Bars
// hit at distance 0 anywhere inside them.
func (c *Cartesian) HitTest(p Vec2, tolerance float64) (Hit, bool) {
	if c.plot.Empty() {
		return Hit{}, false
	}
	xs, ys := c.x.Scale(), c.y.Scale()
	cats := c.categories()
	w := c.barWidth(xs)
	set := hitSet{tol: tolerance}
	for i, pt := range c.points {
		var px Vec2
		var d float64
		if c.Mode == ModeBar {
			r, top, ok := c.barRect(i, c.plot, xs, ys, cats, w)
			if !ok {
				continue
			}
			px, d = top, distToRect(p, r)
		} else {
			var ok bool
			px, ok = c.pixel(i, xs, ys, cats)
			if !ok || !c.plot.Contains(px.X, px.Y) {
				continue
			}
			d = dist(p, px)
		}
		x := pt.x
		if xs.Type == ScaleCategory {
			x = float64(cats[pt.cat])
		}
		set.offer(Hit{
			Series:      c,
			SeriesIndex: c.index,
			Index:       i,
			Label:       pt.cat,
			X:           x,
			Value:       pt.y.InexactFloat64(),
			Pixel:       px,
			Distance:    d,
		})
	}
	return set.result()
}

// ApplyPan implements Series.
func (c *Cartesian) ApplyPan(a *Axis, dPix float64) bool {
	if a != c.x && a != c.y {
		return false
	}
	return a.Pan(dPix)
}

// ApplyZoom implements Series.
func (c *Cartesian) ApplyZoom(a *Axis, factor, anchor float64) bool {
	if a != c.x && a != c.y {
		return false
	}
	return a.Zoom(factor, anchor)
}

func (c *Cartesian) legendEntries(st Style) []LegendEntry {
	return []LegendEntry{{Label: c.name, Color: c.color(st), Series: c, Index: -1}}
}
