package charts

import (
	"math"
)

// Slice is one wedge of a circular series.
type Slice struct {
	Label string
	Value float64
}

// Circular is a pie or donut series. Wedge angles are proportional to each
// slice's share of the total; negative values are ignored.
type Circular struct {
	seriesBase
	noAxes

	// InnerRatio is the hole radius as a fraction of the outer radius;
	// zero draws a pie.
	InnerRatio float64

	// StartAngle is the angle of the first wedge edge in radians, measured
	// clockwise from three o'clock. Defaults to twelve o'clock.
	StartAngle float64

	slices []Slice
	center Vec2
	radius float64
	angles []float64 // wedge edges, len(slices)+1
}

// NewCircular creates an empty pie series.
func NewCircular(name string) *Circular {
	return &Circular{
		seriesBase: newSeriesBase(name),
		StartAngle: -math.Pi / 2,
	}
}

// CoordinateSystem implements Series.
func (c *Circular) CoordinateSystem() CoordinateSystem { return CoordCircular }

// Add appends a slice.
func (c *Circular) Add(label string, value float64) {
	c.slices = append(c.slices, Slice{Label: label, Value: value})
	c.cached = nil
	if c.chart != nil {
		c.chart.Invalidate()
	}
}

// Slices returns a copy of the slices.
func (c *Circular) Slices() []Slice { return append([]Slice(nil), c.slices...) }

// Invalidate implements Renderable.
func (c *Circular) Invalidate() { c.cached = nil }

func sliceValue(v float64) float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return v
	}
	return 0
}

// Total returns the sum of the positive slice values.
func (c *Circular) Total() float64 {
	var t float64
	for _, s := range c.slices {
		t += sliceValue(s.Value)
	}
	return t
}

// ComputeRange returns 0..total.
func (c *Circular) ComputeRange() Range {
	if c.cached == nil {
		c.cached = &Range{Min: 0, Max: c.Total()}
	}
	return *c.cached
}

func (c *Circular) layout(plot Rect) {
	c.plot = plot
	c.center = plot.Center()
	c.radius = math.Max(0, math.Min(plot.Width, plot.Height)/2*0.9)
	c.angles = c.angles[:0]
	total := c.ComputeRange().Max
	a := c.StartAngle
	c.angles = append(c.angles, a)
	for _, s := range c.slices {
		if total > 0 {
			a += sliceValue(s.Value) / total * 2 * math.Pi
		}
		c.angles = append(c.angles, a)
	}
}

// Render draws the wedges centred in area and returns area unchanged.
func (c *Circular) Render(rc *RenderContext, area Rect) Rect {
	c.layout(area)
	if c.radius <= 0 {
		return area
	}
	st := rc.Style
	inner := c.radius * clamp(c.InnerRatio, 0, 0.95)
	var pts []Vec2
	for i := range c.slices {
		a0, a1 := c.angles[i], c.angles[i+1]
		if a1 <= a0 {
			continue
		}
		pts = pts[:0]
		if inner > 0 {
			pts = arcPoints(pts, c.center, c.radius, a0, a1, math.Pi/45)
			pts = arcPoints(pts, c.center, inner, a1, a0, math.Pi/45)
		} else {
			pts = append(pts, c.center)
			pts = arcPoints(pts, c.center, c.radius, a0, a1, math.Pi/45)
		}
		rc.Surface.Path(pts, true, st.Color(c.slot+i), st.Background, 1)
	}
	return area
}

// wedgeAt returns the wedge containing angle a, or -1.
func (c *Circular) wedgeAt(a float64) int {
	if len(c.angles) < 2 {
		return -1
	}
	start := c.angles[0]
	rel := math.Mod(a-start, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	for i := range c.slices {
		lo, hi := c.angles[i]-start, c.angles[i+1]-start
		if hi > lo && rel >= lo && rel < hi {
			return i
		}
	}
	return -1
}

// HitTest implements Series. A point inside a wedge hits it at distance 0;
// a point outside the pie hits the wedge whose outer arc it faces.
func (c *Circular) HitTest(p Vec2, tolerance float64) (Hit, bool) {
	if c.radius <= 0 {
		return Hit{}, false
	}
	d := dist(p, c.center)
	inner := c.radius * clamp(c.InnerRatio, 0, 0.95)
	i := c.wedgeAt(math.Atan2(p.Y-c.center.Y, p.X-c.center.X))
	if i < 0 {
		return Hit{}, false
	}
	var gap float64
	switch {
	case d > c.radius:
		gap = d - c.radius
	case d < inner:
		gap = inner - d
	}
	if gap > tolerance {
		return Hit{}, false
	}
	mid := (c.angles[i] + c.angles[i+1]) / 2
	r := (c.radius + inner) / 2
	return Hit{
		Series:      c,
		SeriesIndex: c.index,
		Index:       i,
		Label:       c.slices[i].Label,
		Value:       c.slices[i].Value,
		Pixel:       Vec2{X: c.center.X + r*math.Cos(mid), Y: c.center.Y + r*math.Sin(mid)},
		Distance:    gap,
	}, true
}

func (c *Circular) legendEntries(st Style) []LegendEntry {
	out := make([]LegendEntry, 0, len(c.slices))
	for i, s := range c.slices {
		if sliceValue(s.Value) == 0 {
			continue
		}
		out = append(out, LegendEntry{Label: s.Label, Color: st.Color(c.slot + i), Series: c, Index: i})
	}
	return out
}
