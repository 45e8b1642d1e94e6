package charts

import "image/color"

// Series is a data renderable. All series registered with one chart share a
// coordinate system.
type Series interface {
	Renderable
	CoordinateSystem() CoordinateSystem

	// Label names the series in legends and tooltips.
	Label() string

	// ComputeRange returns the value domain of the series: the Y range for
	// cartesian series, 0..total for circular and treemap series.
	ComputeRange() Range

	// HitTest returns the nearest data point within tolerance pixels of p.
	HitTest(p Vec2, tolerance float64) (Hit, bool)

	// PlotRect returns the plot rectangle of the last frame.
	PlotRect() Rect

	// Axes returns the owned axes, empty for non-cartesian series.
	Axes() []*Axis

	// ApplyPan moves axis by dPix pixels. ApplyZoom scales it by factor
	// around anchor. Both report whether the view changed and ignore axes
	// the series does not own.
	ApplyPan(axis *Axis, dPix float64) bool
	ApplyZoom(axis *Axis, factor, anchor float64) bool

	legendEntries(st Style) []LegendEntry
	series() *seriesBase
}

// seriesBase holds state common to every series variant.
type seriesBase struct {
	unitBase

	name string

	// Color overrides the palette color. Ignored by multi-colored
	// variants.
	Color color.Color

	slot   int // first palette slot, assigned every frame
	plot   Rect
	cached *Range
}

func newSeriesBase(name string) seriesBase {
	return seriesBase{unitBase: newUnitBase(), name: name}
}

// Label implements Series.
func (s *seriesBase) Label() string { return s.name }

// Order implements Renderable.
func (s *seriesBase) Order() int { return s.orderOr(OrderSeries) }

// Kind implements Renderable.
func (s *seriesBase) Kind() UnitKind { return UnitSeries }

// PlotRect implements Series.
func (s *seriesBase) PlotRect() Rect { return s.plot }

func (s *seriesBase) color(st Style) color.Color {
	if s.Color != nil {
		return s.Color
	}
	return st.Color(s.slot)
}

func (s *seriesBase) series() *seriesBase { return s }

// noAxes implements the axis part of Series for variants without axes.
type noAxes struct{}

func (noAxes) Axes() []*Axis                          { return nil }
func (noAxes) ApplyPan(*Axis, float64) bool           { return false }
func (noAxes) ApplyZoom(*Axis, float64, float64) bool { return false }

// insetSides subtracts margins from area one side at a time in the fixed
// order left, bottom, right, top. No side takes more than what is left.
func insetSides(area Rect, m Margins) Rect {
	for _, side := range sideOrder {
		switch side {
		case SideLeft:
			d := clamp(m.Left, 0, area.Width)
			area.X += d
			area.Width -= d
		case SideBottom:
			area.Height -= clamp(m.Bottom, 0, area.Height)
		case SideRight:
			area.Width -= clamp(m.Right, 0, area.Width)
		case SideTop:
			d := clamp(m.Top, 0, area.Height)
			area.Y += d
			area.Height -= d
		}
	}
	return area
}

// addMargin grows the margin on side by v.
func addMargin(m *Margins, side Side, v float64) {
	switch side {
	case SideLeft:
		m.Left += v
	case SideBottom:
		m.Bottom += v
	case SideRight:
		m.Right += v
	case SideTop:
		m.Top += v
	}
}
