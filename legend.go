package charts

import (
	"image/color"
	"math"
)

// LegendEntry is one swatch and label of a legend.
type LegendEntry struct {
	Label  string
	Color  color.Color
	Series Series
	Index  int // slice or leaf index, -1 for a whole series
}

// Legend lists the registered series on one side of the chart. It consumes
// its strip, so units after it see the smaller area.
type Legend struct {
	unitBase

	Side    Side
	Padding float64
	Spacing float64

	entries []LegendEntry
	rect    Rect
}

// NewLegend creates a legend on side.
func NewLegend(side Side) *Legend {
	return &Legend{unitBase: newUnitBase(), Side: side, Padding: 6, Spacing: 12}
}

// Kind implements Renderable.
func (l *Legend) Kind() UnitKind { return UnitLegend }

// Order implements Renderable.
func (l *Legend) Order() int { return l.orderOr(OrderLegend) }

// Invalidate implements Renderable.
func (l *Legend) Invalidate() { l.entries = nil }

// Entries returns the entries of the last frame.
func (l *Legend) Entries() []LegendEntry { return append([]LegendEntry(nil), l.entries...) }

// Rect returns the strip the legend last drew into.
func (l *Legend) Rect() Rect { return l.rect }

type legendItem struct {
	entry LegendEntry
	x, y  float64
}

// Render lays the entries out in rows (top and bottom) or a column (left and
// right) and returns area without the legend strip.
func (l *Legend) Render(rc *RenderContext, area Rect) Rect {
	l.entries = rc.chart.legendEntries(rc.Style)
	l.rect = Rect{}
	if len(l.entries) == 0 || area.Empty() {
		return area
	}
	st := rc.Style
	lh := st.LineHeight()
	pad := l.Padding
	itemW := func(e LegendEntry) float64 { return lh + st.LabelGap + st.TextWidth(e.Label) }

	var items []legendItem
	var size float64
	if l.Side.Horizontal() {
		x, y := pad, pad
		for _, e := range l.entries {
			w := itemW(e)
			if x > pad && x+w > area.Width-pad {
				x = pad
				y += lh + st.LabelGap
			}
			items = append(items, legendItem{entry: e, x: x, y: y})
			x += w + l.Spacing
		}
		size = math.Min(y+lh+pad, area.Height)
	} else {
		y := pad
		for _, e := range l.entries {
			if y+lh > area.Height-pad {
				break
			}
			items = append(items, legendItem{entry: e, x: pad, y: y})
			size = math.Max(size, itemW(e))
			y += lh + st.LabelGap
		}
		size = math.Min(size+2*pad, area.Width)
	}

	rest := area
	switch l.Side {
	case SideBottom:
		l.rect = Rect{X: area.X, Y: area.Y + area.Height - size, Width: area.Width, Height: size}
		rest.Height -= size
	case SideTop:
		l.rect = Rect{X: area.X, Y: area.Y, Width: area.Width, Height: size}
		rest.Y += size
		rest.Height -= size
	case SideLeft:
		l.rect = Rect{X: area.X, Y: area.Y, Width: size, Height: area.Height}
		rest.X += size
		rest.Width -= size
	case SideRight:
		l.rect = Rect{X: area.X + area.Width - size, Y: area.Y, Width: size, Height: area.Height}
		rest.Width -= size
	}

	for _, it := range items {
		x, y := l.rect.X+it.x, l.rect.Y+it.y
		if y+lh > l.rect.Y+l.rect.Height {
			break
		}
		sw := Rect{X: x, Y: y + lh*0.15, Width: lh * 0.7, Height: lh * 0.7}
		rc.Surface.Rect(sw, it.entry.Color, nil, 0)
		rc.Surface.Text(it.entry.Label, x+lh+st.LabelGap, y, 0, st.Font, st.Foreground, TextAlignLeft)
	}
	return rest
}
