package charts

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tooltip draws a marker and a label box for the current hover target. It
// never consumes area.
type Tooltip struct {
	unitBase

	// Format builds the label text. The default names the series, the X
	// value or category and the value.
	Format func(Hit) string

	Padding float64
	Offset  Vec2
}

// NewTooltip creates a tooltip overlay.
func NewTooltip() *Tooltip {
	return &Tooltip{unitBase: newUnitBase(), Padding: 4, Offset: Vec2{X: 10, Y: -10}}
}

// Kind implements Renderable.
func (t *Tooltip) Kind() UnitKind { return UnitTooltip }

// Order implements Renderable.
func (t *Tooltip) Order() int { return t.orderOr(OrderTooltip) }

// Invalidate implements Renderable.
func (t *Tooltip) Invalidate() {}

var tooltipPrinter = message.NewPrinter(language.English)

// Text returns the label for h.
func (t *Tooltip) Text(h Hit) string {
	if t.Format != nil {
		return t.Format(h)
	}
	v := tooltipPrinter.Sprint(number.Decimal(h.Value, number.MaxFractionDigits(4)))
	key := h.Label
	if c, ok := h.Series.(*Cartesian); ok && key == "" {
		key = newLabeler(c.x, c.x.step).label(h.X)
	}
	name := ""
	if h.Series != nil {
		name = h.Series.Label()
	}
	switch {
	case name != "" && key != "":
		return name + " - " + key + ": " + v
	case key != "":
		return key + ": " + v
	case name != "":
		return name + ": " + v
	}
	return v
}

// Render draws the hover marker and label clamped inside the surface and
// returns area unchanged.
func (t *Tooltip) Render(rc *RenderContext, area Rect) Rect {
	h := rc.Hover
	if h == nil {
		return area
	}
	st := rc.Style
	rc.Surface.Path(circlePoints(h.Pixel, st.MarkerRadius+2), true, nil, st.Foreground, 1.5)

	text := t.Text(*h)
	w := st.TextWidth(text) + 2*t.Padding
	ht := st.LineHeight() + 2*t.Padding
	bounds := Rect{Width: rc.Size.Width, Height: rc.Size.Height}
	x := clamp(h.Pixel.X+t.Offset.X, bounds.X, bounds.X+bounds.Width-w)
	y := clamp(h.Pixel.Y+t.Offset.Y-ht, bounds.Y, bounds.Y+bounds.Height-ht)
	box := Rect{X: x, Y: y, Width: w, Height: ht}
	rc.Surface.Rect(box, st.Background, st.Foreground, 1)
	rc.Surface.Text(text, x+t.Padding, y+t.Padding, 0, st.Font, st.Foreground, TextAlignLeft)
	return area
}
