package charts

import (
	"math"
	"strconv"
)

// Vec2 is a 2D vector used for pixel positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Size is the logical size of a drawing surface in pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	const eps = 1e-9
	return r.X >= outer.X-eps && r.Y >= outer.Y-eps &&
		r.X+r.Width <= outer.X+outer.Width+eps &&
		r.Y+r.Height <= outer.Y+outer.Height+eps
}

// Intersect returns the overlap of r and other. Disjoint rectangles yield a
// zero-sized rectangle positioned at the clamped origin.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by m on every side. The result always lies within r;
// sides that would cross collapse to zero size at the clamped origin.
func (r Rect) Inset(m Margins) Rect {
	x0 := clamp(r.X+m.Left, r.X, r.X+r.Width)
	y0 := clamp(r.Y+m.Top, r.Y, r.Y+r.Height)
	x1 := clamp(r.X+r.Width-m.Right, x0, r.X+r.Width)
	y1 := clamp(r.Y+r.Height-m.Bottom, y0, r.Y+r.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Center returns the centre point of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Margins holds per-side pixel thicknesses.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// UniformMargins returns margins of v on every side.
func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// Range is a numeric [Min, Max] span, or an ordered category set when
// Categories is non-empty.
type Range struct {
	Min, Max   float64
	Categories []string
}

// Empty reports whether the range has never been extended.
func (r Range) Empty() bool {
	return len(r.Categories) == 0 && math.IsInf(r.Min, 1) && math.IsInf(r.Max, -1)
}

// emptyRange returns a range that any finite value extends.
func emptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// extend grows r to include v.
func (r *Range) extend(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// union merges other into r, keeping category order of first appearance.
func (r *Range) union(other Range) {
	if len(other.Categories) > 0 {
		seen := make(map[string]bool, len(r.Categories))
		for _, c := range r.Categories {
			seen[c] = true
		}
		for _, c := range other.Categories {
			if !seen[c] {
				seen[c] = true
				r.Categories = append(r.Categories, c)
			}
		}
		return
	}
	if other.Empty() {
		return
	}
	r.extend(other.Min)
	r.extend(other.Max)
}

// CoordinateSystem classifies the geometry family of a series. All series in
// one chart share the same tag.
type CoordinateSystem uint8

const (
	CoordNone      CoordinateSystem = iota // no series registered yet
	CoordCartesian                         // X/Y axes
	CoordCircular                          // pie and donut
	CoordTreeMap                           // nested rectangles
)

func (c CoordinateSystem) String() string {
	switch c {
	case CoordCartesian:
		return "cartesian"
	case CoordCircular:
		return "circular"
	case CoordTreeMap:
		return "treemap"
	default:
		return "none"
	}
}

// UnitKind distinguishes the closed set of renderable variants.
type UnitKind uint8

const (
	UnitSeries  UnitKind = iota // data series (owns its axes)
	UnitAxis                    // free-standing axis strip
	UnitLegend                  // legend strip
	UnitTooltip                 // hover overlay
)

// Default ordering keys. Lower orders render first and consume area first.
const (
	OrderLegend  = 10
	OrderAxis    = 20
	OrderSeries  = 100
	OrderTooltip = 1000
)

// Side identifies an edge of a rectangle.
type Side uint8

const (
	SideLeft Side = iota
	SideBottom
	SideRight
	SideTop
)

// sideOrder is the fixed order margins are subtracted from a series area.
var sideOrder = [4]Side{SideLeft, SideBottom, SideRight, SideTop}

var sideNames = [...]string{"left", "bottom", "right", "top"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "side(" + strconv.Itoa(int(s)) + ")"
}

// ParseSide parses a side name as returned by String.
func ParseSide(name string) (Side, bool) {
	for i, n := range sideNames {
		if n == name {
			return Side(i), true
		}
	}
	return 0, false
}

// Horizontal reports whether the side runs along the X direction.
func (s Side) Horizontal() bool {
	return s == SideBottom || s == SideTop
}

// EventKind identifies a kind of input event.
type EventKind uint8

const (
	EventPointerDown  EventKind = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves
	EventPointerLeave                  // fires when the pointer leaves the surface
	EventWheel                         // fires on wheel or trackpad scroll
	EventPinch                         // two-finger pinch, Scale carries the delta factor
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Event is a pointer, wheel or touch event in surface pixel coordinates.
type Event struct {
	Kind      EventKind
	X, Y      float64
	DX, DY    float64 // wheel offsets
	Scale     float64 // pinch scale delta factor (1 = no change)
	Button    MouseButton
	Modifiers KeyModifiers
	PointerID int
}

// TextAlign controls horizontal text anchoring for Surface.Text.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // x is the left edge (default)
	TextAlignCenter                  // x is the centre
	TextAlignRight                   // x is the right edge
)
