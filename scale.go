package charts

import "math"

// ScaleType selects the mapping from data values to scale units.
type ScaleType uint8

const (
	ScaleLinear   ScaleType = iota // units are the values themselves
	ScaleLog                       // units are log10 of the values
	ScaleCategory                  // category i occupies the band [i, i+1)
)

func (t ScaleType) String() string {
	switch t {
	case ScaleLog:
		return "log"
	case ScaleCategory:
		return "category"
	default:
		return "linear"
	}
}

// DomainKind describes how axis values are interpreted for labelling.
type DomainKind uint8

const (
	DomainNumeric     DomainKind = iota // plain numbers
	DomainTemporal                      // unix seconds
	DomainCategorical                   // category indexes
)

// Scale maps data values to pixels. Min and Max are the base domain in scale
// units; the view narrows it to the visible window. Scale is a plain value:
// copies are independent.
type Scale struct {
	Type   ScaleType
	Domain DomainKind

	Min, Max float64

	// PixelStart is where the visible window's lower bound lands. For a Y
	// axis this is the bottom of the plot, so PixelEnd < PixelStart.
	PixelStart, PixelEnd float64

	View ViewState
}

// BaseSpan returns the base domain width in scale units.
func (s Scale) BaseSpan() float64 {
	return s.Max - s.Min
}

// Window returns the visible window as a start and a width in scale units.
func (s Scale) Window() (lo, span float64) {
	base := s.BaseSpan()
	if !s.View.Anchored || s.View.Zoom <= 0 {
		return s.Min, base
	}
	return s.View.Offset, base / s.View.Zoom
}

// Visible returns the visible window bounds in scale units.
func (s Scale) Visible() (lo, hi float64) {
	lo, span := s.Window()
	return lo, lo + span
}

// PixelLength returns the signed extent of the pixel range.
func (s Scale) PixelLength() float64 {
	return s.PixelEnd - s.PixelStart
}

// UnitToPixel maps a scale unit to a pixel through the view.
func (s Scale) UnitToPixel(u float64) float64 {
	lo, span := s.Window()
	if span == 0 {
		return s.PixelStart
	}
	return s.PixelStart + (u-lo)/span*s.PixelLength()
}

// PixelToUnit is the inverse of UnitToPixel.
func (s Scale) PixelToUnit(p float64) float64 {
	lo, span := s.Window()
	pl := s.PixelLength()
	if pl == 0 {
		return lo
	}
	return lo + (p-s.PixelStart)/pl*span
}

// ToUnit converts a data value to scale units. Non-positive values on a log
// scale have no unit and return NaN.
func (s Scale) ToUnit(v float64) float64 {
	if s.Type == ScaleLog {
		if v <= 0 {
			return math.NaN()
		}
		return math.Log10(v)
	}
	return v
}

// FromUnit converts scale units back to a data value.
func (s Scale) FromUnit(u float64) float64 {
	if s.Type == ScaleLog {
		return math.Pow(10, u)
	}
	return u
}

// ValueToPixel maps a data value to a pixel.
func (s Scale) ValueToPixel(v float64) float64 {
	return s.UnitToPixel(s.ToUnit(v))
}

// PixelToValue maps a pixel to a data value.
func (s Scale) PixelToValue(p float64) float64 {
	return s.FromUnit(s.PixelToUnit(p))
}

// CategoryToPixel returns the pixel at the centre of category band i.
func (s Scale) CategoryToPixel(i int) float64 {
	return s.UnitToPixel(float64(i) + 0.5)
}

// PixelToCategory returns the category band under pixel p, or -1 when p is
// outside the base domain.
func (s Scale) PixelToCategory(p float64) int {
	u := s.PixelToUnit(p)
	if u < s.Min || u >= s.Max {
		return -1
	}
	return int(math.Floor(u))
}

// UnitPixels returns the absolute pixel length of one scale unit.
func (s Scale) UnitPixels() float64 {
	_, span := s.Window()
	if span == 0 {
		return 0
	}
	return math.Abs(s.PixelLength() / span)
}

// InPixelRange reports whether p lies between PixelStart and PixelEnd.
func (s Scale) InPixelRange(p float64) bool {
	lo, hi := s.PixelStart, s.PixelEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	return p >= lo && p <= hi
}
