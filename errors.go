package charts

import (
	"errors"
	"fmt"
)

// ErrCoordinateSystemMismatch is returned by Register when a series uses a
// different coordinate system than the series already in the chart.
var ErrCoordinateSystemMismatch = errors.New("charts: coordinate system mismatch")

// ErrInvalidRange flags a domain an axis cannot represent, such as a
// logarithmic axis over non-positive values.
var ErrInvalidRange = errors.New("charts: invalid range")

// ErrAlreadyRegistered is returned when a unit is registered twice.
var ErrAlreadyRegistered = errors.New("charts: unit already registered")

// ErrAxisOwned is returned when registering an axis attached to a series.
var ErrAxisOwned = errors.New("charts: axis is owned by a series")

// ErrAxisDimension is returned when a cartesian series does not get exactly
// one X and one Y axis.
var ErrAxisDimension = errors.New("charts: cartesian series needs one X and one Y axis")

// ErrAreaGrew is reported when a renderable returns a rectangle larger than
// the one it received.
var ErrAreaGrew = errors.New("charts: renderable returned a larger area")

// ErrUnknownAxis is returned by Restore for snapshot entries that name no
// registered axis.
var ErrUnknownAxis = errors.New("charts: unknown axis")

// ErrScaleExpired is returned by ScaleHandle.Get after the frame that lent
// the scale has ended.
var ErrScaleExpired = errors.New("charts: scale handle used outside its frame")

// MismatchError reports both tags of a rejected registration.
type MismatchError struct {
	Chart  CoordinateSystem
	Series CoordinateSystem
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("charts: chart is %s, series is %s: coordinate system mismatch", e.Chart, e.Series)
}

func (e *MismatchError) Unwrap() error {
	return ErrCoordinateSystemMismatch
}

// RangeError describes an axis range that had to be replaced by a fallback.
type RangeError struct {
	Axis     string
	Min, Max float64
	Reason   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("charts: axis %q range [%g, %g]: %s", e.Axis, e.Min, e.Max, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// UnitError attributes a per-frame error to the renderable that raised it.
type UnitError struct {
	Kind  UnitKind
	Index int // registration index
	Err   error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("charts: unit %d (%s): %v", e.Index, unitKindName(e.Kind), e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

func unitKindName(k UnitKind) string {
	switch k {
	case UnitSeries:
		return "series"
	case UnitAxis:
		return "axis"
	case UnitLegend:
		return "legend"
	case UnitTooltip:
		return "tooltip"
	default:
		return "unknown"
	}
}
