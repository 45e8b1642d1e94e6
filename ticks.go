package charts

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultTickCount is the desired tick count used when an axis sets none.
const DefaultTickCount = 5

// maxTicks bounds tick generation for pathological step/span ratios.
const maxTicks = 1000

// Tick is one generated axis tick.
type Tick struct {
	Value float64 // data value (unix seconds on temporal axes, index on categorical)
	Pixel float64 // logical pixel along the axis, set once the scale is placed
	Label string
}

// NiceStep returns the human-friendly step for covering span with about
// count intervals: the smallest of 1, 2, 5 and 10 times the largest power of
// ten not above span/count that is at least span/count.
func NiceStep(span float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 1
	}
	raw := span / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range [...]float64{1, 2, 5, 10} {
		if mag*m >= raw {
			return mag * m
		}
	}
	return mag * 10
}

// NiceTicks extends [min, max] outward to multiples of the nice step for
// count intervals and returns the extended bounds, the step and a tick at
// every multiple in between. At least two ticks are returned.
func NiceTicks(min, max float64, count int) (lo, hi, step float64, ticks []float64) {
	step = NiceStep(max-min, count)
	return multiples(min, max, step)
}

// multiples returns every multiple of step covering [min, max], rounding the
// bounds outward. Non-finite input yields the unit interval.
func multiples(min, max, step float64) (lo, hi, s float64, ticks []float64) {
	if !finite(min) || !finite(max) || !finite(step) || step <= 0 {
		return 0, 1, 1, []float64{0, 1}
	}
	k0 := math.Floor(min / step)
	if (k0+1)*step <= min {
		k0++
	}
	k1 := math.Ceil(max / step)
	if (k1-1)*step >= max {
		k1--
	}
	if k1 <= k0 {
		k1 = k0 + 1
	}
	if k1-k0 > maxTicks {
		return multiples(min, max, step*math.Ceil((k1-k0)/maxTicks))
	}
	d := stepDecimals(step)
	ticks = make([]float64, 0, int(k1-k0)+1)
	for k := k0; k <= k1; k++ {
		ticks = append(ticks, roundTo(k*step, d))
	}
	return ticks[0], ticks[len(ticks)-1], step, ticks
}

// windowTicks returns multiples of step that fall inside [lo, hi] without
// extending the window. Used while the view is zoomed or panned.
func windowTicks(lo, hi, step float64) []float64 {
	if step <= 0 || hi <= lo {
		return nil
	}
	k0 := math.Ceil(lo / step)
	k1 := math.Floor(hi / step)
	if k1-k0 > maxTicks {
		return nil
	}
	d := stepDecimals(step)
	var out []float64
	for k := k0; k <= k1; k++ {
		out = append(out, roundTo(k*step, d))
	}
	return out
}

// stepDecimals returns the number of fraction digits needed to label
// multiples of step.
func stepDecimals(step float64) int {
	if step <= 0 {
		return 0
	}
	d := -int(math.Floor(math.Log10(step) + 1e-9))
	if d < 0 {
		return 0
	}
	return d
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// decadeTicks returns log10 unit ticks at every decade in [lo, hi], where lo
// and hi are already whole decades.
func decadeTicks(lo, hi float64) []float64 {
	stride := 1.0
	if n := hi - lo; n > 20 {
		stride = math.Ceil(n / 10)
	}
	var out []float64
	for u := lo; u <= hi+1e-9; u += stride {
		out = append(out, u)
	}
	return out
}

// timeSteps are the candidate steps for temporal axes, in seconds.
var timeSteps = [...]float64{
	1, 2, 5, 10, 15, 30,
	60, 2 * 60, 5 * 60, 10 * 60, 15 * 60, 30 * 60,
	3600, 2 * 3600, 3 * 3600, 6 * 3600, 12 * 3600,
	86400, 2 * 86400, 7 * 86400, 14 * 86400, 30 * 86400, 91 * 86400, 182 * 86400,
}

const secondsPerYear = 365 * 86400

// TimeStep picks the temporal step for span seconds and count intervals.
func TimeStep(span float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	raw := span / float64(count)
	if raw < 1 {
		return NiceStep(span, count)
	}
	for _, s := range timeSteps {
		if s >= raw {
			return s
		}
	}
	return NiceStep(span/secondsPerYear, count) * secondsPerYear
}

// timeLayout picks a label layout that resolves the given step.
func timeLayout(step float64) string {
	switch {
	case step < 60:
		return "15:04:05"
	case step < 86400:
		return "15:04"
	case step < secondsPerYear:
		return "Jan 02"
	default:
		return "2006"
	}
}

// labeler formats tick values for one axis and one tick generation pass.
type labeler struct {
	format   func(float64) string
	domain   DomainKind
	scale    ScaleType
	step     float64
	printer  *message.Printer
	location *time.Location
	cats     []string
}

func newLabeler(a *Axis, step float64) labeler {
	tag := a.Locale
	if tag.IsRoot() {
		tag = language.English
	}
	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}
	return labeler{
		format:   a.Format,
		domain:   a.Domain,
		scale:    a.Type,
		step:     step,
		printer:  message.NewPrinter(tag),
		location: loc,
		cats:     a.rng.Categories,
	}
}

// label formats the tick at value v (data value, or category index).
func (l labeler) label(v float64) string {
	if l.domain == DomainCategorical || l.scale == ScaleCategory {
		i := int(v)
		if i >= 0 && i < len(l.cats) {
			return l.cats[i]
		}
		return ""
	}
	if l.format != nil {
		return l.format(v)
	}
	if l.domain == DomainTemporal {
		sec, frac := math.Modf(v)
		return time.Unix(int64(sec), int64(frac*1e9)).In(l.location).Format(timeLayout(l.step))
	}
	if l.scale == ScaleLog {
		return l.printer.Sprint(number.Decimal(v, number.Precision(3)))
	}
	if math.Abs(v) >= 1e15 || (v != 0 && math.Abs(v) < 1e-9) {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return l.printer.Sprint(number.Decimal(v, number.Scale(stepDecimals(l.step))))
}
