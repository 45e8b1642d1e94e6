package charts

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/aclements/go-moremath/scale"
)

func testContext(area Rect) *RenderContext {
	return newRenderContext(nil, nil, Size{Width: area.X + area.Width, Height: area.Y + area.Height}, DefaultStyle(), area, 1)
}

func TestCalculateScaleNiceTicks(t *testing.T) {
	a := NewAxis("x", SideBottom)
	if err := a.CalculateScale(Range{Min: 3, Max: 97}); err != nil {
		t.Fatalf("CalculateScale: %v", err)
	}
	if a.State() != AxisMeasuring {
		t.Errorf("State = %v, want measuring", a.State())
	}
	if a.Step() != 20 {
		t.Errorf("Step = %v, want 20", a.Step())
	}
	s := a.Scale()
	if s.Min != 0 || s.Max != 100 {
		t.Errorf("domain = [%v, %v], want [0, 100]", s.Min, s.Max)
	}
	ticks := a.Ticks()
	if len(ticks) != 6 {
		t.Fatalf("ticks = %d, want 6", len(ticks))
	}
	for i, tk := range ticks {
		want := float64(i * 20)
		if tk.Value != want {
			t.Errorf("tick %d = %v, want %v", i, tk.Value, want)
		}
		if tk.Label != fmt.Sprint(i*20) {
			t.Errorf("label %d = %q, want %q", i, tk.Label, fmt.Sprint(i*20))
		}
	}
}

func TestCalculateScaleDegenerate(t *testing.T) {
	tests := []struct {
		v float64
	}{
		{5}, {0}, {-40},
	}
	for _, tt := range tests {
		a := NewAxis("y", SideLeft)
		if err := a.CalculateScale(Range{Min: tt.v, Max: tt.v}); err != nil {
			t.Fatalf("CalculateScale(%v): %v", tt.v, err)
		}
		s := a.Scale()
		if !(s.Min < tt.v && tt.v < s.Max) {
			t.Errorf("domain for %v = [%v, %v], want it strictly around the value", tt.v, s.Min, s.Max)
		}
		if len(a.Ticks()) < 2 {
			t.Errorf("ticks for %v = %v, want at least 2", tt.v, a.Ticks())
		}
	}
}

func TestCalculateScaleLogInvalid(t *testing.T) {
	a := NewLogAxis("y", SideLeft)
	err := a.CalculateScale(Range{Min: -1, Max: 100})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	var re *RangeError
	if !errors.As(err, &re) || re.Axis != "y" {
		t.Errorf("err = %#v, want *RangeError for axis y", err)
	}
	if a.Err() == nil {
		t.Error("Err() = nil, want the range error")
	}
	ticks := a.Ticks()
	if len(ticks) != 2 || ticks[0].Value != 1 || ticks[1].Value != 10 {
		t.Errorf("fallback ticks = %v, want 1 and 10", ticks)
	}
}

func TestCalculateScaleLogDecades(t *testing.T) {
	a := NewLogAxis("y", SideLeft)
	if err := a.CalculateScale(Range{Min: 3, Max: 2000}); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 10, 100, 1000, 10000}
	ticks := a.Ticks()
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if !approxEqual(ticks[i].Value, want[i], 1e-9) {
			t.Errorf("tick %d = %v, want %v", i, ticks[i].Value, want[i])
		}
	}
}

func TestCalculateScaleCategories(t *testing.T) {
	a := NewCategoryAxis("c", SideBottom)
	if err := a.CalculateScale(Range{Categories: []string{"a", "b", "c"}}); err != nil {
		t.Fatal(err)
	}
	ticks := a.Ticks()
	if len(ticks) != 3 {
		t.Fatalf("ticks = %d, want 3", len(ticks))
	}
	for i, name := range []string{"a", "b", "c"} {
		if ticks[i].Label != name || ticks[i].Value != float64(i) {
			t.Errorf("tick %d = %+v, want %s at %d", i, ticks[i], name, i)
		}
	}
}

func TestMeasureMarginReady(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(0, 100)
	rc := testContext(Rect{Width: 400, Height: 300})
	m := a.MeasureMargin(rc, rc.Area)
	if a.State() != AxisReady {
		t.Errorf("State = %v, want ready", a.State())
	}
	st := rc.Style
	want := st.TickLength + st.LabelGap + st.LineHeight() + st.LabelGap
	if !approxEqual(m, want, 1e-9) {
		t.Errorf("margin = %v, want %v", m, want)
	}

	a.Title = "time"
	a.Invalidate()
	if got := a.MeasureMargin(rc, rc.Area); !approxEqual(got, want+st.LineHeight()+st.LabelGap, 1e-9) {
		t.Errorf("margin with title = %v, want %v", got, want+st.LineHeight()+st.LabelGap)
	}
}

func TestMeasureMarginReducesOverlappingTicks(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.TickCount = 10
	a.Format = func(v float64) string { return fmt.Sprintf("%.0f kWh", v) }
	a.SetRange(0, 1e6)
	rc := testContext(Rect{Width: 200, Height: 100})
	a.MeasureMargin(rc, rc.Area)

	if n := len(a.Ticks()); n >= 11 || n < 2 {
		t.Errorf("ticks = %d, want fewer than 11 and at least 2", n)
	}
	if a.overlaps(rc.Style, 200) {
		t.Error("labels still overlap")
	}
	s := a.Scale()
	if s.Min > 0 || s.Max < 1e6 {
		t.Errorf("domain = [%v, %v], want it to cover the data", s.Min, s.Max)
	}
}

func TestRangeErrorReportedOncePerFrame(t *testing.T) {
	a := NewLogAxis("y", SideLeft)
	a.SetRange(-5, 10)
	rc := testContext(Rect{Width: 200, Height: 200})
	a.MeasureMargin(rc, rc.Area)
	a.MeasureMargin(rc, rc.Area)
	if len(rc.errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(rc.errs))
	}
	if !errors.Is(rc.errs[0], ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", rc.errs[0])
	}
}

func TestViewSurvivesRangeChange(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(0, 100)
	a.CalculateScale(a.collectRange())
	a.place(Rect{Width: 500, Height: 10})
	if !a.Zoom(2, 250) {
		t.Fatal("Zoom reported no change")
	}
	lo, span := a.Scale().Window()

	a.SetRange(0, 200)
	a.CalculateScale(a.collectRange())
	gotLo, gotSpan := a.Scale().Window()
	if !approxEqual(gotLo, lo, 1e-9) || !approxEqual(gotSpan, span, 1e-9) {
		t.Errorf("window = %v+%v, want %v+%v", gotLo, gotSpan, lo, span)
	}

	a.Invalidate()
	if !a.View().Anchored {
		t.Error("Invalidate dropped the view")
	}
}

func TestAxisPermissions(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(0, 100)
	a.CalculateScale(a.collectRange())
	a.place(Rect{Width: 500, Height: 10})
	a.Permissions = AxisZoom
	if a.Pan(40) {
		t.Error("Pan changed a zoom-only axis")
	}
	if !a.Zoom(2, 100) {
		t.Error("Zoom did not change a zoom-only axis")
	}
	a.Permissions = 0
	if a.Zoom(2, 100) {
		t.Error("Zoom changed a locked axis")
	}
}

func TestAxisSetViewClamps(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(0, 100)
	a.CalculateScale(a.collectRange())
	a.SetView(ViewState{Offset: -500, Zoom: 2, Anchored: true})
	if v := a.View(); v.Offset != -5 || !approxEqual(v.Zoom, 2, 1e-9) {
		t.Errorf("view = %+v, want offset -5 zoom 2", v)
	}
	a.ResetView(0, nil)
	if a.View() != IdentityView() {
		t.Errorf("view = %+v, want identity", a.View())
	}
}

func TestFreeStandingAxisConsumesStrip(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(0, 10)
	area := Rect{Width: 300, Height: 200}
	rc := testContext(area)
	rest := a.Render(rc, area)
	if !rest.Within(area) || rest.Height >= area.Height {
		t.Errorf("rest = %+v, want a shorter rect inside %+v", rest, area)
	}
	if a.Strip().Empty() {
		t.Error("strip is empty")
	}
}

func TestCalculateScaleUnusableRanges(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()
	tests := []struct {
		name    string
		log     bool
		r       Range
		wantErr bool
		covers  []float64
	}{
		{name: "inverted", r: Range{Min: 10, Max: 1}, covers: []float64{1, 10}},
		{name: "upper infinite", r: Range{Min: 0, Max: inf}, wantErr: true},
		{name: "both infinite", r: Range{Min: -inf, Max: inf}, wantErr: true},
		{name: "nan", r: Range{Min: nan, Max: nan}, wantErr: true},
		{name: "span overflows", r: Range{Min: -1e308, Max: 1e308}, wantErr: true},
		{name: "degenerate near max float", r: Range{Min: 1.7e308, Max: 1.7e308}, wantErr: true},
		{name: "near max float", r: Range{Min: 0, Max: 1.7e308}, covers: []float64{0, 1.7e308}},
		{name: "log nan", log: true, r: Range{Min: nan, Max: 100}, wantErr: true},
		{name: "log inverted", log: true, r: Range{Min: 1000, Max: 10}, covers: []float64{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxis("y", SideLeft)
			if tt.log {
				a = NewLogAxis("y", SideLeft)
			}
			err := a.CalculateScale(tt.r)
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, want error %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
			if !errors.Is(a.Err(), err) {
				t.Errorf("Err() = %v, want %v", a.Err(), err)
			}
			s := a.Scale()
			if math.IsNaN(s.Min) || math.IsInf(s.Min, 0) || math.IsNaN(s.Max) || math.IsInf(s.Max, 0) || s.Min >= s.Max {
				t.Fatalf("scale = [%v, %v], want a finite non-empty domain", s.Min, s.Max)
			}
			if n := len(a.Ticks()); n < 2 {
				t.Errorf("ticks = %d, want at least 2", n)
			}
			for _, v := range tt.covers {
				if v < s.Min || v > s.Max {
					t.Errorf("domain [%v, %v] does not cover %v", s.Min, s.Max, v)
				}
			}
		})
	}
}

func TestUnusableRangeReportedPerFrame(t *testing.T) {
	tests := []struct {
		name string
		set  func(x, y *Axis, s *Cartesian)
	}{
		{"fixed infinite", func(_, y *Axis, _ *Cartesian) { y.SetRange(math.Inf(-1), math.Inf(1)) }},
		{"fixed nan", func(_, y *Axis, _ *Cartesian) { y.SetRange(math.NaN(), 5) }},
		{"data span overflows", func(_, _ *Axis, s *Cartesian) {
			s.Clear()
			s.Add(0, 1e308)
			s.Add(1, -1e308)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s, x, y := lineChart(t)
			tt.set(x, y, s)
			c.Invalidate()
			rep := c.RenderFrame(testSize)

			if !errors.Is(rep.Err(), ErrInvalidRange) {
				t.Errorf("frame err = %v, want ErrInvalidRange", rep.Err())
			}
			if errors.Is(rep.Err(), errRenderPanic) {
				t.Fatalf("frame err = %v, want no panic", rep.Err())
			}
			if y.State() != AxisReady {
				t.Errorf("State = %v, want ready", y.State())
			}
			if s.PlotRect().Empty() {
				t.Errorf("plot = %+v, want non-empty", s.PlotRect())
			}
			ys := y.Scale()
			if math.IsNaN(ys.Min) || math.IsInf(ys.Max, 0) {
				t.Errorf("scale = [%v, %v], want finite", ys.Min, ys.Max)
			}
		})
	}
}

func TestInvertedFixedRangeIsSwapped(t *testing.T) {
	a := NewAxis("x", SideBottom)
	a.SetRange(10, 1)
	if err := a.CalculateScale(a.collectRange()); err != nil {
		t.Fatalf("CalculateScale: %v", err)
	}
	if s := a.Scale(); s.Min > 1 || s.Max < 10 {
		t.Errorf("domain = [%v, %v], want it to cover [1, 10]", s.Min, s.Max)
	}
}

func TestTickLevelsFewerTicksAtHigherLevels(t *testing.T) {
	a := NewAxis("x", SideBottom)
	if err := a.CalculateScale(Range{Min: 0, Max: 1e6}); err != nil {
		t.Fatal(err)
	}
	levels := tickLevels{a: a, t0: 10}
	prev := levels.CountTicks(0)
	if prev != 11 {
		t.Fatalf("CountTicks(0) = %d, want 11", prev)
	}
	for level := 1; level <= 8; level++ {
		n := levels.CountTicks(level)
		if n > prev {
			t.Errorf("CountTicks(%d) = %d, more than level %d (%d)", level, n, level-1, prev)
		}
		prev = n
	}
	if got := levels.TicksAtLevel(8).([]float64); len(got) != levels.CountTicks(8) {
		t.Errorf("TicksAtLevel(8) = %v, want %d ticks", got, levels.CountTicks(8))
	}

	opts := scale.TickOptions{Max: 4, MinLevel: 0, MaxLevel: 8}
	level, ok := opts.FindLevel(levels, 0)
	if !ok || level != 6 {
		t.Errorf("FindLevel = %d, %v, want 6, true", level, ok)
	}
}
