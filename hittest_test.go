package charts

import "testing"

func TestHitSetPicksNearestWithinTolerance(t *testing.T) {
	q := Vec2{X: 100, Y: 100}
	a := Hit{Index: 0, Distance: dist(q, Vec2{X: 103, Y: 100})}
	b := Hit{Index: 1, Distance: dist(q, Vec2{X: 100, Y: 110})}

	tests := []struct {
		tol    float64
		wantOK bool
		want   int
	}{
		{5, true, 0},
		{2, false, 0},
		{20, true, 0},
	}
	for _, tt := range tests {
		set := hitSet{tol: tt.tol}
		set.offer(b)
		set.offer(a)
		h, ok := set.result()
		if ok != tt.wantOK {
			t.Errorf("tol %v: ok = %v, want %v", tt.tol, ok, tt.wantOK)
			continue
		}
		if ok && h.Index != tt.want {
			t.Errorf("tol %v: Index = %d, want %d", tt.tol, h.Index, tt.want)
		}
	}
}

func TestHitTieBreak(t *testing.T) {
	set := hitSet{tol: 10}
	set.offer(Hit{SeriesIndex: 2, Index: 4, Distance: 1})
	set.offer(Hit{SeriesIndex: 3, Index: 1, Distance: 1})
	set.offer(Hit{SeriesIndex: 1, Index: 1, Distance: 1})
	h, _ := set.result()
	if h.SeriesIndex != 1 || h.Index != 1 {
		t.Errorf("winner = series %d index %d, want series 1 index 1", h.SeriesIndex, h.Index)
	}
}

func scatterOnFixedAxes(t *testing.T, c *Chart) (*Cartesian, *Axis, *Axis) {
	t.Helper()
	x, y := NewAxis("x", SideBottom), NewAxis("y", SideLeft)
	x.SetRange(0, 100)
	y.SetRange(0, 100)
	s, err := NewCartesian("s", ModeScatter, x, y)
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, c, s)
	return s, x, y
}

func TestChartHitTestThreeVersusTenPixels(t *testing.T) {
	c := New(nil, WithMargins(Margins{}), WithHitTolerance(5))
	s, x, y := scatterOnFixedAxes(t, c)
	s.Add(50, 50)
	c.RenderFrame(testSize)

	p := Vec2{X: x.Scale().ValueToPixel(50), Y: y.Scale().ValueToPixel(50)}
	s.Add(x.Scale().PixelToValue(p.X+13), 50)
	c.RenderFrame(testSize)

	q := Vec2{X: p.X + 3, Y: p.Y}
	h, ok := c.HitTest(q.X, q.Y)
	if !ok {
		t.Fatal("HitTest missed with tolerance 5")
	}
	if h.Index != 0 || !approxEqual(h.Distance, 3, 1e-6) {
		t.Errorf("hit = index %d at %v, want index 0 at 3", h.Index, h.Distance)
	}
	if _, ok := s.HitTest(q, 2); ok {
		t.Error("HitTest hit with tolerance 2")
	}
}

func TestChartHitTestTieGoesToFirstRegistered(t *testing.T) {
	c := New(nil, WithMargins(Margins{}))
	first, x, y := scatterOnFixedAxes(t, c)
	second, err := NewCartesian("second", ModeScatter, x, y)
	if err != nil {
		t.Fatal(err)
	}
	mustRegister(t, c, second)
	first.Add(20, 20)
	second.Add(20, 20)
	c.RenderFrame(testSize)

	h, ok := c.HitTest(x.Scale().ValueToPixel(20), y.Scale().ValueToPixel(20))
	if !ok {
		t.Fatal("HitTest missed")
	}
	if h.Series != first {
		t.Errorf("hit series %q, want the first registered", h.Series.Label())
	}
}

func TestHitTestEmptyChart(t *testing.T) {
	c := New(nil)
	c.RenderFrame(testSize)
	if h, ok := c.HitTest(10, 10); ok || h != (Hit{}) {
		t.Errorf("HitTest = %+v, %v, want miss", h, ok)
	}
}

func TestBarHitInsideIsZero(t *testing.T) {
	c := New(nil, WithMargins(Margins{}))
	x, y := NewCategoryAxis("x", SideBottom), NewAxis("y", SideLeft)
	s, _ := NewCartesian("bars", ModeBar, x, y)
	s.AddCategory("a", 10)
	s.AddCategory("b", 20)
	mustRegister(t, c, s)
	c.RenderFrame(testSize)

	px := x.Scale().CategoryToPixel(1)
	py := y.Scale().ValueToPixel(5)
	h, ok := c.HitTest(px, py)
	if !ok || h.Index != 1 || h.Distance != 0 || h.Label != "b" {
		t.Errorf("hit = %+v, %v, want bar b at distance 0", h, ok)
	}
}
