package charts

import (
	"math"
	"testing"
)

func pieChart(t *testing.T) (*Chart, *Circular) {
	t.Helper()
	s := NewCircular("pie")
	s.Add("a", 1)
	s.Add("b", 1)
	s.Add("c", 2)
	s.Add("d", -5)
	c := New(nil, WithMargins(Margins{}))
	mustRegister(t, c, s)
	if err := c.RenderFrame(Size{Width: 200, Height: 200}).Err(); err != nil {
		t.Fatal(err)
	}
	return c, s
}

func TestCircularRange(t *testing.T) {
	_, s := pieChart(t)
	if r := s.ComputeRange(); r.Min != 0 || r.Max != 4 {
		t.Errorf("range = %+v, want [0, 4]", r)
	}
}

func TestCircularWedgeHits(t *testing.T) {
	_, s := pieChart(t)
	tests := []struct {
		name string
		p    Vec2
		want int
	}{
		{"twelve o'clock", Vec2{X: 100, Y: 50}, 0},
		{"three o'clock", Vec2{X: 150, Y: 100}, 1},
		{"six o'clock", Vec2{X: 100, Y: 150}, 2},
		{"nine o'clock", Vec2{X: 50, Y: 100}, 2},
		{"upper right", Vec2{X: 130, Y: 70}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := s.HitTest(tt.p, 0)
			if !ok {
				t.Fatal("no hit")
			}
			if h.Index != tt.want || h.Distance != 0 {
				t.Errorf("hit = %d at %v, want %d at 0", h.Index, h.Distance, tt.want)
			}
		})
	}
}

func TestCircularHitOutsideRadius(t *testing.T) {
	_, s := pieChart(t)
	// The radius is 90, so this point is 5 px beyond the rim.
	p := Vec2{X: 100, Y: 5}
	if h, ok := s.HitTest(p, 10); !ok || h.Index != 0 || !approxEqual(h.Distance, 5, 1e-9) {
		t.Errorf("hit = %+v, %v, want wedge 0 at distance 5", h, ok)
	}
	if _, ok := s.HitTest(p, 2); ok {
		t.Error("hit beyond tolerance")
	}
}

func TestCircularDonutHole(t *testing.T) {
	_, s := pieChart(t)
	s.InnerRatio = 0.5
	if _, ok := s.HitTest(Vec2{X: 100, Y: 90}, 0); ok {
		t.Error("hit inside the hole")
	}
	if h, ok := s.HitTest(Vec2{X: 100, Y: 30}, 0); !ok || h.Index != 0 {
		t.Errorf("hit = %+v, %v, want wedge 0", h, ok)
	}
}

func TestCircularMarkerOnBisector(t *testing.T) {
	_, s := pieChart(t)
	h, _ := s.HitTest(Vec2{X: 150, Y: 100}, 0)
	// Wedge b spans three to six o'clock, so its marker sits at 45 degrees.
	r := 45.0
	want := Vec2{X: 100 + r*math.Cos(math.Pi/4), Y: 100 + r*math.Sin(math.Pi/4)}
	if !approxEqual(h.Pixel.X, want.X, 1e-9) || !approxEqual(h.Pixel.Y, want.Y, 1e-9) {
		t.Errorf("marker = %v, want %v", h.Pixel, want)
	}
}

func TestCircularLegendSkipsEmptySlices(t *testing.T) {
	_, s := pieChart(t)
	entries := s.legendEntries(DefaultStyle())
	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	want := []string{"a", "b", "c"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] || entries[i].Index != i {
			t.Errorf("entry %d = %q/%d, want %q/%d", i, labels[i], entries[i].Index, want[i], i)
		}
	}
}

func TestCircularRejectsCartesian(t *testing.T) {
	c, _ := pieChart(t)
	x, y := NewAxis("x", SideBottom), NewAxis("y", SideLeft)
	line, err := NewCartesian("line", ModeLine, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Register(line); err == nil {
		t.Error("registered a cartesian series in a circular chart")
	}
}
