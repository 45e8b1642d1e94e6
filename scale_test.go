package charts

import (
	"math"
	"testing"
)

func linearScale() Scale {
	return Scale{Min: 0, Max: 100, PixelStart: 50, PixelEnd: 550, View: IdentityView()}
}

func TestScaleRoundTrip(t *testing.T) {
	s := linearScale()
	for _, v := range []float64{0, 12.5, 50, 100} {
		p := s.ValueToPixel(v)
		if got := s.PixelToValue(p); !approxEqual(got, v, 1e-9) {
			t.Errorf("PixelToValue(ValueToPixel(%v)) = %v", v, got)
		}
	}
	if p := s.ValueToPixel(30); !approxEqual(p, 200, 1e-9) {
		t.Errorf("ValueToPixel(30) = %v, want 200", p)
	}
}

func TestScaleVerticalIsFlipped(t *testing.T) {
	s := Scale{Min: 0, Max: 10, PixelStart: 400, PixelEnd: 0, View: IdentityView()}
	if p := s.ValueToPixel(10); !approxEqual(p, 0, 1e-9) {
		t.Errorf("top value pixel = %v, want 0", p)
	}
	if p := s.ValueToPixel(0); !approxEqual(p, 400, 1e-9) {
		t.Errorf("bottom value pixel = %v, want 400", p)
	}
}

func TestScaleLog(t *testing.T) {
	s := Scale{Type: ScaleLog, Min: 0, Max: 3, PixelStart: 0, PixelEnd: 300, View: IdentityView()}
	if p := s.ValueToPixel(100); !approxEqual(p, 200, 1e-9) {
		t.Errorf("ValueToPixel(100) = %v, want 200", p)
	}
	if p := s.ValueToPixel(-1); !math.IsNaN(p) {
		t.Errorf("ValueToPixel(-1) = %v, want NaN", p)
	}
}

func TestScaleCategoryBands(t *testing.T) {
	s := Scale{Type: ScaleCategory, Min: 0, Max: 4, PixelStart: 0, PixelEnd: 400, View: IdentityView()}
	if p := s.CategoryToPixel(1); !approxEqual(p, 150, 1e-9) {
		t.Errorf("CategoryToPixel(1) = %v, want 150", p)
	}
	tests := []struct {
		p    float64
		want int
	}{
		{0, 0}, {99, 0}, {100, 1}, {399, 3}, {400, -1}, {-1, -1},
	}
	for _, tt := range tests {
		if got := s.PixelToCategory(tt.p); got != tt.want {
			t.Errorf("PixelToCategory(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
	if got := s.UnitPixels(); !approxEqual(got, 100, 1e-9) {
		t.Errorf("UnitPixels = %v, want 100", got)
	}
}

func TestScaleViewWindow(t *testing.T) {
	s := linearScale()
	s.View = ViewState{Offset: 25, Zoom: 2, Anchored: true}
	lo, hi := s.Visible()
	if lo != 25 || hi != 75 {
		t.Errorf("Visible = [%v, %v], want [25, 75]", lo, hi)
	}
	if p := s.ValueToPixel(25); !approxEqual(p, 50, 1e-9) {
		t.Errorf("window start pixel = %v, want 50", p)
	}
}
