package ggsurface

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

func renderBars(t *testing.T, scale float64) *Surface {
	t.Helper()
	surf, err := New(200, 100, scale)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { surf.Close() })

	x, y := charts.NewCategoryAxis("cat", charts.SideBottom), charts.NewAxis("v", charts.SideLeft)
	s, err := charts.NewCartesian("bars", charts.ModeBar, x, y)
	if err != nil {
		t.Fatal(err)
	}
	s.AddCategory("a", 3)
	s.AddCategory("b", 5)
	c := charts.New(surf, charts.WithStyle(surf.Style(charts.DefaultStyle(), 10)))
	if err := c.Register(s); err != nil {
		t.Fatal(err)
	}
	if err := c.RenderFrame(surf.Size()).Err(); err != nil {
		t.Fatal(err)
	}
	if err := surf.Err(); err != nil {
		t.Fatal(err)
	}
	return surf
}

func TestImageAtDeviceResolution(t *testing.T) {
	tests := []struct {
		scale        float64
		wantW, wantH int
	}{
		{1, 200, 100},
		{2, 400, 200},
		{0, 200, 100},
	}
	for _, tt := range tests {
		surf := renderBars(t, tt.scale)
		b := surf.Image().Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("scale %v: image = %dx%d, want %dx%d", tt.scale, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestBackgroundFilled(t *testing.T) {
	surf := renderBars(t, 1)
	r, g, b, a := surf.Image().At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("corner = %x %x %x %x, want white", r, g, b, a)
	}
}

func TestSavePNG(t *testing.T) {
	surf := renderBars(t, 1)
	path := filepath.Join(t.TempDir(), "bars.png")
	if err := surf.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("png = %v, want 200x100", b)
	}
}

func TestEncodePNG(t *testing.T) {
	surf := renderBars(t, 1)
	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("decode: %v", err)
	}
}

func TestFaceMatchesStyleMetrics(t *testing.T) {
	surf, err := New(10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer surf.Close()
	st := surf.Style(charts.DefaultStyle(), 12)
	if w := st.TextWidth("1,000"); w <= 0 {
		t.Errorf("TextWidth = %v, want positive", w)
	}
	if h := st.LineHeight(); h < 12 || h > 20 {
		t.Errorf("LineHeight = %v, want near 12pt", h)
	}
	if got := surf.face(st.Font).Metrics().Ascent; got <= 0 {
		t.Errorf("ascent = %v, want positive", got)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, 10, 1); err == nil {
		t.Error("New accepted a zero width")
	}
	if _, err := NewWithFont(10, 10, 1, []byte("not a font")); err == nil {
		t.Error("NewWithFont accepted garbage font data")
	}
}
