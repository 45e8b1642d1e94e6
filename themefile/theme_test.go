package themefile

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#1e1e2e", color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 255}, false},
		{" #cdd6f420 ", color.NRGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0x20}, false},
		{"1e1e2e", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyOverridesOnlySetFields(t *testing.T) {
	th, err := Parse([]byte(`{"background": "#000000", "palette": ["#ff0000", "#00ff00"], "lineWidth": 3}`), "")
	if err != nil {
		t.Fatal(err)
	}
	base := charts.DefaultStyle()
	st, err := th.Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	if st.Background != (color.NRGBA{A: 255}) {
		t.Errorf("Background = %v, want black", st.Background)
	}
	if len(st.Palette) != 2 || st.Palette[1] != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("Palette = %v, want red and green", st.Palette)
	}
	if st.LineWidth != 3 {
		t.Errorf("LineWidth = %v, want 3", st.LineWidth)
	}
	if st.Foreground != base.Foreground || st.Font != base.Font || st.TickLength != base.TickLength {
		t.Error("unset fields changed")
	}
}

func TestApplyErrorKeepsBase(t *testing.T) {
	th := Theme{Palette: []string{"#fff", "red"}}
	base := charts.DefaultStyle()
	st, err := th.Apply(base)
	if err == nil || !strings.Contains(err.Error(), "palette[1]") {
		t.Fatalf("err = %v, want palette[1]", err)
	}
	if len(st.Palette) != len(base.Palette) {
		t.Error("failed Apply changed the palette")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"colour": "#fff"}`), ""); err == nil {
		t.Error("Parse accepted an unknown field")
	}
}

func TestFontSizeSelectsGoRegular(t *testing.T) {
	st, err := Theme{FontSize: 20}.Apply(charts.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if h := st.LineHeight(); h < 20 || h > 30 {
		t.Errorf("LineHeight = %v, want about 20pt", h)
	}
}

func TestRelativeFontPath(t *testing.T) {
	th, err := Parse([]byte(`{"font": "fonts/a.ttf"}`), "/themes")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/themes", "fonts", "a.ttf"); th.Font != want {
		t.Errorf("Font = %q, want %q", th.Font, want)
	}
	if _, err := th.Apply(charts.DefaultStyle()); err == nil {
		t.Error("Apply accepted a missing font file")
	}
}

func writeTheme(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	writeTheme(t, path, `{"background": "#000000"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src, err := Watch(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if got := src.Style().Background; got != (color.NRGBA{A: 255}) {
		t.Fatalf("Background = %v, want black", got)
	}

	changed := make(chan struct{}, 8)
	c := charts.New(nil, charts.WithStyleSource(src))
	defer c.Close()
	src.Subscribe(func() { changed <- struct{}{} })

	writeTheme(t, path, `{"background": "#ffffff"}`)
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	if got := src.Style().Background; got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Background = %v, want white", got)
	}
}

func TestWatchKeepsStyleOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	writeTheme(t, path, `{"lineWidth": 4}`)
	src, err := Watch(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	writeTheme(t, path, `{"lineWidth": `)
	deadline := time.Now().Add(5 * time.Second)
	for src.Err() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if src.Err() == nil {
		t.Fatal("bad file did not report an error")
	}
	if got := src.Style().LineWidth; got != 4 {
		t.Errorf("LineWidth = %v, want 4 kept", got)
	}
}

func TestWatchMissingFile(t *testing.T) {
	if _, err := Watch(context.Background(), filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("Watch accepted a missing file")
	}
}
