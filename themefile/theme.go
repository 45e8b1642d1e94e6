// Package themefile loads chart styles from JSON files and reloads them
// when the file changes.
//
// A theme file overrides any subset of the default style:
//
//	{
//	  "background": "#1e1e2e",
//	  "foreground": "#cdd6f4",
//	  "grid": "#cdd6f420",
//	  "palette": ["#89b4fa", "#fab387", "#a6e3a1"],
//	  "font": "fonts/Inter.ttf",
//	  "fontSize": 12,
//	  "lineWidth": 2
//	}
//
// Relative font paths resolve against the theme file's directory. A font
// size without a font selects Go Regular.
package themefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// Theme is the JSON form of a style. Zero fields keep the base value.
type Theme struct {
	Background   string   `json:"background,omitempty"`
	Foreground   string   `json:"foreground,omitempty"`
	Grid         string   `json:"grid,omitempty"`
	Palette      []string `json:"palette,omitempty"`
	Font         string   `json:"font,omitempty"`
	FontSize     float64  `json:"fontSize,omitempty"`
	TickLength   float64  `json:"tickLength,omitempty"`
	LabelGap     float64  `json:"labelGap,omitempty"`
	LineWidth    float64  `json:"lineWidth,omitempty"`
	MarkerRadius float64  `json:"markerRadius,omitempty"`
}

// Parse decodes a theme. dir resolves a relative font path.
func Parse(data []byte, dir string) (Theme, error) {
	var th Theme
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&th); err != nil {
		return Theme{}, fmt.Errorf("themefile: decode: %w", err)
	}
	if th.Font != "" && !filepath.IsAbs(th.Font) {
		th.Font = filepath.Join(dir, th.Font)
	}
	return th, nil
}

// Load reads and applies the theme at path over charts.DefaultStyle.
func Load(path string) (charts.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return charts.Style{}, fmt.Errorf("themefile: %w", err)
	}
	th, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return charts.Style{}, err
	}
	return th.Apply(charts.DefaultStyle())
}

// Apply returns base with the theme's fields overriding it.
func (th Theme) Apply(base charts.Style) (charts.Style, error) {
	st := base
	for _, f := range []struct {
		name string
		src  string
		dst  *color.Color
	}{
		{"background", th.Background, &st.Background},
		{"foreground", th.Foreground, &st.Foreground},
		{"grid", th.Grid, &st.Grid},
	} {
		if f.src == "" {
			continue
		}
		c, err := ParseColor(f.src)
		if err != nil {
			return base, fmt.Errorf("themefile: %s: %w", f.name, err)
		}
		*f.dst = c
	}
	if len(th.Palette) > 0 {
		st.Palette = make([]color.Color, len(th.Palette))
		for i, s := range th.Palette {
			c, err := ParseColor(s)
			if err != nil {
				return base, fmt.Errorf("themefile: palette[%d]: %w", i, err)
			}
			st.Palette[i] = c
		}
	}
	if th.Font != "" || th.FontSize > 0 {
		face, err := th.face()
		if err != nil {
			return base, err
		}
		st.Font = face
	}
	setPositive(&st.TickLength, th.TickLength)
	setPositive(&st.LabelGap, th.LabelGap)
	setPositive(&st.LineWidth, th.LineWidth)
	setPositive(&st.MarkerRadius, th.MarkerRadius)
	return st, nil
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

const defaultFontSize = 12

func (th Theme) face() (font.Face, error) {
	data := goregular.TTF
	if th.Font != "" {
		b, err := os.ReadFile(th.Font)
		if err != nil {
			return nil, fmt.Errorf("themefile: font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("themefile: font %s: %w", th.Font, err)
	}
	size := th.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("themefile: font face: %w", err)
	}
	return face, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing '#'", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
