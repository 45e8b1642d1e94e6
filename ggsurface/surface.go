// Package ggsurface renders charts headless into an image through gogpu/gg.
//
//	surf, err := ggsurface.New(800, 600, 2)
//	if err != nil {
//		return err
//	}
//	defer surf.Close()
//	c := charts.New(surf, charts.WithStyle(surf.Style(charts.DefaultStyle(), 12)))
//	// ... register series ...
//	c.RenderFrame(surf.Size())
//	return surf.SavePNG("chart.png")
package ggsurface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

// lineHeightRatio converts the line height of a foreign face into a point
// size for the gg face that draws it.
const lineHeightRatio = 1.2

// Surface is a charts.Surface backed by a *gg.Context. The context is
// allocated at device resolution; the chart lays out in logical pixels.
type Surface struct {
	dc    *gg.Context
	size  charts.Size
	scale float64

	ttf    []byte
	source *text.FontSource
	sizes  map[font.Face]float64 // faces made by Face, by point size
	faces  map[float64]text.Face
	err    error
}

// New returns a surface of width x height logical pixels at the given
// device scale, drawing text with Go Regular.
func New(width, height int, scale float64) (*Surface, error) {
	return NewWithFont(width, height, scale, goregular.TTF)
}

// NewWithFont is New with a TrueType or OpenType font.
func NewWithFont(width, height int, scale float64, ttf []byte) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ggsurface: invalid size %dx%d", width, height)
	}
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	src, err := text.NewFontSource(ttf)
	if err != nil {
		return nil, fmt.Errorf("ggsurface: load font: %w", err)
	}
	dw := int(math.Ceil(float64(width) * scale))
	dh := int(math.Ceil(float64(height) * scale))
	return &Surface{
		dc:     gg.NewContext(dw, dh),
		size:   charts.Size{Width: float64(width), Height: float64(height)},
		scale:  scale,
		ttf:    ttf,
		source: src,
		sizes:  make(map[font.Face]float64),
		faces:  make(map[float64]text.Face),
	}, nil
}

// Face returns an x/image face of the surface font at size points, for use
// as Style.Font. Text drawn with it is measured and drawn with the same
// font.
func (s *Surface) Face(size float64) (font.Face, error) {
	f, err := opentype.Parse(s.ttf)
	if err != nil {
		return nil, fmt.Errorf("ggsurface: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("ggsurface: new face: %w", err)
	}
	s.sizes[face] = size
	return face, nil
}

// Style returns base with its font replaced by the surface font at size
// points. base is returned unchanged if the face cannot be built.
func (s *Surface) Style(base charts.Style, size float64) charts.Style {
	face, err := s.Face(size)
	if err != nil {
		charts.Logger().Warn("ggsurface style", "err", err)
		return base
	}
	base.Font = face
	return base
}

// Size returns the logical size to pass to RenderFrame.
func (s *Surface) Size() charts.Size { return s.size }

// Context returns the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.dc }

// Err returns the first drawing error.
func (s *Surface) Err() error { return s.err }

func (s *Surface) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// DeviceScale implements charts.Surface.
func (s *Surface) DeviceScale() float64 { return s.scale }

// Line implements charts.Surface.
func (s *Surface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	if c == nil {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.record(s.dc.Stroke())
}

// Rect implements charts.Surface.
func (s *Surface) Rect(r charts.Rect, fill, stroke color.Color, width float64) {
	if r.Empty() {
		return
	}
	if fill != nil {
		s.dc.SetColor(fill)
		s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		s.record(s.dc.Fill())
	}
	if stroke != nil && width > 0 {
		s.dc.SetColor(stroke)
		s.dc.SetLineWidth(width)
		s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		s.record(s.dc.Stroke())
	}
}

// Path implements charts.Surface.
func (s *Surface) Path(pts []charts.Vec2, closed bool, fill, stroke color.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	trace := func() {
		s.dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			s.dc.LineTo(p.X, p.Y)
		}
		if closed {
			s.dc.ClosePath()
		}
	}
	if fill != nil && closed {
		trace()
		s.dc.SetColor(fill)
		s.record(s.dc.Fill())
	}
	if stroke != nil && width > 0 {
		trace()
		s.dc.SetColor(stroke)
		s.dc.SetLineWidth(width)
		s.dc.SetLineJoin(gg.LineJoinRound)
		s.record(s.dc.Stroke())
	}
}

// Text implements charts.Surface.
func (s *Surface) Text(str string, x, y, angle float64, face font.Face, c color.Color, align charts.TextAlign) {
	if str == "" || face == nil || c == nil {
		return
	}
	f := s.face(face)
	var ax float64
	switch align {
	case charts.TextAlignCenter:
		ax = 0.5
	case charts.TextAlignRight:
		ax = 1
	}
	s.dc.Push()
	defer s.dc.Pop()
	if angle != 0 {
		s.dc.RotateAbout(angle, x, y)
	}
	s.dc.SetFont(f)
	s.dc.SetColor(c)
	s.dc.DrawString(str, x-f.Advance(str)*ax, y+f.Metrics().Ascent)
}

// face returns the gg face drawing f at device size.
func (s *Surface) face(f font.Face) text.Face {
	size, ok := s.sizes[f]
	if !ok {
		size = float64(f.Metrics().Height) / 64 / lineHeightRatio
	}
	size *= s.scale
	tf, ok := s.faces[size]
	if !ok {
		tf = s.source.Face(size)
		s.faces[size] = tf
	}
	return tf
}

// Image returns the rendered image.
func (s *Surface) Image() image.Image {
	s.record(s.dc.FlushGPU())
	return s.dc.Image()
}

// SavePNG writes the rendered image to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("ggsurface: save %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the rendered image as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.record(s.dc.FlushGPU())
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("ggsurface: encode: %w", err)
	}
	return nil
}

// Close releases the context and closes faces made by Face.
func (s *Surface) Close() error {
	var errs []error
	for f := range s.sizes {
		errs = append(errs, f.Close())
	}
	errs = append(errs, s.dc.Close())
	return errors.Join(errs...)
}
