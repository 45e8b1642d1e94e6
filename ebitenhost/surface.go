package ebitenhost

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// whitePixel returns a 1x1 white sub-image used as the source for solid
// triangle fills.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSub = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// Surface draws chart primitives into an *ebiten.Image. Set the target
// image with SetTarget before each RenderFrame.
type Surface struct {
	dst   *ebiten.Image
	scale float64

	faces map[font.Face]*text.GoXFace
	path  vector.Path
	vs    []ebiten.Vertex
	is    []uint16
}

// NewSurface returns a surface with the given device-pixel ratio. A scale
// of zero or less is treated as 1.
func NewSurface(scale float64) *Surface {
	s := &Surface{faces: make(map[font.Face]*text.GoXFace)}
	s.SetScale(scale)
	return s
}

// SetTarget sets the image the next frame draws into.
func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

// SetScale changes the device-pixel ratio.
func (s *Surface) SetScale(scale float64) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	s.scale = scale
}

// DeviceScale implements charts.Surface.
func (s *Surface) DeviceScale() float64 { return s.scale }

// Line implements charts.Surface.
func (s *Surface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	if s.dst == nil || c == nil {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// Rect implements charts.Surface.
func (s *Surface) Rect(r charts.Rect, fill, stroke color.Color, width float64) {
	if s.dst == nil || r.Empty() {
		return
	}
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height)
	if fill != nil {
		vector.DrawFilledRect(s.dst, x, y, w, h, fill, false)
	}
	if stroke != nil && width > 0 {
		vector.StrokeRect(s.dst, x, y, w, h, float32(width), stroke, true)
	}
}

// Path implements charts.Surface.
func (s *Surface) Path(pts []charts.Vec2, closed bool, fill, stroke color.Color, width float64) {
	if s.dst == nil || len(pts) < 2 {
		return
	}
	s.path.Reset()
	s.path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	if closed {
		s.path.Close()
	}
	if fill != nil && closed {
		s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
		s.drawTriangles(fill, ebiten.FillRuleNonZero)
	}
	if stroke != nil && width > 0 {
		s.vs, s.is = s.path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
			Width:    float32(width),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
		s.drawTriangles(stroke, ebiten.FillRuleFillAll)
	}
}

func (s *Surface) drawTriangles(c color.Color, rule ebiten.FillRule) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	r, g, b, a := float32(n.R)/255, float32(n.G)/255, float32(n.B)/255, float32(n.A)/255
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 1, 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	s.dst.DrawTriangles(s.vs, s.is, whitePixel(), &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: true,
	})
}

// Text implements charts.Surface. Glyphs come from the logical-size face
// and are scaled by the device scale.
func (s *Surface) Text(str string, x, y, angle float64, face font.Face, c color.Color, align charts.TextAlign) {
	if s.dst == nil || face == nil || c == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	switch align {
	case charts.TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case charts.TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	op.GeoM.Scale(s.scale, s.scale)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face(face), op)
}

func (s *Surface) face(f font.Face) *text.GoXFace {
	xf, ok := s.faces[f]
	if !ok {
		xf = text.NewGoXFace(f)
		s.faces[f] = xf
	}
	return xf
}
