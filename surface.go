package charts

import (
	"image/color"

	"golang.org/x/image/font"
)

// Surface is the drawing collaborator. Coordinates are device pixels.
// A nil fill or stroke color skips that part of the primitive.
type Surface interface {
	// DeviceScale returns the device-pixel ratio of the surface.
	DeviceScale() float64
	Line(x0, y0, x1, y1, width float64, c color.Color)
	Rect(r Rect, fill, stroke color.Color, width float64)
	Path(pts []Vec2, closed bool, fill, stroke color.Color, width float64)
	// Text draws str with the top of its line box at y, rotated by angle
	// radians about (x, y). The face is the logical-size face from the
	// style; surfaces scale glyphs by their DeviceScale.
	Text(str string, x, y, angle float64, face font.Face, c color.Color, align TextAlign)
}

// deviceSurface converts the logical pixels used by layout into device
// pixels before forwarding to the host surface.
type deviceSurface struct {
	dst   Surface
	scale float64
	buf   []Vec2
}

func (d *deviceSurface) DeviceScale() float64 { return d.scale }

func (d *deviceSurface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	s := d.scale
	d.dst.Line(x0*s, y0*s, x1*s, y1*s, width*s, c)
}

func (d *deviceSurface) Rect(r Rect, fill, stroke color.Color, width float64) {
	s := d.scale
	d.dst.Rect(Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}, fill, stroke, width*s)
}

func (d *deviceSurface) Path(pts []Vec2, closed bool, fill, stroke color.Color, width float64) {
	s := d.scale
	d.buf = d.buf[:0]
	for _, p := range pts {
		d.buf = append(d.buf, Vec2{X: p.X * s, Y: p.Y * s})
	}
	d.dst.Path(d.buf, closed, fill, stroke, width*s)
}

func (d *deviceSurface) Text(str string, x, y, angle float64, face font.Face, c color.Color, align TextAlign) {
	s := d.scale
	d.dst.Text(str, x*s, y*s, angle, face, c, align)
}

// nopSurface discards every primitive. Charts created without a surface
// still lay out, so hit testing works headless.
type nopSurface struct{}

func (nopSurface) DeviceScale() float64                                 { return 1 }
func (nopSurface) Line(_, _, _, _, _ float64, _ color.Color)            {}
func (nopSurface) Rect(Rect, color.Color, color.Color, float64)         {}
func (nopSurface) Path([]Vec2, bool, color.Color, color.Color, float64) {}

func (nopSurface) Text(string, float64, float64, float64, font.Face, color.Color, TextAlign) {}
