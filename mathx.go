package charts

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dist returns the Euclidean distance between two points.
func dist(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// distToRect returns 0 for points inside r and the distance to the nearest
// edge otherwise.
func distToRect(p Vec2, r Rect) float64 {
	dx := math.Max(math.Max(r.X-p.X, 0), p.X-(r.X+r.Width))
	dy := math.Max(math.Max(r.Y-p.Y, 0), p.Y-(r.Y+r.Height))
	return math.Hypot(dx, dy)
}

// clipSegment clips the segment a-b to r using Liang-Barsky. ok is false
// when no part of the segment lies inside r.
func clipSegment(a, b Vec2, r Rect) (Vec2, Vec2, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - r.X, r.X + r.Width - a.X, a.Y - r.Y, r.Y + r.Height - a.Y}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return a, b, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return Vec2{X: a.X + t0*dx, Y: a.Y + t0*dy}, Vec2{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// arcPoints appends points on the arc of radius r around c from angle a0 to
// a1 (radians, clockwise on screen), one point per step radians at most.
func arcPoints(dst []Vec2, c Vec2, r, a0, a1, step float64) []Vec2 {
	n := int(math.Ceil(math.Abs(a1-a0) / step))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		dst = append(dst, Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return dst
}

// circlePoints returns a closed polygon approximating a circle.
func circlePoints(c Vec2, r float64) []Vec2 {
	pts := arcPoints(make([]Vec2, 0, 17), c, r, 0, 2*math.Pi, math.Pi/8)
	return pts[:len(pts)-1]
}
