// Package geometry holds the float math shared by the renderers.
package geometry

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Quad evaluates a quadratic Bezier from (x0,y0) to (x1,y1) through the
// control point (cx,cy) at parameter t.
func Quad(x0, y0, cx, cy, x1, y1, t float64) (float64, float64) {
	u := 1 - t
	x := u*u*x0 + 2*u*t*cx + t*t*x1
	y := u*u*y0 + 2*u*t*cy + t*t*y1
	return x, y
}

// Angle returns the angle in radians of the vector from (x1,y1) to (x2,y2).
func Angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}
