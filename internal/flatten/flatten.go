// Package flatten converts Bezier curves into straight line segments.
//
// Flattening is deterministic: the same control points always produce the
// same vertices, so downstream randomness is the only source of variation
// between frames.
package flatten

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Tolerance is the maximum distance from the curve for flattening.
const Tolerance = 0.1

// MaxDepth bounds the recursive subdivision, so a single curve never
// produces more than 2^MaxDepth line segments.
const MaxDepth = 10

func (p Point) lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Quadratic flattens the quadratic curve p0-p1-p2 into line segment end
// points. The start point p0 is not included; the last point is always p2.
func Quadratic(p0, p1, p2 Point, tolerance float64) []Point {
	var points []Point
	quadraticRec(p0, p1, p2, tolerance, 0, &points)
	return points
}

func quadraticRec(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	if depth >= MaxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}

	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := q0.lerp(q1, 0.5)

	quadraticRec(p0, q0, q2, tolerance, depth+1, points)
	quadraticRec(q2, q1, p2, tolerance, depth+1, points)
}

// Cubic flattens the cubic curve p0-p1-p2-p3 into line segment end points.
// The start point p0 is not included; the last point is always p3.
func Cubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	var points []Point
	cubicRec(p0, p1, p2, p3, tolerance, 0, &points)
	return points
}

func cubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= MaxDepth || dist < tolerance {
		*points = append(*points, p3)
		return
	}

	// de Casteljau split at t=0.5
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)

	cubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	cubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine calculates the distance from point p to segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.sub(a)
	abLen := ab.length()
	if abLen < 1e-10 {
		return p.sub(a).length()
	}

	ap := p.sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (abLen * abLen)
	switch {
	case t < 0:
		return p.sub(a).length()
	case t > 1:
		return p.sub(b).length()
	}
	return p.sub(a.lerp(b, t)).length()
}
