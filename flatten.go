package sketch

import "github.com/gogpu/sketch/internal/flatten"

// Polyline is an ordered sequence of vertices produced by flattening one
// contiguous subpath.
type Polyline []Point

// Length returns the sum of the distances between consecutive vertices.
func (pl Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(pl); i++ {
		total += pl[i].Distance(pl[i-1])
	}
	return total
}

// Flatten converts a path into polylines, applying m to every point first.
//
// MoveTo starts a new polyline. Curves are subdivided into line segments by
// a fixed tolerance measured in the transformed space. Close appends the
// subpath's first vertex unless the polyline already ends there. Polylines
// with fewer than two vertices are dropped.
//
// Elements that draw without a current point start implicitly at the path
// origin; malformed paths are recovered, never rejected.
func Flatten(path *Path, m Matrix) []Polyline {
	f := flattener{m: m}
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			f.flush()
			p := m.TransformPoint(e.Point)
			f.start, f.current, f.started = p, p, true
			f.line = Polyline{p}
		case LineTo:
			f.begin()
			f.lineTo(m.TransformPoint(e.Point))
		case QuadTo:
			f.begin()
			ctrl := m.TransformPoint(e.Control)
			end := m.TransformPoint(e.Point)
			for _, p := range flatten.Quadratic(toFlat(f.current), toFlat(ctrl), toFlat(end), flatten.Tolerance) {
				f.lineTo(Point(p))
			}
		case CubicTo:
			f.begin()
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			end := m.TransformPoint(e.Point)
			for _, p := range flatten.Cubic(toFlat(f.current), toFlat(c1), toFlat(c2), toFlat(end), flatten.Tolerance) {
				f.lineTo(Point(p))
			}
		case Close:
			if n := len(f.line); n > 0 && f.line[n-1] != f.line[0] {
				f.line = append(f.line, f.line[0])
			}
			f.flush()
			f.current = f.start
		}
	}
	f.flush()
	return f.out
}

type flattener struct {
	m       Matrix
	out     []Polyline
	line    Polyline
	start   Point
	current Point
	started bool // a current point exists
}

// begin makes sure a polyline is open before a drawing element.
func (f *flattener) begin() {
	if f.line != nil {
		return
	}
	if !f.started {
		origin := f.m.TransformPoint(Point{})
		f.start, f.current, f.started = origin, origin, true
	}
	f.line = Polyline{f.current}
}

func (f *flattener) lineTo(p Point) {
	f.line = append(f.line, p)
	f.current = p
}

func (f *flattener) flush() {
	if len(f.line) >= 2 {
		f.out = append(f.out, f.line)
	}
	f.line = nil
}

func toFlat(p Point) flatten.Point {
	return flatten.Point(p)
}
