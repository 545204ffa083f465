package sketch

import (
	"math"
	"testing"
)

func TestPathBuilder_Basic(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).
		LineTo(100, 0).
		LineTo(100, 100).
		Close().
		Build()

	if path == nil {
		t.Fatal("expected non-nil path")
	}

	// MoveTo, LineTo, LineTo, Close
	if count := len(path.Elements()); count != 4 {
		t.Errorf("expected 4 elements, got %d", count)
	}
	if got := path.CurrentPoint(); got != Pt(0, 0) {
		t.Errorf("CurrentPoint() after Close = %v, want (0, 0)", got)
	}
}

func TestPathBuilder_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		builder func() *PathBuilder
		elems   int
	}{
		{"Rect", func() *PathBuilder { return BuildPath().Rect(0, 0, 100, 100) }, 5},
		{"Circle", func() *PathBuilder { return BuildPath().Circle(50, 50, 25) }, 6},
		{"Ellipse", func() *PathBuilder { return BuildPath().Ellipse(50, 50, 30, 20) }, 6},
		{"Polygon5", func() *PathBuilder { return BuildPath().Polygon(50, 50, 25, 5) }, 6},
		{"Polygon2", func() *PathBuilder { return BuildPath().Polygon(50, 50, 25, 2) }, 0},
		{"Polyline", func() *PathBuilder { return BuildPath().Polyline(Pt(0, 0), Pt(1, 1), Pt(2, 0)) }, 3},
		{"PolylineShort", func() *PathBuilder { return BuildPath().Polyline(Pt(0, 0)) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.builder().Build()
			if count := path.Len(); count != tt.elems {
				t.Errorf("expected %d elements, got %d", tt.elems, count)
			}
		})
	}
}

func TestPathBuilder_CircleFlattensRound(t *testing.T) {
	path := BuildPath().Circle(0, 0, 50).Build()
	lines := Flatten(path, Identity())
	if len(lines) != 1 {
		t.Fatalf("len(Flatten()) = %d, want 1", len(lines))
	}
	for i, p := range lines[0] {
		if d := math.Abs(p.Length() - 50); d > 0.2 {
			t.Errorf("vertex %d is %.3f from the radius", i, d)
		}
	}
	if first, last := lines[0][0], lines[0][len(lines[0])-1]; first != last {
		t.Errorf("circle not closed: %v != %v", first, last)
	}
}

func TestPathBuilder_PolygonFirstVertexUp(t *testing.T) {
	path := BuildPath().Polygon(0, 0, 10, 4).Build()
	first, ok := path.Elements()[0].(MoveTo)
	if !ok {
		t.Fatalf("first element is %T, want MoveTo", path.Elements()[0])
	}
	if !first.Point.Approx(Pt(0, -10), 1e-9) {
		t.Errorf("first vertex = %v, want (0, -10)", first.Point)
	}
}

func TestPathBuilder_Chaining(t *testing.T) {
	path := BuildPath().
		Circle(100, 100, 50).
		Rect(200, 50, 100, 100).
		Build()

	if got := len(Flatten(path, Identity())); got != 2 {
		t.Errorf("expected 2 subpaths, got %d", got)
	}
}
