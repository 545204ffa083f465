package animate

import (
	"testing"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/internal/scenefile"
)

const scene = `
width = 200
height = 100
background = "#eeeeee"
interval = 2

[[nodes]]
name = "box"
path = "M10 10 H90 V90 H10 Z"

[[nodes]]
name = "eye"
  [[nodes.alternates]]
  name = "open"
  path = "M150 10 L170 10"
  [[nodes.alternates]]
  name = "half"
  path = "M150 50 L170 50"
  [[nodes.alternates]]
  name = "shut"
  path = "M150 90 L170 90"
`

func load(t *testing.T, src string) *scenefile.Scene {
	t.Helper()
	s, err := scenefile.Decode([]byte(src), scenefile.TOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return s
}

func visible(s *scenefile.Scene) *sketch.Node {
	return s.Groups[0].Visible()
}

func TestStep_SwitchesEveryInterval(t *testing.T) {
	s := load(t, scene)
	a := New(s, sketch.NewSource(5))

	first := visible(s)
	a.Step()
	if visible(s) != first {
		t.Error("alternate switched before the interval elapsed")
	}
	a.Step()
	if visible(s) == first {
		t.Error("alternate did not switch on the interval tick")
	}
	if a.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", a.Ticks())
	}
}

func TestWithInterval(t *testing.T) {
	tests := []struct {
		name     string
		opt      int
		switches int
	}{
		{"every tick", 1, 6},
		{"every third", 3, 2},
		{"ignored zero uses scene", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := load(t, scene)
			a := New(s, sketch.NewSource(1), WithInterval(tt.opt))
			switches := 0
			prev := visible(s)
			for range 6 {
				a.Step()
				if v := visible(s); v != prev {
					switches++
					prev = v
				}
			}
			if switches != tt.switches {
				t.Errorf("switches = %d, want %d", switches, tt.switches)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	s := load(t, scene)
	a := New(s, sketch.NewSource(2), WithLineWidth(1.5))

	f := a.Frame()
	if f.Width != 200 || f.Height != 100 {
		t.Errorf("frame size = %dx%d, want 200x100", f.Width, f.Height)
	}
	if f.Background != sketch.Hex("#eeeeee") || f.LineWidth != 1.5 {
		t.Errorf("frame background %+v line width %v", f.Background, f.LineWidth)
	}
	if len(f.Strokes) == 0 {
		t.Fatal("frame has no strokes")
	}

	// Only the visible alternate (y = 10) contributes strokes right of the box.
	for _, st := range f.Strokes {
		if st.P0.X > 130 && st.P0.Y > 30 {
			t.Fatalf("hidden alternate drew a stroke at %v", st.P0)
		}
	}
}

func TestFrame_Recomputed(t *testing.T) {
	a := New(load(t, scene), sketch.NewSource(9))
	f1, f2 := a.Frame(), a.Frame()
	if len(f1.Strokes) == len(f2.Strokes) && f1.Strokes[0] == f2.Strokes[0] {
		t.Error("consecutive frames are identical")
	}
}

func TestFrames_Deterministic(t *testing.T) {
	run := func() [][]sketch.Stroke {
		a := New(load(t, scene), sketch.NewSource(4))
		var out [][]sketch.Stroke
		for _, f := range a.Frames(4) {
			out = append(out, f.Strokes)
		}
		if a.Ticks() != 3 {
			t.Errorf("Ticks() = %d, want 3", a.Ticks())
		}
		return out
	}

	x, y := run(), run()
	if len(x) != 4 {
		t.Fatalf("Frames(4) yielded %d frames", len(x))
	}
	for i := range x {
		if len(x[i]) != len(y[i]) {
			t.Fatalf("frame %d: %d vs %d strokes", i, len(x[i]), len(y[i]))
		}
		for j := range x[i] {
			if x[i][j] != y[i][j] {
				t.Fatalf("frame %d stroke %d differs", i, j)
			}
		}
	}
}

func TestFrames_EarlyStop(t *testing.T) {
	a := New(load(t, scene), sketch.NewSource(4))
	n := 0
	for range a.Frames(10) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 || a.Ticks() != 1 {
		t.Errorf("frames = %d ticks = %d, want 2 and 1", n, a.Ticks())
	}
}

func TestReplace(t *testing.T) {
	a := New(load(t, scene), sketch.NewSource(3))
	a.Step()

	next := load(t, "width = 50\nheight = 40\n[[nodes]]\npath = \"M0 0 L40 0\"\n")
	a.Replace(next)

	if a.Scene() != next {
		t.Fatal("Scene() did not return the replacement")
	}
	if a.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1 after Replace", a.Ticks())
	}
	f := a.Frame()
	if f.Width != 50 || f.Height != 40 || len(f.Strokes) == 0 {
		t.Errorf("frame after Replace = %dx%d with %d strokes", f.Width, f.Height, len(f.Strokes))
	}
	// A scene without alternates steps without effect.
	a.Step()
	a.Step()
}
