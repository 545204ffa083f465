package raster

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
)

func TestBackendRegistration(t *testing.T) {
	if !slices.Contains(frame.Backends(), "raster") {
		t.Fatal("raster backend not registered")
	}

	backend, err := frame.NewBackend("raster")
	if err != nil {
		t.Fatalf("failed to create raster backend: %v", err)
	}
	if _, ok := backend.(*Backend); !ok {
		t.Fatal("backend is not *raster.Backend")
	}
}

func TestBackendLifecycle(t *testing.T) {
	backend := NewBackend()
	if backend.Image() != nil {
		t.Error("Image() before Begin should be nil")
	}

	if err := backend.Begin(100, 50, sketch.White); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if backend.Width() != 100 || backend.Height() != 50 {
		t.Errorf("size = %dx%d, want 100x50", backend.Width(), backend.Height())
	}
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	img := backend.Image()
	if img == nil {
		t.Fatal("Image() returned nil")
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 100, 50) {
		t.Errorf("Bounds() = %v", got)
	}
}

func TestEndBeforeBegin(t *testing.T) {
	if err := NewBackend().End(); !errors.Is(err, frame.ErrNotBegun) {
		t.Errorf("End() error = %v, want ErrNotBegun", err)
	}
	var buf bytes.Buffer
	if _, err := NewBackend().WriteTo(&buf); !errors.Is(err, frame.ErrNotBegun) {
		t.Errorf("WriteTo() error = %v, want ErrNotBegun", err)
	}
}

func render(t *testing.T, bg sketch.RGBA, width float64, strokes ...sketch.Stroke) *image.RGBA {
	t.Helper()
	f := frame.New(40, 20)
	f.Background = bg
	f.LineWidth = width
	f.Strokes = strokes

	b := NewBackend()
	if err := f.Playback(b); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	return b.Image().(*image.RGBA)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestDrawStroke(t *testing.T) {
	img := render(t, sketch.White, 2, sketch.Stroke{
		P0: sketch.Pt(5, 10), P1: sketch.Pt(35, 10), Color: sketch.Black,
	})

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"on stroke above center", 20, 9, 0},
		{"on stroke below center", 20, 10, 0},
		{"background", 20, 2, 255},
		{"past end", 38, 10, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y).R; absDiff(got, tt.want) > 2 {
				t.Errorf("R at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDrawStroke_SameColorDoesNotStack(t *testing.T) {
	ink := sketch.RGBA2(0, 0, 0, 0.5)
	s := sketch.Stroke{P0: sketch.Pt(5, 10), P1: sketch.Pt(35, 10), Color: ink}
	back := sketch.Stroke{P0: sketch.Pt(35, 10), P1: sketch.Pt(5, 10), Color: ink}

	once := render(t, sketch.White, 2, s).RGBAAt(20, 10).R
	twice := render(t, sketch.White, 2, s, back).RGBAAt(20, 10).R
	if once < 120 || once > 135 {
		t.Fatalf("half-alpha stroke R = %d, want ~127", once)
	}
	if absDiff(once, twice) > 2 {
		t.Errorf("overlapping same-color strokes R = %d, want %d", twice, once)
	}
}

func TestDrawStroke_ColorRunsComposite(t *testing.T) {
	img := render(t, sketch.White, 4,
		sketch.Stroke{P0: sketch.Pt(5, 10), P1: sketch.Pt(35, 10), Color: sketch.Red},
		sketch.Stroke{P0: sketch.Pt(20, 2), P1: sketch.Pt(20, 18), Color: sketch.Blue},
	)
	if got := img.RGBAAt(10, 10); got.R < 253 || got.B > 2 {
		t.Errorf("red run pixel = %v", got)
	}
	if got := img.RGBAAt(20, 10); got.B < 253 || got.R > 2 {
		t.Errorf("later blue stroke not on top: %v", got)
	}
}

func TestDrawStroke_Degenerate(t *testing.T) {
	img := render(t, sketch.White, 2,
		sketch.Stroke{P0: sketch.Pt(10, 10), P1: sketch.Pt(10, 10), Color: sketch.Black},
	)
	if got := img.RGBAAt(10, 10).R; got != 255 {
		t.Errorf("zero-length stroke drew R = %d", got)
	}
}

func TestWriteToAndSave(t *testing.T) {
	f := frame.New(16, 16)
	f.Strokes = []sketch.Stroke{{P0: sketch.Pt(0, 8), P1: sketch.Pt(16, 8), Color: sketch.Black}}
	b := NewBackend()
	if err := f.Playback(b); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not PNG: %v", err)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := b.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("saved file is not PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("saved width = %d, want 16", img.Bounds().Dx())
	}
}
