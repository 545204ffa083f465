// Package raster provides a PNG backend for sketch frames.
//
// Each stroke is rasterized as a thin quad with golang.org/x/image/vector.
// Consecutive strokes of the same color are accumulated in one rasterizer
// pass, so overlapping pencil strokes of one color do not darken each other
// while strokes of different colors composite in order.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/sketch/frame/backends/raster"
//
//	// Create via registry
//	backend, _ := frame.NewBackend("raster")
//
//	// Or create directly
//	backend := raster.NewBackend()
//
//	f.Playback(backend)
//	backend.SaveToFile("output.png")
//	img := backend.Image()
package raster

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
)

func init() {
	frame.Register("raster", func() frame.Backend {
		return NewBackend()
	})
}

// Backend renders frames to an RGBA image.
// It implements frame.Backend, frame.WriterBackend, frame.FileBackend and
// frame.ImageBackend.
type Backend struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	done bool

	// pending color run
	color   sketch.RGBA
	pending int
}

// Ensure Backend implements all required interfaces.
var (
	_ frame.Backend       = (*Backend)(nil)
	_ frame.WriterBackend = (*Backend)(nil)
	_ frame.FileBackend   = (*Backend)(nil)
	_ frame.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates a width x height image filled with bg.
func (b *Backend) Begin(width, height int, bg sketch.RGBA) error {
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(bg.Color()), image.Point{}, draw.Src)
	if b.z == nil {
		b.z = vector.NewRasterizer(width, height)
	} else {
		b.z.Reset(width, height)
	}
	b.done = false
	b.pending = 0
	return nil
}

// DrawStroke adds the stroke to the current color run. Zero-length and
// non-finite strokes draw nothing.
func (b *Backend) DrawStroke(s sketch.Stroke, width float64) {
	if b.img == nil {
		return
	}
	if !s.P0.IsFinite() || !s.P1.IsFinite() {
		return
	}
	dir := s.P1.Sub(s.P0).Normalize()
	if dir.IsZero() {
		return
	}
	if b.pending > 0 && s.Color != b.color {
		b.flush()
	}
	b.color = s.Color

	// Every quad is wound the same way so overlapping strokes accumulate
	// instead of cancelling.
	n := dir.Perp().Mul(width / 2)
	a, c := s.P0.Add(n), s.P1.Add(n)
	d, e := s.P1.Sub(n), s.P0.Sub(n)
	b.z.MoveTo(float32(a.X), float32(a.Y))
	b.z.LineTo(float32(c.X), float32(c.Y))
	b.z.LineTo(float32(d.X), float32(d.Y))
	b.z.LineTo(float32(e.X), float32(e.Y))
	b.z.ClosePath()
	b.pending++
}

// End composites the last color run.
func (b *Backend) End() error {
	if b.img == nil {
		return frame.ErrNotBegun
	}
	b.flush()
	b.done = true
	return nil
}

func (b *Backend) flush() {
	if b.pending == 0 {
		return
	}
	b.z.DrawOp = draw.Over
	b.z.Draw(b.img, b.img.Bounds(), image.NewUniform(b.color.Color()), image.Point{})
	bounds := b.img.Bounds()
	b.z.Reset(bounds.Dx(), bounds.Dy())
	b.pending = 0
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, frame.ErrNotBegun
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	if !b.done {
		return frame.ErrNotBegun
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	sketch.Logger().Info("raster: frame written", slog.String("path", path))
	return nil
}

// Image returns the rendered image, or nil before End.
func (b *Backend) Image() image.Image {
	if !b.done {
		return nil
	}
	return b.img
}

// Width returns the backend width.
func (b *Backend) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height returns the backend height.
func (b *Backend) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

