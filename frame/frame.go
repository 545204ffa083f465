package frame

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/sketch"
)

// DefaultLineWidth is the pencil line width used when a Frame sets none.
const DefaultLineWidth = 1.0

// ErrNotBegun is returned by backend output methods called before a
// successful Begin and End.
var ErrNotBegun = errors.New("frame: backend used before Begin")

// Frame is the ordered stroke list of one render together with the canvas
// it is drawn on.
type Frame struct {
	Width      int
	Height     int
	Background sketch.RGBA
	LineWidth  float64
	Strokes    []sketch.Stroke
}

// New creates an empty frame with a white background.
func New(width, height int) *Frame {
	return &Frame{
		Width:      width,
		Height:     height,
		Background: sketch.White,
		LineWidth:  DefaultLineWidth,
	}
}

// Capture collects the strokes of root into a new frame.
func Capture(c *sketch.Collector, root *sketch.Node, width, height int) *Frame {
	f := New(width, height)
	f.Strokes = c.Collect(root)
	return f
}

// Bounds returns the canvas rectangle.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Playback draws the frame into b: Begin, one DrawStroke per stroke in
// order, then End.
func (f *Frame) Playback(b Backend) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("frame: invalid size %dx%d", f.Width, f.Height)
	}
	width := f.LineWidth
	if width <= 0 {
		width = DefaultLineWidth
	}

	if err := b.Begin(f.Width, f.Height, f.Background); err != nil {
		return fmt.Errorf("frame: begin: %w", err)
	}
	for _, s := range f.Strokes {
		b.DrawStroke(s, width)
	}
	if err := b.End(); err != nil {
		return fmt.Errorf("frame: end: %w", err)
	}

	sketch.Logger().Debug("frame: played back",
		slog.Int("strokes", len(f.Strokes)),
		slog.Int("width", f.Width),
		slog.Int("height", f.Height))
	return nil
}

// Backend is the interface that all output backends implement.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions. A backend may be
// reused: every Begin discards the previous output.
type Backend interface {
	// Begin starts a frame of the given size filled with bg.
	Begin(width, height int, bg sketch.RGBA) error

	// DrawStroke draws one pencil stroke as a straight line of the given
	// width. Strokes are drawn in call order, later ones on top.
	DrawStroke(s sketch.Stroke, width float64)

	// End finalizes the frame. Output methods are valid after End.
	End() error
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to w.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to the rendered pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before End.
	Image() image.Image
}
