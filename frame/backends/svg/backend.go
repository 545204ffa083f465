// Package svg provides an SVG backend for sketch frames.
//
// Strokes are written as path data, one <path> element per run of
// consecutive strokes sharing a color, so the document keeps the drawing
// order of the frame.
package svg

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
)

func init() {
	frame.Register("svg", func() frame.Backend {
		return NewBackend()
	})
}

// Backend renders frames to an SVG document.
type Backend struct {
	buf    bytes.Buffer
	canvas *svgo.SVG
	began  bool
	done   bool

	// current run
	color sketch.RGBA
	width float64
	d     strings.Builder
	open  bool
	runs  int
}

// Ensure Backend implements all required interfaces.
var (
	_ frame.Backend       = (*Backend)(nil)
	_ frame.WriterBackend = (*Backend)(nil)
	_ frame.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
func NewBackend() *Backend {
	b := &Backend{}
	b.canvas = svgo.New(&b.buf)
	return b
}

// Begin starts a new document with a background rectangle.
func (b *Backend) Begin(width, height int, bg sketch.RGBA) error {
	b.buf.Reset()
	b.d.Reset()
	b.began, b.done, b.open, b.runs = true, false, false, 0

	b.canvas.Start(width, height)
	b.canvas.Rect(0, 0, width, height, paint("fill", bg))
	return nil
}

// DrawStroke appends the stroke to the current run, starting a new path
// when the color or width changes.
func (b *Backend) DrawStroke(s sketch.Stroke, width float64) {
	if !b.began || b.done {
		return
	}
	if !s.P0.IsFinite() || !s.P1.IsFinite() {
		return
	}
	if b.open && (s.Color != b.color || width != b.width) {
		b.flush()
	}
	if !b.open {
		b.color, b.width, b.open = s.Color, width, true
		b.runs++
	} else {
		b.d.WriteByte(' ')
	}
	b.d.WriteString("M" + num(s.P0.X) + " " + num(s.P0.Y) + "L" + num(s.P1.X) + " " + num(s.P1.Y))
}

// flush writes the current run as one path element.
func (b *Backend) flush() {
	style := "fill:none;" + paint("stroke", b.color) +
		";stroke-width:" + num(b.width) + ";stroke-linecap:round"
	b.canvas.Path(b.d.String(), style)
	b.d.Reset()
	b.open = false
}

// End closes the document.
func (b *Backend) End() error {
	if !b.began {
		return frame.ErrNotBegun
	}
	if b.open {
		b.flush()
	}
	b.canvas.End()
	b.done = true
	return nil
}

// Runs returns the number of <path> elements written so far.
func (b *Backend) Runs() int {
	return b.runs
}

// Bytes returns the document, or nil before End.
func (b *Backend) Bytes() []byte {
	if !b.done {
		return nil
	}
	return b.buf.Bytes()
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, frame.ErrNotBegun
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the document to a file.
func (b *Backend) SaveToFile(path string) error {
	if !b.done {
		return frame.ErrNotBegun
	}
	if err := os.WriteFile(path, b.buf.Bytes(), 0o644); err != nil {
		return err
	}
	sketch.Logger().Info("svg: frame written", slog.String("path", path), slog.Int("paths", b.runs))
	return nil
}

// paint formats a color as style properties, splitting translucency into
// a separate opacity property.
func paint(prop string, c sketch.RGBA) string {
	opaque := c
	opaque.A = 1
	s := prop + ":" + opaque.HexString()
	if c.A < 1 {
		s += ";" + prop + "-opacity:" + num(max(c.A, 0))
	}
	return s
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
