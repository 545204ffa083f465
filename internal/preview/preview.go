// Package preview shows an animated sketch in a desktop window.
package preview

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
	"github.com/gogpu/sketch/internal/animate"
)

// Options configures the preview window.
type Options struct {
	Title string

	// FPS is the number of sketch frames per second. Zero uses the
	// scene's rate.
	FPS int

	// Zoom scales the window relative to the scene size.
	Zoom int
}

// Run opens a window that redraws a's scene every tick and blocks until
// the window closes or ctx is done.
func Run(ctx context.Context, a *animate.Animator, opts Options) error {
	s := a.Scene()
	fps := opts.FPS
	if fps <= 0 {
		fps = s.FPS
	}
	zoom := max(opts.Zoom, 1)
	title := opts.Title
	if title == "" {
		title = "sketch"
	}

	g := &game{ctx: ctx, a: a}
	g.current = a.Frame()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(s.Width*zoom, s.Height*zoom)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(fps)

	sketch.Logger().Info("preview: window opened",
		slog.String("title", title),
		slog.Int("fps", fps),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height))

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	ctx     context.Context
	a       *animate.Animator
	current *frame.Frame
}

// Update advances the animation one tick and collects a fresh frame.
func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.a.Step()
	g.current = g.a.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	f := g.current
	screen.Fill(f.Background.Color())
	width := float32(f.LineWidth)
	for _, s := range f.Strokes {
		vector.StrokeLine(screen,
			float32(s.P0.X), float32(s.P0.Y),
			float32(s.P1.X), float32(s.P1.Y),
			width, s.Color.Color(), true)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.current.Width, g.current.Height
}
