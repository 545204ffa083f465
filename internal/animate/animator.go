// Package animate drives a loaded scene frame by frame.
//
// Every frame is collected from scratch, so the pencil lines boil from one
// frame to the next, and every interval ticks each alternates group shows a
// different pre-built sketch. The package opens no window; internal/preview
// puts an Animator on screen.
package animate

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
	"github.com/gogpu/sketch/internal/scenefile"
)

// Animator owns a scene and the random source its frames are drawn from.
//
// Step and Frame are meant to be called from one loop. Replace may be called
// from another goroutine, for example a file watcher.
type Animator struct {
	mu        sync.Mutex
	scene     *scenefile.Scene
	collector *sketch.Collector
	src       sketch.Source
	interval  int
	lineWidth float64
	ticks     int
}

// Option configures an Animator.
type Option func(*Animator)

// WithInterval sets the number of ticks between alternate switches,
// overriding the scene's interval. Values below 1 are ignored.
func WithInterval(n int) Option {
	return func(a *Animator) {
		if n > 0 {
			a.interval = n
		}
	}
}

// WithLineWidth sets the line width of produced frames.
func WithLineWidth(w float64) Option {
	return func(a *Animator) { a.lineWidth = w }
}

// New creates an animator for s drawing from src.
func New(s *scenefile.Scene, src sketch.Source, opts ...Option) *Animator {
	a := &Animator{
		src:       src,
		interval:  s.Interval,
		lineWidth: frame.DefaultLineWidth,
	}
	a.setScene(s)
	for _, opt := range opts {
		opt(a)
	}
	if a.interval < 1 {
		a.interval = 1
	}
	return a
}

func (a *Animator) setScene(s *scenefile.Scene) {
	a.scene = s
	a.collector = sketch.NewCollector(a.src, sketch.WithProfile(s.Profile))
}

// Step advances one tick. On every interval-th tick each alternates group
// reveals a randomly chosen hidden sibling.
func (a *Animator) Step() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ticks++
	if a.ticks%a.interval != 0 {
		return
	}
	for _, g := range a.scene.Groups {
		g.Tick(a.src)
	}
}

// Frame collects the current state of the scene into a new frame.
func (a *Animator) Frame() *frame.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := frame.Capture(a.collector, a.scene.Root, a.scene.Width, a.scene.Height)
	f.Background = a.scene.Background
	f.LineWidth = a.lineWidth
	return f
}

// Frames yields n frames, stepping once before each frame after the first.
func (a *Animator) Frames(n int) iter.Seq2[int, *frame.Frame] {
	return func(yield func(int, *frame.Frame) bool) {
		for i := range n {
			if i > 0 {
				a.Step()
			}
			if !yield(i, a.Frame()) {
				return
			}
		}
	}
}

// Replace swaps in a reloaded scene. The tick count and random source are
// kept, so the animation carries on where it was.
func (a *Animator) Replace(s *scenefile.Scene) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.setScene(s)
	sketch.Logger().Info("animate: scene replaced",
		slog.String("path", s.Path),
		slog.Int("nodes", s.Root.Count()))
}

// Scene returns the current scene.
func (a *Animator) Scene() *scenefile.Scene {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scene
}

// Ticks returns the number of ticks stepped so far.
func (a *Animator) Ticks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticks
}
