package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
	"github.com/gogpu/sketch/internal/animate"
	"github.com/gogpu/sketch/internal/scenefile"
)

// ErrNoViewer is returned by the view command when the binary was built
// without a preview window.
var ErrNoViewer = errors.New("view: no preview window available")

// Viewer shows an animator on screen until the window closes or ctx is done.
type Viewer func(ctx context.Context, a *animate.Animator, opts ViewOptions) error

// ViewOptions are the window settings passed to a Viewer.
type ViewOptions struct {
	Title string
	FPS   int // 0 uses the scene's rate
	Zoom  int
}

type viewOpts struct {
	fps       int
	interval  int
	zoom      int
	seed      uint64
	lineWidth float64
	noWatch   bool
}

func newViewCmd(viewer Viewer) *cobra.Command {
	opts := viewOpts{seed: defaultSeed, zoom: 1, lineWidth: frame.DefaultLineWidth}

	cmd := &cobra.Command{
		Use:   "view SCENE",
		Short: "Preview a scene in a window, reloading it when the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if viewer == nil {
				return ErrNoViewer
			}
			return runView(cmd.Context(), args[0], viewer, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 0, "sketch frames per second (default: scene setting)")
	cmd.Flags().IntVar(&opts.interval, "interval", 0, "ticks between alternate switches (default: scene setting)")
	cmd.Flags().IntVar(&opts.zoom, "zoom", opts.zoom, "window zoom factor")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", opts.lineWidth, "pencil line width in pixels")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the scene when the file changes")
	return cmd
}

func runView(ctx context.Context, input string, viewer Viewer, opts *viewOpts) error {
	logger := loggerFromContext(ctx)

	s, err := scenefile.Load(input)
	if err != nil {
		return err
	}
	a := animate.New(s, sketch.NewSource(opts.seed),
		animate.WithInterval(opts.interval),
		animate.WithLineWidth(opts.lineWidth))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !opts.noWatch {
		r, err := animate.NewReloader(a, input)
		if err != nil {
			return err
		}
		go func() {
			if err := r.Run(ctx); err != nil {
				logger.Warn("watcher stopped", "err", err)
			}
		}()
		logger.Debugf("Watching %s", input)
	}

	if err := viewer(ctx, a, ViewOptions{
		Title: "sketch - " + filepath.Base(input),
		FPS:   opts.fps,
		Zoom:  opts.zoom,
	}); err != nil {
		return err
	}
	return ctx.Err()
}
