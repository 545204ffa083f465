package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
	"github.com/gogpu/sketch/internal/animate"
	"github.com/gogpu/sketch/internal/scenefile"
)

const defaultSeed = 42 // random seed for reproducible frames

// formatBackends maps output formats to frame backend names.
var formatBackends = map[string]string{
	"png": "raster",
	"svg": "svg",
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path, numbered when frames > 1
	format    string  // output format: png or svg
	seed      uint64  // random seed
	frames    int     // number of consecutive frames to write
	lineWidth float64 // stroke width in pixels
	interval  int     // ticks between alternate switches, 0 uses the scene's
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{seed: defaultSeed, frames: 1, lineWidth: frame.DefaultLineWidth}

	cmd := &cobra.Command{
		Use:   "render SCENE",
		Short: "Render frames of a scene to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default: scene name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), svg")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().IntVarP(&opts.frames, "frames", "n", opts.frames, "number of consecutive frames to write")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", opts.lineWidth, "pencil line width in pixels")
	cmd.Flags().IntVar(&opts.interval, "interval", 0, "ticks between alternate switches (default: scene setting)")
	return cmd
}

// resolveFormat picks the output format from the flag, then the output
// file extension, then png.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if _, ok := formatBackends[format]; !ok {
			format = "png"
		}
	}
	if _, ok := formatBackends[format]; !ok {
		return "", fmt.Errorf("invalid format: %s (must be 'png' or 'svg')", format)
	}
	return format, nil
}

// outputPath returns the file for the zero-based frame i of n. Numbered
// files count from 1.
func outputPath(output, input, format string, i, n int) string {
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if n <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(output, ext), i+1, ext)
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	if opts.frames < 1 {
		return fmt.Errorf("invalid frame count: %d", opts.frames)
	}

	s, err := scenefile.Load(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %dx%d, %d nodes", input, s.Width, s.Height, s.Root.Count())

	a := animate.New(s, sketch.NewSource(opts.seed),
		animate.WithInterval(opts.interval),
		animate.WithLineWidth(opts.lineWidth))

	for i, f := range a.Frames(opts.frames) {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := outputPath(opts.output, input, format, i, opts.frames)
		if err := writeFrame(f, formatBackends[format], path); err != nil {
			return err
		}
		logger.Infof("Wrote %s (%d strokes)", path, len(f.Strokes))
	}
	return nil
}

func writeFrame(f *frame.Frame, backend, path string) error {
	b, err := frame.NewBackend(backend)
	if err != nil {
		return err
	}
	if err := f.Playback(b); err != nil {
		return err
	}
	fb, ok := b.(frame.FileBackend)
	if !ok {
		return fmt.Errorf("backend %q cannot write files", backend)
	}
	return fb.SaveToFile(path)
}
