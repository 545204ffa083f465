package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the frame backends.
	_ "github.com/gogpu/sketch/frame/backends/raster"
	_ "github.com/gogpu/sketch/frame/backends/svg"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// It is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Option configures the command tree.
type Option func(*options)

type options struct {
	viewer Viewer
}

// WithViewer enables the view command.
func WithViewer(v Viewer) Option {
	return func(o *options) { o.viewer = v }
}

// NewRootCmd builds the command tree. Command output goes to out and logs
// to errOut.
func NewRootCmd(out, errOut io.Writer, opts ...Option) *cobra.Command {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var verbose bool

	root := &cobra.Command{
		Use:          "sketch",
		Short:        "Sketch renders vector scenes as boiling pencil drawings",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(errOut, level)
			installLogger(l)
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("sketch %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newViewCmd(o.viewer))
	root.AddCommand(newBackendsCmd())
	root.AddCommand(newMaterialCmd())
	return root
}

// Execute runs the sketch CLI with ctx and returns an error if any command
// fails.
func Execute(ctx context.Context, out, errOut io.Writer, opts ...Option) error {
	return NewRootCmd(out, errOut, opts...).ExecuteContext(ctx)
}
