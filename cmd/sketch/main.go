// Command sketch renders and previews pencil-sketch scenes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/sketch/internal/animate"
	"github.com/gogpu/sketch/internal/cli"
	"github.com/gogpu/sketch/internal/preview"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx, os.Stdout, os.Stderr, cli.WithViewer(view)); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func view(ctx context.Context, a *animate.Animator, opts cli.ViewOptions) error {
	return preview.Run(ctx, a, preview.Options{
		Title: opts.Title,
		FPS:   opts.FPS,
		Zoom:  opts.Zoom,
	})
}
