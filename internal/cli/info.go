package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/frame"
	"github.com/gogpu/sketch/internal/scenefile"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the registered frame backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range frame.Backends() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newMaterialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "material [SCENE]",
		Short: "Print the resolved materials of a scene, or the defaults, as TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			materials := map[string]sketch.Material{
				scenefile.DefaultMaterialName: sketch.DefaultMaterial(),
			}
			if len(args) == 1 {
				s, err := scenefile.Load(args[0])
				if err != nil {
					return err
				}
				materials = s.ResolvedMaterials()
			}
			return scenefile.EncodeMaterials(cmd.OutOrStdout(), materials)
		},
	}
}
