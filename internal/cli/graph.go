package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/transit"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		svg    bool
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the floor-transit graph as Graphviz DOT or SVG",
		Example: `  indoornav graph > floors.dot
  indoornav graph --svg -o floors.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.load(ctx)
			if err != nil {
				return err
			}
			g := e.planner.Graph()
			data := []byte(transit.ToDOT(g))
			if svg {
				prog := newProgress(loggerFromContext(ctx))
				if data, err = transit.RenderSVG(ctx, string(data)); err != nil {
					return err
				}
				prog.done("graph rendered", "floors", len(g.Floors()))
			}
			if comps := g.Components(); len(comps) > 1 {
				loggerFromContext(ctx).Warn("floors are not all connected", "components", comps)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG with graphviz instead of DOT")
	return cmd
}
