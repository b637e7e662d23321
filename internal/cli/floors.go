package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/world"
)

func (c *CLI) floorsCommand() *cobra.Command {
	var floor int
	cmd := &cobra.Command{
		Use:   "floors",
		Short: "List floors with their areas and transit nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			floors := e.world.Floors()
			if floor != 0 {
				if !slices.Contains(floors, floor) {
					return fmt.Errorf("floor %d does not exist", floor)
				}
				floors = []int{floor}
			}
			for _, f := range floors {
				printFloor(cmd.OutOrStdout(), e.world, f, e.cfg.Lang)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&floor, "floor", "f", 0, "show only this floor")
	return cmd
}

func printFloor(w io.Writer, wd *world.World, floor int, lang string) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Floor %d", floor)))
	for _, a := range wd.AreasOn(floor) {
		name := a.Name.In(lang)
		if a.Gender != "" {
			name += " (" + a.Gender + ")"
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			styleKey.Render(string(a.Type)),
			styleValue.Render(name),
			styleDim.Render(fmt.Sprintf("%s · door %s", a.ID, a.EntrancePoint)))
	}
	for _, n := range wd.NodesOn(floor) {
		links := make([]string, 0, len(n.Links))
		for _, l := range n.Links {
			links = append(links, fmt.Sprintf("%d:%s", l.Floor, l.ID))
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			styleKey.Render(string(n.Type)),
			styleValue.Render(n.ID),
			styleDim.Render(iconArrow+" "+strings.Join(links, ", ")))
	}
	fmt.Fprintln(w)
}
