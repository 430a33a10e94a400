package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
	"github.com/matzehuels/cabinetry/pkg/render/sink"
)

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "show <design>",
		Short: "Print a design's front view and column table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cab, err := c.openDesign(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeSummary(c.Out, cab, !plain)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print without colors")
	return cmd
}

// writeSummary prints the text view, the column table and the merge groups.
func writeSummary(w io.Writer, c *cabinet.Cabinet, color bool) {
	text := sink.RenderText(layout.Project(c))
	if color {
		text = colorizeText(text)
	}
	fmt.Fprintln(w, text)
	if c.Len() == 0 {
		return
	}

	fmt.Fprintln(w, columnTable(c, -1))
	printKeyValue(w, "Width", fmt.Sprintf("%d cm", c.TotalWidth()))
	printKeyValue(w, "Height", fmt.Sprintf("%.1f cm (bottom %.1f, plinth %.1f)", c.TotalHeight(), c.BottomHeight(), c.PlinthHeight()))
	for _, g := range c.Groups() {
		if g.Len() < 2 {
			continue
		}
		members := make([]int, g.Len())
		for i, m := range g.Members {
			members[i] = m + 1
		}
		printDetail(w, "columns %v share one top section (%d cm)", members, g.Width)
	}
}
