package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	cabio "github.com/matzehuels/cabinetry/pkg/io"
	"github.com/matzehuels/cabinetry/pkg/observability"
)

// designsCommand creates the design store management command.
func (c *CLI) designsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "designs",
		Aliases: []string{"d"},
		Short:   "Manage saved designs",
	}
	cmd.AddCommand(c.designsListCommand())
	cmd.AddCommand(c.designsRemoveCommand())
	cmd.AddCommand(c.designsImportCommand())
	cmd.AddCommand(c.designsExportCommand())
	return cmd
}

func (c *CLI) designsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved designs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo(c.Out, "No saved designs")
				return nil
			}

			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.Name, formatRelativeTime(info.UpdatedAt)}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Design", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return styleHeader
					}
					if col == 1 {
						return StyleDim
					}
					return StyleValue
				})
			fmt.Fprintln(c.Out, t.Render())
			return nil
		},
	}
}

func (c *CLI) designsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>...",
		Aliases: []string{"delete"},
		Short:   "Delete saved designs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, name := range args {
				if err := st.Delete(ctx, name); err != nil {
					return err
				}
				printSuccess(c.Out, "Deleted %s", name)
			}
			return nil
		},
	}
}

func (c *CLI) designsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file> <name>",
		Short: "Save a design file into the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cab, err := cabio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			err = st.Save(ctx, args[1], cab)
			observability.Design().OnPersist(ctx, "save", args[1], err)
			if err != nil {
				return err
			}
			printSuccess(c.Out, "Imported %s as %s", args[0], args[1])
			return nil
		},
	}
}

func (c *CLI) designsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a saved design to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cab, err := st.Load(ctx, args[0])
			observability.Design().OnPersist(ctx, "load", args[0], err)
			if err != nil {
				return err
			}
			if err := cabio.ExportJSON(cab, args[1]); err != nil {
				return err
			}
			printSuccess(c.Out, "Exported %s to %s", args[0], args[1])
			return nil
		},
	}
}
