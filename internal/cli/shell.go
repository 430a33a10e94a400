package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/internal/server"
	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	cabio "github.com/matzehuels/cabinetry/pkg/io"
	"github.com/matzehuels/cabinetry/pkg/observability"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
	"github.com/matzehuels/cabinetry/pkg/render/sink"
	"github.com/matzehuels/cabinetry/pkg/store"
)

// defaultRenderFile is written by a bare "render".
const defaultRenderFile = "cabinet_render.png"

// errExit ends the shell loop.
var errExit = fmt.Errorf("exit")

// MoveFunc runs an interactive shelf move on c. col and shelf are 0-based.
type MoveFunc func(ctx context.Context, c *cabinet.Cabinet, col, shelf int) error

// Shell is the line-oriented designer. Column and shelf numbers typed by
// the user are 1-based; compartment ids are 0-based from the bottom.
type Shell struct {
	Cabinet *cabinet.Cabinet
	Store   store.Store
	Runner  *pipeline.Runner
	Logger  *log.Logger
	Out     io.Writer

	// Move drives "select"; nil reports that interactive mode is unavailable.
	Move MoveFunc

	// Color styles the preview for a terminal.
	Color bool
}

type shellCommand struct {
	usage string
	help  string
	args  int // minimum argument count
	run   func(s *Shell, ctx context.Context, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"add": {"add <40|60|80>", "Add a column of width cm", 1, func(s *Shell, ctx context.Context, a []string) error {
			w, err := intArg(a[0], "width")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "add_column", func() error { return s.Cabinet.AddColumn(w) })
		}},
		"rm": {"rm <col>", "Remove a column", 1, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "remove_column", func() error { return s.Cabinet.RemoveColumn(i) })
		}},
		"h": {"h <cm>", "Set total height", 1, func(s *Shell, ctx context.Context, a []string) error {
			h, err := floatArg(a[0], "height")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "set_height", func() error { return s.Cabinet.SetTotalHeight(h) })
		}},
		"s": {"s <col> <count>", "Reset a column to count evenly spaced sections", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			n, err := intArg(a[1], "count")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "set_shelves_count", func() error { return s.Cabinet.SetShelvesCount(i, n) })
		}},
		"shelf": {"shelf <col> <cm>", "Add a shelf at a height from the floor", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			h, err := floatArg(a[1], "height")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "add_shelf", func() error { return s.Cabinet.AddShelfAt(i, h) })
		}},
		"subdivide": {"subdivide <col> <id>", "Divide compartment id (0 = bottom)", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			id, err := intArg(a[1], "compartment")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "subdivide", func() error { return s.Cabinet.SubdivideCompartment(i, id) })
		}},
		"rm_shelf": {"rm_shelf <col> <shelf>", "Remove a shelf", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			j, err := indexArg(a[1], "shelf")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "remove_shelf", func() error { return s.Cabinet.RemoveShelf(i, j) })
		}},
		"ls_shelves": {"ls_shelves <col>", "List a column's shelves", 1, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			return s.listShelves(i)
		}},
		"move": {"move <col> <shelf> <cm>", "Move a shelf by cm", 3, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			j, err := indexArg(a[1], "shelf")
			if err != nil {
				return err
			}
			d, err := floatArg(a[2], "distance")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "move_shelf", func() error { return s.Cabinet.MoveShelf(i, j, d) })
		}},
		"select": {"select <col> <shelf>", "Move a shelf interactively", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			j, err := indexArg(a[1], "shelf")
			if err != nil {
				return err
			}
			return s.selectShelf(ctx, i, j)
		}},
		"swap": {"swap <col> <col>", "Swap two columns", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			j, err := indexArg(a[1], "column")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "swap_columns", func() error { return s.Cabinet.SwapColumns(i, j) })
		}},
		"top": {"top <col>", "Toggle a column's top section", 1, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "toggle_top", func() error { return s.Cabinet.ToggleTop(i) })
		}},
		"merge": {"merge <col>", "Toggle merging with the column to the right", 1, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "toggle_merge", func() error { return s.Cabinet.ToggleMergeRight(i) })
		}},
		"plinth": {"plinth <cm>", "Set plinth height", 1, func(s *Shell, ctx context.Context, a []string) error {
			h, err := floatArg(a[0], "height")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "set_plinth", func() error { return s.Cabinet.SetPlinthHeight(h) })
		}},
		"drawer": {"drawer <col>", "Toggle one default drawer", 1, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			return s.mutate(ctx, "toggle_drawers", func() error { return s.Cabinet.ToggleDrawers(i) })
		}},
		"config_drawers": {"config_drawers <col> <count> [cm]", "Set count drawers of equal height (default 20)", 2, func(s *Shell, ctx context.Context, a []string) error {
			i, err := indexArg(a[0], "column")
			if err != nil {
				return err
			}
			n, err := intArg(a[1], "count")
			if err != nil {
				return err
			}
			h := cabinet.DefaultDrawerHeight
			if len(a) > 2 {
				if h, err = floatArg(a[2], "height"); err != nil {
					return err
				}
			}
			return s.mutate(ctx, "configure_drawers", func() error { return s.Cabinet.ConfigureDrawers(i, n, h) })
		}},
		"render": {"render [file]", "Render to a file; the extension picks the format", 0, func(s *Shell, ctx context.Context, a []string) error {
			path := defaultRenderFile
			if len(a) > 0 {
				path = a[0]
			}
			return s.render(ctx, path)
		}},
		"save": {"save <name|path>", "Save to the design store, or to a file when a path is given", 1, func(s *Shell, ctx context.Context, a []string) error {
			return s.save(ctx, a[0])
		}},
		"load": {"load <name|path>", "Load from the design store, or from a file when a path is given", 1, func(s *Shell, ctx context.Context, a []string) error {
			return s.load(ctx, a[0])
		}},
		"show": {"show", "Redraw the cabinet", 0, func(s *Shell, ctx context.Context, a []string) error {
			return nil
		}},
		"help": {"help", "Show this help", 0, func(s *Shell, ctx context.Context, a []string) error {
			s.help()
			return nil
		}},
		"exit": {"exit", "Quit", 0, func(s *Shell, ctx context.Context, a []string) error {
			return errExit
		}},
	}
}

// Run reads commands from in until EOF or "exit", redrawing the cabinet
// before each prompt. Command errors are printed, not returned.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		s.draw()
		fmt.Fprint(s.Out, "CMD> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, scanner.Text())
		if err == errExit {
			return nil
		}
		if err != nil {
			printError(s.Out, err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	if name == "quit" {
		name = "exit"
	}
	cmd, ok := shellCommands[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown command %q, type 'help'", fields[0])
	}
	args := fields[1:]
	if len(args) < cmd.args {
		return errors.New(errors.ErrCodeInvalidInput, "usage: %s", cmd.usage)
	}
	return cmd.run(s, ctx, args)
}

func (s *Shell) mutate(ctx context.Context, op string, fn func() error) error {
	err := fn()
	observability.Design().OnMutation(ctx, op, err)
	return err
}

func (s *Shell) draw() {
	text := sink.RenderText(layout.Project(s.Cabinet))
	if s.Color {
		text = colorizeText(text)
	}
	fmt.Fprintln(s.Out)
	fmt.Fprint(s.Out, text)
	fmt.Fprintln(s.Out)
}

func (s *Shell) help() {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(s.Out, StyleTitle.Render("Commands:"))
	for _, name := range names {
		cmd := shellCommands[name]
		fmt.Fprintf(s.Out, "  %-36s %s\n", cmd.usage, StyleDim.Render(cmd.help))
	}
}

func (s *Shell) listShelves(i int) error {
	col, ok := s.Cabinet.Column(i)
	if !ok {
		return errors.New(errors.ErrCodeIndexOutOfRange, "column %d does not exist", i+1)
	}
	fmt.Fprintf(s.Out, "Shelves for Column %d (%dcm):\n", i+1, col.Width)
	if len(col.ShelfHeights) == 0 {
		fmt.Fprintln(s.Out, "  (No shelves)")
		return nil
	}
	for j, h := range col.ShelfHeights {
		fmt.Fprintf(s.Out, "  %d: %.1f cm\n", j+1, h)
	}
	return nil
}

func (s *Shell) selectShelf(ctx context.Context, i, j int) error {
	hs, err := s.Cabinet.Shelves(i)
	if err != nil {
		return err
	}
	if j < 0 || j >= len(hs) {
		return errors.New(errors.ErrCodeIndexOutOfRange, "shelf %d does not exist in column %d", j+1, i+1)
	}
	if s.Move == nil {
		return errors.New(errors.ErrCodeUnsupported, "interactive move needs a terminal; use 'move %d %d <cm>'", i+1, j+1)
	}
	return s.Move(ctx, s.Cabinet, i, j)
}

func (s *Shell) render(ctx context.Context, path string) error {
	format := formatForPath(path)
	if format == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot tell the format of %q (use .png, .svg, .txt, .pdf, .json or .dot)", path)
	}
	res, err := s.Runner.Render(ctx, s.Cabinet, pipeline.Options{Formats: []string{format}})
	if err != nil {
		return err
	}
	data := res.Artifacts[format]
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess(s.Out, "Image rendered to %s", path)
	return nil
}

func (s *Shell) save(ctx context.Context, target string) error {
	if isPath(target) {
		if err := cabio.ExportJSON(s.Cabinet, target); err != nil {
			return err
		}
		printSuccess(s.Out, "Configuration saved to %s", target)
		return nil
	}
	err := s.Store.Save(ctx, target, s.Cabinet)
	observability.Design().OnPersist(ctx, "save", target, err)
	if err != nil {
		return err
	}
	printSuccess(s.Out, "Design saved as %s", target)
	return nil
}

// load replaces the current cabinet only when the design decodes.
func (s *Shell) load(ctx context.Context, target string) error {
	var (
		c   *cabinet.Cabinet
		err error
	)
	if isPath(target) {
		c, err = cabio.ImportJSON(target)
	} else {
		c, err = s.Store.Load(ctx, target)
		observability.Design().OnPersist(ctx, "load", target, err)
	}
	if err != nil {
		return err
	}
	s.Cabinet = c
	printSuccess(s.Out, "Configuration loaded from %s", target)
	return nil
}

// isPath reports whether target names a file rather than a stored design.
func isPath(target string) bool {
	return strings.ContainsRune(target, '/') || strings.ContainsRune(target, filepath.Separator)
}

// formatForPath maps a file extension to a render format.
func formatForPath(path string) string {
	if strings.HasSuffix(path, pipeline.Extension(pipeline.FormatStructure)) {
		return pipeline.FormatStructure
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if pipeline.ValidFormats[ext] && ext != pipeline.FormatStructure {
		return ext
	}
	return ""
}

func indexArg(s, what string) (int, error) {
	n, err := intArg(s, what)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func intArg(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", what, s)
	}
	return n, nil
}

func floatArg(s, what string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", what, s)
	}
	return f, nil
}

// shellCommand creates the "shell" command.
func (c *CLI) shellCommand() *cobra.Command {
	var (
		noCache bool
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "shell [design]",
		Short: "Edit a cabinet interactively",
		Long: `Start the line-oriented designer. Without an argument it starts from a
60 cm and an 80 cm column; with one it loads a design file or a saved name.

Type 'help' at the prompt for the command list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sh := &Shell{
				Cabinet: starterCabinet(),
				Store:   st,
				Runner:  runner,
				Logger:  c.Logger,
				Out:     c.Out,
				Move:    runMoveProgram,
				Color:   !plain,
			}
			if len(args) == 1 {
				if err := sh.load(ctx, args[0]); err != nil {
					return err
				}
			}
			printInfo(c.Out, "Welcome to the Interactive Cabinet Designer! Type 'help' for commands.")
			return sh.Run(ctx, cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&plain, "plain", false, "draw the preview without colors")
	return cmd
}

// starterCabinet is the design a fresh shell starts with.
func starterCabinet() *cabinet.Cabinet { return server.StarterCabinet() }
