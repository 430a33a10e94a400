package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	cabio "github.com/matzehuels/cabinetry/pkg/io"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/store"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file, base path for several formats, or "-" for stdout
	formats  string // comma-separated formats
	detailed bool   // shelf and drawer lines in the structure diagram
	noTitle  bool   // drop the text view's title row
	font     string // font file for PNG labels
	noCache  bool   // bypass the artifact cache entirely
	refresh  bool   // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <design>",
		Short: "Render a design to PNG, SVG, text, PDF, JSON or a structure diagram",
		Long: `Render a design file (or a saved design name) to one or more formats.

Formats: png, svg, txt, pdf, json, dot, structure. PDF needs rsvg-convert.
Outputs are cached by design, so re-rendering an unchanged cabinet is fast.`,
		Example: `  cabinetry render kitchen.json
  cabinetry render kitchen.json -f png,svg,txt -o out/kitchen
  cabinetry render kitchen -f txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (\"-\" writes to stdout)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated output formats (default png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add shelf and drawer details to the structure diagram")
	cmd.Flags().BoolVar(&opts.noTitle, "no-title", false, "omit the title row from text output")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType/OpenType font for PNG labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	popts := pipeline.Options{
		Formats:  c.parseFormats(opts.formats),
		Detailed: opts.detailed,
		Font:     opts.font,
		NoTitle:  opts.noTitle,
		Refresh:  opts.refresh,
	}
	if popts.Font == "" {
		popts.Font = c.Config.Render.Font
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes exactly one format")
	}

	cab, err := c.openDesign(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Render(ctx, cab, popts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := c.Out.Write(res.Artifacts[popts.Formats[0]])
		return err
	}

	for _, format := range popts.Formats {
		path := outputPath(opts.output, input, format, len(popts.Formats) > 1)
		if err := writeArtifact(path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(c.Out, path, len(res.Artifacts[format]), res.CacheHit)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(popts.Formats)))
	return nil
}

// openDesign loads input as a file when it exists or looks like a path,
// otherwise from the design store.
func (c *CLI) openDesign(ctx context.Context, input string) (*cabinet.Cabinet, error) {
	if _, err := os.Stat(input); err == nil || isPath(input) {
		return cabio.ImportJSON(input)
	}
	if _, err := store.ValidateName(input); err != nil {
		return nil, err
	}
	st, err := c.newStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Load(ctx, input)
}

// outputPath picks the file for one format. A single format honours
// output verbatim; several formats share output (or the input name) as a
// base and add their own extension.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + pipeline.Extension(format)
}

// basePath strips a known render extension from output, falling back to
// the input name without its extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if f := formatForPath(output); f != "" {
		return strings.TrimSuffix(output, pipeline.Extension(f))
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
