package structure

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/render"
)

// Options configures structure diagram generation.
type Options struct {
	// Detailed adds shelf heights and drawer sizes to column labels.
	Detailed bool
}

// ToDOT converts a cabinet to Graphviz DOT source.
func ToDOT(c *cabinet.Cabinet, opts Options) string {
	cols := c.Columns()

	var buf bytes.Buffer
	buf.WriteString("digraph cabinet {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q];\n", "cabinet",
		fmt.Sprintf("Cabinet\n%d x %.1f cm\nplinth %.1f cm", c.TotalWidth(), c.TotalHeight(), c.PlinthHeight()))

	for gi, g := range c.Groups() {
		gid := fmt.Sprintf("g%d", gi)
		attrs := []string{fmt.Sprintf("label=%q", fmt.Sprintf("Group %d\n%d cm", gi+1, g.Width))}
		if !g.HasTop {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", gid, strings.Join(attrs, ", "))
		fmt.Fprintf(&buf, "  %q -> %q;\n", "cabinet", gid)

		for _, m := range g.Members {
			cid := fmt.Sprintf("c%d", m)
			fmt.Fprintf(&buf, "  %q [label=%q];\n", cid, columnLabel(m, cols[m], opts.Detailed))
			fmt.Fprintf(&buf, "  %q -> %q;\n", gid, cid)
		}
		if !g.HasTop {
			continue
		}

		master := cols[g.Master]
		b := cabinet.Compartments(master.ShelfHeights, c.BottomHeight(), c.TotalHeight())
		for j := 0; j < b.Count(); j++ {
			kid := fmt.Sprintf("c%d.%d", g.Master, j)
			attrs := []string{fmt.Sprintf("label=%q", fmt.Sprintf("#%d\n%.1f cm", j, b.Height(j))), "shape=note"}
			if master.HasDivider(j) {
				attrs = append(attrs, "fillcolor=lightgrey")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", kid, strings.Join(attrs, ", "))
			fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprintf("c%d", g.Master), kid)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func columnLabel(i int, col cabinet.Column, detailed bool) string {
	front := "door"
	if n := len(col.Drawers); n > 0 {
		front = fmt.Sprintf("%d drawers", n)
	}
	parts := []string{fmt.Sprintf("Column %d", i+1), fmt.Sprintf("%d cm, %s", col.Width, front)}
	if detailed {
		hs := make([]string, len(col.ShelfHeights))
		for k, h := range col.ShelfHeights {
			hs[k] = strconv.FormatFloat(h, 'f', 1, 64)
		}
		parts = append(parts, "shelves: "+strings.Join(hs, ", "))
		if len(col.Drawers) > 0 {
			ds := make([]string, len(col.Drawers))
			for k, d := range col.Drawers {
				ds[k] = strconv.FormatFloat(d.Height, 'f', 1, 64)
			}
			parts = append(parts, "drawers: "+strings.Join(ds, ", "))
		}
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the diagram scales like the front view.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
