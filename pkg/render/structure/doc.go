// Package structure renders a cabinet as a Graphviz tree diagram.
//
// # Overview
//
// Where [render/sink] draws the cabinet as it looks from the front, this
// package shows how it is put together: the cabinet at the root, its merge
// groups below, the member columns of each group, and the top-section
// compartments hanging off each group's master column.
//
//	dot := structure.ToDOT(c, structure.Options{Detailed: true})
//	svg, err := structure.RenderSVG(dot)
//
// Groups without a top section are drawn dashed. Compartments carrying a
// vertical divider are filled grey.
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process; no external binary is needed. [RenderPDF] additionally needs
// rsvg-convert.
//
// [render/sink]: github.com/matzehuels/cabinetry/pkg/render/sink
package structure
