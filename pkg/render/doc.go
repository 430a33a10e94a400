// Package render provides visualization rendering for cabinet designs.
//
// # Overview
//
// Rendering is split in two stages. The [layout] subpackage projects a
// cabinet into a list of drawing operations in centimetres; the [sink]
// subpackage turns that list into PNG, SVG, plain text, PDF or JSON. The
// [structure] subpackage draws a different view: a Graphviz tree of the
// cabinet's groups, columns and compartments.
//
//	l := layout.Project(c)
//	svg := sink.RenderSVG(l)
//	png, err := sink.RenderPNG(l)
//	fmt.Print(sink.RenderText(l))
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF with the external rsvg-convert tool (from
// librsvg). PNG output does not need it; the raster sink draws natively.
//
// [layout]: github.com/matzehuels/cabinetry/pkg/render/layout
// [sink]: github.com/matzehuels/cabinetry/pkg/render/sink
// [structure]: github.com/matzehuels/cabinetry/pkg/render/structure
package render
