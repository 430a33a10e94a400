// Package sink provides output format renderers for projected cabinets.
//
// # Overview
//
// A "sink" transforms a [layout.Layout] into a final output format. Every
// sink walks the same op list, so their geometry always agrees:
//
//   - PNG: native raster via github.com/fogleman/gg ([RenderPNG])
//   - SVG: vector markup built as text ([RenderSVG])
//   - Text: a character grid for terminals ([RenderText])
//   - PDF: the SVG converted by rsvg-convert ([RenderPDF])
//   - JSON: the raw op list for external tools ([RenderJSON])
//
// # Pixel Frame
//
// PNG and SVG share one [Frame]: 5 px per cm and a 100 px margin, with the
// y axis flipped so that the floor sits [Margin] pixels above the bottom
// edge. A cabinet 80 cm wide and 240 cm tall renders on a 600x1400 canvas.
//
// # Text Grid
//
// [RenderText] maps 5 cm to one character column and 10 cm to one row.
// Panels thinner than a cell collapse to a single rule: shelves and the top
// cap become '-', the countertop '=', side panels, dividers and door seams
// '|', with '+' where rules cross. Door and drawer fronts are outlined boxes
// labelled DOOR or DRW; the plinth is hatched with '/'.
//
// # Fonts
//
// The raster sink loads its label face through [fonts.Loader]; when no
// TrueType file is found it falls back to a built-in bitmap face, so
// rendering never fails for lack of a font. The SVG sink names the
// "Arial, sans-serif" family and leaves the choice to the viewer.
//
// [fonts.Loader]: github.com/matzehuels/cabinetry/pkg/fonts.Loader
package sink
