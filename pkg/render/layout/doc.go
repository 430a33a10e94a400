// Package layout projects a cabinet into backend-neutral drawing operations.
//
// # Overview
//
// [Project] walks a [cabinet.Cabinet] once and emits an ordered list of
// [Op] values in centimetres: rectangles, circles, lines and text labels.
// Every renderer in [render/sink] consumes the same list, so raster, vector
// and text output never disagree about where a shelf or a door is.
//
// # Coordinates
//
// The origin is the floor at the cabinet's left edge. X grows to the right
// and Y grows upward; a [Rect] is anchored at its bottom-left corner. Labels
// are anchored at the horizontal centre of their baseline. Values are not
// rounded; snapping to pixels or grid cells is the renderer's job.
//
// # Parts
//
// Each op carries a [Part] naming what it depicts. Pixel renderers mostly
// ignore it, but the text renderer picks glyphs by part (a shelf becomes a
// dashed row, a plinth a hatched band) and skips parts that do not fit in a
// character grid, such as knobs and compartment heights.
//
// # Draw Order
//
//  1. The floor line.
//  2. For each merge group, for each member column: plinth, drawers with
//     handles, the remaining door with its seam and knobs, and the width
//     label under the column.
//  3. For each merge group with a top section: side panels, top cap,
//     countertop, compartment height labels, dividers and shelves, all
//     taken from the group's master column.
//  4. The title with total width and height.
//
// [render/sink]: github.com/matzehuels/cabinetry/pkg/render/sink
package layout
