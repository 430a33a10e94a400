package sink

import (
	"github.com/matzehuels/cabinetry/pkg/render"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
)

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(l, opts...))
}
