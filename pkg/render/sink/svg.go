package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/cabinetry/pkg/fonts"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
)

// StrokePx is the outline width of stroked rectangles in pixels.
const StrokePx = 2.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	background string
}

// WithFontFamily overrides the CSS font-family used for labels.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithBackground sets the canvas colour; an empty string leaves it transparent.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG renders the layout as an SVG document on the shared pixel frame.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FontFamily, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	f := NewFrame(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s" />`+"\n", f.Width, f.Height, html.EscapeString(r.background))
	}
	for _, op := range l.Ops {
		buf.WriteString("  ")
		r.writeOp(&buf, f, op)
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) writeOp(buf *bytes.Buffer, f Frame, op layout.Op) {
	switch o := op.(type) {
	case layout.Rect:
		x, y, w, h := f.RectPx(o)
		fmt.Fprintf(buf, `<rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
			o.Part, x, y, w, h, o.Fill.Hex())
		if o.Stroke != nil {
			fmt.Fprintf(buf, ` stroke="%s" stroke-width="%g"`, o.Stroke.Hex(), StrokePx)
		}
		buf.WriteString(" />")
	case layout.Circle:
		fmt.Fprintf(buf, `<circle class="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" />`,
			o.Part, f.X(o.X), f.Y(o.Y), f.Len(o.R), o.Fill.Hex())
	case layout.Line:
		fmt.Fprintf(buf, `<line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%g" />`,
			o.Part, f.X(o.X1), f.Y(o.Y1), f.X(o.X2), f.Y(o.Y2), o.Color.Hex(), o.WidthPx)
	case layout.Label:
		fmt.Fprintf(buf, `<text class="%s" x="%.1f" y="%.1f" font-family="%s" font-size="%g" fill="%s" text-anchor="middle">%s</text>`,
			o.Part, f.X(o.X), f.Y(o.Y), html.EscapeString(r.fontFamily), o.Size, o.Color.Hex(), html.EscapeString(o.Text))
	}
}
