package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/cabinetry/pkg/fonts"
	"github.com/matzehuels/cabinetry/pkg/render/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	fonts *fonts.Loader
}

// WithFonts sets the font loader used for labels (default [fonts.Default]).
func WithFonts(l *fonts.Loader) PNGOption {
	return func(r *pngRenderer) { r.fonts = l }
}

// RenderImage rasterizes the layout onto a white canvas.
func RenderImage(l layout.Layout, opts ...PNGOption) image.Image {
	r := pngRenderer{fonts: fonts.Default}
	for _, opt := range opts {
		opt(&r)
	}
	f := NewFrame(l)

	dc := gg.NewContext(f.Width, f.Height)
	dc.SetColor(color.White)
	dc.Clear()
	for _, op := range l.Ops {
		r.drawOp(dc, f, op)
	}
	return dc.Image()
}

// RenderPNG rasterizes the layout and encodes it as PNG.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	dc := gg.NewContextForImage(RenderImage(l, opts...))
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) drawOp(dc *gg.Context, f Frame, op layout.Op) {
	switch o := op.(type) {
	case layout.Rect:
		x, y, w, h := f.RectPx(o)
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(o.Fill.ToRGBA())
		if o.Stroke == nil {
			dc.Fill()
			return
		}
		dc.FillPreserve()
		dc.SetColor(o.Stroke.ToRGBA())
		dc.SetLineWidth(StrokePx)
		dc.Stroke()
	case layout.Circle:
		dc.DrawCircle(f.X(o.X), f.Y(o.Y), f.Len(o.R))
		dc.SetColor(o.Fill.ToRGBA())
		dc.Fill()
	case layout.Line:
		dc.DrawLine(f.X(o.X1), f.Y(o.Y1), f.X(o.X2), f.Y(o.Y2))
		dc.SetColor(o.Color.ToRGBA())
		dc.SetLineWidth(o.WidthPx)
		dc.Stroke()
	case layout.Label:
		dc.SetFontFace(r.fonts.Face(o.Size))
		dc.SetColor(o.Color.ToRGBA())
		dc.DrawStringAnchored(o.Text, f.X(o.X), f.Y(o.Y), 0.5, 0)
	}
}
