package sink

import "github.com/matzehuels/cabinetry/pkg/render/layout"

// Pixel frame shared by the raster and vector sinks.
const (
	Scale  = 5.0   // Pixels per centimetre
	Margin = 100.0 // Blank border in pixels
)

// Frame maps layout centimetres to canvas pixels with the y axis flipped.
type Frame struct {
	Width, Height int // Canvas size in pixels
}

// NewFrame sizes the canvas for l.
func NewFrame(l layout.Layout) Frame {
	return Frame{
		Width:  int(l.Width*Scale + 2*Margin),
		Height: int(l.Height*Scale + 2*Margin),
	}
}

// X converts a horizontal position in cm to pixels.
func (f Frame) X(cm float64) float64 { return Margin + cm*Scale }

// Y converts a height above the floor in cm to a pixel row.
func (f Frame) Y(cm float64) float64 { return float64(f.Height) - Margin - cm*Scale }

// Len converts a length in cm to pixels.
func (f Frame) Len(cm float64) float64 { return cm * Scale }

// RectPx returns the top-left corner and size of r in pixels.
func (f Frame) RectPx(r layout.Rect) (x, y, w, h float64) {
	return f.X(r.X), f.Y(r.Top()), f.Len(r.W), f.Len(r.H)
}
