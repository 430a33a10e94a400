package sink

import (
	"encoding/json"

	"github.com/matzehuels/cabinetry/pkg/render/layout"
)

type jsonOutput struct {
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	BottomHeight float64  `json:"bottom_height"`
	CanvasWidth  int      `json:"canvas_width"`
	CanvasHeight int      `json:"canvas_height"`
	Scale        float64  `json:"scale"`
	Margin       float64  `json:"margin"`
	Ops          []jsonOp `json:"ops"`
}

type jsonOp struct {
	Type    string   `json:"type"`
	Part    string   `json:"part"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	W       float64  `json:"w,omitempty"`
	H       float64  `json:"h,omitempty"`
	R       float64  `json:"r,omitempty"`
	X2      *float64 `json:"x2,omitempty"`
	Y2      *float64 `json:"y2,omitempty"`
	Fill    string   `json:"fill,omitempty"`
	Stroke  string   `json:"stroke,omitempty"`
	WidthPx float64  `json:"width_px,omitempty"`
	Text    string   `json:"text,omitempty"`
	Size    float64  `json:"size,omitempty"`
}

// RenderJSON exports the projected drawing operations as a pretty-printed
// JSON document for external tools. Coordinates stay in centimetres; the
// canvas fields describe the pixel frame the PNG and SVG sinks use.
func RenderJSON(l layout.Layout) ([]byte, error) {
	f := NewFrame(l)
	out := jsonOutput{
		Width:        l.Width,
		Height:       l.Height,
		BottomHeight: l.BottomHeight,
		CanvasWidth:  f.Width,
		CanvasHeight: f.Height,
		Scale:        Scale,
		Margin:       Margin,
		Ops:          make([]jsonOp, 0, len(l.Ops)),
	}
	for _, op := range l.Ops {
		out.Ops = append(out.Ops, toJSONOp(op))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONOp(op layout.Op) jsonOp {
	j := jsonOp{Part: string(op.Depicts())}
	switch o := op.(type) {
	case layout.Rect:
		j.Type, j.X, j.Y, j.W, j.H, j.Fill = "rect", o.X, o.Y, o.W, o.H, o.Fill.Hex()
		if o.Stroke != nil {
			j.Stroke = o.Stroke.Hex()
		}
	case layout.Circle:
		j.Type, j.X, j.Y, j.R, j.Fill = "circle", o.X, o.Y, o.R, o.Fill.Hex()
	case layout.Line:
		x2, y2 := o.X2, o.Y2
		j.Type, j.X, j.Y, j.X2, j.Y2 = "line", o.X1, o.Y1, &x2, &y2
		j.Stroke, j.WidthPx = o.Color.Hex(), o.WidthPx
	case layout.Label:
		j.Type, j.X, j.Y, j.Text, j.Size, j.Fill = "label", o.X, o.Y, o.Text, o.Size, o.Color.Hex()
	}
	return j
}
