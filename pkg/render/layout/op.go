package layout

// Part names the cabinet element an op depicts.
type Part string

const (
	PartFloor            Part = "floor"
	PartPlinth           Part = "plinth"
	PartDrawer           Part = "drawer"
	PartHandle           Part = "handle"
	PartDoor             Part = "door"
	PartSeam             Part = "seam"
	PartKnob             Part = "knob"
	PartWidthLabel       Part = "width-label"
	PartSidePanel        Part = "side-panel"
	PartTopCap           Part = "top-cap"
	PartCountertop       Part = "countertop"
	PartCompartmentLabel Part = "compartment-label"
	PartDivider          Part = "divider"
	PartShelf            Part = "shelf"
	PartTitle            Part = "title"
)

// Op is one drawing operation. The set of implementations is closed:
// [Rect], [Circle], [Line] and [Label].
type Op interface {
	Depicts() Part
	isOp()
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
// A nil Stroke means no outline.
type Rect struct {
	X, Y, W, H float64
	Fill       Color
	Stroke     *Color
	Part       Part
}

// Circle is a filled circle centred at X, Y.
type Circle struct {
	X, Y, R float64
	Fill    Color
	Part    Part
}

// Line is a straight stroke. WidthPx is in output pixels, not centimetres.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	WidthPx        float64
	Part           Part
}

// Label is a line of text centred horizontally on X with its baseline at Y.
// Size is the font size in output pixels.
type Label struct {
	X, Y  float64
	Text  string
	Size  float64
	Color Color
	Part  Part
}

func (r Rect) Depicts() Part   { return r.Part }
func (c Circle) Depicts() Part { return c.Part }
func (l Line) Depicts() Part   { return l.Part }
func (l Label) Depicts() Part  { return l.Part }

func (Rect) isOp()   {}
func (Circle) isOp() {}
func (Line) isOp()   {}
func (Label) isOp()  {}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the rectangle's top edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// CenterX returns the horizontal centre of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical centre of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Layout is a projected cabinet: its extent in centimetres plus the ordered
// drawing operations.
type Layout struct {
	Width        float64 // Total width in cm
	Height       float64 // Total height in cm
	BottomHeight float64 // Height of the bottom section in cm
	Ops          []Op
}

// Filter returns the ops depicting part p, in draw order.
func (l Layout) Filter(p Part) []Op {
	var out []Op
	for _, op := range l.Ops {
		if op.Depicts() == p {
			out = append(out, op)
		}
	}
	return out
}

// Rects returns the rectangles depicting part p, in draw order.
func (l Layout) Rects(p Part) []Rect {
	var out []Rect
	for _, op := range l.Ops {
		if r, ok := op.(Rect); ok && r.Part == p {
			out = append(out, r)
		}
	}
	return out
}
