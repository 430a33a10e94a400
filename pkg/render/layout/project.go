package layout

import (
	"fmt"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
)

// Geometry constants in centimetres unless noted.
const (
	PlinthRecess    = 2.0  // Plinth inset on each side of a column
	HandleWidth     = 10.0 // Drawer handle bar width
	HandleHeight    = 2.0  // Drawer handle bar height
	HandleDrop      = 5.0  // Handle top edge below the drawer top
	KnobRadius      = 1.0
	KnobDrop        = 10.0 // Knob centre below the door top
	KnobInset       = 5.0  // Single knob distance from the right edge
	KnobSpread      = 3.0  // Double-door knob offset from the seam
	MinDoorHeight   = 1.0  // Leftover below drawers must exceed this to get a door
	FloorOverhang   = 10.0 // Floor line extends this far past each side
	WidthLabelDrop  = 7.0  // Width label baseline below the floor
	TitleRise       = 10.0 // Title baseline above the cabinet top
	CompLabelOffset = 6.0  // Compartment label centre from the group's left edge
	CompLabelDrop   = 1.2  // Compartment label baseline below the compartment middle
)

// Font sizes and stroke widths in output pixels.
const (
	FloorWidthPx       = 3.0
	SeamWidthPx        = 2.0
	WidthLabelSize     = 24.0
	CompartmentLabelSz = 18.0
	TitleSize          = 36.0
)

// Project converts a cabinet into drawing operations. It does not modify c.
func Project(c *cabinet.Cabinet) Layout {
	p := projector{
		cols:   c.Columns(),
		dims:   c.Dimensions(),
		layout: Layout{Width: float64(c.TotalWidth()), Height: c.TotalHeight(), BottomHeight: c.BottomHeight()},
	}
	p.floor()

	x := 0.0
	for _, g := range cabinet.ResolveGroups(p.cols) {
		mx := x
		for _, m := range g.Members {
			p.bottom(mx, p.cols[m])
			mx += float64(p.cols[m].Width)
		}
		if g.HasTop {
			p.top(x, g)
		}
		x += float64(g.Width)
	}

	p.add(Label{
		X:     p.layout.Width / 2,
		Y:     p.dims.TotalHeight + TitleRise,
		Text:  fmt.Sprintf("Total Width: %dcm | Total Height: %.1fcm", c.TotalWidth(), p.dims.TotalHeight),
		Size:  TitleSize,
		Color: ColorText,
		Part:  PartTitle,
	})
	return p.layout
}

type projector struct {
	cols   []cabinet.Column
	dims   cabinet.Dimensions
	layout Layout
}

func (p *projector) add(op Op) { p.layout.Ops = append(p.layout.Ops, op) }

func (p *projector) floor() {
	p.add(Line{
		X1: -FloorOverhang, Y1: 0,
		X2: p.layout.Width + FloorOverhang, Y2: 0,
		Color: ColorOutline, WidthPx: FloorWidthPx, Part: PartFloor,
	})
}

// bottom draws one column's plinth, drawers, door and width label.
func (p *projector) bottom(x float64, col cabinet.Column) {
	w := float64(col.Width)
	plinth := p.dims.PlinthHeight

	p.add(Rect{X: x + PlinthRecess, Y: 0, W: w - 2*PlinthRecess, H: plinth, Fill: ColorPlinth, Part: PartPlinth})

	top := p.dims.BottomHeight
	for _, d := range col.Drawers {
		y := top - d.Height
		p.add(Rect{X: x, Y: y, W: w, H: d.Height, Fill: ColorDoor, Stroke: ptr(ColorOutline), Part: PartDrawer})
		p.add(Rect{
			X: x + w/2 - HandleWidth/2, Y: y + d.Height - HandleDrop,
			W: HandleWidth, H: HandleHeight,
			Fill: ColorHandle, Part: PartHandle,
		})
		top = y
	}

	if door := top - plinth; door > MinDoorHeight {
		p.add(Rect{X: x, Y: plinth, W: w, H: door, Fill: ColorDoor, Stroke: ptr(ColorOutline), Part: PartDoor})
		knobY := top - KnobDrop
		if col.Width == cabinet.DoubleDoorWidth {
			mid := x + w/2
			p.add(Line{X1: mid, Y1: top, X2: mid, Y2: plinth, Color: ColorOutline, WidthPx: SeamWidthPx, Part: PartSeam})
			p.add(Circle{X: mid - KnobSpread, Y: knobY, R: KnobRadius, Fill: ColorHandle, Part: PartKnob})
			p.add(Circle{X: mid + KnobSpread, Y: knobY, R: KnobRadius, Fill: ColorHandle, Part: PartKnob})
		} else {
			p.add(Circle{X: x + w - KnobInset, Y: knobY, R: KnobRadius, Fill: ColorHandle, Part: PartKnob})
		}
	}

	p.add(Label{
		X: x + w/2, Y: -WidthLabelDrop,
		Text: fmt.Sprintf("%dcm", col.Width),
		Size: WidthLabelSize, Color: ColorText, Part: PartWidthLabel,
	})
}

// top draws a merge group's carcass using the master column's shelves and
// dividers.
func (p *projector) top(x float64, g cabinet.Group) {
	const t = cabinet.PanelThickness
	w := float64(g.Width)
	bot, total := p.dims.BottomHeight, p.dims.TotalHeight
	carcass := func(x, y, w, h float64, part Part) {
		p.add(Rect{X: x, Y: y, W: w, H: h, Fill: ColorCarcass, Stroke: ptr(ColorOutline), Part: part})
	}

	carcass(x, bot, t, total-bot, PartSidePanel)
	carcass(x+w-t, bot, t, total-bot, PartSidePanel)
	carcass(x, total-t, w, t, PartTopCap)
	carcass(x, bot-t, w, t, PartCountertop)

	master := p.cols[g.Master]
	b := cabinet.Compartments(master.ShelfHeights, bot, total)
	for j := 0; j < b.Count(); j++ {
		low, high := b.Span(j)
		p.add(Label{
			X: x + CompLabelOffset, Y: (low+high)/2 - CompLabelDrop,
			Text: fmt.Sprintf("%.1f", high-low),
			Size: CompartmentLabelSz, Color: ColorMuted, Part: PartCompartmentLabel,
		})
		if master.HasDivider(j) {
			carcass(x+w/2-t/2, low, t, high-low, PartDivider)
		}
	}

	for _, h := range master.ShelfHeights {
		if h > bot && h < total {
			carcass(x+t, h-t, w-2*t, t, PartShelf)
		}
	}
}
