package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/render/layout"
)

// Text grid resolution.
const (
	CellWidth  = 5.0  // cm per character column
	CellHeight = 10.0 // cm per text row
)

// Front labels written into door and drawer boxes.
const (
	DoorText   = "DOOR"
	DrawerText = "DRW"
)

// EmptyText is the text rendering of a cabinet without columns.
const EmptyText = "[Empty Cabinet]\n"

// TextOption configures text rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	title bool
}

// WithoutTitle omits the title row.
func WithoutTitle() TextOption { return func(r *textRenderer) { r.title = false } }

// RenderText draws the layout as a character grid, one column per 5 cm and
// one row per 10 cm. The first row holds the title and the last the column
// widths. The top section is always boxed by a cap row, the outer bars and
// the countertop row, so columns without a top show as blank cells inside
// the box. Knobs, handles and compartment heights are too small for the grid
// and are skipped.
func RenderText(l layout.Layout, opts ...TextOption) string {
	r := textRenderer{title: true}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 {
		return EmptyText
	}

	g := &grid{height: l.Height, maxCol: col(l.Width)}
	var fronts []layout.Rect
	var seams []seam
	for _, op := range l.Ops {
		switch o := op.(type) {
		case layout.Rect:
			g.rect(o)
			if o.Part == layout.PartDoor || o.Part == layout.PartDrawer {
				fronts = append(fronts, o)
			}
		case layout.Line:
			g.line(o)
			if o.Part == layout.PartSeam {
				seams = append(seams, seam{
					col:  col(o.X1),
					top:  g.row(max(o.Y1, o.Y2)),
					base: g.row(min(o.Y1, o.Y2)),
				})
			}
		case layout.Label:
			if o.Part == layout.PartTitle && !r.title {
				continue
			}
			if o.Part == layout.PartTitle || o.Part == layout.PartWidthLabel {
				g.centered(g.row(o.Y), col(o.X), o.Text)
			}
		}
	}
	g.topBox(l)
	for _, f := range fronts {
		g.frontLabel(f, seams)
	}
	return g.String()
}

// seam is a door split in grid coordinates, spanning rows top through base.
type seam struct {
	col, top, base int
}

func col(x float64) int { return int(math.Round(x / CellWidth)) }

type grid struct {
	rows   [][]rune
	height float64
	maxCol int
}

func (g *grid) row(y float64) int { return 1 + int(math.Round((g.height-y)/CellHeight)) }

func (g *grid) at(r, c int) rune {
	if r < 0 || r >= len(g.rows) || c < 0 || c >= len(g.rows[r]) {
		return ' '
	}
	return g.rows[r][c]
}

func (g *grid) put(r, c int, ch rune) {
	if r < 0 || c < 0 {
		return
	}
	for len(g.rows) <= r {
		g.rows = append(g.rows, nil)
	}
	for len(g.rows[r]) <= c {
		g.rows[r] = append(g.rows[r], ' ')
	}
	g.rows[r][c] = ch
}

func isRule(ch rune) bool { return strings.ContainsRune("-=_|+", ch) }

// draw writes a rule glyph, turning crossings of horizontal and vertical
// rules into '+'.
func (g *grid) draw(r, c int, ch rune) {
	cur := g.at(r, c)
	switch {
	case cur == '+' && ch != '_':
		ch = '+'
	case isRule(cur) && cur != '_' && (cur == '|') != (ch == '|'):
		ch = '+'
	}
	g.put(r, c, ch)
}

func (g *grid) hrule(r, c0, c1 int, ch rune) {
	for c := c0; c <= c1; c++ {
		g.draw(r, c, ch)
	}
}

func (g *grid) vrule(c, r0, r1 int) {
	for r := r0; r <= r1; r++ {
		g.draw(r, c, '|')
	}
}

func (g *grid) rect(o layout.Rect) {
	c0, c1 := col(o.X), col(o.Right())
	r0, r1 := g.row(o.Top()), g.row(o.Y)

	switch {
	case o.Part == layout.PartHandle || o.W <= 0 || o.H <= 0:
	case o.Stroke == nil:
		fill := '#'
		if o.Part == layout.PartPlinth {
			fill = '/'
		}
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				g.put(r, c, fill)
			}
		}
	case o.W/CellWidth < 1:
		g.vrule(col(o.CenterX()), r0, r1)
	case o.H/CellHeight < 1:
		ch := '-'
		if o.Part == layout.PartCountertop {
			ch = '='
		}
		g.hrule(g.row(o.CenterY()), c0, c1, ch)
	default:
		g.hrule(r0, c0, c1, '-')
		g.hrule(r1, c0, c1, '-')
		g.vrule(c0, r0, r1)
		g.vrule(c1, r0, r1)
	}
}

func (g *grid) line(o layout.Line) {
	clamp := func(c int) int { return max(0, min(c, g.maxCol)) }
	if o.Y1 == o.Y2 {
		ch := '-'
		if o.Part == layout.PartFloor {
			ch = '_'
		}
		c0, c1 := col(min(o.X1, o.X2)), col(max(o.X1, o.X2))
		g.hrule(g.row(o.Y1), clamp(c0), clamp(c1), ch)
		return
	}
	g.vrule(col(o.X1), g.row(max(o.Y1, o.Y2)), g.row(min(o.Y1, o.Y2)))
}

// topBox outlines the top section across the full cabinet width.
func (g *grid) topBox(l layout.Layout) {
	r0, r1 := g.row(l.Height), g.row(l.BottomHeight)
	c1 := col(l.Width)
	g.hrule(r0, 0, c1, '-')
	g.hrule(r1, 0, c1, '=')
	g.vrule(0, r0, r1)
	g.vrule(c1, r0, r1)
}

// centered writes text centred on column c, shifted right to stay on the grid.
func (g *grid) centered(r, c int, text string) {
	start := max(0, c-len(text)/2)
	for k, ch := range []rune(text) {
		g.put(r, start+k, ch)
	}
}

// frontLabel writes DOOR or DRW on the middle row of a door or drawer box,
// once per leaf when a seam splits a door. Labels are truncated to the leaf
// width.
func (g *grid) frontLabel(f layout.Rect, seams []seam) {
	c0, c1 := col(f.X), col(f.Right())
	r0, r1 := g.row(f.Top()), g.row(f.Y)
	if r1-r0 < 2 || c1-c0 < 2 {
		return
	}
	text := DoorText
	if f.Part == layout.PartDrawer {
		text = DrawerText
	}

	mid := (r0 + r1) / 2
	edges := []int{c0}
	if f.Part == layout.PartDoor {
		for _, s := range seams {
			if s.col > c0 && s.col < c1 && mid >= s.top && mid <= s.base {
				edges = append(edges, s.col)
			}
		}
	}
	edges = append(edges, c1)

	for k := 0; k+1 < len(edges); k++ {
		from, width := edges[k]+1, edges[k+1]-edges[k]-1
		if width < 1 {
			continue
		}
		label := text
		if len(label) > width {
			label = label[:width]
		}
		start := from + (width-len(label))/2
		for j, ch := range label {
			g.put(mid, start+j, ch)
		}
	}
}

func (g *grid) String() string {
	var sb strings.Builder
	for _, r := range g.rows {
		sb.WriteString(strings.TrimRight(string(r), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
