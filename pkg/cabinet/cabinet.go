package cabinet

import (
	"math"
	"slices"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// Fixed construction constants, in centimetres.
const (
	// PanelThickness is the board thickness used for panels, caps and shelves.
	PanelThickness = 1.8

	// MinClearance is the smallest gap allowed between a moved shelf and its
	// neighbours or the section floor/ceiling.
	MinClearance = 2.0

	// MinTopSection is the smallest allowed top-section height.
	MinTopSection = 20.0

	// MaxPlinthHeight is the tallest plinth accepted by SetPlinthHeight.
	MaxPlinthHeight = 20.0

	// DefaultDrawerHeight is the drawer front height used when none is given.
	DefaultDrawerHeight = 20.0

	// DefaultSections is the number of evenly spaced compartments a new column gets.
	DefaultSections = 3

	// DoubleDoorWidth is the column width drawn with two door leaves.
	DoubleDoorWidth = 80
)

// Default global dimensions for a new cabinet.
const (
	DefaultTotalHeight  = 240.0
	DefaultBottomHeight = 80.0
	DefaultPlinthHeight = 8.0
)

// ValidWidths lists the column widths a cabinet accepts, in centimetres.
var ValidWidths = []int{40, 60, 80}

// IsValidWidth reports whether w is one of [ValidWidths].
func IsValidWidth(w int) bool { return slices.Contains(ValidWidths, w) }

// Drawer is one drawer front in a column's bottom section.
type Drawer struct {
	Height float64 // Front height in cm
}

// Column is one vertical cabinet unit.
//
// Values returned by [Cabinet.Column] and [Cabinet.Columns] are copies;
// modifying them does not affect the cabinet.
type Column struct {
	Width            int       // 40, 60 or 80 cm
	ShelfHeights     []float64 // Absolute heights from the floor, ascending
	VerticalDividers []int     // Compartment ids split by a centred divider
	HasTop           bool      // Whether the top section exists
	MergeRight       bool      // Whether the top section fuses with the right neighbour
	Drawers          []Drawer  // Bottom-section drawers, topmost first; empty means a door
}

// HasDivider reports whether compartment id carries a vertical divider.
func (col Column) HasDivider(id int) bool { return slices.Contains(col.VerticalDividers, id) }

func (col Column) clone() Column {
	out := col
	out.ShelfHeights = slices.Clone(col.ShelfHeights)
	out.VerticalDividers = slices.Clone(col.VerticalDividers)
	out.Drawers = slices.Clone(col.Drawers)
	if out.ShelfHeights == nil {
		out.ShelfHeights = []float64{}
	}
	if out.VerticalDividers == nil {
		out.VerticalDividers = []int{}
	}
	if out.Drawers == nil {
		out.Drawers = []Drawer{}
	}
	return out
}

// Dimensions are the global heights of a cabinet in centimetres.
type Dimensions struct {
	TotalHeight  float64
	BottomHeight float64
	PlinthHeight float64
}

// DefaultDimensions returns the 240/80/8 cm starting dimensions.
func DefaultDimensions() Dimensions {
	return Dimensions{
		TotalHeight:  DefaultTotalHeight,
		BottomHeight: DefaultBottomHeight,
		PlinthHeight: DefaultPlinthHeight,
	}
}

// Validate checks the global height invariants.
func (d Dimensions) Validate() error {
	if !isFinite(d.TotalHeight) || !isFinite(d.BottomHeight) {
		return errors.New(errors.ErrCodeHeightTooSmall,
			"heights must be finite, got total %g and bottom %g cm", d.TotalHeight, d.BottomHeight)
	}
	if !isFinite(d.PlinthHeight) || d.PlinthHeight < 0 || d.PlinthHeight > MaxPlinthHeight {
		return errors.New(errors.ErrCodePlinthOutOfRange,
			"plinth height must be between 0 and %g cm, got %g", MaxPlinthHeight, d.PlinthHeight)
	}
	if d.TotalHeight < d.BottomHeight+MinTopSection {
		return errors.New(errors.ErrCodeHeightTooSmall,
			"total height %g cm leaves less than %g cm above the %g cm bottom section",
			d.TotalHeight, MinTopSection, d.BottomHeight)
	}
	return nil
}

// Cabinet is the layout model. The zero value is not usable; call [New].
type Cabinet struct {
	dims    Dimensions
	columns []Column
}

// New creates an empty cabinet with [DefaultDimensions].
func New() *Cabinet {
	return &Cabinet{dims: DefaultDimensions()}
}

// Assemble builds a cabinet from already-decoded state, validating every
// invariant the mutators maintain. Shelf heights are sorted ascending. The
// columns are copied; the caller keeps ownership of cols.
func Assemble(d Dimensions, cols []Column) (*Cabinet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c := &Cabinet{dims: d, columns: make([]Column, 0, len(cols))}
	for i, col := range cols {
		if !IsValidWidth(col.Width) {
			return nil, errors.New(errors.ErrCodeInvalidWidth, "column %d: invalid width %d", i, col.Width)
		}
		col = col.clone()
		slices.Sort(col.ShelfHeights)
		for j, h := range col.ShelfHeights {
			if !isFinite(h) || h <= d.BottomHeight || h >= d.TotalHeight {
				return nil, errors.New(errors.ErrCodeHeightOutOfRange,
					"column %d: shelf at %g cm outside %g..%g", i, h, d.BottomHeight, d.TotalHeight)
			}
			if j > 0 && col.ShelfHeights[j-1] == h {
				return nil, errors.New(errors.ErrCodeDuplicateShelf, "column %d: duplicate shelf at %g cm", i, h)
			}
		}
		for _, dr := range col.Drawers {
			if !isFinite(dr.Height) || dr.Height <= 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "column %d: drawer height must be a positive number", i)
			}
		}
		c.columns = append(c.columns, col)
	}
	return c, nil
}

// Clone returns a deep copy of the cabinet.
func (c *Cabinet) Clone() *Cabinet {
	out := &Cabinet{dims: c.dims, columns: make([]Column, len(c.columns))}
	for i, col := range c.columns {
		out.columns[i] = col.clone()
	}
	return out
}

// Dimensions returns the global heights.
func (c *Cabinet) Dimensions() Dimensions { return c.dims }

// TotalHeight returns the overall height in cm.
func (c *Cabinet) TotalHeight() float64 { return c.dims.TotalHeight }

// BottomHeight returns the height of the bottom section (including plinth) in cm.
func (c *Cabinet) BottomHeight() float64 { return c.dims.BottomHeight }

// PlinthHeight returns the plinth height in cm.
func (c *Cabinet) PlinthHeight() float64 { return c.dims.PlinthHeight }

// Len returns the number of columns.
func (c *Cabinet) Len() int { return len(c.columns) }

// TotalWidth returns the sum of all column widths in cm.
func (c *Cabinet) TotalWidth() int {
	w := 0
	for _, col := range c.columns {
		w += col.Width
	}
	return w
}

// Column returns a copy of the column at index i.
func (c *Cabinet) Column(i int) (Column, bool) {
	if !c.validIndex(i) {
		return Column{}, false
	}
	return c.columns[i].clone(), true
}

// Columns returns copies of all columns in left-to-right order.
func (c *Cabinet) Columns() []Column {
	out := make([]Column, len(c.columns))
	for i, col := range c.columns {
		out[i] = col.clone()
	}
	return out
}

// Shelves returns a copy of the shelf heights of column i.
func (c *Cabinet) Shelves(i int) ([]float64, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	return slices.Clone(c.columns[i].ShelfHeights), nil
}

// Groups resolves the current merge groups. See [ResolveGroups].
func (c *Cabinet) Groups() []Group { return ResolveGroups(c.columns) }

// Compartments returns the top-section boundaries of column i's own shelves.
func (c *Cabinet) Compartments(i int) (Bounds, error) {
	if err := c.checkIndex(i); err != nil {
		return Bounds{}, err
	}
	return Compartments(c.columns[i].ShelfHeights, c.dims.BottomHeight, c.dims.TotalHeight), nil
}

// DrawerCapacity returns the bottom-section height available to drawers.
func (c *Cabinet) DrawerCapacity() float64 { return c.dims.BottomHeight - c.dims.PlinthHeight }

func (c *Cabinet) validIndex(i int) bool { return i >= 0 && i < len(c.columns) }

func (c *Cabinet) checkIndex(i int) error {
	if !c.validIndex(i) {
		return errors.New(errors.ErrCodeIndexOutOfRange, "invalid column index %d (have %d columns)", i, len(c.columns))
	}
	return nil
}

// evenShelves returns count-1 shelf heights splitting the top section into
// count equal compartments, rounded to 0.1 cm.
func evenShelves(bottom, total float64, count int) []float64 {
	shelves := []float64{}
	if count <= 1 {
		return shelves
	}
	spacing := (total - bottom) / float64(count)
	for k := 1; k < count; k++ {
		shelves = append(shelves, roundTenth(bottom+spacing*float64(k)))
	}
	return shelves
}

// EvenShelves returns count-1 unrounded shelf heights evenly splitting the
// section between bottom and total. It is the spacing rule used when
// upgrading legacy files that stored only a compartment count.
func EvenShelves(bottom, total float64, count int) []float64 {
	shelves := []float64{}
	if count <= 0 {
		return shelves
	}
	spacing := (total - bottom) / float64(count)
	for k := 1; k < count; k++ {
		shelves = append(shelves, bottom+spacing*float64(k))
	}
	return shelves
}

func roundTenth(v float64) float64 { return math.Round(v*10) / 10 }

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
