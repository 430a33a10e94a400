package cabinet

import (
	"slices"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

// AddColumn appends a column of the given width with DefaultSections evenly
// spaced compartments, no dividers, the top section on, no drawers and no merge.
func (c *Cabinet) AddColumn(width int) error {
	if !IsValidWidth(width) {
		return errors.New(errors.ErrCodeInvalidWidth, "invalid width %d: choose 40, 60, or 80 cm", width)
	}
	c.columns = append(c.columns, Column{
		Width:            width,
		ShelfHeights:     evenShelves(c.dims.BottomHeight, c.dims.TotalHeight, DefaultSections),
		VerticalDividers: []int{},
		HasTop:           true,
		Drawers:          []Drawer{},
	})
	return nil
}

// RemoveColumn deletes column i; later columns shift down by one.
func (c *Cabinet) RemoveColumn(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.columns = slices.Delete(c.columns, i, i+1)
	return nil
}

// SwapColumns exchanges the columns at i and j.
func (c *Cabinet) SwapColumns(i, j int) error {
	if !c.validIndex(i) || !c.validIndex(j) {
		return errors.New(errors.ErrCodeIndexOutOfRange, "invalid column indices %d, %d", i, j)
	}
	c.columns[i], c.columns[j] = c.columns[j], c.columns[i]
	return nil
}

// SetTotalHeight changes the overall height and drops every shelf at or above
// it. Vertical dividers are left as they are, even when a dropped shelf shifts
// compartment numbering.
func (c *Cabinet) SetTotalHeight(h float64) error {
	if !isFinite(h) || h < c.dims.BottomHeight+MinTopSection {
		return errors.New(errors.ErrCodeHeightTooSmall,
			"height %g cm too small: must be at least %g cm", h, c.dims.BottomHeight+MinTopSection)
	}
	c.dims.TotalHeight = h
	for i := range c.columns {
		c.columns[i].ShelfHeights = slices.DeleteFunc(c.columns[i].ShelfHeights, func(s float64) bool {
			return s >= h
		})
	}
	return nil
}

// SetPlinthHeight changes the plinth height.
func (c *Cabinet) SetPlinthHeight(h float64) error {
	if !isFinite(h) || h < 0 || h > MaxPlinthHeight {
		return errors.New(errors.ErrCodePlinthOutOfRange,
			"plinth height must be between 0 and %g cm, got %g", MaxPlinthHeight, h)
	}
	c.dims.PlinthHeight = h
	return nil
}

// SetShelvesCount replaces column i's shelves with count-1 evenly spaced ones,
// so count is the number of resulting compartments. A count of 1 or less
// leaves no shelves. Dividers are always cleared because compartment ids are
// renumbered.
func (c *Cabinet) SetShelvesCount(i, count int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if count > 1 && (c.dims.TotalHeight-c.dims.BottomHeight)/float64(count) < MinClearance {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d sections would be narrower than %g cm", count, MinClearance)
	}
	col := &c.columns[i]
	col.ShelfHeights = evenShelves(c.dims.BottomHeight, c.dims.TotalHeight, count)
	col.VerticalDividers = []int{}
	return nil
}

// AddShelfAt inserts a shelf at an absolute height strictly inside the top
// section. Existing dividers keep their ids.
func (c *Cabinet) AddShelfAt(i int, h float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if !isFinite(h) || h <= c.dims.BottomHeight || h >= c.dims.TotalHeight {
		return errors.New(errors.ErrCodeHeightOutOfRange,
			"height must be between %g and %g cm, got %g", c.dims.BottomHeight, c.dims.TotalHeight, h)
	}
	col := &c.columns[i]
	if slices.Contains(col.ShelfHeights, h) {
		return errors.New(errors.ErrCodeDuplicateShelf, "shelf already exists at %g cm", h)
	}
	col.ShelfHeights = append(col.ShelfHeights, h)
	slices.Sort(col.ShelfHeights)
	return nil
}

// RemoveShelf deletes shelf s of column i and clears that column's dividers.
func (c *Cabinet) RemoveShelf(i, s int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	col := &c.columns[i]
	if s < 0 || s >= len(col.ShelfHeights) {
		return errors.New(errors.ErrCodeIndexOutOfRange, "invalid shelf index %d (column has %d shelves)", s, len(col.ShelfHeights))
	}
	col.ShelfHeights = slices.Delete(col.ShelfHeights, s, s+1)
	col.VerticalDividers = []int{}
	return nil
}

// SubdivideCompartment toggles a centred vertical divider in compartment id of
// column i. Valid ids are 0 through the number of shelves.
func (c *Cabinet) SubdivideCompartment(i, id int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	col := &c.columns[i]
	b := Compartments(col.ShelfHeights, c.dims.BottomHeight, c.dims.TotalHeight)
	if !b.Valid(id) {
		return errors.New(errors.ErrCodeIndexOutOfRange,
			"invalid compartment id %d: valid ids are 0 to %d", id, b.Count()-1)
	}
	if k := slices.Index(col.VerticalDividers, id); k >= 0 {
		col.VerticalDividers = slices.Delete(col.VerticalDividers, k, k+1)
	} else {
		col.VerticalDividers = append(col.VerticalDividers, id)
	}
	return nil
}

// ConfigureDrawers replaces column i's drawers with count fronts of
// heightPer cm. A count of zero turns the bottom section back into a door.
func (c *Cabinet) ConfigureDrawers(i, count int, heightPer float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if count == 0 {
		c.columns[i].Drawers = []Drawer{}
		return nil
	}
	if count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "drawer count must not be negative, got %d", count)
	}
	if !isFinite(heightPer) || heightPer <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "drawer height must be a positive number, got %g", heightPer)
	}
	avail := c.DrawerCapacity()
	if float64(count)*heightPer > avail {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"cannot fit %d drawers of %g cm: max available %g cm", count, heightPer, avail)
	}
	drawers := make([]Drawer, count)
	for k := range drawers {
		drawers[k] = Drawer{Height: heightPer}
	}
	c.columns[i].Drawers = drawers
	return nil
}

// ToggleDrawers switches column i between a door and a single default drawer.
func (c *Cabinet) ToggleDrawers(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if len(c.columns[i].Drawers) > 0 {
		return c.ConfigureDrawers(i, 0, DefaultDrawerHeight)
	}
	return c.ConfigureDrawers(i, 1, DefaultDrawerHeight)
}

// MoveShelf shifts shelf s of column i by delta cm. The move is rejected
// with COLLISION_BLOCKED when the new height would come within MinClearance
// of the section floor, the ceiling, or a neighbouring shelf.
func (c *Cabinet) MoveShelf(i, s int, delta float64) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	shelves := c.columns[i].ShelfHeights
	if s < 0 || s >= len(shelves) {
		return errors.New(errors.ErrCodeIndexOutOfRange, "invalid shelf index %d (column has %d shelves)", s, len(shelves))
	}

	h := shelves[s] + delta
	switch {
	case !isFinite(delta):
		return errors.New(errors.ErrCodeCollisionBlocked, "cannot move shelf by %g cm", delta)
	case h < c.dims.BottomHeight+MinClearance:
		return errors.New(errors.ErrCodeCollisionBlocked, "cannot move lower than bottom cabinet (%g cm)", c.dims.BottomHeight)
	case h > c.dims.TotalHeight-MinClearance:
		return errors.New(errors.ErrCodeCollisionBlocked, "cannot move higher than top (%g cm)", c.dims.TotalHeight)
	case s > 0 && h < shelves[s-1]+MinClearance:
		return errors.New(errors.ErrCodeCollisionBlocked, "collision with shelf below (at %g cm)", shelves[s-1])
	case s < len(shelves)-1 && h > shelves[s+1]-MinClearance:
		return errors.New(errors.ErrCodeCollisionBlocked, "collision with shelf above (at %g cm)", shelves[s+1])
	}

	shelves[s] = h
	slices.Sort(shelves)
	return nil
}

// ToggleTop switches column i's top section on or off.
func (c *Cabinet) ToggleTop(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.columns[i].HasTop = !c.columns[i].HasTop
	return nil
}

// ToggleMergeRight fuses or separates the top sections of columns i and i+1.
// The last column has no right neighbour and is rejected.
func (c *Cabinet) ToggleMergeRight(i int) error {
	if i < 0 || i >= len(c.columns)-1 {
		return errors.New(errors.ErrCodeIndexOutOfRange,
			"invalid column index %d for merge (cannot merge last column to the right)", i)
	}
	c.columns[i].MergeRight = !c.columns[i].MergeRight
	return nil
}
