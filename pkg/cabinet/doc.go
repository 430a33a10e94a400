// Package cabinet models a modular furniture cabinet as a parametric tree of
// columns, compartments, shelves, dividers and drawers.
//
// # Overview
//
// A [Cabinet] owns global dimensions (total height, bottom-section height,
// plinth height) and an ordered sequence of [Column] values. Column order is
// physical left-to-right position; columns have no stable identity beyond
// their index, so [Cabinet.SwapColumns] changes which column an index names.
//
// Each column has:
//
//   - A bottom section from the plinth to BottomHeight, filled from the top
//     down with [Drawer] fronts; leftover height is a door.
//   - An optional top section from BottomHeight to TotalHeight, split into
//     compartments by absolute shelf heights.
//
// # Mutation Contract
//
// Every mutator validates its input and either applies the whole change or
// none of it, returning an *errors.Error whose code names the failure:
//
//	c := cabinet.New()
//	if err := c.AddColumn(60); err != nil {
//	    return err
//	}
//	if err := c.MoveShelf(0, 1, +5); errors.Is(err, errors.ErrCodeCollisionBlocked) {
//	    // shelf stays where it was
//	}
//
// # Merge Groups
//
// [ResolveGroups] fuses neighbouring top sections whose left member has
// MergeRight set. The leftmost member (the master) supplies shelves and
// dividers for the whole group; the other members' own shelves are ignored
// while merged. Bottom sections are never merged.
//
// # Compartment Ids
//
// [Compartments] turns a shelf list into boundaries; compartment j spans
// Edges[j]..Edges[j+1]. Vertical dividers are stored as compartment ids, which
// are positional: removing a shelf or re-spacing clears them. AddShelfAt and
// SetTotalHeight keep existing ids even though numbering may shift; callers
// that care should re-check [Column.VerticalDividers] afterwards.
//
// # Concurrency
//
// A Cabinet is not safe for concurrent use. Collaborators that share one
// across goroutines must serialise access.
package cabinet
