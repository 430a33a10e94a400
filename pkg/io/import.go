package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
)

// legacyDrawers is what has_drawers=true upgrades to.
const legacyDrawers = 3

// Pointer fields distinguish absent keys from zero values.
type rawDesign struct {
	TotalHeight  *float64    `json:"total_height"`
	BottomHeight *float64    `json:"bottom_height"`
	PlinthHeight *float64    `json:"plinth_height"`
	Columns      []rawColumn `json:"columns"`
}

type rawColumn struct {
	Width            int       `json:"width"`
	ShelfHeights     []float64 `json:"shelf_heights"`
	Shelves          *int      `json:"shelves"`
	VerticalDividers []int     `json:"vertical_dividers"`
	HasTop           *bool     `json:"has_top"`
	MergeRight       *bool     `json:"merge_right"`
	Drawers          []drawer  `json:"drawers"`
	HasDrawers       *bool     `json:"has_drawers"`
}

// ReadJSON decodes a saved design from r.
//
// Legacy column fields are upgraded as described in the package docs. The
// decoded state is validated with [cabinet.Assemble]; any failure returns a
// LOAD_FAILED error wrapping the cause, as does anything but whitespace after
// the design object. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*cabinet.Cabinet, error) {
	var raw rawDesign
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "decode design")
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, errors.New(errors.ErrCodeLoadFailed, "decode design: unexpected data after the design object")
	}

	dims := cabinet.DefaultDimensions()
	if raw.TotalHeight != nil {
		dims.TotalHeight = *raw.TotalHeight
	}
	if raw.BottomHeight != nil {
		dims.BottomHeight = *raw.BottomHeight
	}
	if raw.PlinthHeight != nil {
		dims.PlinthHeight = *raw.PlinthHeight
	}

	cols := make([]cabinet.Column, len(raw.Columns))
	for i, rc := range raw.Columns {
		col, err := upgradeColumn(rc, dims)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "invalid design: column %d", i)
		}
		cols[i] = col
	}

	c, err := cabinet.Assemble(dims, cols)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "invalid design")
	}
	return c, nil
}

// Unmarshal decodes a saved design held in memory.
func Unmarshal(data []byte) (*cabinet.Cabinet, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a saved design from the file at path.
func ImportJSON(path string) (*cabinet.Cabinet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "design file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func upgradeColumn(rc rawColumn, dims cabinet.Dimensions) (cabinet.Column, error) {
	col := cabinet.Column{
		Width:            rc.Width,
		ShelfHeights:     rc.ShelfHeights,
		VerticalDividers: rc.VerticalDividers,
		HasTop:           true,
	}
	if col.ShelfHeights == nil {
		count := cabinet.DefaultSections
		if rc.Shelves != nil {
			count = *rc.Shelves
		}
		if count > 1 && (dims.TotalHeight-dims.BottomHeight)/float64(count) < cabinet.MinClearance {
			return col, errors.New(errors.ErrCodeInvalidInput,
				"%d legacy sections would be narrower than %g cm", count, cabinet.MinClearance)
		}
		col.ShelfHeights = cabinet.EvenShelves(dims.BottomHeight, dims.TotalHeight, count)
	}
	if rc.HasTop != nil {
		col.HasTop = *rc.HasTop
	}
	if rc.MergeRight != nil {
		col.MergeRight = *rc.MergeRight
	}
	switch {
	case rc.Drawers != nil:
		for _, d := range rc.Drawers {
			col.Drawers = append(col.Drawers, cabinet.Drawer{Height: d.Height})
		}
	case rc.HasDrawers != nil && *rc.HasDrawers:
		for range legacyDrawers {
			col.Drawers = append(col.Drawers, cabinet.Drawer{Height: cabinet.DefaultDrawerHeight})
		}
	}
	return col, nil
}
