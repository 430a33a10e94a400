package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
)

type design struct {
	TotalHeight  float64  `json:"total_height"`
	BottomHeight float64  `json:"bottom_height"`
	PlinthHeight float64  `json:"plinth_height"`
	Columns      []column `json:"columns"`
}

type column struct {
	Width            int       `json:"width"`
	ShelfHeights     []float64 `json:"shelf_heights"`
	VerticalDividers []int     `json:"vertical_dividers"`
	HasTop           bool      `json:"has_top"`
	MergeRight       bool      `json:"merge_right"`
	Drawers          []drawer  `json:"drawers"`
}

type drawer struct {
	Height float64 `json:"height"`
}

// Marshal encodes a cabinet in the saved-design format.
func Marshal(c *cabinet.Cabinet) ([]byte, error) {
	out, err := json.MarshalIndent(toDesign(c), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// WriteJSON encodes a cabinet as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(c *cabinet.Cabinet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(toDesign(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a cabinet to a JSON file at path.
func ExportJSON(c *cabinet.Cabinet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}

func toDesign(c *cabinet.Cabinet) design {
	d := c.Dimensions()
	out := design{
		TotalHeight:  d.TotalHeight,
		BottomHeight: d.BottomHeight,
		PlinthHeight: d.PlinthHeight,
		Columns:      []column{},
	}
	for _, col := range c.Columns() {
		cj := column{
			Width:            col.Width,
			ShelfHeights:     col.ShelfHeights,
			VerticalDividers: col.VerticalDividers,
			HasTop:           col.HasTop,
			MergeRight:       col.MergeRight,
			Drawers:          make([]drawer, len(col.Drawers)),
		}
		for k, dr := range col.Drawers {
			cj.Drawers[k] = drawer{Height: dr.Height}
		}
		out.Columns = append(out.Columns, cj)
	}
	return out
}
