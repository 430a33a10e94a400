package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
)

func sampleCabinet(t *testing.T) *cabinet.Cabinet {
	t.Helper()
	c := cabinet.New()
	steps := []error{
		c.SetTotalHeight(220),
		c.SetPlinthHeight(10),
		c.AddColumn(60),
		c.AddColumn(80),
		c.AddColumn(40),
		c.ConfigureDrawers(0, 2, 25),
		c.SubdivideCompartment(1, 2),
		c.ToggleMergeRight(1),
		c.ToggleTop(2),
		c.AddShelfAt(2, 150.5),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("building sample: %v", err)
		}
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	orig := sampleCabinet(t)

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got.Dimensions() != orig.Dimensions() {
		t.Errorf("Dimensions() = %+v, want %+v", got.Dimensions(), orig.Dimensions())
	}
	if !reflect.DeepEqual(got.Columns(), orig.Columns()) {
		t.Errorf("Columns() = %+v\nwant %+v", got.Columns(), orig.Columns())
	}
}

func TestExportImportFile(t *testing.T) {
	orig := sampleCabinet(t)
	path := filepath.Join(t.TempDir(), "kitchen.json")
	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !reflect.DeepEqual(got.Columns(), orig.Columns()) {
		t.Errorf("columns differ after file round trip")
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v, want NOT_FOUND", err)
	}
}

func TestMarshalFormat(t *testing.T) {
	c := cabinet.New()
	_ = c.AddColumn(40)
	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{
		`"total_height": 240`,
		`"shelf_heights": [`,
		`"vertical_dividers": []`,
		`"has_top": true`,
		`"merge_right": false`,
		`"drawers": []`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "has_drawers") {
		t.Error("output carries legacy has_drawers key")
	}
}

func TestReadLegacy(t *testing.T) {
	in := `{
		"total_height": 240,
		"bottom_height": 80,
		"columns": [
			{"width": 60, "shelves": 4, "has_drawers": true},
			{"width": 40, "has_drawers": false},
			{"width": 80, "shelf_heights": [150], "has_drawers": true, "drawers": [{"height": 30}]}
		]
	}`
	c, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if c.PlinthHeight() != cabinet.DefaultPlinthHeight {
		t.Errorf("PlinthHeight() = %g, want default", c.PlinthHeight())
	}

	cols := c.Columns()
	if !slices.Equal(cols[0].ShelfHeights, []float64{120, 160, 200}) {
		t.Errorf("col 0 shelves = %v, want [120 160 200]", cols[0].ShelfHeights)
	}
	if len(cols[0].Drawers) != 3 || cols[0].Drawers[0].Height != 20 {
		t.Errorf("col 0 drawers = %v, want 3x20", cols[0].Drawers)
	}
	if !cols[0].HasTop || cols[0].MergeRight || len(cols[0].VerticalDividers) != 0 {
		t.Errorf("col 0 defaults = %+v", cols[0])
	}

	// Default legacy count is three sections.
	if len(cols[1].ShelfHeights) != 2 {
		t.Errorf("col 1 shelves = %v, want 2 shelves", cols[1].ShelfHeights)
	}
	if len(cols[1].Drawers) != 0 {
		t.Errorf("col 1 drawers = %v, want none", cols[1].Drawers)
	}

	if len(cols[2].Drawers) != 1 || cols[2].Drawers[0].Height != 30 {
		t.Errorf("col 2 drawers = %v, explicit drawers must win", cols[2].Drawers)
	}
}

func TestReadEmptyObject(t *testing.T) {
	c, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if c.Len() != 0 || c.Dimensions() != cabinet.DefaultDimensions() {
		t.Errorf("got %d columns, dims %+v", c.Len(), c.Dimensions())
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause errors.Code
	}{
		{"malformed", `{"columns": [`, ""},
		{"wrong type", `{"total_height": "tall"}`, ""},
		{"bad width", `{"columns": [{"width": 50}]}`, errors.ErrCodeInvalidWidth},
		{"plinth", `{"plinth_height": 40}`, errors.ErrCodePlinthOutOfRange},
		{"shelf outside", `{"columns": [{"width": 60, "shelf_heights": [300]}]}`, errors.ErrCodeHeightOutOfRange},
		{"trailing object", `{"columns": []} {"columns": []}`, ""},
		{"trailing garbage", `{"columns": []}xyz`, ""},
		{"huge legacy count", `{"columns": [{"width": 60, "shelves": 1000000000}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeLoadFailed) {
				t.Fatalf("error = %v, want LOAD_FAILED", err)
			}
			if tt.cause != "" {
				var le *errors.Error
				if e, ok := err.(*errors.Error); ok {
					le = e
				}
				if le == nil || errors.GetCode(le.Cause) != tt.cause {
					t.Errorf("cause = %v, want %s", err, tt.cause)
				}
			}
		})
	}
}
