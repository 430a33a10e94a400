package cli

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/pipeline"
	"github.com/matzehuels/cabinetry/pkg/store"
)

func testShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	logger := log.New(&bytes.Buffer{})
	return &Shell{
		Cabinet: starterCabinet(),
		Store:   st,
		Runner:  pipeline.NewRunner(nil, nil, logger),
		Logger:  logger,
		Out:     &out,
	}, &out
}

func TestShellExec(t *testing.T) {
	sh, _ := testShell(t)
	ctx := context.Background()

	lines := []string{
		"add 40",
		"swap 1 3",
		"h 220",
		"s 2 2",
		"shelf 2 120",
		"subdivide 2 0",
		"move 2 1 5",
		"top 3",
		"merge 1",
		"plinth 12",
		"config_drawers 1 2 15",
		"drawer 2",
		"",
	}
	for _, line := range lines {
		if err := sh.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}

	c := sh.Cabinet
	cols := c.Columns()
	if got := []int{cols[0].Width, cols[1].Width, cols[2].Width}; got[0] != 40 || got[1] != 80 || got[2] != 60 {
		t.Fatalf("widths = %v, want [40 80 60]", got)
	}
	if c.TotalHeight() != 220 || c.PlinthHeight() != 12 {
		t.Errorf("dims = %+v", c.Dimensions())
	}
	// "s 2 2" leaves one shelf at 150; "shelf 2 120" adds a lower one, which
	// "move 2 1 5" then lifts to 125.
	if hs := cols[1].ShelfHeights; len(hs) != 2 || hs[0] != 125 || hs[1] != 150 {
		t.Errorf("column 2 shelves = %v, want [125 150]", hs)
	}
	if !cols[1].HasDivider(0) {
		t.Error("column 2 compartment 0 should be divided")
	}
	if cols[2].HasTop {
		t.Error("column 3 top should be off")
	}
	if !cols[0].MergeRight {
		t.Error("column 1 should merge right")
	}
	if len(cols[0].Drawers) != 2 || cols[0].Drawers[0].Height != 15 {
		t.Errorf("column 1 drawers = %+v", cols[0].Drawers)
	}
	if len(cols[1].Drawers) != 1 || cols[1].Drawers[0].Height != cabinet.DefaultDrawerHeight {
		t.Errorf("column 2 drawers = %+v", cols[1].Drawers)
	}

	if err := sh.Exec(ctx, "rm_shelf 2 1"); err != nil {
		t.Fatal(err)
	}
	if err := sh.Exec(ctx, "rm 3"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 || len(c.Columns()[1].ShelfHeights) != 1 {
		t.Errorf("after removals: %d columns, shelves %v", c.Len(), c.Columns()[1].ShelfHeights)
	}
}

func TestShellExecErrors(t *testing.T) {
	tests := []struct {
		line string
		code errors.Code
	}{
		{"frobnicate", errors.ErrCodeInvalidInput},
		{"add", errors.ErrCodeInvalidInput},
		{"add wide", errors.ErrCodeInvalidInput},
		{"add 50", errors.ErrCodeInvalidWidth},
		{"rm 3", errors.ErrCodeIndexOutOfRange},
		{"rm 0", errors.ErrCodeIndexOutOfRange},
		{"merge 2", errors.ErrCodeIndexOutOfRange},
		{"h 50", errors.ErrCodeHeightTooSmall},
		{"shelf 1 300", errors.ErrCodeHeightOutOfRange},
		{"move 1 1 -100", errors.ErrCodeCollisionBlocked},
		{"plinth NaN", errors.ErrCodeInvalidInput},
		{"h +Inf", errors.ErrCodeInvalidInput},
		{"shelf 1 nan", errors.ErrCodeInvalidInput},
		{"config_drawers 1 5", errors.ErrCodeCapacityExceeded},
		{"select 1 1", errors.ErrCodeUnsupported},
		{"select 1 9", errors.ErrCodeIndexOutOfRange},
		{"render out.bmp", errors.ErrCodeInvalidFormat},
		{"load nothing-here", errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, _ := testShell(t)
			before := sh.Cabinet.Clone()
			err := sh.Exec(context.Background(), tt.line)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Exec(%q) = %v, want %s", tt.line, err, tt.code)
			}
			if sh.Cabinet.TotalWidth() != before.TotalWidth() || sh.Cabinet.TotalHeight() != before.TotalHeight() {
				t.Error("failed command changed the design")
			}
		})
	}
}

func TestShellListShelves(t *testing.T) {
	sh, out := testShell(t)
	ctx := context.Background()

	if err := sh.Exec(ctx, "ls_shelves 1"); err != nil {
		t.Fatal(err)
	}
	want := "Shelves for Column 1 (60cm):\n  1: 133.3 cm\n  2: 186.7 cm\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := sh.Exec(ctx, "s 1 1"); err != nil {
		t.Fatal(err)
	}
	if err := sh.Exec(ctx, "ls_shelves 1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(No shelves)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestShellSelectUsesMove(t *testing.T) {
	sh, _ := testShell(t)
	var gotCol, gotShelf int
	sh.Move = func(_ context.Context, c *cabinet.Cabinet, col, shelf int) error {
		gotCol, gotShelf = col, shelf
		return c.MoveShelf(col, shelf, 10)
	}
	if err := sh.Exec(context.Background(), "select 2 1"); err != nil {
		t.Fatal(err)
	}
	if gotCol != 1 || gotShelf != 0 {
		t.Errorf("Move called with (%d, %d), want (1, 0)", gotCol, gotShelf)
	}
	if hs, _ := sh.Cabinet.Shelves(1); math.Abs(hs[0]-143.3) > 1e-9 {
		t.Errorf("shelf = %v, want 143.3", hs[0])
	}
}

func TestShellSaveLoad(t *testing.T) {
	sh, _ := testShell(t)
	ctx := context.Background()

	if err := sh.Exec(ctx, "add 40"); err != nil {
		t.Fatal(err)
	}
	if err := sh.Exec(ctx, "save kitchen"); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "hall.json")
	if err := sh.Exec(ctx, "save "+file); err != nil {
		t.Fatal(err)
	}

	sh.Cabinet = cabinet.New()
	if err := sh.Exec(ctx, "load kitchen"); err != nil {
		t.Fatal(err)
	}
	if sh.Cabinet.TotalWidth() != 180 {
		t.Errorf("width after store load = %d", sh.Cabinet.TotalWidth())
	}

	sh.Cabinet = cabinet.New()
	if err := sh.Exec(ctx, "load "+file); err != nil {
		t.Fatal(err)
	}
	if sh.Cabinet.TotalWidth() != 180 {
		t.Errorf("width after file load = %d", sh.Cabinet.TotalWidth())
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := sh.Exec(ctx, "load "+bad); err == nil {
		t.Error("loading a corrupt file should fail")
	}
	if sh.Cabinet.TotalWidth() != 180 {
		t.Error("failed load replaced the design")
	}
}

func TestShellRender(t *testing.T) {
	sh, out := testShell(t)
	path := filepath.Join(t.TempDir(), "front.txt")
	if err := sh.Exec(context.Background(), "render "+path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Total Width: 140cm") {
		t.Errorf("rendered text = %.40q", data)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output = %q", out.String())
	}
}

func TestShellRun(t *testing.T) {
	sh, out := testShell(t)
	in := strings.NewReader("add 40\nbogus\nhelp\nexit\nadd 60\n")
	if err := sh.Run(context.Background(), in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sh.Cabinet.Len() != 3 {
		t.Errorf("columns = %d, want 3 (input after exit is ignored)", sh.Cabinet.Len())
	}
	s := out.String()
	for _, want := range []string{"CMD> ", "unknown command", "Commands:", "ls_shelves <col>", "Total Width: 180cm"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestShellRunEOF(t *testing.T) {
	sh, _ := testShell(t)
	if err := sh.Run(context.Background(), strings.NewReader("add 40")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sh.Cabinet.Len() != 3 {
		t.Errorf("columns = %d", sh.Cabinet.Len())
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.png", "png"},
		{"dir/out.svg", "svg"},
		{"out.txt", "txt"},
		{"out.pdf", "pdf"},
		{"out.json", "json"},
		{"out.dot", "dot"},
		{"out.structure.svg", "structure"},
		{"out.structure", ""},
		{"out.bmp", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := formatForPath(tt.path); got != tt.want {
			t.Errorf("formatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
