package io_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cabinetry/pkg/io"
)

func ExampleReadJSON() {
	legacy := `{"columns": [{"width": 80, "shelves": 2, "has_drawers": true}]}`
	c, err := io.ReadJSON(strings.NewReader(legacy))
	if err != nil {
		fmt.Println(err)
		return
	}
	col, _ := c.Column(0)
	fmt.Println(col.Width, col.ShelfHeights, len(col.Drawers))
	// Output: 80 [160] 3
}
