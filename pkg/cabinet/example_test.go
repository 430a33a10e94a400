package cabinet_test

import (
	"fmt"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/errors"
)

func Example() {
	c := cabinet.New()
	_ = c.AddColumn(60)
	_ = c.AddColumn(80)
	_ = c.ConfigureDrawers(0, 3, 20)
	_ = c.ToggleMergeRight(0)

	for _, g := range c.Groups() {
		fmt.Printf("group %v: %d cm, top=%v\n", g.Members, g.Width, g.HasTop)
	}
	shelves, _ := c.Shelves(1)
	fmt.Println("shelves:", shelves)
	// Output:
	// group [0 1]: 140 cm, top=true
	// shelves: [133.3 186.7]
}

func ExampleCabinet_MoveShelf() {
	c := cabinet.New()
	_ = c.AddColumn(40)
	_ = c.SetShelvesCount(0, 1)
	_ = c.AddShelfAt(0, 150)

	if err := c.MoveShelf(0, 0, 10); err != nil {
		fmt.Println(err)
	}
	err := c.MoveShelf(0, 0, 80)
	fmt.Println(errors.GetCode(err))
	shelves, _ := c.Shelves(0)
	fmt.Println(shelves)
	// Output:
	// COLLISION_BLOCKED
	// [160]
}

func ExampleCompartments() {
	b := cabinet.Compartments([]float64{130, 180}, 80, 240)
	for j := 0; j < b.Count(); j++ {
		low, high := b.Span(j)
		fmt.Printf("%d: %g-%g\n", j, low, high)
	}
	// Output:
	// 0: 80-130
	// 1: 130-180
	// 2: 180-240
}
