package gridpath_test

import (
	"fmt"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/gridpath"
)

// ExampleFindPathOnFloor walks along an open corridor.
func ExampleFindPathOnFloor() {
	path := gridpath.FindPathOnFloor(geom.Pt(50, 50, 1), geom.Pt(56, 50, 1), 1, nil)
	fmt.Println(path)
	// Output:
	// [(50, 50)@1 (52, 50)@1 (54, 50)@1 (56, 50)@1 (56, 50)@1]
}

// ExampleSearch shows the fallback when the start is walled in.
func ExampleSearch() {
	cell := gridpath.Areas{{ID: "cell", Type: "shop", Floor: 1, X: 0, Y: 0, Width: 10, Height: 10}}
	res, _ := gridpath.Search(geom.Pt(5, 5, 1), geom.Pt(50, 50, 1), 1, cell)
	fmt.Println(res.Status, res.Path)
	// Output:
	// fallback-direct [(5, 5)@1 (50, 50)@1]
}
