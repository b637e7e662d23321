package world

import (
	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/indoornav/geom"
)

// queryTolerance is the half-size of the box used to probe the R-tree for
// a point. rtreego only reports strict overlaps, so a point on an area
// border needs a box that pokes across it; the exact closed-rectangle
// test runs afterwards.
const queryTolerance = 1e-9

// obstacleEntry wraps a blocking area for R-tree storage.
type obstacleEntry struct {
	area FloorArea
	rect geom.Rect
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers "is this point inside a blocking area of that
// floor" for the pathfinder. One R-tree is kept per floor. Areas with a
// degenerate rectangle cannot be stored in an R-tree and are checked
// linearly instead.
type ObstacleIndex struct {
	trees      map[int]*rtreego.Rtree
	degenerate map[int][]geom.Rect
	count      int
}

// NewObstacleIndex indexes the blocking areas among areas.
// Entrance areas are skipped.
func NewObstacleIndex(areas []FloorArea) *ObstacleIndex {
	idx := &ObstacleIndex{
		trees:      make(map[int]*rtreego.Rtree),
		degenerate: make(map[int][]geom.Rect),
	}
	for _, a := range areas {
		if !a.Blocks() {
			continue
		}
		idx.count++
		r := a.Rect()
		bbox, err := rtreego.NewRect(rtreego.Point{r.MinX, r.MinY}, []float64{r.Width(), r.Height()})
		if err != nil {
			idx.degenerate[a.Floor] = append(idx.degenerate[a.Floor], r)
			continue
		}
		tree, ok := idx.trees[a.Floor]
		if !ok {
			tree = rtreego.NewTree(2, 2, 8)
			idx.trees[a.Floor] = tree
		}
		tree.Insert(&obstacleEntry{area: a, rect: r, bbox: bbox})
	}
	return idx
}

// Blocked reports whether p lies inside or on the border of a blocking
// area on floor. The Floor field of p is ignored.
func (idx *ObstacleIndex) Blocked(p geom.Point, floor int) bool {
	if idx == nil {
		return false
	}
	for _, r := range idx.degenerate[floor] {
		if r.Contains(p) {
			return true
		}
	}
	tree, ok := idx.trees[floor]
	if !ok {
		return false
	}
	probe := rtreego.Point{p.X, p.Y}.ToRect(queryTolerance)
	for _, hit := range tree.SearchIntersect(probe) {
		if hit.(*obstacleEntry).rect.Contains(p) {
			return true
		}
	}
	return false
}

// At returns the blocking areas of floor that contain p, in R-tree order.
func (idx *ObstacleIndex) At(p geom.Point, floor int) []FloorArea {
	if idx == nil {
		return nil
	}
	tree, ok := idx.trees[floor]
	if !ok {
		return nil
	}
	var out []FloorArea
	probe := rtreego.Point{p.X, p.Y}.ToRect(queryTolerance)
	for _, hit := range tree.SearchIntersect(probe) {
		if e := hit.(*obstacleEntry); e.rect.Contains(p) {
			out = append(out, e.area)
		}
	}
	return out
}

// Len returns the number of indexed blocking areas.
func (idx *ObstacleIndex) Len() int {
	if idx == nil {
		return 0
	}
	return idx.count
}
