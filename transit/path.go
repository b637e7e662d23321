package transit

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/world"
)

// FindFloorPath returns the minimum-hop floor sequence from startFloor to
// endFloor, both included. Equal floors give [startFloor] without search.
// An unreachable endFloor yields ErrNoFloorPath.
func FindFloorPath(startFloor, endFloor int, nodes []world.NavigationNode) ([]int, error) {
	if startFloor == endFloor {
		return []int{startFloor}, nil
	}
	return NewGraph(nodes).Path(startFloor, endFloor)
}

// Path is FindFloorPath over an already built graph.
func (g *Graph) Path(from, to int, opts ...Option) ([]int, error) {
	if from == to {
		return []int{from}, nil
	}
	res, err := BFS(g, from, opts...)
	if errors.Is(err, ErrFloorNotFound) {
		return nil, fmt.Errorf("%w: %d → %d (floor %d has no transit links)", ErrNoFloorPath, from, to, from)
	}
	if err != nil {
		return nil, err
	}
	return res.PathTo(to)
}

// SelectNode picks, among nodes on floor from that link to toFloor, the
// one closest to near. Ties keep input order. ErrNoTransitNode when no
// node qualifies.
func SelectNode(nodes []world.NavigationNode, from, toFloor int, near geom.Point) (world.NavigationNode, error) {
	var candidates []world.NavigationNode
	for _, n := range nodes {
		if n.Floor == from && n.Reaches(toFloor) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return world.NavigationNode{}, fmt.Errorf("%w: floor %d → %d", ErrNoTransitNode, from, toFloor)
	}
	slices.SortStableFunc(candidates, func(a, b world.NavigationNode) int {
		return cmp.Compare(geom.Distance(a.Point(), near), geom.Distance(b.Point(), near))
	})
	return candidates[0], nil
}
