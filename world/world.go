package world

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/indoornav/geom"
)

// World is an immutable, indexed view of the static map data.
// All accessors return copies; a World is safe for concurrent use.
type World struct {
	areas    []FloorArea
	nodes    []NavigationNode
	areaByID map[string]int
	nodeByID map[string]int
	floors   []int

	obstacles *ObstacleIndex
}

// New indexes areas and nodes. The input slices are copied.
//
// New only fails on problems that make the indexes ambiguous (empty or
// duplicate ids). Dangling links and other integrity defects are left
// for Validate, so that a caller can decide between refusing the data
// and routing over it with partial results.
func New(areas []FloorArea, nodes []NavigationNode) (*World, error) {
	w := &World{
		areas:    make([]FloorArea, len(areas)),
		nodes:    make([]NavigationNode, len(nodes)),
		areaByID: make(map[string]int, len(areas)),
		nodeByID: make(map[string]int, len(nodes)),
	}
	copy(w.areas, areas)
	for i, n := range nodes {
		n.Links = slices.Clone(n.Links)
		w.nodes[i] = n
	}

	floorSet := make(map[int]struct{})
	for i, a := range w.areas {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: area #%d", ErrEmptyID, i)
		}
		if _, dup := w.areaByID[a.ID]; dup {
			return nil, fmt.Errorf("%w: area %q", ErrDuplicateID, a.ID)
		}
		w.areaByID[a.ID] = i
		floorSet[a.Floor] = struct{}{}
	}
	for i, n := range w.nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node #%d", ErrEmptyID, i)
		}
		if _, dup := w.nodeByID[n.ID]; dup {
			return nil, fmt.Errorf("%w: node %q", ErrDuplicateID, n.ID)
		}
		w.nodeByID[n.ID] = i
		floorSet[n.Floor] = struct{}{}
	}
	w.floors = slices.Sorted(maps.Keys(floorSet))
	w.obstacles = NewObstacleIndex(w.areas)

	return w, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(areas []FloorArea, nodes []NavigationNode) *World {
	w, err := New(areas, nodes)
	if err != nil {
		panic(err)
	}
	return w
}

// Areas returns all areas in input order.
func (w *World) Areas() []FloorArea {
	return slices.Clone(w.areas)
}

// Nodes returns all transit nodes in input order.
// The Links slices are shared with the World and must not be modified.
func (w *World) Nodes() []NavigationNode {
	return slices.Clone(w.nodes)
}

// Area looks an area up by id.
func (w *World) Area(id string) (FloorArea, bool) {
	i, ok := w.areaByID[id]
	if !ok {
		return FloorArea{}, false
	}
	return w.areas[i], true
}

// Node looks a transit node up by id.
func (w *World) Node(id string) (NavigationNode, bool) {
	i, ok := w.nodeByID[id]
	if !ok {
		return NavigationNode{}, false
	}
	return w.nodes[i], true
}

// Floors returns every floor that has an area or a node, ascending.
func (w *World) Floors() []int {
	return slices.Clone(w.floors)
}

// AreasOn returns the areas of one floor in input order.
func (w *World) AreasOn(floor int) []FloorArea {
	var out []FloorArea
	for _, a := range w.areas {
		if a.Floor == floor {
			out = append(out, a)
		}
	}
	return out
}

// NodesOn returns the transit nodes of one floor in input order.
func (w *World) NodesOn(floor int) []NavigationNode {
	var out []NavigationNode
	for _, n := range w.nodes {
		if n.Floor == floor {
			out = append(out, n)
		}
	}
	return out
}

// Obstacles returns the obstacle index built over the blocking areas.
func (w *World) Obstacles() *ObstacleIndex {
	return w.obstacles
}

// Validate reports every integrity defect of w as one joined error.
// Each item wraps ErrInvalidWorld. A nil result means the data is clean.
func (w *World) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidWorld}, args...)...))
	}

	for _, a := range w.areas {
		if a.Width <= 0 || a.Height <= 0 {
			bad("area %q has non-positive size %gx%g", a.ID, a.Width, a.Height)
		}
		r := a.Rect()
		if !geom.InPlane(geom.Pt(r.MinX, r.MinY, a.Floor)) || !geom.InPlane(geom.Pt(r.MaxX, r.MaxY, a.Floor)) {
			bad("area %q extends outside the floor plan", a.ID)
		}
		if a.EntrancePoint.Floor != a.Floor {
			bad("area %q entrance is on floor %d, area on floor %d", a.ID, a.EntrancePoint.Floor, a.Floor)
		}
		if !geom.InPlane(a.EntrancePoint) {
			bad("area %q entrance %v is outside the floor plan", a.ID, a.EntrancePoint)
		}
	}

	for _, n := range w.nodes {
		if !n.Type.Valid() {
			bad("node %q has unknown type %q", n.ID, n.Type)
		}
		if !geom.InPlane(n.Point()) {
			bad("node %q at %v is outside the floor plan", n.ID, n.Point())
		}
		for _, l := range n.Links {
			if l.Floor == n.Floor {
				bad("node %q links to its own floor %d", n.ID, l.Floor)
				continue
			}
			target, ok := w.Node(l.ID)
			if !ok {
				bad("node %q links to unknown node %q", n.ID, l.ID)
				continue
			}
			if target.Floor != l.Floor {
				bad("node %q link claims %q is on floor %d, it is on floor %d", n.ID, l.ID, l.Floor, target.Floor)
			}
		}
	}

	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
