package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Bounds of the percentage plane every floor is drawn in.
const (
	PlaneMin = 0.0
	PlaneMax = 100.0
)

// DefaultFloorPenalty is the per-floor weight used by FloorAwareDistance
// when ordering stops. It is larger than the diagonal of the plane
// (≈141.4), so a change of floor always costs more than any walk.
const DefaultFloorPenalty = 1000.0

// Point is a position on one floor, in percentage coordinates.
type Point struct {
	X     float64 `json:"x" toml:"x"`
	Y     float64 `json:"y" toml:"y"`
	Floor int     `json:"floor" toml:"floor"`
}

// Pt is shorthand for Point{X: x, Y: y, Floor: floor}.
func Pt(x, y float64, floor int) Point {
	return Point{X: x, Y: y, Floor: floor}
}

// Orb returns the planar part of p as an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// OnFloor returns a copy of p moved to floor.
func (p Point) OnFloor(floor int) Point {
	p.Floor = floor
	return p
}

// SameSpot reports whether p and q share X and Y, regardless of floor.
func (p Point) SameSpot(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// String renders p as "(x, y)@floor".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)@%d", p.X, p.Y, p.Floor)
}

// Distance returns the planar Euclidean distance between a and b.
// The floor of either point is ignored.
func Distance(a, b Point) float64 {
	return planar.Distance(a.Orb(), b.Orb())
}

// FloorAwareDistance returns penalty·|to.Floor−from.Floor| + Distance(from, to).
func FloorAwareDistance(from, to Point, penalty float64) float64 {
	floors := math.Abs(float64(to.Floor - from.Floor))
	return penalty*floors + Distance(from, to)
}

// InPlane reports whether p lies inside the closed 0–100 square.
func InPlane(p Point) bool {
	return p.X >= PlaneMin && p.X <= PlaneMax && p.Y >= PlaneMin && p.Y <= PlaneMax
}
