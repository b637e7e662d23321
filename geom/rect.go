package geom

import "github.com/paulmach/orb"

// Rect is a closed axis-aligned rectangle in the percentage plane.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectXYWH builds the rectangle anchored at (x, y) with the given size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return r.Bound().Contains(p.Orb())
}

// Width of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center of r, on the given floor.
func (r Rect) Center(floor int) Point {
	c := r.Bound().Center()
	return Point{X: c[0], Y: c[1], Floor: floor}
}

// Bound converts r to an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.MinX, r.MinY},
		Max: orb.Point{r.MaxX, r.MaxY},
	}
}
