// Package geom holds the planar primitives shared by every part of the
// route engine: floor-tagged points in the 0–100 percentage plane,
// axis-aligned rectangles, and the two distance metrics the engine
// orders and searches by.
//
// What
//
//   - Point is an immutable {X, Y, Floor} value; two points are equal
//     when all three fields are equal.
//   - Distance is the planar Euclidean distance and ignores Floor.
//   - FloorAwareDistance adds a fixed penalty per floor of difference,
//     so that any same-floor candidate beats any other-floor candidate
//     when the penalty exceeds the diagonal of the plane.
//   - Rect is a closed axis-aligned rectangle.
//
// Planar math is delegated to github.com/paulmach/orb so that the
// engine and any GeoJSON export share one point representation.
package geom
