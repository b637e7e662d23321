// Package route stitches floor-local paths and floor changes into one
// continuous multi-stop walk.
//
// What:
//
//   - Ordering: before every hop the remaining stops are stable-sorted by
//     floor-aware distance from the current position and the first one is
//     taken. This is a greedy nearest-next heuristic, not a TSP solver.
//   - Floor changes: transit.FindFloorPath gives the floor sequence; on
//     every floor of it the closest node linking to the next floor is
//     walked to and the linked node on the next floor becomes the new
//     position.
//   - Every stop ends with an approach segment; the last one says
//     "arrived", the others "proceed".
//
// Partial routes:
//
//   - A missing floor path, a floor without a suitable transit node or a
//     link to an unknown node stops planning. Result keeps the segments
//     built so far, Complete is false and Err tells why. The defect is
//     logged at error level.
//
// Errors:
//
//   - ErrNoFloorPath, ErrNoTransitNode, ErrDanglingLink in Result.Err.
//   - ErrNilWorld and ErrOptionViolation from NewPlanner.
package route
