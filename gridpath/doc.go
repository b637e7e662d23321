// Package gridpath finds an obstacle-avoiding walking path between two
// points on one floor.
//
// What:
//
//   - A* over an implicit lattice generated lazily from the start point:
//     orthogonal moves of 2 units, diagonal moves of (1.5, 1.5). Move
//     cost is the Euclidean length of the move; the heuristic is the
//     Euclidean distance to the target.
//   - Search states are keyed by integer half-unit offsets from start,
//     so floating-point drift can never split one lattice point into two
//     states. Points are rebuilt as start + index/2.
//   - The open set is a binary heap ordered by f-score, ties broken by
//     the order in which states were first discovered. Output is fully
//     reproducible for identical input.
//   - The search ends at the first extracted state closer than the
//     arrival radius (default 2) to the target. The returned path is
//     start, the lattice points walked, then the literal target.
//
// Failure:
//
//   - When the open set runs dry, the expansion cap is reached or the
//     context is cancelled, the result is the straight line [start, end]
//     with Status == FallbackDirect. FindPathOnFloor never fails; Search
//     reports context errors and option violations.
//
// Obstacles:
//
//   - Any value implementing Obstacles. *world.ObstacleIndex is the
//     R-tree backed implementation; Areas is a linear scan over a slice.
//
// Complexity:
//
//   - Time:  O(E log E), E = expanded states (bounded by MaxExpansions).
//   - Space: O(E) for the state table and heap.
//
// Errors:
//
//   - ErrOptionViolation for invalid tunables.
//   - context.Canceled / context.DeadlineExceeded from WithContext.
package gridpath
