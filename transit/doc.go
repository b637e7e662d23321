// Package transit answers which floors a visitor walks through to get
// from one floor to another, and which stairs, escalator or lift to take
// at each change.
//
// What:
//
//   - Graph: floors as vertices; floor A → floor B is an edge iff some
//     navigation node on A has a link targeting B. Neighbours keep the
//     order in which nodes and their links were first seen. Links are
//     never mirrored: a one-way escalator stays one-way.
//   - BFS: breadth-first walker over a Graph returning visit order,
//     depth and parent per floor. Result.PathTo rebuilds the minimum-hop
//     floor sequence.
//   - FindFloorPath: the one-call form used by the route composer.
//   - SelectNode: the transit node on a floor nearest to a point that
//     links to the wanted floor.
//   - ToDOT / RenderSVG: Graphviz export for diagnostics.
//
// Complexity:
//
//   - NewGraph: O(N + L) for N nodes and L links.
//   - BFS:      O(F + E) for F floors and E floor edges.
//
// Errors:
//
//   - ErrNoFloorPath when the target floor is unreachable.
//   - ErrNoTransitNode when no node on a floor links to the next one.
//   - ErrFloorNotFound when BFS starts from a floor without nodes.
//   - ErrOptionViolation for invalid options.
package transit
