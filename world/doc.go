// Package world holds the static map data the route engine reads:
// floor areas (shops, washrooms, exits, the entrance lobby) and the
// vertical-transit nodes that connect floors.
//
// A World is built once, validated, and never mutated afterwards, so a
// single instance can serve any number of concurrent route computations.
//
// What
//
//   - FloorArea: an axis-aligned rectangle on one floor with a walkable
//     entrance point. Every type except AreaEntrance blocks walking.
//   - NavigationNode: stairs, escalator or lift on one floor, with
//     explicit links to paired nodes on other floors. Links are never
//     assumed to be symmetric.
//   - ObstacleIndex: per-floor R-tree (github.com/dhconnelly/rtreego)
//     over the blocking areas, answering point-in-obstacle queries.
//   - Load/Decode: TOML (github.com/BurntSushi/toml) and JSON world files.
//   - Demo: the embedded four-floor mall.
//
// Errors
//
//   - ErrInvalidWorld wraps every integrity problem reported by Validate.
//   - ErrDuplicateID and ErrEmptyID are fatal for New because they break
//     the id indexes.
//   - ErrUnknownFormat from Decode/Load for unsupported file types.
package world
