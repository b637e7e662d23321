// Package indoornav plans walking routes through multi-floor buildings
// such as shopping malls.
//
// 🚀 What is indoornav?
//
//	An in-memory route engine that turns a start point and a list of
//	stops into floor-by-floor walking segments with instructions:
//		• Ordering: greedy floor-aware nearest-stop selection
//		• Floor changes: BFS over stairs, escalators and lifts
//		• Walking: A* on a lazy 0.5-unit lattice around blocking areas
//		• Instructions: localized ("en", "hi", "kn", ...) message catalogs
//
// Under the hood the repository is organized as:
//
//	geom/             points, rectangles, Euclidean & floor-aware distance
//	world/            areas, transit nodes, validation, R-tree obstacle index, TOML/JSON loading
//	gridpath/         floor-local A* with straight-line fallback
//	transit/          floor graph, BFS floor path, transit node selection, DOT/SVG export
//	route/            multi-stop planner producing []route.Segment
//	i18n/             instruction templates and language matching
//	cache/            route cache: memory, Redis, null
//	internal/config/  TOML configuration
//	internal/server/  JSON HTTP API
//	internal/cli/     the indoornav command
//
// Quick example:
//
//	planner, _ := route.NewPlanner(world.Demo())
//	stops, _ := planner.Stops([]string{"f1_produce", "f2_frozen"}, "en")
//	res := planner.Plan(ctx, geom.Pt(50, 92, 1), stops)
//	for _, seg := range res.Segments {
//		fmt.Println(seg.Floor, seg.Instruction)
//	}
//
// Or from the shell:
//
//	go run ./cmd/indoornav route --areas f1_produce,f2_frozen
//	go run ./cmd/indoornav serve --addr :8080
package indoornav
