package transit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/indoornav/geom"
	"github.com/katalvlaran/indoornav/transit"
	"github.com/katalvlaran/indoornav/world"
)

// stairsChain links floors 1↔2 and 2↔3 with one staircase.
func stairsChain() []world.NavigationNode {
	return []world.NavigationNode{
		{ID: "s1", Type: world.Stairs, Floor: 1, X: 10, Y: 10, Links: []world.Link{{Floor: 2, ID: "s2"}}},
		{ID: "s2", Type: world.Stairs, Floor: 2, X: 10, Y: 10, Links: []world.Link{{Floor: 1, ID: "s1"}, {Floor: 3, ID: "s3"}}},
		{ID: "s3", Type: world.Stairs, Floor: 3, X: 10, Y: 10, Links: []world.Link{{Floor: 2, ID: "s2"}}},
	}
}

func TestFindFloorPath(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		nodes    []world.NavigationNode
		want     []int
		err      error
	}{
		{"same floor", 2, 2, nil, []int{2}, nil},
		{"up two floors", 1, 3, stairsChain(), []int{1, 2, 3}, nil},
		{"down two floors", 3, 1, stairsChain(), []int{3, 2, 1}, nil},
		{"unknown target", 1, 7, stairsChain(), nil, transit.ErrNoFloorPath},
		{"start without nodes", 9, 1, stairsChain(), nil, transit.ErrNoFloorPath},
		{"no nodes at all", 1, 2, nil, nil, transit.ErrNoFloorPath},
		{"demo lift to top", 1, 4, world.Demo().Nodes(), []int{1, 4}, nil},
		{"demo stairs only", 1, 4, stairsOnly(world.Demo().Nodes()), []int{1, 2, 3, 4}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := transit.FindFloorPath(tc.from, tc.to, tc.nodes)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindFloorPath_OneWayLink(t *testing.T) {
	nodes := []world.NavigationNode{
		{ID: "up", Type: world.Escalator, Floor: 1, Links: []world.Link{{Floor: 2, ID: "top"}}},
		{ID: "top", Type: world.Escalator, Floor: 2},
	}
	got, err := transit.FindFloorPath(1, 2, nodes)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = transit.FindFloorPath(2, 1, nodes)
	require.ErrorIs(t, err, transit.ErrNoFloorPath)
	assert.Contains(t, err.Error(), "2 → 1")
}

func TestFindFloorPath_FirstSeenNeighbourWins(t *testing.T) {
	// Floor 4 is two hops away through either 2 or 3; 3 is listed first.
	nodes := []world.NavigationNode{
		{ID: "a", Floor: 1, Links: []world.Link{{Floor: 3, ID: "c"}, {Floor: 2, ID: "b"}}},
		{ID: "b", Floor: 2, Links: []world.Link{{Floor: 4, ID: "d"}}},
		{ID: "c", Floor: 3, Links: []world.Link{{Floor: 4, ID: "d"}}},
		{ID: "d", Floor: 4},
	}
	got, err := transit.FindFloorPath(1, 4, nodes)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, got)
}

func TestGraph(t *testing.T) {
	g := transit.NewGraph(world.Demo().Nodes())

	assert.Equal(t, []int{1, 2, 3, 4}, g.Floors())
	assert.Equal(t, []int{2, 3, 4}, g.Neighbors(1))
	assert.Equal(t, []int{1, 3, 4}, g.Neighbors(2))
	assert.Equal(t, []string{"s1_left", "e1_center", "l1_right"}, g.Via(1, 2))
	assert.Equal(t, [][]int{{1, 2, 3, 4}}, g.Components())
	assert.False(t, g.HasFloor(0))
}

func TestGraph_SelfLinksIgnored(t *testing.T) {
	g := transit.NewGraph([]world.NavigationNode{
		{ID: "loop", Floor: 1, Links: []world.Link{{Floor: 1, ID: "loop"}}},
	})
	assert.Empty(t, g.Neighbors(1))
	assert.Equal(t, []int{1}, g.Floors())
}

func TestGraph_Components(t *testing.T) {
	nodes := append(stairsChain(),
		world.NavigationNode{ID: "x", Floor: 8, Links: []world.Link{{Floor: 7, ID: "y"}}},
		world.NavigationNode{ID: "y", Floor: 7},
	)
	g := transit.NewGraph(nodes)
	assert.Equal(t, [][]int{{1, 2, 3}, {7, 8}}, g.Components())
}

func TestBFS(t *testing.T) {
	g := transit.NewGraph(stairsChain())

	var visited []int
	res, err := transit.BFS(g, 1, transit.WithOnVisit(func(floor, depth int) error {
		visited = append(visited, floor)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.Order)
	assert.Equal(t, visited, res.Order)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 2}, res.Depth)
	assert.Equal(t, map[int]int{2: 1, 3: 2}, res.Parent)

	path, err := res.PathTo(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, path)
}

func TestBFS_MaxHops(t *testing.T) {
	g := transit.NewGraph(stairsChain())

	res, err := transit.BFS(g, 1, transit.WithMaxHops(1))
	require.NoError(t, err)
	assert.True(t, res.Reached(2))
	assert.False(t, res.Reached(3))

	_, err = g.Path(1, 3, transit.WithMaxHops(1))
	require.ErrorIs(t, err, transit.ErrNoFloorPath)
}

func TestBFS_Errors(t *testing.T) {
	g := transit.NewGraph(stairsChain())

	_, err := transit.BFS(nil, 1)
	require.ErrorIs(t, err, transit.ErrGraphNil)

	_, err = transit.BFS(g, 5)
	require.ErrorIs(t, err, transit.ErrFloorNotFound)

	_, err = transit.BFS(g, 1, transit.WithMaxHops(-1))
	require.ErrorIs(t, err, transit.ErrOptionViolation)

	stop := errors.New("stop")
	_, err = transit.BFS(g, 1, transit.WithOnVisit(func(floor, _ int) error {
		if floor == 2 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = transit.BFS(g, 1, transit.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSelectNode(t *testing.T) {
	nodes := world.Demo().Nodes()

	// From the entrance the escalator is closer than the stairs.
	n, err := transit.SelectNode(nodes, 1, 2, geom.Pt(50, 92, 1))
	require.NoError(t, err)
	assert.Equal(t, "e1_center", n.ID)

	// From the west side the stairs win.
	n, err = transit.SelectNode(nodes, 1, 2, geom.Pt(3, 50, 1))
	require.NoError(t, err)
	assert.Equal(t, "s1_left", n.ID)

	// Only lifts reach floor 4 from floor 1.
	n, err = transit.SelectNode(nodes, 1, 4, geom.Pt(3, 50, 1))
	require.NoError(t, err)
	assert.Equal(t, world.Lift, n.Type)

	_, err = transit.SelectNode(nodes, 1, 9, geom.Pt(0, 0, 1))
	require.ErrorIs(t, err, transit.ErrNoTransitNode)
}

func TestSelectNode_TiesKeepInputOrder(t *testing.T) {
	nodes := []world.NavigationNode{
		{ID: "first", Floor: 1, X: 10, Y: 0, Links: []world.Link{{Floor: 2}}},
		{ID: "second", Floor: 1, X: 0, Y: 10, Links: []world.Link{{Floor: 2}}},
	}
	n, err := transit.SelectNode(nodes, 1, 2, geom.Pt(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "first", n.ID)
}

func TestToDOT(t *testing.T) {
	dot := transit.ToDOT(transit.NewGraph(stairsChain()))

	assert.True(t, strings.HasPrefix(dot, "digraph floors {"))
	assert.Contains(t, dot, `"f1" [label="Floor 1"];`)
	assert.Contains(t, dot, `"f1" -> "f2" [label="s1"];`)
	assert.Contains(t, dot, `"f2" -> "f3" [label="s2"];`)
	assert.NotContains(t, dot, `"f1" -> "f3"`)
}

func TestRenderSVG(t *testing.T) {
	svg, err := transit.RenderSVG(context.Background(), transit.ToDOT(transit.NewGraph(stairsChain())))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	_, err = transit.RenderSVG(context.Background(), "not valid DOT {{{")
	assert.Error(t, err)
}

func stairsOnly(nodes []world.NavigationNode) []world.NavigationNode {
	var out []world.NavigationNode
	for _, n := range nodes {
		if n.Type == world.Stairs {
			out = append(out, n)
		}
	}
	return out
}
