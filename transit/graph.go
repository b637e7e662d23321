package transit

import (
	"slices"

	"github.com/katalvlaran/indoornav/world"
)

// Graph is the directed floor adjacency derived from navigation links.
// It is immutable once built.
type Graph struct {
	floors []int
	seen   map[int]bool
	adj    map[int][]int
	via    map[[2]int][]string
}

// NewGraph builds the floor graph of nodes. Floors are added in the
// order they are first seen, either as a node's floor or as a link
// target. Links to a node's own floor are ignored.
func NewGraph(nodes []world.NavigationNode) *Graph {
	g := &Graph{
		seen: make(map[int]bool),
		adj:  make(map[int][]int),
		via:  make(map[[2]int][]string),
	}
	for _, n := range nodes {
		g.addFloor(n.Floor)
		for _, l := range n.Links {
			if l.Floor == n.Floor {
				continue
			}
			g.addFloor(l.Floor)
			key := [2]int{n.Floor, l.Floor}
			if _, ok := g.via[key]; !ok {
				g.adj[n.Floor] = append(g.adj[n.Floor], l.Floor)
			}
			g.via[key] = append(g.via[key], n.ID)
		}
	}
	return g
}

func (g *Graph) addFloor(f int) {
	if !g.seen[f] {
		g.seen[f] = true
		g.floors = append(g.floors, f)
	}
}

// HasFloor reports whether f appears in the graph.
func (g *Graph) HasFloor(f int) bool {
	return g.seen[f]
}

// Floors returns every floor in first-seen order.
func (g *Graph) Floors() []int {
	return slices.Clone(g.floors)
}

// Neighbors returns the floors directly reachable from f.
func (g *Graph) Neighbors(f int) []int {
	return slices.Clone(g.adj[f])
}

// Via returns the ids of the nodes on from that link to to, in input order.
func (g *Graph) Via(from, to int) []string {
	return slices.Clone(g.via[[2]int{from, to}])
}

// Components groups floors that are connected when every link is
// treated as two-way. Components are listed in the first-seen order of
// their first floor; floors inside a component are ascending.
func (g *Graph) Components() [][]int {
	undirected := make(map[int][]int, len(g.floors))
	for _, f := range g.floors {
		for _, t := range g.adj[f] {
			undirected[f] = append(undirected[f], t)
			undirected[t] = append(undirected[t], f)
		}
	}

	done := make(map[int]bool, len(g.floors))
	var out [][]int
	for _, f := range g.floors {
		if done[f] {
			continue
		}
		comp := []int{}
		stack := []int{f}
		done[f] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range undirected[cur] {
				if !done[nb] {
					done[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}
