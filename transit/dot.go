package transit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders g as a Graphviz digraph, ground floor at the bottom.
// Each edge is labelled with the ids of the nodes providing it.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph floors {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18];\n")
	buf.WriteString("\n")

	for _, f := range g.floors {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", floorID(f), fmt.Sprintf("Floor %d", f))
	}

	buf.WriteString("\n")
	for _, f := range g.floors {
		for _, t := range g.adj[f] {
			label := strings.Join(g.via[[2]int{f, t}], "\\n")
			fmt.Fprintf(&buf, "  %q -> %q [label=\"%s\"];\n", floorID(f), floorID(t), label)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func floorID(f int) string {
	return fmt.Sprintf("f%d", f)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
