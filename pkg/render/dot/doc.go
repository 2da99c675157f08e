// Package dot renders graph containers as Graphviz DOT and SVG.
//
// # Usage
//
//	src, err := dot.FromGraph(g, dot.Options[string, int]{
//	    NodeAttrs: func(_ graph.NodeID, v string) (dot.Attrs, error) {
//	        return dot.Attrs{"label": v}, nil
//	    },
//	})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Nodes are written by handle, so the output of a graph with holes keeps its
// handles. Attributes are emitted in key order for stable output.
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz] for in-process rendering;
// no Graphviz installation is needed.
package dot
