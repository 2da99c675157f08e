package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// Attrs is a set of DOT attributes.
type Attrs map[string]string

// Options supplies attributes for the rendered graph. Every callback is
// optional; an error from one aborts rendering.
type Options[V, E any] struct {
	NodeAttrs  func(id graph.NodeID, v V) (Attrs, error)
	EdgeAttrs  func(id graph.EdgeID, e E) (Attrs, error)
	GraphAttrs Attrs
}

type container[V, E any] interface {
	NodeIndices() []graph.NodeID
	Node(graph.NodeID) (V, error)
	EdgeIndices() []graph.EdgeID
	EdgeByIndex(graph.EdgeID) (E, error)
	EdgeEndpoints(graph.EdgeID) (graph.NodeID, graph.NodeID, error)
}

// FromGraph renders an undirected graph.
func FromGraph[V, E any](g *graph.Graph[V, E], opts Options[V, E]) (string, error) {
	return write[V, E](g, "graph", "--", opts)
}

// FromDiGraph renders a directed graph.
func FromDiGraph[V, E any](d *graph.DiGraph[V, E], opts Options[V, E]) (string, error) {
	return write[V, E](d, "digraph", "->", opts)
}

func write[V, E any](g container[V, E], kind, arrow string, opts Options[V, E]) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(kind + " {\n")
	for _, k := range slices.Sorted(maps.Keys(opts.GraphAttrs)) {
		fmt.Fprintf(&buf, "  %s=%s;\n", k, quote(opts.GraphAttrs[k]))
	}

	for _, id := range g.NodeIndices() {
		var attrs Attrs
		if opts.NodeAttrs != nil {
			v, _ := g.Node(id)
			a, err := opts.NodeAttrs(id, v)
			if err != nil {
				return "", fmt.Errorf("node %d attrs: %w", id, err)
			}
			attrs = a
		}
		fmt.Fprintf(&buf, "  %d%s;\n", id, fmtAttrs(attrs))
	}

	for _, id := range g.EdgeIndices() {
		src, dst, _ := g.EdgeEndpoints(id)
		var attrs Attrs
		if opts.EdgeAttrs != nil {
			e, _ := g.EdgeByIndex(id)
			a, err := opts.EdgeAttrs(id, e)
			if err != nil {
				return "", fmt.Errorf("edge %d attrs: %w", id, err)
			}
			attrs = a
		}
		fmt.Fprintf(&buf, "  %d %s %d%s;\n", src, arrow, dst, fmtAttrs(attrs))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtAttrs(a Attrs) string {
	if len(a) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a))
	for _, k := range slices.Sorted(maps.Keys(a)) {
		parts = append(parts, k+"="+quote(a[k]))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with one whose
// viewBox starts at the origin, so the output scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
