package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// EdgeLister is satisfied by both graph.Graph and graph.DiGraph.
type EdgeLister[E any] interface {
	WeightedEdgeList() []graph.WeightedEdge[E]
}

// WeightFunc renders an edge payload. Returning false omits the payload
// field for that edge.
type WeightFunc[E any] func(E) (string, bool, error)

// WriteOptions controls the output layout.
type WriteOptions[E any] struct {
	// Delimiter separates fields. Defaults to a single space.
	Delimiter string

	// Weight renders payloads. Nil writes endpoints only.
	Weight WeightFunc[E]
}

// Write emits one line per live edge in ascending edge handle order.
func Write[E any](w io.Writer, g EdgeLister[E], opts WriteOptions[E]) error {
	delim := opts.Delimiter
	if delim == "" {
		delim = " "
	}
	bw := bufio.NewWriter(w)
	for _, e := range g.WeightedEdgeList() {
		line := fmt.Sprintf("%d%s%d", e.Source, delim, e.Target)
		if opts.Weight != nil {
			s, ok, err := opts.Weight(e.Weight)
			if err != nil {
				return fmt.Errorf("edge (%d, %d): %w", e.Source, e.Target, err)
			}
			if ok {
				line += delim + s
			}
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// WriteFile writes the edge list of g to path.
func WriteFile[E any](path string, g EdgeLister[E], opts WriteOptions[E]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, g, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// StringWeight writes string payloads verbatim and omits empty ones.
func StringWeight(s string) (string, bool, error) {
	return s, s != "", nil
}
