package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// ErrSyntax is returned for lines that do not name two endpoints.
var ErrSyntax = errors.New("edgelist: syntax error")

// ReadOptions controls how lines are split.
type ReadOptions struct {
	// Comment starts a comment that runs to the end of the line. Empty
	// disables comment handling.
	Comment string

	// Delimiter separates fields. Empty splits on runs of whitespace.
	Delimiter string

	// Labels treats the endpoint fields as node labels instead of handles.
	Labels bool
}

// Read parses an edge list into a new multigraph. Node payloads are labels
// in label mode and empty otherwise; edge payloads are the trailing fields,
// or empty when a line has only two.
func Read(r io.Reader, opts ReadOptions) (*graph.Graph[string, string], error) {
	g := graph.New[string, string]()
	labels := make(map[string]graph.NodeID)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if opts.Comment != "" {
			if i := strings.Index(line, opts.Comment); i >= 0 {
				line = line[:i]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := split(line, opts.Delimiter)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: want at least 2 fields, got %d", ErrSyntax, lineNo, len(fields))
		}

		var src, dst graph.NodeID
		if opts.Labels {
			src = labelNode(g, labels, strings.TrimSpace(fields[0]))
			dst = labelNode(g, labels, strings.TrimSpace(fields[1]))
		} else {
			var err error
			if src, err = parseHandle(fields[0]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if dst, err = parseHandle(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for g.NodeBound() <= int(max(src, dst)) {
				g.AddNode("")
			}
		}

		var weight string
		if len(fields) > 2 {
			sep := opts.Delimiter
			if sep == "" {
				sep = " "
			}
			weight = strings.Join(fields[2:], sep)
		}
		if _, err := g.AddEdge(src, dst, weight); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return g, nil
}

// ReadFile opens path and parses it with [Read].
func ReadFile(path string, opts ReadOptions) (*graph.Graph[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts)
}

func split(line, delim string) []string {
	if delim == "" {
		return strings.Fields(line)
	}
	return strings.Split(line, delim)
}

func parseHandle(s string) (graph.NodeID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid node handle %q", ErrSyntax, s)
	}
	return graph.NodeID(n), nil
}

func labelNode(g *graph.Graph[string, string], labels map[string]graph.NodeID, label string) graph.NodeID {
	if id, ok := labels[label]; ok {
		return id
	}
	id := g.AddNode(label)
	labels[label] = id
	return id
}
