package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/stablegraph/pkg/codec"
	errs "github.com/matzehuels/stablegraph/pkg/errors"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/observability"
)

// The CLI works on graphs with string payloads on both nodes and edges. An
// empty string stands for "no payload".
type document = codec.Document[string, string]

// resolveFormat picks the codec for path: the explicit flag first, then the
// file extension, then fallback.
func resolveFormat(path, flag string, fallback codec.Format) (codec.Format, error) {
	if flag != "" {
		return errs.ValidateFormat(flag)
	}
	if path != "-" {
		if f, err := codec.FormatFromPath(path); err == nil {
			return f, nil
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer the format of %s, pass --format", path)
}

// readDocument decodes the graph document at path ("-" reads stdin).
func (c *CLI) readDocument(ctx context.Context, path, format string) (*document, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := resolveFormat(path, format, "")
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}

	start := time.Now()
	doc, err := codec.Unmarshal[string, string](f, data)
	observability.Codec().OnDecode(ctx, f.String(), len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	c.Logger.Debug("document read", "path", path, "format", f, "id", doc.ID, "directed", doc.Directed)
	return doc, nil
}

// writeDocument encodes doc to path ("-" writes to the command output).
// The format comes from the flag, the extension or the configured default.
func (c *CLI) writeDocument(ctx context.Context, path, format string, doc *document) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	f, err := resolveFormat(path, format, codec.Format(c.Config.Codec.Format))
	if err != nil {
		return err
	}
	start := time.Now()
	data, err := codec.Marshal(f, doc)
	observability.Codec().OnEncode(ctx, f.String(), len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if path == "-" {
		_, err = c.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
	}
	c.Logger.Debug("document written", "path", path, "format", f)
	return nil
}

// parseNodes parses a comma-separated list of node handles.
func parseNodes(s string) ([]graph.NodeID, error) {
	var out []graph.NodeID
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid node handle %q", field)
		}
		out = append(out, graph.NodeID(n))
	}
	if len(out) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no node handles given")
	}
	return out, nil
}

// mapState converts payloads while keeping every handle and hole.
func mapState[V, E any](st graph.State[V, E], node func(V) string, edge func(E) string) graph.State[string, string] {
	out := graph.State[string, string]{
		Nodes:        make([]graph.NodeEntry[string], len(st.Nodes)),
		Edges:        make([]*graph.EdgeEntry[string], len(st.Edges)),
		NodesRemoved: st.NodesRemoved,
	}
	for i, n := range st.Nodes {
		out.Nodes[i] = graph.NodeEntry[string]{Index: n.Index, Weight: node(n.Weight)}
	}
	for i, e := range st.Edges {
		if e != nil {
			out.Edges[i] = &graph.EdgeEntry[string]{Source: e.Source, Target: e.Target, Weight: edge(e.Weight)}
		}
	}
	return out
}

// stateCounts reports live counts and bounds recorded in a state.
func stateCounts[V, E any](st graph.State[V, E]) (nodes, nodeBound, edges, edgeBound int) {
	nodes = len(st.Nodes)
	if nodes > 0 {
		nodeBound = int(st.Nodes[nodes-1].Index) + 1
	}
	for _, e := range st.Edges {
		if e != nil {
			edges++
		}
	}
	return nodes, nodeBound, edges, len(st.Edges)
}

func printDocStats(w io.Writer, doc *document) {
	n, nb, e, eb := stateCounts(doc.State)
	printStats(w, n, nb, e, eb)
}
