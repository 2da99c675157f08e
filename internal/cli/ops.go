package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablegraph/pkg/codec"
	errs "github.com/matzehuels/stablegraph/pkg/errors"
	"github.com/matzehuels/stablegraph/pkg/graph"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "info <document>",
		Short: "Summarize a graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			parallel, err := hasParallelEdges(doc)
			if err != nil {
				return err
			}
			nodes, nodeBound, edges, edgeBound := stateCounts(doc.State)

			printTitle(c.out, args[0])
			printKeyValue(c.out, "id", doc.ID.String())
			printKeyValue(c.out, "version", strconv.Itoa(doc.Version))
			printKeyValue(c.out, "directed", strconv.FormatBool(doc.Directed))
			printKeyValue(c.out, "multigraph", strconv.FormatBool(doc.Multigraph))
			printKeyValue(c.out, "nodes", fmt.Sprintf("%d (bound %d)", nodes, nodeBound))
			printKeyValue(c.out, "edges", fmt.Sprintf("%d (bound %d)", edges, edgeBound))
			printKeyValue(c.out, "nodes removed", strconv.FormatBool(doc.State.NodesRemoved))
			printKeyValue(c.out, "parallel edges", strconv.FormatBool(parallel))
			if doc.Attrs != nil {
				printKeyValue(c.out, "attrs", fmt.Sprint(doc.Attrs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format (default from extension)")
	return cmd
}

func hasParallelEdges(doc *document) (bool, error) {
	if doc.Directed {
		d, err := doc.DiGraph()
		if err != nil {
			return false, err
		}
		return d.HasParallelEdges(), nil
	}
	g, err := doc.Graph()
	if err != nil {
		return false, err
	}
	return g.HasParallelEdges(), nil
}

// undirected loads the document at path and rejects directed graphs.
func (c *CLI) undirected(ctx context.Context, path, format, op string) (*graph.Graph[string, string], error) {
	doc, err := c.readDocument(ctx, path, format)
	if err != nil {
		return nil, err
	}
	if doc.Directed {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s needs an undirected graph, %s is directed", op, path)
	}
	return doc.Graph()
}

func (c *CLI) subgraphCommand() *cobra.Command {
	var (
		nodes   string
		output  string
		format  string
		showMap bool
	)
	cmd := &cobra.Command{
		Use:   "subgraph <document>",
		Short: "Extract the subgraph induced by a set of nodes",
		Long: `Extract the subgraph induced by --nodes. The result numbers its nodes from
zero in ascending order of the original handles; --map prints the new to
original handle mapping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseNodes(nodes)
			if err != nil {
				return err
			}
			g, err := c.undirected(cmd.Context(), args[0], format, "subgraph")
			if err != nil {
				return err
			}

			sub, back := g.SubgraphWithNodeMap(ids, true)
			if err := c.writeDocument(cmd.Context(), output, "", codec.GraphDocument(sub)); err != nil {
				return err
			}
			if showMap {
				for _, id := range slices.Sorted(maps.Keys(back)) {
					printDetail(c.out, "%d %s %d", id, iconArrow, back[id])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nodes, "nodes", "", "comma-separated node handles")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output document (- for stdout)")
	cmd.Flags().StringVar(&format, "format", "", "input format (default from extension)")
	cmd.Flags().BoolVar(&showMap, "map", false, "print the handle mapping")
	_ = cmd.MarkFlagRequired("nodes")
	return cmd
}

func (c *CLI) contractCommand() *cobra.Command {
	var (
		nodes   string
		payload string
		join    string
		output  string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "contract <document>",
		Short: "Merge a set of nodes into one new node",
		Long: `Replace --nodes with a single new node carrying --payload. Edges touching
the set are re-routed to the new node. In a non-multigraph, edges that end
up joining the same pair are merged: with --join their payloads are
concatenated with the given separator, otherwise the first one is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseNodes(nodes)
			if err != nil {
				return err
			}
			g, err := c.undirected(cmd.Context(), args[0], format, "contract")
			if err != nil {
				return err
			}

			var combine graph.CombineFunc[string]
			if cmd.Flags().Changed("join") {
				combine = func(kept, next string) (string, error) {
					return kept + join + next, nil
				}
			}
			merged, err := g.ContractNodes(ids, payload, combine)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("contracted", "members", len(ids), "node", merged)

			if err := c.writeDocument(cmd.Context(), output, "", codec.GraphDocument(g)); err != nil {
				return err
			}
			if output != "-" {
				printSuccess(c.out, "Contracted %d nodes into node %d", len(ids), merged)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nodes, "nodes", "", "comma-separated node handles")
	cmd.Flags().StringVar(&payload, "payload", "", "payload of the new node")
	cmd.Flags().StringVar(&join, "join", "", "merge parallel payloads with this separator")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output document (- for stdout)")
	cmd.Flags().StringVar(&format, "format", "", "input format (default from extension)")
	_ = cmd.MarkFlagRequired("nodes")
	return cmd
}

func (c *CLI) convertCommand() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Re-encode a graph document in another format",
		Long: `Re-encode a graph document. Formats default to the file extensions
(.json, .msgpack, .bson). Handles, holes and the document ID are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context(), args[0], from)
			if err != nil {
				return err
			}
			if err := c.writeDocument(cmd.Context(), args[1], to, doc); err != nil {
				return err
			}
			if args[1] != "-" {
				printSuccess(c.out, "Converted %s", doc.ID)
				printFile(c.out, args[1])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "input format (default from extension)")
	cmd.Flags().StringVar(&to, "to", "", "output format (default from extension)")
	return cmd
}
