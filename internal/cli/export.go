package cli

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablegraph/pkg/edgelist"
	errs "github.com/matzehuels/stablegraph/pkg/errors"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/render/dot"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a graph document as an edge list, DOT or SVG",
	}
	cmd.AddCommand(c.exportEdgeListCommand())
	cmd.AddCommand(c.exportDOTCommand())
	cmd.AddCommand(c.exportSVGCommand())
	return cmd
}

type exportFlags struct {
	output string
	format string
}

func (f *exportFlags) register(cmd *cobra.Command, def string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", def, "output file (- for stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "input format (default from extension)")
}

func (c *CLI) exportEdgeListCommand() *cobra.Command {
	var (
		flags exportFlags
		delim string
	)
	cmd := &cobra.Command{
		Use:   "edgelist <document>",
		Short: "Write one \"source target [payload]\" line per live edge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context(), args[0], flags.format)
			if err != nil {
				return err
			}
			opts := edgelist.WriteOptions[string]{Delimiter: delim, Weight: edgelist.StringWeight}

			var lister edgelist.EdgeLister[string]
			if doc.Directed {
				lister, err = doc.DiGraph()
			} else {
				lister, err = doc.Graph()
			}
			if err != nil {
				return err
			}
			return c.writeOutput(flags.output, func(w io.Writer) error {
				return edgelist.Write(w, lister, opts)
			})
		},
	}
	flags.register(cmd, "-")
	cmd.Flags().StringVar(&delim, "delimiter", " ", "field delimiter")
	return cmd
}

func (c *CLI) exportDOTCommand() *cobra.Command {
	var (
		flags   exportFlags
		rankdir string
	)
	cmd := &cobra.Command{
		Use:   "dot <document>",
		Short: "Write Graphviz DOT source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.dotSource(cmd.Context(), args[0], flags.format, rankdir)
			if err != nil {
				return err
			}
			return c.writeOutput(flags.output, func(w io.Writer) error {
				_, err := io.WriteString(w, src)
				return err
			})
		},
	}
	flags.register(cmd, "-")
	cmd.Flags().StringVar(&rankdir, "rankdir", "", "Graphviz rankdir (TB, LR, BT, RL)")
	return cmd
}

func (c *CLI) exportSVGCommand() *cobra.Command {
	var (
		flags   exportFlags
		rankdir string
	)
	cmd := &cobra.Command{
		Use:   "svg <document>",
		Short: "Render the graph to SVG with Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.dotSource(cmd.Context(), args[0], flags.format, rankdir)
			if err != nil {
				return err
			}
			svg, err := c.renderSVG(cmd.Context(), src)
			if err != nil {
				return err
			}
			return c.writeOutput(flags.output, func(w io.Writer) error {
				_, err := w.Write(svg)
				return err
			})
		},
	}
	flags.register(cmd, "graph.svg")
	cmd.Flags().StringVar(&rankdir, "rankdir", "", "Graphviz rankdir (TB, LR, BT, RL)")
	return cmd
}

func (c *CLI) renderSVG(ctx context.Context, src string) ([]byte, error) {
	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, os.Stderr, "Rendering SVG...")
	spinner.Start()
	svg, err := dot.RenderSVG(ctx, src)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return nil, ctx.Err()
		}
		spinner.StopWithError("Rendering failed")
		return nil, err
	}
	spinner.Stop()
	prog.done("Rendered SVG")
	return svg, nil
}

// dotSource renders the document at path as DOT. Non-empty payloads become
// node and edge labels.
func (c *CLI) dotSource(ctx context.Context, path, format, rankdir string) (string, error) {
	doc, err := c.readDocument(ctx, path, format)
	if err != nil {
		return "", err
	}
	opts := dot.Options[string, string]{
		NodeAttrs: func(_ graph.NodeID, v string) (dot.Attrs, error) {
			if v == "" {
				return nil, nil
			}
			return dot.Attrs{"label": v}, nil
		},
		EdgeAttrs: func(_ graph.EdgeID, e string) (dot.Attrs, error) {
			if e == "" {
				return nil, nil
			}
			return dot.Attrs{"label": e}, nil
		},
	}
	if rankdir != "" {
		opts.GraphAttrs = dot.Attrs{"rankdir": rankdir}
	}

	if doc.Directed {
		d, err := doc.DiGraph()
		if err != nil {
			return "", err
		}
		return dot.FromDiGraph(d, opts)
	}
	g, err := doc.Graph()
	if err != nil {
		return "", err
	}
	return dot.FromGraph(g, opts)
}

// writeOutput runs write against path, or the command output for "-".
func (c *CLI) writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(c.out)
	}
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
	}
	printFile(c.out, path)
	return nil
}
