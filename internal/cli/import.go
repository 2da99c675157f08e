package cli

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/stablegraph/pkg/codec"
	"github.com/matzehuels/stablegraph/pkg/edgelist"
	errs "github.com/matzehuels/stablegraph/pkg/errors"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/matrix"
)

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a graph document from an edge list or adjacency matrix",
	}
	cmd.AddCommand(c.importEdgeListCommand())
	cmd.AddCommand(c.importMatrixCommand())
	return cmd
}

type importFlags struct {
	output   string
	format   string
	directed bool
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "output document (- for stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: json, msgpack or bson (default from extension)")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "store each edge in both directions of a directed graph")
}

// save writes g, optionally converted to a directed graph.
func (c *CLI) save(ctx context.Context, g *graph.Graph[string, string], f importFlags) error {
	doc := codec.GraphDocument(g)
	if f.directed {
		doc = codec.DiGraphDocument(g.ToDirected())
	}
	if err := c.writeDocument(ctx, f.output, f.format, doc); err != nil {
		return err
	}
	if f.output != "-" {
		printSuccess(c.out, "Imported graph %s", doc.ID)
		printDocStats(c.out, doc)
		printFile(c.out, f.output)
	}
	return nil
}

func (c *CLI) importEdgeListCommand() *cobra.Command {
	var (
		flags importFlags
		opts  edgelist.ReadOptions
	)
	cmd := &cobra.Command{
		Use:   "edgelist <file>",
		Short: "Import a whitespace or delimiter separated edge list",
		Long: `Import an edge list with one "source target [payload]" line per edge.

Endpoints are node handles unless --labels is given, in which case they are
node names and handles are assigned in order of first appearance. Any fields
after the target form the edge payload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			if err := errs.ValidatePath(args[0]); err != nil {
				return err
			}
			g, err := edgelist.ReadFile(args[0], opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Read %d edges", g.NumEdges()))
			return c.save(cmd.Context(), g, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&opts.Comment, "comment", "#", "comment marker, empty to disable")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", "", "field delimiter (default: any whitespace)")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "endpoints are node names rather than handles")
	return cmd
}

func (c *CLI) importMatrixCommand() *cobra.Command {
	var (
		flags importFlags
		null  string
	)
	cmd := &cobra.Command{
		Use:   "matrix <file>",
		Short: "Import a square adjacency matrix",
		Long: `Import a square adjacency matrix, one row per line, cells separated by
whitespace or commas. Only the upper triangle and diagonal are read. Cells
equal to --null are treated as missing edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nullValue, err := parseCell(null)
			if err != nil {
				return errs.New(errs.ErrCodeInvalidInput, "invalid --null value %q", null)
			}
			if err := errs.ValidatePath(args[0]); err != nil {
				return err
			}
			m, err := readMatrix(args[0])
			if err != nil {
				return err
			}
			mg, err := matrix.FromAdjacencyMatrix(m, nullValue)
			if err != nil {
				return err
			}

			st := mapState(mg.State(), strconv.Itoa, formatFloat)
			g, err := graph.FromState(st, graph.WithMultigraph(mg.Multigraph()))
			if err != nil {
				return err
			}
			return c.save(cmd.Context(), g, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&null, "null", "0", "value marking a missing edge (a number, nan or inf)")
	return cmd
}

// readMatrix parses a text matrix into a dense gonum matrix.
func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var (
		data []float64
		rows int
		cols = -1
	)
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		fields := strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		if cols >= 0 && len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", matrix.ErrNotSquare, line, len(fields), cols)
		}
		cols = len(fields)
		for _, s := range fields {
			v, err := parseCell(s)
			if err != nil {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "line %d: invalid cell %q", line, s)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if rows == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s: empty matrix", path)
	}
	if rows != cols {
		return nil, fmt.Errorf("%w: %d rows, %d columns", matrix.ErrNotSquare, rows, cols)
	}
	return mat.NewDense(rows, cols, data), nil
}

func parseCell(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "nan":
		return math.NaN(), nil
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
