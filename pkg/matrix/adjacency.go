package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// ErrNotSquare is returned for inputs whose row and column counts differ.
var ErrNotSquare = errors.New("matrix: not square")

// Scalar is the set of element types [FromDense] accepts.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// FromDense builds a graph from a row-major square matrix.
func FromDense[T Scalar](rows [][]T, null T) (*graph.Graph[int, T], error) {
	n := len(rows)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
	}
	return build(n, func(i, j int) T { return rows[i][j] }, null), nil
}

// FromAdjacencyMatrix builds a graph from a real gonum matrix.
func FromAdjacencyMatrix(m mat.Matrix, null float64) (*graph.Graph[int, float64], error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	return build(r, m.At, null), nil
}

// FromComplexMatrix builds a graph from a complex gonum matrix.
func FromComplexMatrix(m mat.CMatrix, null complex128) (*graph.Graph[int, complex128], error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}
	return build(r, m.At, null), nil
}

func build[T Scalar](n int, at func(i, j int) T, null T) *graph.Graph[int, T] {
	g := graph.New[int, T](graph.WithCapacity(n, 0))
	for i := range n {
		g.AddNode(i)
	}
	nullNaN := isNaN(null)
	for i := range n {
		for j := i; j < n; j++ {
			v := at(i, j)
			if nullNaN {
				if isNaN(v) {
					continue
				}
			} else if v == null {
				continue
			}
			// Both endpoints exist, so AddEdge cannot fail.
			_, _ = g.AddEdge(graph.NodeID(i), graph.NodeID(j), v)
		}
	}
	return g
}

// isNaN reports whether v is a floating-point or complex NaN, the only
// values that compare unequal to themselves.
func isNaN[T Scalar](v T) bool {
	return v != v
}

// ToAdjacencyMatrix renders g as a symmetric dense matrix. Row i belongs to
// the i-th live node in ascending handle order; the returned slice maps rows
// back to handles. Cells without an edge hold null, cells with edges hold
// the sum of their payloads. A graph without nodes yields a nil matrix.
func ToAdjacencyMatrix[V any](g *graph.Graph[V, float64], null float64) (*mat.Dense, []graph.NodeID) {
	ids := g.NodeIndices()
	if len(ids) == 0 {
		return nil, nil
	}
	row := make(map[graph.NodeID]int, len(ids))
	for i, id := range ids {
		row[id] = i
	}

	n := len(ids)
	m := mat.NewDense(n, n, nil)
	seen := make([]bool, n*n)
	for _, e := range g.WeightedEdgeList() {
		i, j := row[e.Source], row[e.Target]
		m.Set(i, j, m.At(i, j)+e.Weight)
		seen[i*n+j] = true
		if i != j {
			m.Set(j, i, m.At(j, i)+e.Weight)
			seen[j*n+i] = true
		}
	}
	for k, ok := range seen {
		if !ok {
			m.Set(k/n, k%n, null)
		}
	}
	return m, ids
}
