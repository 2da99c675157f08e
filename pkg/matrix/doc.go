// Package matrix converts between adjacency matrices and undirected graphs.
//
// Importers read the upper triangle (diagonal included) of a square matrix,
// creating one node per row whose payload is the row index and one edge per
// cell that differs from the null value. A NaN null value skips NaN cells.
// Imported graphs are always multigraphs.
//
// Both gonum matrices ([FromAdjacencyMatrix], [FromComplexMatrix]) and plain
// row slices of any numeric type ([FromDense]) are accepted.
// [ToAdjacencyMatrix] goes the other way and sums parallel edges.
package matrix
