// Package edgelist reads and writes graphs as plain-text edge lists.
//
// Each non-blank line names one edge: a source, a target and an optional
// payload, separated by whitespace or a custom delimiter:
//
//	# source target [payload...]
//	0 1
//	0 2 heavy
//	2 3 two words
//
// Everything after the second field is joined back with the delimiter and
// becomes the edge payload. With [ReadOptions.Labels] the first two fields
// are arbitrary labels; each distinct label becomes one node carrying it.
// Otherwise they are node handles and missing nodes are created up to the
// highest handle seen.
//
// Graphs read this way are always multigraphs, so repeated lines produce
// parallel edges.
package edgelist
