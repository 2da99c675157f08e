package graph

// Option configures a container at construction.
type Option func(*config)

type config struct {
	multigraph bool
	attrs      any
	nodeCap    int
	edgeCap    int
}

func defaultConfig() config {
	return config{multigraph: true}
}

// WithMultigraph sets whether parallel edges are allowed. Containers are
// multigraphs by default. The flag cannot be changed after construction.
func WithMultigraph(on bool) Option {
	return func(c *config) { c.multigraph = on }
}

// WithAttrs attaches a graph-level attribute value.
func WithAttrs(attrs any) Option {
	return func(c *config) { c.attrs = attrs }
}

// WithCapacity preallocates room for the given number of nodes and edges.
func WithCapacity(nodes, edges int) Option {
	return func(c *config) {
		c.nodeCap = nodes
		c.edgeCap = edges
	}
}
