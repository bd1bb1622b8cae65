package callgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeName is returned by [Graph.AddNode] when the node name
	// is empty. All nodes must have non-empty names.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the caller
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown caller node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the callee
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown callee node")
)

// NoSourceLine marks a node whose defining source line is unknown, which
// is how cflow reports functions it saw a call to but no definition of.
const NoSourceLine = -1

// Node represents one function in a call graph.
//
// The zero value is not usable - Name must be set and Line should be
// [NoSourceLine] when unknown, as a zero Line would claim line 0.
type Node struct {
	Name  string // Function name, unique per graph, reserved words escaped
	Depth int    // Nesting level of the first occurrence (0 = root)
	Line  int    // Defining source line, or NoSourceLine if unknown
}

// Edge represents a directed caller → callee relation.
type Edge struct {
	From string // Caller function name
	To   string // Callee function name
}

// Graph is the call graph of a single source file.
//
// Nodes are keyed by function name. Insertion order is preserved for both
// nodes and edges so that repeated traversals produce identical output.
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	file     string
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string // caller -> callee names
	incoming map[string][]string // callee -> caller names
}

// New creates an empty call graph for the given source file.
func New(file string) *Graph {
	return &Graph{
		file:     file,
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// File returns the source file this graph was built from.
func (g *Graph) File() string { return g.file }

// AddNode inserts a node if no node with the same name exists yet.
// The first occurrence of a name wins: inserting a duplicate is a no-op
// and the stored depth and line keep their original values. Returns
// ErrInvalidNodeName if the node name is empty.
func (g *Graph) AddNode(n Node) error {
	if n.Name == "" {
		return ErrInvalidNodeName
	}
	if _, exists := g.nodes[n.Name]; exists {
		return nil
	}
	node := &n
	g.nodes[node.Name] = node
	g.order = append(g.order, node.Name)
	return nil
}

// AddEdge adds a directed caller → callee edge between existing nodes.
// At most one edge per ordered pair is kept; adding a duplicate is a
// no-op. Self-edges are allowed. Returns ErrUnknownSourceNode or
// ErrUnknownTargetNode if an endpoint has not been added.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownTargetNode
	}
	e := Edge{From: from, To: to}
	if _, dup := g.edgeSet[e]; dup {
		return nil
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// HasEdge reports whether the caller → callee edge exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Node returns the node with the given name and true, or nil and false if
// not found. The returned pointer refers to the stored node; callers must
// treat it as read-only.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in first-insertion order.
// The returned slice is freshly allocated; the node pointers refer to the
// stored nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, name := range g.order {
		nodes[i] = g.nodes[name]
	}
	return nodes
}

// Edges returns a copy of all edges in first-insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Callees returns the names of functions this function calls, in call
// order. The returned slice is a read-only view; nil if the node has no
// outgoing edges or doesn't exist.
func (g *Graph) Callees(name string) []string { return g.outgoing[name] }

// Callers returns the names of functions that call this function.
// The returned slice is a read-only view; nil if the node has no incoming
// edges or doesn't exist.
func (g *Graph) Callers(name string) []string { return g.incoming[name] }

// Remove deletes the named node together with every edge touching it.
// Removing an absent name is a no-op. Insertion order of the surviving
// nodes and edges is preserved.
func (g *Graph) Remove(name string) {
	if _, ok := g.nodes[name]; !ok {
		return
	}
	delete(g.nodes, name)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == name })

	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		if e.From != name && e.To != name {
			return false
		}
		delete(g.edgeSet, e)
		return true
	})

	delete(g.outgoing, name)
	delete(g.incoming, name)
	for id, targets := range g.outgoing {
		g.outgoing[id] = slices.DeleteFunc(targets, func(s string) bool { return s == name })
	}
	for id, sources := range g.incoming {
		g.incoming[id] = slices.DeleteFunc(sources, func(s string) bool { return s == name })
	}
}

// Roots returns the nodes recorded at depth 0, in insertion order.
// For typical cflow output these are the functions cflow started its
// tree walk from (main, usually).
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, name := range g.order {
		if n := g.nodes[name]; n.Depth == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}
