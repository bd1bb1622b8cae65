package dot

import (
	"bytes"
	"fmt"

	"github.com/callchart/callchart/pkg/callgraph"
)

// Options configures DOT generation for one call graph.
type Options struct {
	// Title overrides the graph label. When empty, the graph's source
	// file name is used.
	Title string

	// LaTeX escapes underscores in labels and the title so the output
	// survives LaTeX post-processing (psfrag and friends).
	LaTeX bool

	// MultiPage adds \descitem / \descref anchors to labels so a
	// multi-page document can cross-reference functions between charts.
	MultiPage bool

	// Layout is the engine the document is destined for; it selects the
	// graph-level layout attributes. Zero value means [LayoutDot].
	Layout Layout

	// Siblings are the other graphs of the same run, consulted in
	// multi-page mode to resolve functions defined on another page.
	// The slice may include the graph being marshalled.
	Siblings []*callgraph.Graph
}

// Marshal renders a call graph as a Graphviz DOT document.
//
// The document declares node defaults first, then one styled declaration
// per node, then one per edge, both in graph insertion order. Marshalling
// the same graph with the same options is deterministic.
func Marshal(g *callgraph.Graph, opts Options) []byte {
	title := opts.Title
	if title == "" {
		title = g.File()
	}
	title = escapeUnderscores(title, opts.LaTeX)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString(`node [peripheries=2, style="filled,rounded", fontname="Vera Sans Mono", color="#eecc80"];` + "\n")
	buf.WriteString("splines=true;\n")
	if opts.Layout == LayoutTwopi {
		// twopi arranges nodes on concentric circles around the root.
		buf.WriteString("ranksep=5;\n")
		buf.WriteString("root=main;\n")
	} else {
		buf.WriteString("overlap=false;\n")
		buf.WriteString("rankdir=LR;\n")
	}
	fmt.Fprintf(&buf, "label=\"%s\";\n", title)

	for _, n := range g.Nodes() {
		elsewhere := callgraph.DefinedElsewhere(n.Name, g, opts.Siblings)
		fmt.Fprintf(&buf, "%s [label=\"%s\" color=\"%s\" shape=%s];\n",
			n.Name, nodeLabel(n, elsewhere, opts), nodeColor(n.Depth), nodeShape(n.Depth))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "%s -> %s [color=\"%s\"];\n", e.From, e.To, edgeColor)
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}
