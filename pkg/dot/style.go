package dot

import (
	"fmt"
	"strings"

	"github.com/callchart/callchart/pkg/callgraph"
)

// Fill colors and shapes cycled by call depth. Depth 0 always takes the
// first entry of each table; deeper levels rotate with different phases
// so neighboring depths differ in both color and outline.
var (
	nodeColors = [...]string{"#eecc80", "#ccee80", "#80ccee", "#eecc80", "#80eecc"}
	nodeShapes = [...]string{"box", "ellipse", "octagon", "hexagon", "diamond"}
)

// edgeColor is used for every edge.
const edgeColor = "#000000"

// nodeColor returns the fill color for a node at the given depth.
func nodeColor(depth int) string {
	if depth == 0 {
		return nodeColors[0]
	}
	return nodeColors[(depth-1)%len(nodeColors)]
}

// nodeShape returns the outline shape for a node at the given depth.
func nodeShape(depth int) string {
	if depth == 0 {
		return nodeShapes[0]
	}
	return nodeShapes[depth%len(nodeShapes)]
}

// escapeUnderscores doubles-escapes underscores for LaTeX post-processing.
// The emitted text contains a literal `\\_`; the DOT writer keeps it
// verbatim and the LaTeX toolchain reduces it to an escaped underscore.
func escapeUnderscores(s string, forLaTeX bool) string {
	if !forLaTeX {
		return s
	}
	return strings.ReplaceAll(s, "_", `\\_`)
}

// nodeLabel assembles the display label for a node.
//
// The base is the function name, underscore-escaped in LaTeX mode. A
// known defining line is appended on a second label line using the DOT
// line-break token `\n` (kept literal in the output). In multi-page mode
// the label additionally becomes a document anchor: functions defined on
// this page are wrapped as description items keyed by function name,
// functions defined on a sibling page become references to that page.
func nodeLabel(n *callgraph.Node, definedElsewhere bool, opts Options) string {
	label := escapeUnderscores(n.Name, opts.LaTeX)
	if n.Line != callgraph.NoSourceLine {
		label = fmt.Sprintf("%s\\n%d", label, n.Line)
	}
	if opts.MultiPage {
		switch {
		case n.Line != callgraph.NoSourceLine:
			label = `\\descitem{` + n.Name + `}\n` + label
		case definedElsewhere:
			label = `\\descref[` + label + `]{` + n.Name + `}`
		}
	}
	return label
}
