// Package dot turns call graphs into Graphviz DOT documents and renders
// them to images.
//
// # Overview
//
// [Marshal] produces the DOT source for one [callgraph.Graph]: a titled
// digraph whose nodes are colored and shaped by call depth and whose
// labels can carry defining source lines, LaTeX-safe underscores, and
// multi-page cross-reference anchors. [Renderer] converts that source to
// SVG, PNG or PDF.
//
// # Usage
//
//	doc := dot.Marshal(g, dot.Options{})
//	r := dot.Renderer{Backend: dot.BackendAuto}
//	svg, err := r.Render(ctx, doc, dot.FormatSVG, dot.LayoutDot)
//
// # Styling
//
// Node fill colors and shapes cycle with the call depth of each
// function's first occurrence, so sibling depths are visually grouped
// across graphs. Edges are uniformly black. The scheme follows the
// classic cflow2dot palette.
//
// # Backends
//
// Two render backends exist. The embedded backend uses
// [github.com/goccy/go-graphviz] and needs no installed software; it
// covers SVG and PNG with the standard dot engine. The exec backend
// shells out to the Graphviz layout binaries (dot, neato, twopi, circo,
// fdp, sfdp) and covers every format and engine, including PDF.
// [BackendAuto] picks the embedded path when it is capable and falls
// back to the external tools otherwise.
package dot
