package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/callchart/callchart/pkg/callgraph"
)

type graph struct {
	File  string `json:"file"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
	Line  *int   `json:"line,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func encode(g *callgraph.Graph) graph {
	out := graph{
		File:  g.File(),
		Nodes: make([]node, len(g.Nodes())),
		Edges: make([]edge, len(g.Edges())),
	}

	for i, n := range g.Nodes() {
		nd := node{Name: n.Name, Depth: n.Depth}
		if n.Line != callgraph.NoSourceLine {
			line := n.Line
			nd.Line = &line
		}
		out.Nodes[i] = nd
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}
	return out
}

// Write encodes a call graph as JSON and writes it to w.
// The output preserves insertion order and can be re-imported with
// [Read] for round-trip processing.
func Write(g *callgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encode(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteAll encodes several call graphs as a top-level JSON array, one
// element per analyzed source file.
func WriteAll(graphs []*callgraph.Graph, w io.Writer) error {
	out := make([]graph, len(graphs))
	for i, g := range graphs {
		out[i] = encode(g)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes a call graph to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Export(g *callgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ExportAll writes several call graphs to a JSON file at path as a
// top-level array.
func ExportAll(graphs []*callgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAll(graphs, f)
}
