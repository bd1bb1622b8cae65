package graphio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/callchart/callchart/pkg/callgraph"
)

// ErrDuplicateNode is returned when an imported graph declares the same
// node name twice.
var ErrDuplicateNode = errors.New("duplicate node name")

func decode(data graph) (*callgraph.Graph, error) {
	g := callgraph.New(data.File)
	for _, n := range data.Nodes {
		if _, exists := g.Node(n.Name); exists {
			return nil, fmt.Errorf("node %s: %w", n.Name, ErrDuplicateNode)
		}
		line := callgraph.NoSourceLine
		if n.Line != nil {
			line = *n.Line
		}
		if err := g.AddNode(callgraph.Node{Name: n.Name, Depth: n.Depth, Line: line}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.Name, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// Read decodes a JSON call graph from r.
//
// The input must be a JSON object with a "file" string and "nodes" and
// "edges" arrays:
//
//	{
//	  "file": "main.c",
//	  "nodes": [{"name": "main", "depth": 0, "line": 18}],
//	  "edges": [{"from": "main", "to": "foo"}]
//	}
//
// Read returns an error if:
//   - The JSON is malformed or invalid
//   - A node name appears twice ([ErrDuplicateNode])
//   - An edge references an unknown node name
//
// Errors are wrapped with context naming the offending node or edge.
// The returned graph is independent of r and can be modified safely
// after Read returns. Read does not close r.
func Read(r io.Reader) (*callgraph.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return decode(data)
}

// ReadAll decodes call graphs from r: a top-level JSON array, or a
// single graph object which yields a one-element slice. Every element
// is validated the way [Read] does.
func ReadAll(r io.Reader) ([]*callgraph.Graph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if trimmed := bytes.TrimLeft(raw, " \t\r\n"); len(trimmed) > 0 && trimmed[0] != '[' {
		g, err := Read(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return []*callgraph.Graph{g}, nil
	}

	var data []graph
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	graphs := make([]*callgraph.Graph, len(data))
	for i, d := range data {
		g, err := decode(d)
		if err != nil {
			return nil, fmt.Errorf("graph %d (%s): %w", i, d.File, err)
		}
		graphs[i] = g
	}
	return graphs, nil
}

// Import reads a JSON file at path and returns the decoded call graph.
//
// Import opens the file, decodes it using [Read], and closes the file.
// Errors wrap the underlying cause with the file path for context.
func Import(path string) (*callgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// ImportAll reads a JSON file at path containing either a top-level
// array of call graphs or a single graph object.
func ImportAll(path string) ([]*callgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}
