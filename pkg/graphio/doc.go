// Package graphio provides JSON import and export for call graphs.
//
// # Overview
//
// This package serializes [callgraph.Graph] values to and from a simple
// JSON format. The format is designed for:
//
//   - Splitting the pipeline: `callchart parse --json` emits graphs that
//     `callchart render` or external tools consume later
//   - Feeding graph databases and one-off scripts without re-running cflow
//   - Round-trip preservation: export then re-import reproduces the graph
//
// # JSON Format
//
// A single graph is an object with the source file and two arrays:
//
//	{
//	  "file": "main.c",
//	  "nodes": [
//	    {"name": "main", "depth": 0, "line": 18},
//	    {"name": "foo", "depth": 1, "line": 5}
//	  ],
//	  "edges": [
//	    {"from": "main", "to": "foo"}
//	  ]
//	}
//
// Node names are the post-escape identifiers that also appear in DOT
// output. The "line" field is omitted for functions whose definition
// site is unknown. Node and edge order is the graph's insertion order,
// so exports are deterministic.
//
// Multiple graphs (one per analyzed source file) are a top-level array
// of the same objects; [WriteAll] and [ReadAll] handle that shape.
//
// # Import
//
// Use [Import] to read from a file path, or [Read] to read from any
// io.Reader:
//
//	g, err := graphio.Import("main.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both validate the decoded structure: duplicate node names and edges
// that reference unknown nodes are errors, wrapped with context naming
// the offending node or edge.
//
// # Export
//
// Use [Export] to write to a file, or [Write] to write to any
// io.Writer:
//
//	err := graphio.Export(g, "main.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package graphio
