// Package neo4j loads call graphs into a Neo4j database.
//
// Functions become (:Function {name}) nodes and calls become
// [:CALLS {file}] relationships, batched through UNWIND so a whole
// chart loads in two round trips. MERGE keeps repeated exports
// idempotent: re-loading the same sources updates properties in place.
package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/errors"
)

// Loader writes call graphs to a Neo4j database using batch UNWIND
// queries.
type Loader struct {
	driver neo4j.DriverWithContext
}

// NewLoader connects to Neo4j and verifies the connection.
func NewLoader(ctx context.Context, uri, user, password string) (*Loader, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeExport, err, "connect to %s", uri)
	}
	return &Loader{driver: driver}, nil
}

// Close releases the underlying Neo4j driver resources.
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// runCypher runs a single Cypher statement with optional parameters.
func (l *Loader) runCypher(ctx context.Context, cypher string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(ctx, l.driver, cypher, params, neo4j.EagerResultTransformer)
	return err
}

// CleanGraph removes all previously loaded call-graph nodes and
// relationships.
func (l *Loader) CleanGraph(ctx context.Context) error {
	queries := []string{
		"MATCH ()-[r:CALLS]->() DELETE r",
		"MATCH (n:Function) DETACH DELETE n",
	}
	for _, q := range queries {
		if err := l.runCypher(ctx, q, nil); err != nil {
			return errors.Wrap(errors.ErrCodeExport, err, "clean graph")
		}
	}
	return nil
}

// CreateIndexes ensures the required Neo4j indexes exist.
func (l *Loader) CreateIndexes(ctx context.Context) error {
	indexes := []string{
		"CREATE INDEX function_name IF NOT EXISTS FOR (n:Function) ON (n.name)",
		"CREATE INDEX function_file IF NOT EXISTS FOR (n:Function) ON (n.file)",
	}
	for _, q := range indexes {
		if err := l.runCypher(ctx, q, nil); err != nil {
			return errors.Wrap(errors.ErrCodeExport, err, "create indexes")
		}
	}
	return nil
}

// LoadGraphs upserts every graph's functions and calls. Nil graph
// entries (failed analyses) are skipped.
func (l *Loader) LoadGraphs(ctx context.Context, graphs []*callgraph.Graph) error {
	for _, g := range graphs {
		if g == nil {
			continue
		}
		if err := l.loadGraph(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadGraph(ctx context.Context, g *callgraph.Graph) error {
	err := l.runCypher(ctx,
		`UNWIND $batch AS row
		 MERGE (n:Function {name: row.name})
		 SET n.depth = row.depth
		 FOREACH (_ IN CASE WHEN row.line >= 0 THEN [1] ELSE [] END |
		     SET n.file = row.file, n.line = row.line)`,
		map[string]any{"batch": nodeBatch(g)},
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "load functions from %s", g.File())
	}

	batch := edgeBatch(g)
	if len(batch) == 0 {
		return nil
	}
	err = l.runCypher(ctx,
		`UNWIND $batch AS row
		 MATCH (a:Function {name: row.from})
		 MATCH (b:Function {name: row.to})
		 MERGE (a)-[r:CALLS {file: row.file}]->(b)`,
		map[string]any{"batch": batch},
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "load calls from %s", g.File())
	}
	return nil
}

// nodeBatch builds the UNWIND rows for one graph's functions. A node
// with an unknown defining line keeps line -1 and no file property, so
// a later graph that does define the function can claim it.
func nodeBatch(g *callgraph.Graph) []map[string]any {
	nodes := g.Nodes()
	batch := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		batch = append(batch, map[string]any{
			"name":  n.Name,
			"depth": n.Depth,
			"file":  g.File(),
			"line":  n.Line,
		})
	}
	return batch
}

// edgeBatch builds the UNWIND rows for one graph's calls. The source
// file rides along on the relationship so cross-file queries can tell
// call sites apart.
func edgeBatch(g *callgraph.Graph) []map[string]any {
	edges := g.Edges()
	batch := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		batch = append(batch, map[string]any{
			"from": e.From,
			"to":   e.To,
			"file": g.File(),
		})
	}
	return batch
}

// Summary counts what a load would write, for the export command's
// final status line.
func Summary(graphs []*callgraph.Graph) (functions, calls int) {
	seen := make(map[string]bool)
	for _, g := range graphs {
		if g == nil {
			continue
		}
		for _, n := range g.Nodes() {
			if !seen[n.Name] {
				seen[n.Name] = true
				functions++
			}
		}
		calls += g.EdgeCount()
	}
	return functions, calls
}
