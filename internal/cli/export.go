package cli

import (
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/internal/export/neo4j"
	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/pipeline"
)

// exportCommand creates the export command group.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load call graphs into external stores",
	}

	cmd.AddCommand(c.exportNeo4jCommand())

	return cmd
}

// exportNeo4jCommand creates the "export neo4j" subcommand.
func (c *CLI) exportNeo4jCommand() *cobra.Command {
	var uri, user, password string
	var clean bool
	var fromJSON string
	var excludeFile string

	cmd := &cobra.Command{
		Use:   "neo4j [files...]",
		Short: "Load call graphs into a Neo4j database",
		Long: `Export neo4j analyzes the given C sources (or reads graph JSON written
by "callchart parse") and loads the call graphs into Neo4j: one
(:Function) node per distinct function, one [:CALLS] relationship per
call. Loads are idempotent; --clean wipes previous call data first.`,
		Example: `  callchart export neo4j src/*.c --uri bolt://localhost:7687 --user neo4j --password secret

  # From pre-parsed graphs, replacing earlier data
  callchart export neo4j --from graphs.json --clean --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var graphs []*callgraph.Graph
			switch {
			case fromJSON != "":
				var err error
				if graphs, err = loadGraphs([]string{fromJSON}); err != nil {
					return err
				}
			case len(args) > 0:
				runner, err := c.newRunner(ctx)
				if err != nil {
					return err
				}
				defer runner.Close()

				opts := pipeline.Options{Inputs: args, ExcludeFile: excludeFile}
				c.applyConfig(cmd, &opts)

				parsed, result, err := runner.Analyze(ctx, opts)
				if err != nil {
					return err
				}
				for _, f := range result.Failed() {
					printWarning("skipping %s: %v", f.Source, f.Err)
				}
				graphs = parsed
			default:
				return errors.New(errors.ErrCodeInvalidInput, "give source files or --from graphs.json")
			}

			functions, calls := neo4j.Summary(graphs)
			if functions == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no call graphs to export")
			}

			loader, err := neo4j.NewLoader(ctx, uri, user, password)
			if err != nil {
				return err
			}
			defer loader.Close(ctx)

			prog := newProgress(logger)
			if clean {
				if err := loader.CleanGraph(ctx); err != nil {
					return err
				}
			}
			if err := loader.CreateIndexes(ctx); err != nil {
				return err
			}
			if err := loader.LoadGraphs(ctx, graphs); err != nil {
				return err
			}
			prog.done("Exported call graphs")

			printSuccess("Loaded %d functions and %d calls", functions, calls)
			printNextStep("Query them", `MATCH (f:Function)-[:CALLS]->(g) RETURN f.name, g.name`)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&uri, "uri", "bolt://localhost:7687", "neo4j connection URI")
	flags.StringVar(&user, "user", "neo4j", "neo4j user")
	flags.StringVar(&password, "password", "", "neo4j password")
	flags.BoolVar(&clean, "clean", false, "remove previously loaded call data first")
	flags.StringVar(&fromJSON, "from", "", "read graphs from JSON instead of analyzing sources")
	flags.StringVarP(&excludeFile, "exclude", "x", "", "file listing function names to prune, one per line")

	return cmd
}
