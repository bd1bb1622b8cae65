package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/cflow"
	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/graphio"
	"github.com/callchart/callchart/pkg/pipeline"
)

// parseCommand creates the parse command: cflow analysis and call-graph
// construction only, written as graph JSON for scripted pipelines.
func (c *CLI) parseCommand() *cobra.Command {
	var output string
	var excludeFile string
	var cfopts cflow.Options

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Analyze C sources and write call graphs as JSON",
		Long: `Parse runs GNU cflow over the given C source files and writes the
resulting call graphs as JSON, one array element per file. The output
can be inspected, filtered or fed back into "callchart render".`,
		Example: `  # Write call graphs for two files
  callchart parse main.c util.c -o graphs.json

  # Pipe to stdout for jq processing
  callchart parse main.c -o - | jq '.[0].nodes | length'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				Inputs:         args,
				Reverse:        cfopts.Reverse,
				Preprocess:     cfopts.Preprocess,
				PreprocessArgs: cfopts.PreprocessArgs,
				ExcludeFile:    excludeFile,
			}
			c.applyConfig(cmd, &opts)

			prog := newProgress(logger)
			graphs, result, err := runner.Analyze(ctx, opts)
			if err != nil {
				return err
			}
			prog.done("Parsed call graphs")

			var ok []*callgraph.Graph
			for _, g := range graphs {
				if g != nil {
					ok = append(ok, g)
				}
			}
			for _, f := range result.Failed() {
				printError("%s", f.Source)
				printDetail("%v", f.Err)
			}

			if output == "-" {
				if err := graphio.WriteAll(ok, os.Stdout); err != nil {
					return err
				}
			} else {
				if err := graphio.ExportAll(ok, output); err != nil {
					return err
				}
				printSuccess("Wrote %d call graphs", len(ok))
				printFile(output)
				printNextStep("Render them", "callchart render "+output)
			}

			if !result.OK() {
				return errors.New(errors.ErrCodeInvalidInput, "%d of %d files failed", len(result.Failed()), len(result.Files))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "graphs.json", "output JSON path, - for stdout")
	flags.BoolVar(&cfopts.Reverse, "reverse", false, "chart callees up to callers instead of callers down to callees")
	flags.BoolVar(&cfopts.Preprocess, "cpp", false, "run sources through the C preprocessor first")
	flags.StringVar(&cfopts.PreprocessArgs, "cpp-args", "", "extra preprocessor arguments (implies --cpp)")
	flags.StringVarP(&excludeFile, "exclude", "x", "", "file listing function names to prune, one per line")

	return cmd
}
