package cli

import (
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/pipeline"
)

// chartCommand creates the chart command, the end-to-end pipeline:
// cflow analysis, call-graph construction, pruning, DOT emission and
// image rendering in one run.
func (c *CLI) chartCommand() *cobra.Command {
	var opts pipeline.Options
	var excludeFile string
	var renderer string

	cmd := &cobra.Command{
		Use:   "chart [files...]",
		Short: "Run cflow over C sources and render call graphs",
		Long: `Chart runs GNU cflow over the given C source files, builds one directed
call graph per file and renders each as an image with Graphviz.

Every run writes the DOT documents (cflow0.dot, cflow1.dot, ...) next to
the requested image formats. With no file arguments on a terminal, an
interactive picker lists the C sources under the current directory.`,
		Example: `  # Chart a single file as SVG
  callchart chart main.c

  # Several files, PDF and PNG, radial layout
  callchart chart *.c -f pdf,png -l twopi

  # LaTeX-ready multi-page output with an exclusion list
  callchart chart src/*.c --latex --multi-page -x exclude.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			inputs := args
			if len(inputs) == 0 {
				picked, err := pickSources(".")
				if err != nil {
					return err
				}
				inputs = picked
			}

			opts.Inputs = inputs
			opts.ExcludeFile = excludeFile
			opts.Backend = renderer
			c.applyConfig(cmd, &opts)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			result, err := runner.Execute(ctx, opts)
			if err != nil {
				return err
			}
			prog.done("Charted %d files", len(inputs))

			printChartResult(result)
			if !result.OK() {
				return errors.New(errors.ErrCodeInvalidInput, "%d of %d files failed", len(result.Failed()), len(result.Files))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.OutputBase, "output", "o", "", "output base name (default \"cflow\")")
	flags.StringSliceVarP(&opts.Formats, "format", "f", nil, "output formats: dot, svg, pdf, png (default svg)")
	flags.StringVarP(&opts.Layout, "layout", "l", "", "layout engine: dot, neato, twopi, circo, fdp, sfdp (default dot)")
	flags.BoolVar(&opts.LaTeX, "latex", false, "escape labels for LaTeX post-processing")
	flags.BoolVar(&opts.MultiPage, "multi-page", false, "add cross-reference anchors for multi-page documents (implies --latex labels)")
	flags.BoolVar(&opts.Reverse, "reverse", false, "chart callees up to callers instead of callers down to callees")
	flags.BoolVar(&opts.Preprocess, "cpp", false, "run sources through the C preprocessor first")
	flags.StringVar(&opts.PreprocessArgs, "cpp-args", "", "extra preprocessor arguments (implies --cpp)")
	flags.StringVarP(&excludeFile, "exclude", "x", "", "file listing function names to prune, one per line")
	flags.StringVar(&renderer, "renderer", "", "render backend: auto, embedded, exec (default auto)")
	flags.IntVarP(&opts.Concurrency, "jobs", "j", 0, "parallel cflow invocations (default number of CPUs)")

	return cmd
}

// printChartResult prints the styled per-file summary after a chart run.
func printChartResult(result *pipeline.Result) {
	for _, f := range result.Files {
		if f.Err != nil {
			printError("%s", f.Source)
			printDetail("%v", f.Err)
			continue
		}
		printSuccess("%s", f.Source)
		printStats(f.Nodes, f.Edges, f.AnalysisCacheHit)
		if f.DotPath != "" {
			printFile(f.DotPath)
		}
		for _, path := range sortedPaths(f.Images) {
			printFile(path)
		}
	}
}

// sortedPaths returns image output paths in a stable format order.
func sortedPaths(images map[string]string) []string {
	var paths []string
	for _, format := range []string{"svg", "pdf", "png"} {
		if p, ok := images[format]; ok {
			paths = append(paths, p)
		}
	}
	return paths
}
