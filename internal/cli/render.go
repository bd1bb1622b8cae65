package cli

import (
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/pipeline"
)

// renderCommand creates the render command, the back half of the split
// pipeline: graph JSON in, DOT documents and images out.
func (c *CLI) renderCommand() *cobra.Command {
	var opts pipeline.Options
	var excludeFile string
	var renderer string

	cmd := &cobra.Command{
		Use:   "render <graphs.json>...",
		Short: "Turn graph JSON back into DOT documents and images",
		Long: `Render reads call graphs previously written by "callchart parse" and
produces the DOT documents and requested image formats, exactly as the
emit and render stages of "callchart chart" would.`,
		Example: `  # Render parsed graphs as SVG
  callchart render graphs.json

  # PDF via the neato engine
  callchart render graphs.json -f pdf -l neato`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			graphs, err := loadGraphs(args)
			if err != nil {
				return err
			}
			if len(graphs) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no call graphs in %v", args)
			}

			opts.ExcludeFile = excludeFile
			opts.Backend = renderer
			c.applyConfig(cmd, &opts)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			result, err := runner.Generate(ctx, graphs, opts)
			if err != nil {
				return err
			}
			prog.done("Rendered %d graphs", len(graphs))

			printChartResult(result)
			if !result.OK() {
				return errors.New(errors.ErrCodeInvalidInput, "%d of %d graphs failed", len(result.Failed()), len(result.Files))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.OutputBase, "output", "o", "", "output base name (default \"cflow\")")
	flags.StringSliceVarP(&opts.Formats, "format", "f", nil, "output formats: dot, svg, pdf, png (default svg)")
	flags.StringVarP(&opts.Layout, "layout", "l", "", "layout engine: dot, neato, twopi, circo, fdp, sfdp (default dot)")
	flags.BoolVar(&opts.LaTeX, "latex", false, "escape labels for LaTeX post-processing")
	flags.BoolVar(&opts.MultiPage, "multi-page", false, "add cross-reference anchors for multi-page documents")
	flags.StringVarP(&excludeFile, "exclude", "x", "", "file listing function names to prune, one per line")
	flags.StringVar(&renderer, "renderer", "", "render backend: auto, embedded, exec (default auto)")

	return cmd
}
