package cli

import (
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/internal/server"
	"github.com/callchart/callchart/pkg/dot"
	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/pipeline"
)

// serveCommand creates the serve command: analyze the sources once and
// preview the rendered charts in the browser.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var layout string
	var excludeFile string
	var cfopts struct {
		reverse bool
		cpp     bool
		cppArgs string
	}

	cmd := &cobra.Command{
		Use:   "serve [files...]",
		Short: "Preview call graphs in the browser",
		Long: `Serve analyzes the given C sources, renders every call graph as SVG and
serves them over HTTP. The snapshot is built once at startup; restart
the server to pick up source changes.`,
		Example: `  callchart serve src/*.c
  callchart serve main.c --addr :9000 -l twopi`,
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

			opts := pipeline.Options{
				Inputs:         inputs,
				Reverse:        cfopts.reverse,
				Preprocess:     cfopts.cpp,
				PreprocessArgs: cfopts.cppArgs,
				ExcludeFile:    excludeFile,
				Layout:         layout,
			}
			c.applyConfig(cmd, &opts)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			graphs, result, err := runner.Analyze(ctx, opts)
			if err != nil {
				return err
			}
			for _, f := range result.Failed() {
				printWarning("skipping %s: %v", f.Source, f.Err)
			}

			parsedLayout, err := dot.ParseLayout(layout)
			if err != nil {
				return err
			}

			spin := newSpinner(ctx, "Rendering charts...")
			spin.Start()
			snapshot, err := server.NewSnapshot(ctx, graphs, dot.Options{Layout: parsedLayout}, runner.Renderer)
			spin.Stop()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "build snapshot")
			}

			printSuccess("Serving %d call graphs", len(snapshot.Charts))
			printNextStep("Open", "http://localhost"+addr)

			srv := server.New(snapshot, logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8173", "listen address")
	flags.StringVarP(&layout, "layout", "l", "", "layout engine: dot, neato, twopi, circo, fdp, sfdp (default dot)")
	flags.BoolVar(&cfopts.reverse, "reverse", false, "chart callees up to callers instead of callers down to callees")
	flags.BoolVar(&cfopts.cpp, "cpp", false, "run sources through the C preprocessor first")
	flags.StringVar(&cfopts.cppArgs, "cpp-args", "", "extra preprocessor arguments (implies --cpp)")
	flags.StringVarP(&excludeFile, "exclude", "x", "", "file listing function names to prune, one per line")

	return cmd
}
