package cli

import (
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/pkg/cflow"
	"github.com/callchart/callchart/pkg/dot"
	"github.com/callchart/callchart/pkg/errors"
)

// toolsCommand creates the tools command, which reports the external
// collaborators callchart shells out to and whether they are installed.
func (c *CLI) toolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Report resolved cflow and Graphviz binaries",
		Long: `Tools resolves the cflow and Graphviz binaries callchart would invoke,
honoring [tools] overrides from the config file, and prints their paths
and versions. Missing tools are reported with install hints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			missing := false

			analyzer := cflow.Runner{Command: c.cfg.Tools.Cflow}
			if path, err := analyzer.Lookup(); err != nil {
				missing = true
				printError("cflow not found")
				printDetail("%v", err)
			} else {
				version, _ := analyzer.Version(ctx)
				printSuccess("cflow")
				printKeyValue("path", path)
				printKeyValue("version", version)
			}

			renderer := dot.Renderer{Command: c.cfg.Tools.Graphviz}
			if path, err := renderer.Lookup(dot.LayoutDot); err != nil {
				missing = true
				printError("graphviz not found")
				printDetail("%v", err)
			} else {
				version, _ := renderer.Version(ctx)
				printSuccess("graphviz")
				printKeyValue("path", path)
				printKeyValue("version", version)
			}

			if missing {
				return errors.New(errors.ErrCodeToolNotFound, "required tools are missing")
			}
			return nil
		},
	}
}
