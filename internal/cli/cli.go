// Package cli implements the callchart command-line interface.
//
// This package provides commands for charting C sources end to end,
// splitting the pipeline into parse and render steps, previewing graphs
// in the browser, exporting them to Neo4j and managing the artifact
// cache. The CLI is built using cobra with charmbracelet/log for
// logging and lipgloss for styled status output.
//
// # Commands
//
// The main commands are:
//   - chart: Run cflow over C sources and render call graphs
//   - parse: Analyze sources and write call graphs as JSON
//   - render: Turn graph JSON back into DOT documents and images
//   - serve: Preview call graphs in the browser
//   - export: Load call graphs into external stores (Neo4j)
//   - cache: Manage the analysis and render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --quiet (-q) to suppress everything below warnings. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/callchart/callchart/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/callchart/callchart/internal/config"
	"github.com/callchart/callchart/pkg/buildinfo"
	"github.com/callchart/callchart/pkg/cache"
	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/graphio"
	"github.com/callchart/callchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "callchart"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        config.Config
	configPath string
	cacheDir   string
	noCache    bool
	verbose    bool
	quiet      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "callchart",
		Short:        "Callchart turns cflow output into Graphviz call graphs",
		Long:         `Callchart runs GNU cflow over C source files, builds directed call graphs and renders them with Graphviz. Charts can be produced end to end, split into parse and render steps, previewed in the browser or exported to Neo4j.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "only log warnings and errors")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the analysis and render cache")
	pf.StringVar(&c.cacheDir, "cache-dir", "", "cache directory (default ~/.cache/callchart)")
	pf.StringVar(&c.configPath, "config", "", "config file (default ./callchart.toml, then XDG config dir)")

	// Register all subcommands
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.toolsCommand())
	root.AddCommand(c.latexPreambleCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration file and applies the logging flags. It
// runs once per invocation before any command body.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	switch {
	case c.verbose:
		c.Logger.SetLevel(log.DebugLevel)
	case c.quiet:
		c.Logger.SetLevel(log.WarnLevel)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner wired to the configured cache
// backend and external tool overrides.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, c.Logger)
	r.Cflow.Command = c.cfg.Tools.Cflow
	r.Renderer.Command = c.cfg.Tools.Graphviz
	return r, nil
}

// newCache selects the cache backend. A misconfigured Redis fails the
// run; an unusable file cache silently degrades to no caching.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache || c.cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr)
	}

	dir, err := c.resolveCacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// resolveCacheDir picks the cache directory: the --cache-dir flag wins,
// then the config file, then the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	if c.cacheDir != "" {
		return c.cacheDir, nil
	}
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills pipeline options from the config file for every
// setting whose flag was not given on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("format") && len(c.cfg.Output.Formats) > 0 {
		opts.Formats = c.cfg.Output.Formats
	}
	if !flags.Changed("layout") && c.cfg.Output.Layout != "" {
		opts.Layout = c.cfg.Output.Layout
	}
	if !flags.Changed("output") && c.cfg.Output.Base != "" {
		opts.OutputBase = c.cfg.Output.Base
	}
	if opts.ExcludeFile == "" {
		opts.ExcludeFile = c.cfg.Exclude.File
	}
	opts.Exclude = append(opts.Exclude, c.cfg.Exclude.Functions...)
	opts.Refresh = opts.Refresh || c.noCache
}

// loadGraphs reads call graphs from JSON files produced by parse.
func loadGraphs(paths []string) ([]*callgraph.Graph, error) {
	var graphs []*callgraph.Graph
	for _, path := range paths {
		gs, err := graphio.ImportAll(path)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, gs...)
	}
	return graphs, nil
}
