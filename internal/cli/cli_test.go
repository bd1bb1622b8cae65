package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/callchart/callchart/internal/config"
	"github.com/callchart/callchart/pkg/cache"
	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/graphio"
	"github.com/callchart/callchart/pkg/pipeline"
)

func testCLI() *CLI {
	return New(os.Stderr, log.WarnLevel)
}

func TestResolveCacheDir(t *testing.T) {
	tests := []struct {
		name      string
		flagDir   string
		configDir string
		want      string
	}{
		{
			name:    "flag wins",
			flagDir: "/tmp/flag-cache",
			want:    "/tmp/flag-cache",
		},
		{
			name:      "flag wins over config",
			flagDir:   "/tmp/flag-cache",
			configDir: "/tmp/config-cache",
			want:      "/tmp/flag-cache",
		},
		{
			name:      "config wins over default",
			configDir: "/tmp/config-cache",
			want:      "/tmp/config-cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI()
			c.cacheDir = tt.flagDir
			c.cfg.Cache.Dir = tt.configDir

			dir, err := c.resolveCacheDir()
			if err != nil {
				t.Fatalf("resolveCacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("resolveCacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestResolveCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := testCLI()
	dir, err := c.resolveCacheDir()
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("resolveCacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("no-cache flag selects null", func(t *testing.T) {
		c := testCLI()
		c.noCache = true

		store, err := c.newCache(ctx)
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		if _, ok := store.(*cache.NullCache); !ok {
			t.Errorf("newCache() = %T, want *cache.NullCache", store)
		}
	})

	t.Run("backend none selects null", func(t *testing.T) {
		c := testCLI()
		c.cfg.Cache.Backend = config.BackendNone

		store, err := c.newCache(ctx)
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		if _, ok := store.(*cache.NullCache); !ok {
			t.Errorf("newCache() = %T, want *cache.NullCache", store)
		}
	})

	t.Run("file backend uses the cache dir", func(t *testing.T) {
		c := testCLI()
		c.cacheDir = filepath.Join(t.TempDir(), "cache")

		store, err := c.newCache(ctx)
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		fc, ok := store.(*cache.FileCache)
		if !ok {
			t.Fatalf("newCache() = %T, want *cache.FileCache", store)
		}
		if fc.Dir() != c.cacheDir {
			t.Errorf("cache dir = %q, want %q", fc.Dir(), c.cacheDir)
		}
	})
}

func TestApplyConfig(t *testing.T) {
	c := testCLI()
	c.cfg.Output.Formats = []string{"pdf"}
	c.cfg.Output.Layout = "twopi"
	c.cfg.Output.Base = "charts/out"
	c.cfg.Exclude.Functions = []string{"printf"}
	c.cfg.Exclude.File = "exclude.txt"

	cmd := c.chartCommand()
	var opts pipeline.Options
	c.applyConfig(cmd, &opts)

	if !reflect.DeepEqual(opts.Formats, []string{"pdf"}) {
		t.Errorf("Formats = %v, want [pdf]", opts.Formats)
	}
	if opts.Layout != "twopi" {
		t.Errorf("Layout = %q, want twopi", opts.Layout)
	}
	if opts.OutputBase != "charts/out" {
		t.Errorf("OutputBase = %q, want charts/out", opts.OutputBase)
	}
	if opts.ExcludeFile != "exclude.txt" {
		t.Errorf("ExcludeFile = %q, want exclude.txt", opts.ExcludeFile)
	}
	if !reflect.DeepEqual(opts.Exclude, []string{"printf"}) {
		t.Errorf("Exclude = %v, want [printf]", opts.Exclude)
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	c := testCLI()
	c.cfg.Output.Formats = []string{"pdf"}
	c.cfg.Output.Layout = "twopi"

	cmd := c.chartCommand()
	if err := cmd.Flags().Set("format", "png"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("layout", "neato"); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Formats: []string{"png"}, Layout: "neato"}
	c.applyConfig(cmd, &opts)

	if !reflect.DeepEqual(opts.Formats, []string{"png"}) {
		t.Errorf("Formats = %v, config should not override a set flag", opts.Formats)
	}
	if opts.Layout != "neato" {
		t.Errorf("Layout = %q, config should not override a set flag", opts.Layout)
	}
}

func TestLoadGraphs(t *testing.T) {
	g := callgraph.New("main.c")
	if err := g.AddNode(callgraph.Node{Name: "main", Depth: 0, Line: 1}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "graphs.json")
	if err := graphio.ExportAll([]*callgraph.Graph{g}, path); err != nil {
		t.Fatalf("ExportAll() error: %v", err)
	}

	graphs, err := loadGraphs([]string{path})
	if err != nil {
		t.Fatalf("loadGraphs() error: %v", err)
	}
	if len(graphs) != 1 || graphs[0].File() != "main.c" {
		t.Errorf("loadGraphs() = %v, want the exported graph", graphs)
	}

	if _, err := loadGraphs([]string{filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("loadGraphs() with a missing file should fail")
	}
}

func TestLatexPreambleCommand(t *testing.T) {
	c := testCLI()
	cmd := c.latexPreambleCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("latex-preamble error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`\newcommand{\descitem}`, `\newcommand{\descref}`, `\usepackage{hyperref}`} {
		if !strings.Contains(out, want) {
			t.Errorf("preamble missing %q", want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"chart", "parse", "render", "serve", "export", "cache", "tools", "latex-preamble", "completion"}
	have := make(map[string]bool)
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
