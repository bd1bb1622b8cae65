package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/callchart/callchart/pkg/cache"
	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/cflow"
	"github.com/callchart/callchart/pkg/dot"
	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// Cflow runs the analyzer; its Command may be overridden from config.
	Cflow cflow.Runner

	// Renderer produces images; its Command may be overridden from config.
	Renderer dot.Renderer
}

// NewRunner creates a runner with the given cache and logger.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete analyze → prune → emit → render pipeline.
//
// Execute returns an error only for failures that sink the whole run:
// invalid options, an unreadable exclusion list, a missing cflow binary
// or a canceled context. Per-file failures land in the corresponding
// [FileResult] and leave the remaining files untouched; check
// [Result.OK] before reporting success.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	exclusions, err := Exclusions(opts.ExcludeFile, opts.Exclude)
	if err != nil {
		return nil, err
	}

	// The version feeds analysis cache keys; a missing binary fails the
	// run up front with the install hint rather than once per file.
	version, err := r.Cflow.Version(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileResult, len(opts.Inputs))}
	result.Stats.CflowVersion = version

	// Stage 1: Analyze
	analyzeStart := time.Now()
	graphs, err := r.analyze(ctx, &opts, version, result)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	if err != nil {
		return result, err
	}

	opts.Logger.Info("analyzed sources",
		"files", len(opts.Inputs),
		"failed", len(result.Failed()),
		"cflow", version,
		"duration", result.Stats.AnalyzeTime)

	r.generate(ctx, graphs, exclusions, &opts, result)
	return result, nil
}

// Analyze runs only the analyze and prune stages: cflow per input,
// call-graph construction, exclusion pruning. Graphs come back slotted
// by input position, nil where that file failed; pair each slot with
// the matching [FileResult] for the error. The `parse` command uses
// this to export graph JSON without emitting DOT.
func (r *Runner) Analyze(ctx context.Context, opts Options) ([]*callgraph.Graph, *Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}

	exclusions, err := Exclusions(opts.ExcludeFile, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	version, err := r.Cflow.Version(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{Files: make([]FileResult, len(opts.Inputs))}
	result.Stats.CflowVersion = version

	analyzeStart := time.Now()
	graphs, err := r.analyze(ctx, &opts, version, result)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	if err != nil {
		return graphs, result, err
	}

	Prune(graphs, exclusions)
	for i, g := range graphs {
		if g != nil {
			result.Files[i].Nodes = g.NodeCount()
			result.Files[i].Edges = g.EdgeCount()
		}
	}
	return graphs, result, nil
}

// Generate runs the prune → emit → render stages over graphs built
// elsewhere, typically imported from graph JSON. Inputs are implied by
// the graphs' source files; the analyze options are ignored.
func (r *Runner) Generate(ctx context.Context, graphs []*callgraph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if len(opts.Inputs) == 0 {
		for _, g := range graphs {
			if g != nil {
				opts.Inputs = append(opts.Inputs, g.File())
			}
		}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	exclusions, err := Exclusions(opts.ExcludeFile, opts.Exclude)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileResult, len(graphs))}
	for i, g := range graphs {
		if g != nil {
			result.Files[i].Source = g.File()
		}
	}

	r.generate(ctx, graphs, exclusions, &opts, result)
	return result, nil
}

// generate is the shared back half of the pipeline: prune exclusions,
// emit DOT documents, render images, log the summary.
func (r *Runner) generate(ctx context.Context, graphs []*callgraph.Graph, exclusions []string, opts *Options, result *Result) {
	// Stage 2: Prune
	Prune(graphs, exclusions)
	for i, g := range graphs {
		if g != nil {
			result.Files[i].Nodes = g.NodeCount()
			result.Files[i].Edges = g.EdgeCount()
		}
	}

	// Stage 3: Emit
	emitStart := time.Now()
	observability.Pipeline().OnEmitStart(ctx, countGraphs(graphs))
	docs := r.emit(graphs, opts, result)
	result.Stats.EmitTime = time.Since(emitStart)
	observability.Pipeline().OnEmitComplete(ctx, result.Stats.EmitTime, nil)

	// Stage 4: Render
	formats := opts.RenderFormats()
	if len(formats) > 0 {
		renderStart := time.Now()
		observability.Pipeline().OnRenderStart(ctx, formatStrings(formats))
		r.render(ctx, docs, opts, result)
		result.Stats.RenderTime = time.Since(renderStart)
		observability.Pipeline().OnRenderComplete(ctx, formatStrings(formats), result.Stats.RenderTime, nil)
	}

	opts.Logger.Info("chart complete",
		"graphs", countGraphs(graphs),
		"formats", opts.Formats,
		"failed", len(result.Failed()),
		"duration", result.Stats.AnalyzeTime+result.Stats.EmitTime+result.Stats.RenderTime)
}

// analyze charts every input in parallel. Results are slotted by input
// position; a file's failure is recorded and the siblings continue.
func (r *Runner) analyze(ctx context.Context, opts *Options, version string, result *Result) ([]*callgraph.Graph, error) {
	graphs := make([]*callgraph.Graph, len(opts.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, file := range opts.Inputs {
		result.Files[i].Source = file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			observability.Pipeline().OnAnalyzeStart(gctx, file)
			start := time.Now()
			parsed, hit, err := r.analyzeOne(gctx, file, opts, version)

			nodes := 0
			if parsed != nil {
				nodes = parsed.NodeCount()
			}
			observability.Pipeline().OnAnalyzeComplete(gctx, file, nodes, time.Since(start), err)

			result.Files[i].AnalysisCacheHit = hit
			if err != nil {
				result.Files[i].Err = err
				opts.Logger.Warn("analysis failed", "file", file, "err", err)
				return nil // keep charting the remaining files
			}
			graphs[i] = parsed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return graphs, err
	}
	return graphs, nil
}

// analyzeOne produces the call graph for one source file, consulting
// the analysis cache keyed on source bytes, cflow argv and version.
func (r *Runner) analyzeOne(ctx context.Context, file string, opts *Options, version string) (*callgraph.Graph, bool, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", file)
	}

	cfopts := cflow.Options{
		Preprocess:     opts.Preprocess,
		PreprocessArgs: opts.PreprocessArgs,
		Reverse:        opts.Reverse,
	}
	key := cache.AnalysisKey(source, r.Cflow.Args(file, cfopts), version)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "analysis")
			g, err := callgraph.Parse(string(data), file)
			return g, true, err
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	out, err := r.Cflow.Run(ctx, file, cfopts)
	if err != nil {
		return nil, false, err
	}

	g, err := callgraph.Parse(string(out), file)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, out, cache.AnalysisTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "analysis", len(out))
	}
	return g, false, nil
}

// emit writes one DOT document per surviving graph. Output files are
// numbered densely over the successes (base0.dot, base1.dot, ...), the
// naming scheme downstream LaTeX templates rely on.
func (r *Runner) emit(graphs []*callgraph.Graph, opts *Options, result *Result) [][]byte {
	siblings := make([]*callgraph.Graph, 0, len(graphs))
	for _, g := range graphs {
		if g != nil {
			siblings = append(siblings, g)
		}
	}

	docs := make([][]byte, len(graphs))
	index := 0
	for i, g := range graphs {
		if g == nil {
			continue
		}

		doc := dot.Marshal(g, dot.Options{
			LaTeX:     opts.LaTeX,
			MultiPage: opts.MultiPage,
			Layout:    opts.layout,
			Siblings:  siblings,
		})
		path := fmt.Sprintf("%s%d.dot", opts.OutputBase, index)

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				result.Files[i].Err = fmt.Errorf("create %s: %w", dir, err)
				continue
			}
		}
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			result.Files[i].Err = fmt.Errorf("write %s: %w", path, err)
			continue
		}
		index++

		docs[i] = doc
		result.Files[i].DotPath = path
		opts.Logger.Debug("wrote dot", "source", g.File(), "path", path,
			"nodes", g.NodeCount(), "edges", g.EdgeCount())
	}
	return docs
}

// render produces every requested image format for every emitted
// document, consulting the render cache keyed on document content.
func (r *Runner) render(ctx context.Context, docs [][]byte, opts *Options, result *Result) {
	formats := opts.RenderFormats()

	for i := range docs {
		if docs[i] == nil || result.Files[i].Err != nil {
			continue
		}
		result.Files[i].Images = make(map[string]string, len(formats))

		for _, format := range formats {
			data, hit, err := r.renderOne(ctx, docs[i], format, opts)
			if err != nil {
				result.Files[i].Err = err
				opts.Logger.Warn("render failed", "source", result.Files[i].Source,
					"format", format, "err", err)
				break
			}
			if hit {
				result.Files[i].RenderCacheHits++
			}

			path := strings.TrimSuffix(result.Files[i].DotPath, ".dot") + "." + string(format)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				result.Files[i].Err = fmt.Errorf("write %s: %w", path, err)
				break
			}
			result.Files[i].Images[string(format)] = path
			opts.Logger.Debug("wrote image", "path", path, "bytes", len(data), "cached", hit)
		}
	}
}

// renderOne converts a DOT document to one image format with caching.
func (r *Runner) renderOne(ctx context.Context, doc []byte, format dot.Format, opts *Options) ([]byte, bool, error) {
	key := cache.RenderKey(doc, string(format), string(opts.layout))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	renderer := r.Renderer
	renderer.Backend = opts.backend
	data, err := renderer.Render(ctx, doc, format, opts.layout)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.RenderTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countGraphs(graphs []*callgraph.Graph) int {
	n := 0
	for _, g := range graphs {
		if g != nil {
			n++
		}
	}
	return n
}

func formatStrings(formats []dot.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
