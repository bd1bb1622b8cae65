// Package pipeline provides the core charting pipeline for callchart.
//
// This package implements the complete analyze → parse → emit → render
// pipeline that can be used by CLI and server components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Analyze: Run cflow per source file and parse the output into call
//     graphs (fanned out across files, cached by content)
//  2. Prune: Drop excluded functions and their incident calls
//  3. Emit: Write one DOT document per source file
//  4. Render: Produce the requested image formats (SVG, PNG, PDF)
//
// A failing source file does not abort the run: its error is recorded in
// the per-file result and the remaining files complete normally.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Inputs:  []string{"main.c", "lib.c"},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f.Source, "->", f.DotPath)
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/callchart/callchart/pkg/dot"
	"github.com/callchart/callchart/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOutputBase is the stem for generated files; the pipeline
	// appends the file index and extension (cflow0.dot, cflow0.svg, ...).
	DefaultOutputBase = "cflow"

	// DefaultFormat is the image format produced when none is requested.
	// The DOT document itself is always written.
	DefaultFormat = "svg"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the charting pipeline.
// This struct supports JSON serialization for the serve mode.
type Options struct {
	// Analyze options
	Inputs         []string `json:"inputs"`
	Reverse        bool     `json:"reverse,omitempty"`
	Preprocess     bool     `json:"preprocess,omitempty"`
	PreprocessArgs string   `json:"preprocess_args,omitempty"`

	// Prune options
	ExcludeFile string   `json:"exclude_file,omitempty"`
	Exclude     []string `json:"exclude,omitempty"`

	// Emit options
	OutputBase string `json:"output_base,omitempty"`
	LaTeX      bool   `json:"latex,omitempty"`
	MultiPage  bool   `json:"multi_page,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Layout  string   `json:"layout,omitempty"`
	Backend string   `json:"backend,omitempty"`

	// Runtime options (not serialized)
	Concurrency int  `json:"-"`
	Refresh     bool `json:"-"` // bypass cache reads, still writes

	Logger *log.Logger `json:"-"`

	// parsed forms, populated by ValidateAndSetDefaults
	formats []dot.Format
	layout  dot.Layout
	backend dot.Backend

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no input files given")
	}
	for _, in := range o.Inputs {
		if err := errors.ValidateSourcePath(in); err != nil {
			return err
		}
	}

	if o.OutputBase == "" {
		o.OutputBase = DefaultOutputBase
	}
	if err := errors.ValidateOutputBase(o.OutputBase); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats, err := dot.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	o.formats = formats

	layout, err := dot.ParseLayout(o.Layout)
	if err != nil {
		return err
	}
	o.layout = layout

	backend, err := dot.ParseBackend(o.Backend)
	if err != nil {
		return err
	}
	o.backend = backend

	for _, name := range o.Exclude {
		if err := errors.ValidateFunctionName(name); err != nil {
			return err
		}
	}

	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	if o.Concurrency > len(o.Inputs) {
		o.Concurrency = len(o.Inputs)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// RenderFormats returns the validated formats that need rendering, i.e.
// everything requested except the always-written DOT source.
func (o *Options) RenderFormats() []dot.Format {
	var out []dot.Format
	for _, f := range o.formats {
		if f != dot.FormatDOT {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Files holds one entry per input, in input order.
	Files []FileResult

	// Stats contains timing and tool information.
	Stats Stats
}

// FileResult describes the outcome for a single source file.
type FileResult struct {
	// Source is the analyzed file as given in Options.Inputs.
	Source string

	// DotPath is the written DOT document, empty if the file failed.
	DotPath string

	// Images maps rendered formats to their output paths.
	Images map[string]string

	// Nodes and Edges count the pruned graph.
	Nodes int
	Edges int

	// AnalysisCacheHit reports whether cflow output came from cache.
	AnalysisCacheHit bool

	// RenderCacheHits counts images served from cache.
	RenderCacheHits int

	// Err is non-nil if this file failed any stage.
	Err error
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AnalyzeTime  time.Duration
	EmitTime     time.Duration
	RenderTime   time.Duration
	CflowVersion string
}

// Failed returns the entries that did not complete.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// OK reports whether every file completed.
func (r *Result) OK() bool {
	return len(r.Failed()) == 0
}
