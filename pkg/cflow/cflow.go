// Package cflow runs GNU cflow and captures its output for parsing.
//
// The runner always passes -l so that every line carries the numbered
// nesting depth the parser keys on. Preprocessing and reversed
// (callee to caller) trees map onto cflow's --cpp and --reverse flags.
package cflow

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/observability"
)

// installHint is appended to errors when the cflow binary is missing.
const installHint = "analysis requires GNU cflow. Install with:\n  macOS:  brew install cflow\n  Linux:  apt install cflow"

// Options control a single cflow invocation.
type Options struct {
	// Preprocess runs the source through the C preprocessor first
	// (cflow --cpp). Setting PreprocessArgs implies Preprocess.
	Preprocess bool

	// PreprocessArgs are extra preprocessor arguments, passed as
	// --cpp=ARGS (for example "-I include -DDEBUG").
	PreprocessArgs string

	// Reverse charts callees up to their callers instead of callers
	// down to callees (cflow --reverse).
	Reverse bool
}

// Runner invokes cflow on C source files.
//
// The zero value runs the `cflow` binary from PATH. Runner is stateless
// and safe for concurrent use.
type Runner struct {
	// Command overrides the cflow binary, e.g. from configuration.
	Command string
}

func (r Runner) command() string {
	if r.Command != "" {
		return r.Command
	}
	return "cflow"
}

// Args builds the argument list for one source file:
// -l [--cpp[=ARGS]] [--reverse] FILE. Exposed so callers can derive
// cache keys from the exact invocation.
func (r Runner) Args(file string, opts Options) []string {
	args := []string{"-l"}
	if opts.PreprocessArgs != "" {
		args = append(args, "--cpp="+opts.PreprocessArgs)
	} else if opts.Preprocess {
		args = append(args, "--cpp")
	}
	if opts.Reverse {
		args = append(args, "--reverse")
	}
	return append(args, file)
}

// Lookup resolves the cflow binary and reports whether it is installed.
func (r Runner) Lookup() (string, error) {
	path, err := exec.LookPath(r.command())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}
	return path, nil
}

// Run charts one source file and returns cflow's raw output.
func (r Runner) Run(ctx context.Context, file string, opts Options) ([]byte, error) {
	bin := r.command()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}

	args := r.Args(file, opts)
	cmd := exec.CommandContext(ctx, bin, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	observability.Exec().OnExecStart(ctx, bin, args)
	start := time.Now()
	err := cmd.Run()
	observability.Exec().OnExecComplete(ctx, bin, time.Since(start), err)
	if err != nil {
		return nil, &errors.ToolError{Tool: bin, Args: args, Stderr: errBuf.String(), Err: err}
	}
	return out.Bytes(), nil
}

// Version reports the installed cflow version, the first line of
// `cflow --version` (e.g. "cflow (GNU cflow) 1.7").
func (r Runner) Version(ctx context.Context) (string, error) {
	bin := r.command()
	if _, err := exec.LookPath(bin); err != nil {
		return "", errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}

	cmd := exec.CommandContext(ctx, bin, "--version")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", &errors.ToolError{Tool: bin, Args: []string{"--version"}, Stderr: errBuf.String(), Err: err}
	}
	version, _, _ := strings.Cut(out.String(), "\n")
	return strings.TrimSpace(version), nil
}
