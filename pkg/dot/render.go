package dot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/callchart/callchart/pkg/errors"
	"github.com/callchart/callchart/pkg/observability"
)

// installHint is appended to errors when no Graphviz binary is found.
const installHint = "rendering requires Graphviz. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz"

// Renderer converts DOT documents into images.
//
// The zero value renders with [BackendAuto] and the engine-named
// Graphviz binaries. Renderer is stateless and safe for concurrent use.
type Renderer struct {
	// Backend selects the render path. Zero value means [BackendAuto].
	Backend Backend

	// Command overrides the Graphviz binary for the exec backend. When
	// set, the layout engine is passed via -K instead of picking the
	// engine-named binary, so a single installed `dot` can serve every
	// layout.
	Command string
}

// Render converts a DOT document to the given image format.
// [FormatDOT] is not a render target; write the document itself instead.
func (r Renderer) Render(ctx context.Context, doc []byte, format Format, layout Layout) ([]byte, error) {
	if format == FormatDOT {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "dot is the source format, nothing to render")
	}
	if layout == "" {
		layout = LayoutDot
	}

	backend := r.Backend
	if backend == "" || backend == BackendAuto {
		backend = r.resolveBackend(format, layout)
	}
	switch backend {
	case BackendEmbedded:
		return renderEmbedded(ctx, doc, format)
	case BackendExec:
		return r.renderExec(ctx, doc, format, layout)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unknown render backend %q", backend)
}

// resolveBackend picks the path for [BackendAuto]: embedded when the
// in-process renderer covers the format and engine and no external
// binary was configured, exec otherwise.
func (r Renderer) resolveBackend(format Format, layout Layout) Backend {
	if r.Command != "" {
		return BackendExec
	}
	if layout != LayoutDot {
		return BackendExec
	}
	if format == FormatSVG || format == FormatPNG {
		return BackendEmbedded
	}
	return BackendExec
}

// Lookup resolves the binary the exec backend would run for the given
// layout and reports whether it is installed.
func (r Renderer) Lookup(layout Layout) (string, error) {
	if layout == "" {
		layout = LayoutDot
	}
	path, err := exec.LookPath(r.command(layout))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}
	return path, nil
}

func (r Renderer) command(layout Layout) string {
	if r.Command != "" {
		return r.Command
	}
	return string(layout)
}

// Version reports the installed Graphviz version for the default
// layout binary, e.g. "dot - graphviz version 2.43.0". Graphviz prints
// its version banner on stderr.
func (r Renderer) Version(ctx context.Context) (string, error) {
	bin := r.command(LayoutDot)
	if _, err := exec.LookPath(bin); err != nil {
		return "", errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}

	cmd := exec.CommandContext(ctx, bin, "-V")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", &errors.ToolError{Tool: bin, Args: []string{"-V"}, Stderr: errBuf.String(), Err: err}
	}
	banner := errBuf.String()
	if banner == "" {
		banner = out.String()
	}
	version, _, _ := strings.Cut(banner, "\n")
	return strings.TrimSpace(version), nil
}

// renderEmbedded renders in-process with go-graphviz. Only SVG and PNG
// are supported; the library ships no PDF surface.
func renderEmbedded(ctx context.Context, doc []byte, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "embedded renderer cannot produce %s, use the exec backend", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(doc)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// renderExec shells out to a Graphviz layout binary, feeding the
// document on stdin and capturing the image from stdout.
func (r Renderer) renderExec(ctx context.Context, doc []byte, format Format, layout Layout) ([]byte, error) {
	bin := r.command(layout)
	if _, err := exec.LookPath(bin); err != nil {
		return nil, errors.Wrap(errors.ErrCodeToolNotFound, err, "%s", installHint)
	}

	var args []string
	if r.Command != "" {
		args = append(args, "-K"+string(layout))
	}
	args = append(args, "-T"+string(format))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(doc)

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
