package dot

import (
	"strings"

	"github.com/callchart/callchart/pkg/errors"
)

// Format identifies an output file format.
type Format string

// Supported output formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// Formats lists all supported output formats.
func Formats() []Format {
	return []Format{FormatDOT, FormatSVG, FormatPDF, FormatPNG}
}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatDOT, FormatSVG, FormatPDF, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (supported: dot, svg, pdf, png)", s)
}

// ParseFormats validates a comma-separated or repeated list of format
// names, deduplicating while preserving first-mention order.
func ParseFormats(values []string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

// Layout identifies a Graphviz layout engine.
type Layout string

// Supported layout engines. Each name doubles as the binary the exec
// backend invokes.
const (
	LayoutDot   Layout = "dot"
	LayoutNeato Layout = "neato"
	LayoutTwopi Layout = "twopi"
	LayoutCirco Layout = "circo"
	LayoutFdp   Layout = "fdp"
	LayoutSfdp  Layout = "sfdp"
)

// ParseLayout validates a layout engine name. Matching is
// case-insensitive; an empty string selects [LayoutDot].
func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case "":
		return LayoutDot, nil
	case LayoutDot, LayoutNeato, LayoutTwopi, LayoutCirco, LayoutFdp, LayoutSfdp:
		return l, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout engine %q (supported: dot, neato, twopi, circo, fdp, sfdp)", s)
}

// Backend selects how DOT documents are rendered to images.
type Backend string

// Render backends.
const (
	// BackendAuto uses the embedded renderer when it covers the request
	// and falls back to the external Graphviz tools otherwise.
	BackendAuto Backend = "auto"
	// BackendEmbedded renders in-process via go-graphviz.
	BackendEmbedded Backend = "embedded"
	// BackendExec shells out to the Graphviz layout binaries.
	BackendExec Backend = "exec"
)

// ParseBackend validates a backend name. Matching is case-insensitive;
// an empty string selects [BackendAuto].
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendEmbedded, BackendExec:
		return b, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown render backend %q (supported: auto, embedded, exec)", s)
}
