package callgraph

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine is returned by [Parse] for a cflow line that does
	// not reduce to a numeric nest level and a function name. The wrapped
	// message carries the offending line verbatim.
	ErrMalformedLine = errors.New("malformed cflow line")

	// ErrMissingAncestor is returned by [Parse] when a line's nesting
	// depth has no recorded caller at the parent depth, which happens when
	// the input skips nesting levels or starts mid-tree.
	ErrMissingAncestor = errors.New("no caller recorded at parent depth")
)

// sourceLineRe extracts the defining source line from cflow's location
// annotation, e.g. "at main.c:18>".
var sourceLineRe = regexp.MustCompile(`:(\d+)>`)

// Reduction steps for a numbered-nesting line such as
// "{   2}         bar() <void bar (void) at main.c:2>": drop everything
// from the argument list on, then turn the brace-wrapped level into a
// tab-separated field.
var (
	callSuffixRe   = regexp.MustCompile(`\(.*$`)
	openingBraceRe = regexp.MustCompile(`^\{\s*`)
	closingBraceRe = regexp.MustCompile(`\}\s*`)
)

// dotReserved lists the keywords of the DOT language. A function named
// like one of them (any capitalization) would produce an unparseable
// graph description, so such names are escaped during parsing.
var dotReserved = map[string]struct{}{
	"graph":    {},
	"strict":   {},
	"digraph":  {},
	"subgraph": {},
	"node":     {},
	"edge":     {},
}

// safeName escapes function names that collide with DOT keywords by
// appending an underscore. The match is case-insensitive; all other
// names pass through unchanged.
func safeName(name string) string {
	if _, reserved := dotReserved[strings.ToLower(name)]; reserved {
		return name + "_"
	}
	return name
}

// SplitLines normalizes raw cflow output into lines: carriage returns are
// stripped and the text is split on newlines. Empty lines are kept so
// that line numbers in parse errors match the original output; [Parse]
// skips them.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
}

// Parse builds the call graph of a single source file from cflow output
// produced with numbered nesting (cflow -l).
//
// Empty lines are skipped. Every other line must carry a nest level and a
// function name; the parser tracks the most recent function per depth and
// connects each line to its caller one level up. Errors wrap
// [ErrMalformedLine] or [ErrMissingAncestor] and are prefixed with
// sourceFile and the 1-based line number. Parsing stops at the first
// error; the partially built graph is discarded.
func Parse(text, sourceFile string) (*Graph, error) {
	g := New(sourceFile)
	stack := make(map[int]string)

	for i, raw := range SplitLines(text) {
		if raw == "" {
			continue
		}
		depth, name, srcLine, err := parseLine(raw)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", sourceFile, i+1, err)
		}
		name = safeName(name)

		// Resolve the caller before touching the graph, so a bad depth
		// jump leaves no trace of the offending line.
		var caller string
		if depth != 0 {
			c, ok := stack[depth-1]
			if !ok {
				return nil, fmt.Errorf("%s:%d: %w: %q is at depth %d", sourceFile, i+1, ErrMissingAncestor, name, depth)
			}
			caller = c
		}

		stack[depth] = name
		if err := g.AddNode(Node{Name: name, Depth: depth, Line: srcLine}); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", sourceFile, i+1, err)
		}
		if depth != 0 {
			if err := g.AddEdge(caller, name); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", sourceFile, i+1, err)
			}
		}
	}
	return g, nil
}

// parseLine extracts nest level, function name and defining source line
// from one cflow output line.
func parseLine(raw string) (depth int, name string, srcLine int, err error) {
	srcLine = NoSourceLine
	if m := sourceLineRe.FindStringSubmatch(raw); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			srcLine = n
		}
	}

	s := callSuffixRe.ReplaceAllString(raw, "")
	s = openingBraceRe.ReplaceAllString(s, "")
	s = closingBraceRe.ReplaceAllString(s, "\t")

	fields := strings.Split(s, "\t")
	if len(fields) != 2 {
		return 0, "", 0, fmt.Errorf("%w: %q reduces to %d fields, want 2", ErrMalformedLine, raw, len(fields))
	}

	depth, convErr := strconv.Atoi(strings.TrimSpace(fields[0]))
	if convErr != nil {
		return 0, "", 0, fmt.Errorf("%w: %q has a non-numeric nest level", ErrMalformedLine, raw)
	}
	name = strings.TrimSpace(fields[1])
	if name == "" {
		return 0, "", 0, fmt.Errorf("%w: %q has an empty function name", ErrMalformedLine, raw)
	}
	return depth, name, srcLine, nil
}
