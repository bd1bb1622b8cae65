package pipeline

import (
	"os"
	"strings"

	"github.com/callchart/callchart/pkg/callgraph"
	"github.com/callchart/callchart/pkg/errors"
)

// Exclusions merges the function names listed in path (one per line,
// blank lines skipped) with the extra literal names. An empty path
// means no exclusion file; a path that cannot be read is an error.
func Exclusions(path string, extra []string) ([]string, error) {
	var names []string
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read exclusion list %s", path)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			names = append(names, line)
		}
	}
	return append(names, extra...), nil
}

// Prune removes the named functions and every call touching them from
// each graph. Names are matched after identifier escaping, so a name
// that collided with a DOT keyword must be given in its escaped form.
// Unknown names are ignored.
func Prune(graphs []*callgraph.Graph, names []string) {
	if len(names) == 0 {
		return
	}
	for _, g := range graphs {
		if g == nil {
			continue
		}
		for _, name := range names {
			g.Remove(name)
		}
	}
}
