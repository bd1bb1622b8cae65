package callgraph

// DefinedElsewhere reports whether name has a known defining source
// line in any graph in all besides self. A sibling that merely calls
// the function (line unknown) does not count. Sibling graphs are only
// read, never modified.
//
// cflow emits no defining line for functions that live in another
// translation unit; when the whole project is charted at once this lookup
// recovers the link, so multi-page output can cross-reference the page
// that defines the function.
func DefinedElsewhere(name string, self *Graph, all []*Graph) bool {
	for _, g := range all {
		if g == self {
			continue
		}
		if n, ok := g.Node(name); ok && n.Line != NoSourceLine {
			return true
		}
	}
	return false
}
