// Package callgraph builds directed call graphs from GNU cflow output.
//
// # Overview
//
// cflow prints a textual call tree for C sources, one call per line, with
// nesting encoded as a numeric level when invoked with numbered nesting
// (cflow -l):
//
//	{   0} main() <int main (void) at main.c:18>:
//	{   1}     foo() <int foo (double) at main.c:5>:
//	{   2}         bar() <void bar (void) at main.c:2>
//
// This package turns that text into a [Graph]: one graph per source file,
// nodes keyed by function name, directed edges from caller to callee.
//
// # Parsing model
//
// [Parse] walks the output line by line, keeping a map from nesting depth
// to the most recent function seen at that depth. A line at depth n names
// its caller at depth n-1; a depth jump with no recorded caller is reported
// as [ErrMissingAncestor]. Lines that do not reduce to a nest level and a
// function name are reported as [ErrMalformedLine]. Both errors carry the
// source file name and the 1-based line number.
//
// Function names that collide case-insensitively with DOT language keywords
// (graph, digraph, node, ...) are escaped with a trailing underscore during
// parsing, so every later stage sees collision-free names.
//
// # Graph semantics
//
//   - The first occurrence of a function fixes its depth and source line;
//     later occurrences never overwrite them.
//   - At most one edge exists per ordered (caller, callee) pair; repeated
//     calls are collapsed silently.
//   - Self-edges (direct recursion) are legal.
//   - Node and edge iteration follows first-insertion order, so emitting a
//     graph twice produces identical output.
//
// # Cross-file resolution
//
// A function called in one translation unit may be defined in another.
// [DefinedElsewhere] answers whether a name is known to any sibling graph,
// which drives cross-reference labels in multi-page output.
package callgraph
