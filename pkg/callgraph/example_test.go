package callgraph_test

import (
	"fmt"

	"github.com/callchart/callchart/pkg/callgraph"
)

func ExampleParse() {
	// cflow -l output for a file where main calls foo and bar,
	// and bar calls foo again.
	out := `{   0} main() <int main (void) at main.c:18>:
{   1}     foo() <int foo (double) at main.c:5>
{   1}     bar() <void bar (void) at main.c:2>:
{   2}         foo() <int foo (double) at main.c:5>
`

	g, err := callgraph.Parse(out, "main.c")
	if err != nil {
		fmt.Println("parse failed:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Printf("%s -> %s\n", e.From, e.To)
	}
	// Output:
	// Nodes: 3
	// Edges: 3
	// main -> foo
	// main -> bar
	// bar -> foo
}

func ExampleGraph_Remove() {
	g := callgraph.New("main.c")
	for _, name := range []string{"main", "foo", "bar"} {
		_ = g.AddNode(callgraph.Node{Name: name, Depth: 0, Line: callgraph.NoSourceLine})
	}
	_ = g.AddEdge("main", "foo")
	_ = g.AddEdge("main", "bar")
	_ = g.AddEdge("bar", "foo")

	// Excluding a function takes its edges with it.
	g.Remove("bar")

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 1
}

func ExampleDefinedElsewhere() {
	a := callgraph.New("a.c")
	_ = a.AddNode(callgraph.Node{Name: "main", Depth: 0, Line: 3})
	_ = a.AddNode(callgraph.Node{Name: "helper", Depth: 1, Line: callgraph.NoSourceLine})
	_ = a.AddEdge("main", "helper")

	b := callgraph.New("b.c")
	_ = b.AddNode(callgraph.Node{Name: "helper", Depth: 0, Line: 42})

	all := []*callgraph.Graph{a, b}
	fmt.Println(callgraph.DefinedElsewhere("helper", a, all))
	fmt.Println(callgraph.DefinedElsewhere("main", a, all))
	// Output:
	// true
	// false
}
