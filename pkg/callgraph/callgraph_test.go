package callgraph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNodeFirstWins(t *testing.T) {
	g := New("main.c")

	if err := g.AddNode(Node{Name: "foo", Depth: 1, Line: 5}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	// A later sighting at another depth must not overwrite the original.
	if err := g.AddNode(Node{Name: "foo", Depth: 3, Line: 99}); err != nil {
		t.Fatalf("AddNode() duplicate error = %v", err)
	}

	n, ok := g.Node("foo")
	if !ok {
		t.Fatal("Node(foo) not found")
	}
	if n.Depth != 1 || n.Line != 5 {
		t.Errorf("node = depth %d line %d, want depth 1 line 5", n.Depth, n.Line)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddNodeEmptyName(t *testing.T) {
	g := New("main.c")
	if err := g.AddNode(Node{Name: ""}); !errors.Is(err, ErrInvalidNodeName) {
		t.Errorf("AddNode() error = %v, want ErrInvalidNodeName", err)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"valid edge", "main", "foo", nil},
		{"self edge", "main", "main", nil},
		{"unknown caller", "ghost", "foo", ErrUnknownSourceNode},
		{"unknown callee", "main", "ghost", ErrUnknownTargetNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("main.c")
			_ = g.AddNode(Node{Name: "main", Depth: 0, Line: 1})
			_ = g.AddNode(Node{Name: "foo", Depth: 1, Line: 5})

			err := g.AddEdge(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge(%q, %q) error = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			if tt.wantErr == nil && !g.HasEdge(tt.from, tt.to) {
				t.Errorf("HasEdge(%q, %q) = false after AddEdge", tt.from, tt.to)
			}
		})
	}
}

func TestAddEdgeDeduplicates(t *testing.T) {
	g := New("main.c")
	_ = g.AddNode(Node{Name: "main", Depth: 0, Line: 1})
	_ = g.AddNode(Node{Name: "foo", Depth: 1, Line: 5})

	for range 3 {
		if err := g.AddEdge("main", "foo"); err != nil {
			t.Fatalf("AddEdge() error = %v", err)
		}
	}

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Callees("main"); len(got) != 1 {
		t.Errorf("Callees(main) = %v, want one entry", got)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := New("main.c")
	for _, name := range []string{"main", "zeta", "alpha", "mid"} {
		_ = g.AddNode(Node{Name: name, Depth: 0, Line: NoSourceLine})
	}
	_ = g.AddEdge("main", "zeta")
	_ = g.AddEdge("main", "alpha")
	_ = g.AddEdge("zeta", "mid")

	var names []string
	for _, n := range g.Nodes() {
		names = append(names, n.Name)
	}
	if want := []string{"main", "zeta", "alpha", "mid"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Nodes() order = %v, want %v", names, want)
	}

	want := []Edge{{"main", "zeta"}, {"main", "alpha"}, {"zeta", "mid"}}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() order = %v, want %v", got, want)
	}
}

func TestRemove(t *testing.T) {
	g := New("main.c")
	for _, name := range []string{"main", "foo", "bar"} {
		_ = g.AddNode(Node{Name: name, Depth: 0, Line: NoSourceLine})
	}
	_ = g.AddEdge("main", "foo")
	_ = g.AddEdge("main", "bar")
	_ = g.AddEdge("bar", "foo")

	g.Remove("bar")

	if _, ok := g.Node("bar"); ok {
		t.Error("Node(bar) still present after Remove")
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.HasEdge("main", "bar") || g.HasEdge("bar", "foo") {
		t.Error("edges touching bar survived Remove")
	}
	if !g.HasEdge("main", "foo") {
		t.Error("unrelated edge main→foo was removed")
	}
	if got := g.Callees("main"); !reflect.DeepEqual(got, []string{"foo"}) {
		t.Errorf("Callees(main) = %v, want [foo]", got)
	}

	// Removing an absent node is a no-op.
	g.Remove("ghost")
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() after removing ghost = %d, want 2", g.NodeCount())
	}
}

func TestRemovePreservesEdgeOrder(t *testing.T) {
	g := New("main.c")
	for _, name := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(Node{Name: name, Depth: 0, Line: NoSourceLine})
	}
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("a", "c")
	_ = g.AddEdge("c", "d")
	_ = g.AddEdge("a", "d")

	g.Remove("c")

	want := []Edge{{"a", "b"}, {"a", "d"}}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() after Remove = %v, want %v", got, want)
	}
}

func TestCallersAndCallees(t *testing.T) {
	g := New("main.c")
	for _, name := range []string{"main", "foo", "bar"} {
		_ = g.AddNode(Node{Name: name, Depth: 0, Line: NoSourceLine})
	}
	_ = g.AddEdge("main", "foo")
	_ = g.AddEdge("main", "bar")
	_ = g.AddEdge("bar", "foo")

	if got := g.Callees("main"); !reflect.DeepEqual(got, []string{"foo", "bar"}) {
		t.Errorf("Callees(main) = %v", got)
	}
	if got := g.Callers("foo"); !reflect.DeepEqual(got, []string{"main", "bar"}) {
		t.Errorf("Callers(foo) = %v", got)
	}
	if got := g.Callees("foo"); got != nil {
		t.Errorf("Callees(foo) = %v, want nil", got)
	}
}

func TestRoots(t *testing.T) {
	g := New("main.c")
	_ = g.AddNode(Node{Name: "main", Depth: 0, Line: 18})
	_ = g.AddNode(Node{Name: "foo", Depth: 1, Line: 5})
	_ = g.AddNode(Node{Name: "init", Depth: 0, Line: 2})

	roots := g.Roots()
	if len(roots) != 2 {
		t.Fatalf("Roots() returned %d nodes, want 2", len(roots))
	}
	if roots[0].Name != "main" || roots[1].Name != "init" {
		t.Errorf("Roots() = [%s %s], want [main init]", roots[0].Name, roots[1].Name)
	}
}
