package callgraph

import "testing"

func TestDefinedElsewhere(t *testing.T) {
	a := New("a.c")
	_ = a.AddNode(Node{Name: "main", Depth: 0, Line: 18})
	_ = a.AddNode(Node{Name: "helper", Depth: 1, Line: NoSourceLine})
	_ = a.AddEdge("main", "helper")

	b := New("b.c")
	_ = b.AddNode(Node{Name: "helper", Depth: 0, Line: 42})

	all := []*Graph{a, b}

	tests := []struct {
		name   string
		lookup string
		self   *Graph
		want   bool
	}{
		{"defined in sibling", "helper", a, true},
		{"own graph does not count", "main", a, false},
		{"declared-only sibling does not count", "helper", b, false},
		{"unknown everywhere", "ghost", a, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefinedElsewhere(tt.lookup, tt.self, all); got != tt.want {
				t.Errorf("DefinedElsewhere(%q) = %v, want %v", tt.lookup, got, tt.want)
			}
		})
	}
}

func TestDefinedElsewhereNoSiblings(t *testing.T) {
	g := New("only.c")
	_ = g.AddNode(Node{Name: "main", Depth: 0, Line: 1})

	if DefinedElsewhere("main", g, []*Graph{g}) {
		t.Error("DefinedElsewhere() = true with no siblings")
	}
	if DefinedElsewhere("main", g, nil) {
		t.Error("DefinedElsewhere() = true with nil graph list")
	}
}
