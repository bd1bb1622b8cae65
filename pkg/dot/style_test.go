package dot

import (
	"testing"

	"github.com/callchart/callchart/pkg/callgraph"
)

func TestDepthStyling(t *testing.T) {
	tests := []struct {
		depth     int
		wantColor string
		wantShape string
	}{
		{0, "#eecc80", "box"},
		{1, "#eecc80", "ellipse"},
		{2, "#ccee80", "octagon"},
		{3, "#80ccee", "hexagon"},
		{4, "#eecc80", "diamond"},
		{5, "#80eecc", "box"},
		{6, "#eecc80", "ellipse"},
		{10, "#80eecc", "box"},
	}

	for _, tt := range tests {
		if got := nodeColor(tt.depth); got != tt.wantColor {
			t.Errorf("nodeColor(%d) = %q, want %q", tt.depth, got, tt.wantColor)
		}
		if got := nodeShape(tt.depth); got != tt.wantShape {
			t.Errorf("nodeShape(%d) = %q, want %q", tt.depth, got, tt.wantShape)
		}
	}
}

func TestEscapeUnderscores(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		forLaTeX bool
		want     string
	}{
		{"plain mode untouched", "my_func", false, "my_func"},
		{"latex single underscore", "my_func", true, `my\\_func`},
		{"latex multiple underscores", "a_b_c", true, `a\\_b\\_c`},
		{"latex no underscores", "main", true, "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeUnderscores(tt.input, tt.forLaTeX); got != tt.want {
				t.Errorf("escapeUnderscores(%q, %v) = %q, want %q", tt.input, tt.forLaTeX, got, tt.want)
			}
		})
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name      string
		node      callgraph.Node
		elsewhere bool
		opts      Options
		want      string
	}{
		{
			name: "bare name",
			node: callgraph.Node{Name: "main", Depth: 0, Line: callgraph.NoSourceLine},
			want: "main",
		},
		{
			name: "known line appended",
			node: callgraph.Node{Name: "main", Depth: 0, Line: 18},
			want: `main\n18`,
		},
		{
			name: "latex escaping with line",
			node: callgraph.Node{Name: "my_func", Depth: 1, Line: 7},
			opts: Options{LaTeX: true},
			want: `my\\_func\n7`,
		},
		{
			name: "multi page description item",
			node: callgraph.Node{Name: "helper", Depth: 1, Line: 42},
			opts: Options{MultiPage: true},
			want: `\\descitem{helper}\nhelper\n42`,
		},
		{
			name:      "multi page reference to sibling page",
			node:      callgraph.Node{Name: "helper", Depth: 1, Line: callgraph.NoSourceLine},
			elsewhere: true,
			opts:      Options{MultiPage: true},
			want:      `\\descref[helper]{helper}`,
		},
		{
			name:      "multi page reference keeps raw name as key",
			node:      callgraph.Node{Name: "my_helper", Depth: 1, Line: callgraph.NoSourceLine},
			elsewhere: true,
			opts:      Options{MultiPage: true, LaTeX: true},
			want:      `\\descref[my\\_helper]{my_helper}`,
		},
		{
			name: "multi page unknown everywhere stays plain",
			node: callgraph.Node{Name: "printf", Depth: 1, Line: callgraph.NoSourceLine},
			opts: Options{MultiPage: true},
			want: "printf",
		},
		{
			name: "description item key is not latex escaped",
			node: callgraph.Node{Name: "my_func", Depth: 2, Line: 3},
			opts: Options{MultiPage: true, LaTeX: true},
			want: `\\descitem{my_func}\nmy\\_func\n3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nodeLabel(&tt.node, tt.elsewhere, tt.opts)
			if got != tt.want {
				t.Errorf("nodeLabel() = %q, want %q", got, tt.want)
			}
			// Formatting must be idempotent for a fixed node and options.
			if again := nodeLabel(&tt.node, tt.elsewhere, tt.opts); again != got {
				t.Errorf("nodeLabel() second call = %q, want %q", again, got)
			}
		})
	}
}
