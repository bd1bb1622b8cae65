package cflow

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/callchart/callchart/pkg/errors"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "default",
			want: []string{"-l", "main.c"},
		},
		{
			name: "preprocess",
			opts: Options{Preprocess: true},
			want: []string{"-l", "--cpp", "main.c"},
		},
		{
			name: "preprocess with args",
			opts: Options{PreprocessArgs: "-I include -DDEBUG"},
			want: []string{"-l", "--cpp=-I include -DDEBUG", "main.c"},
		},
		{
			name: "args imply preprocess",
			opts: Options{Preprocess: true, PreprocessArgs: "-DX"},
			want: []string{"-l", "--cpp=-DX", "main.c"},
		},
		{
			name: "reverse",
			opts: Options{Reverse: true},
			want: []string{"-l", "--reverse", "main.c"},
		},
		{
			name: "everything",
			opts: Options{Preprocess: true, Reverse: true},
			want: []string{"-l", "--cpp", "--reverse", "main.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Runner
			got := r.Args("main.c", tt.opts)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandOverride(t *testing.T) {
	var r Runner
	if got := r.command(); got != "cflow" {
		t.Errorf("command() = %q, want %q", got, "cflow")
	}
	r.Command = "/opt/cflow/bin/cflow"
	if got := r.command(); got != "/opt/cflow/bin/cflow" {
		t.Errorf("command() = %q, want override", got)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := Runner{Command: "callchart-missing-cflow-binary"}
	_, err := r.Run(context.Background(), "main.c", Options{})
	if !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Fatalf("Run() error = %v, want code %v", err, errors.ErrCodeToolNotFound)
	}
	if !strings.Contains(err.Error(), "apt install cflow") {
		t.Errorf("Run() error lacks install hint: %v", err)
	}
}

func TestVersionMissingBinary(t *testing.T) {
	r := Runner{Command: "callchart-missing-cflow-binary"}
	if _, err := r.Version(context.Background()); !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Errorf("Version() error = %v, want code %v", err, errors.ErrCodeToolNotFound)
	}
}

func TestLookupMissingBinary(t *testing.T) {
	r := Runner{Command: "callchart-missing-cflow-binary"}
	if _, err := r.Lookup(); !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Errorf("Lookup() error = %v, want code %v", err, errors.ErrCodeToolNotFound)
	}
}

// fakeTool writes an executable shell script and returns its path.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "cflow")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRunCapturesStdout(t *testing.T) {
	r := Runner{Command: fakeTool(t, `echo '{   0} main() <int main (void) at main.c:1>:'`)}
	out, err := r.Run(context.Background(), "main.c", Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(string(out), "main()") {
		t.Errorf("Run() output = %q, want cflow chart", out)
	}
}

func TestRunToolFailure(t *testing.T) {
	r := Runner{Command: fakeTool(t, "echo 'main.c: No such file or directory' >&2\nexit 1")}
	_, err := r.Run(context.Background(), "main.c", Options{Reverse: true})
	if err == nil {
		t.Fatal("Run() expected error")
	}

	var toolErr *errors.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Run() error = %T, want *errors.ToolError", err)
	}
	if !strings.Contains(toolErr.Stderr, "No such file") {
		t.Errorf("Stderr = %q, want captured diagnostics", toolErr.Stderr)
	}
	if !slices.Equal(toolErr.Args, []string{"-l", "--reverse", "main.c"}) {
		t.Errorf("Args = %v, want full command line", toolErr.Args)
	}
	if !errors.Is(err, errors.ErrCodeToolFailed) {
		t.Errorf("Is(err, %v) = false", errors.ErrCodeToolFailed)
	}
}

func TestVersionFirstLine(t *testing.T) {
	r := Runner{Command: fakeTool(t, "echo 'cflow (GNU cflow) 1.7'\necho 'extra line'")}
	got, err := r.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if got != "cflow (GNU cflow) 1.7" {
		t.Errorf("Version() = %q, want first line only", got)
	}
}
