package dot

import (
	"slices"
	"testing"

	"github.com/callchart/callchart/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "dot", input: "dot", want: FormatDOT},
		{name: "svg", input: "svg", want: FormatSVG},
		{name: "pdf", input: "pdf", want: FormatPDF},
		{name: "png", input: "png", want: FormatPNG},
		{name: "uppercase", input: "SVG", want: FormatSVG},
		{name: "padded", input: "  pdf  ", want: FormatPDF},
		{name: "unknown", input: "jpeg", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) error code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []Format
		wantErr bool
	}{
		{name: "comma separated", input: []string{"svg,pdf"}, want: []Format{FormatSVG, FormatPDF}},
		{name: "repeated flag", input: []string{"svg", "pdf"}, want: []Format{FormatSVG, FormatPDF}},
		{name: "mixed", input: []string{"png,svg", "pdf"}, want: []Format{FormatPNG, FormatSVG, FormatPDF}},
		{name: "deduplicated", input: []string{"svg,svg", "svg"}, want: []Format{FormatSVG}},
		{name: "order preserved", input: []string{"pdf,svg,pdf"}, want: []Format{FormatPDF, FormatSVG}},
		{name: "blank entries skipped", input: []string{"svg,,pdf", ""}, want: []Format{FormatSVG, FormatPDF}},
		{name: "empty", input: nil, want: nil},
		{name: "invalid entry", input: []string{"svg,tiff"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormats(%v) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormats(%v) error = %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseFormats(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Layout
		wantErr bool
	}{
		{name: "default", input: "", want: LayoutDot},
		{name: "dot", input: "dot", want: LayoutDot},
		{name: "neato", input: "neato", want: LayoutNeato},
		{name: "twopi", input: "twopi", want: LayoutTwopi},
		{name: "circo", input: "circo", want: LayoutCirco},
		{name: "fdp", input: "fdp", want: LayoutFdp},
		{name: "sfdp", input: "sfdp", want: LayoutSfdp},
		{name: "uppercase", input: "TWOPI", want: LayoutTwopi},
		{name: "unknown", input: "patchwork", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLayout(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLayout(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, errors.ErrCodeInvalidLayout) {
					t.Errorf("ParseLayout(%q) error code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidLayout)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayout(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Backend
		wantErr bool
	}{
		{name: "default", input: "", want: BackendAuto},
		{name: "auto", input: "auto", want: BackendAuto},
		{name: "embedded", input: "embedded", want: BackendEmbedded},
		{name: "exec", input: "exec", want: BackendExec},
		{name: "uppercase", input: "EXEC", want: BackendExec},
		{name: "unknown", input: "wasm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBackend(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBackend(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBackend(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBackend(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatsIncludesAll(t *testing.T) {
	got := Formats()
	want := []Format{FormatDOT, FormatSVG, FormatPDF, FormatPNG}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}
