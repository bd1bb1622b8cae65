package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "enter", "esc":
		types := map[string]tea.KeyType{
			"up": tea.KeyUp, "down": tea.KeyDown,
			"enter": tea.KeyEnter, "esc": tea.KeyEsc,
		}
		return tea.KeyMsg{Type: types[s]}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drive(m SourceListModel, keys ...string) SourceListModel {
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(key(k))
	}
	return model.(SourceListModel)
}

func TestSourceListSelection(t *testing.T) {
	files := []string{"a.c", "b.c", "c.c"}

	tests := []struct {
		name     string
		keys     []string
		want     []string
		canceled bool
	}{
		{
			name: "enter with nothing checked takes the cursor line",
			keys: []string{"enter"},
			want: []string{"a.c"},
		},
		{
			name: "space toggles then enter confirms",
			keys: []string{" ", "down", "down", " ", "enter"},
			want: []string{"a.c", "c.c"},
		},
		{
			name: "toggle twice deselects",
			keys: []string{" ", " ", "down", " ", "enter"},
			want: []string{"b.c"},
		},
		{
			name: "a selects everything",
			keys: []string{"a", "enter"},
			want: []string{"a.c", "b.c", "c.c"},
		},
		{
			name: "a twice clears, enter falls back to cursor",
			keys: []string{"a", "a", "enter"},
			want: []string{"a.c"},
		},
		{
			name: "j and k navigate vim style",
			keys: []string{"j", "j", "k", " ", "enter"},
			want: []string{"b.c"},
		},
		{
			name:     "q cancels",
			keys:     []string{" ", "q"},
			canceled: true,
		},
		{
			name:     "esc cancels",
			keys:     []string{"esc"},
			canceled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := drive(NewSourceListModel(files), tt.keys...)

			if m.Canceled != tt.canceled {
				t.Fatalf("Canceled = %v, want %v", m.Canceled, tt.canceled)
			}
			if tt.canceled {
				return
			}
			if !m.Done {
				t.Fatal("model should be done after enter")
			}
			if got := m.Selected(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourceListCursorBounds(t *testing.T) {
	m := drive(NewSourceListModel([]string{"a.c", "b.c"}), "up", "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first entry: %d", m.Cursor)
	}

	m = drive(NewSourceListModel([]string{"a.c", "b.c"}), "down", "down", "down")
	if m.Cursor != 1 {
		t.Errorf("cursor moved past the last entry: %d", m.Cursor)
	}
}

func TestSourceListView(t *testing.T) {
	m := NewSourceListModel([]string{"a.c", "b.c"})
	m.Checked[1] = true

	view := m.View()
	for _, want := range []string{"a.c", "b.c", "1 selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"main.c",
		"util.h",
		"sub/helper.c",
		"sub/readme.md",
		".git/blob.c",
		"vendor/dep.c",
	} {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := findSources(dir)
	if err != nil {
		t.Fatalf("findSources() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "sub", "helper.c"),
		filepath.Join(dir, "util.h"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("findSources() = %v, want %v", files, want)
	}
}
