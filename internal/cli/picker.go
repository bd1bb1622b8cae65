package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/callchart/callchart/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	listNormalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	listDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// skipDirs are directories never descended into while scanning for
// sources.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// =============================================================================
// SourceListModel - Interactive C source selection
// =============================================================================

// SourceListModel is the bubbletea model for picking the source files
// to chart when none were given on the command line.
type SourceListModel struct {
	Files    []string
	Cursor   int
	Checked  map[int]bool
	Done     bool
	Canceled bool
	Height   int
	Offset   int
}

// NewSourceListModel creates a source list model over the given files.
func NewSourceListModel(files []string) SourceListModel {
	return SourceListModel{
		Files:   files,
		Checked: make(map[int]bool),
		Height:  15,
	}
}

func (m SourceListModel) Init() tea.Cmd {
	return nil
}

func (m SourceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Canceled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			all := len(m.Selected()) < len(m.Files)
			for i := range m.Files {
				m.Checked[i] = all
			}
		case "enter":
			if len(m.Selected()) == 0 {
				m.Checked[m.Cursor] = true
			}
			m.Done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SourceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select C Sources"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ chart  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Checked[i] {
			check = "[" + StyleSuccess.Render("x") + "]"
		}

		line := fmt.Sprintf("%s%s %s", cursor, check, m.Files[i])
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Checked[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Files), len(m.Selected()))))
	return b.String()
}

// Selected returns the checked file paths in list order.
func (m SourceListModel) Selected() []string {
	var files []string
	for i, f := range m.Files {
		if m.Checked[i] {
			files = append(files, f)
		}
	}
	return files
}

// =============================================================================
// Entry points
// =============================================================================

// pickSources runs the interactive picker over the C sources beneath
// root. It fails with a usage error when stdout is not a terminal,
// matching the behavior of git-style tools in pipelines.
func pickSources(root string) ([]string, error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input files given (interactive selection needs a terminal)")
	}

	files, err := findSources(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no C sources found under %s", root)
	}

	model := NewSourceListModel(files)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive selection: %w", err)
	}

	m := final.(SourceListModel)
	if m.Canceled || !m.Done {
		return nil, errors.New(errors.ErrCodeInvalidInput, "selection canceled")
	}
	return m.Selected(), nil
}

// findSources walks root collecting .c and .h files, skipping VCS and
// vendor directories. Paths come back sorted and root-relative.
func findSources(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".c", ".h":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
