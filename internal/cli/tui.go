package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cohensara/coverenum/pkg/batch"
	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/instance"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// instanceEntry is one row of the picker.
type instanceEntry struct {
	Path   string
	Name   string
	Format string
	Size   int64
}

// listInstances returns the instance files of dir with their detected formats.
func listInstances(dir string) ([]instanceEntry, error) {
	files, err := batch.Files(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]instanceEntry, 0, len(files))
	for _, path := range files {
		e := instanceEntry{
			Path:   path,
			Name:   filepath.Base(path),
			Format: instance.Detect(path).Name(),
		}
		if info, err := os.Stat(path); err == nil {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// pickInstance lets the user choose an instance in dir. It returns the empty
// string when the user quits without choosing.
func pickInstance(dir string) (string, error) {
	entries, err := listInstances(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no instance files in %s", dir)
	}

	final, err := tea.NewProgram(NewInstanceListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("instance picker: %w", err)
	}
	m := final.(InstanceListModel)
	if m.Selected == nil {
		return "", nil
	}
	return m.Selected.Path, nil
}

// =============================================================================
// InstanceListModel - Interactive instance selection
// =============================================================================

// InstanceListModel is the bubbletea model for interactive instance selection.
type InstanceListModel struct {
	Instances []instanceEntry
	Cursor    int
	Selected  *instanceEntry
	Height    int
	Offset    int
}

// NewInstanceListModel creates a new instance list model.
func NewInstanceListModel(entries []instanceEntry) InstanceListModel {
	return InstanceListModel{
		Instances: entries,
		Height:    15,
	}
}

func (m InstanceListModel) Init() tea.Cmd {
	return nil
}

func (m InstanceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Instances)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			e := m.Instances[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m InstanceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Instance"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Instances))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Instances[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, e.Name, e.Format, formatSize(e.Size)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Instance", "Format", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Instances))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
