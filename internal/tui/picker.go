// Package tui provides terminal user interface components for gosandbox
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/gosandbox/internal/health"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionEnter
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action    Action
	Workspace workspace.Entry
}

// workspaceItem implements list.Item for workspace display
type workspaceItem struct {
	entry  workspace.Entry
	status health.Status
	vcs    string
	age    string
}

func (i workspaceItem) Title() string {
	return i.entry.Name
}

func (i workspaceItem) Description() string {
	ref := i.entry.Ref.String()
	if ref == "" {
		ref = "?"
	}

	vcs := i.vcs
	if vcs == "" {
		vcs = "-"
	}
	age := i.age
	if age == "" {
		age = "-"
	}

	path := i.entry.Layout.PackageRoot
	if path == "" {
		path = i.entry.Layout.RootDir
	}

	return fmt.Sprintf("%s %s | %s | %s | %s",
		statusIcon(i.status),
		ref,
		vcs,
		age,
		truncatePath(path, 40),
	)
}

func (i workspaceItem) FilterValue() string {
	return i.entry.Name + " " + i.entry.Ref.String()
}

func statusIcon(s health.Status) string {
	switch s {
	case health.StatusCloned:
		return "✓"
	case health.StatusPartial:
		return "⚠"
	default:
		return "○"
	}
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the workspace picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new workspace picker
func NewPicker(entries []workspace.Entry, fs system.FileSystem, exec system.CommandExecutor) Model {
	items := buildGroupedItems(entries, fs, exec)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "gosandbox - Select Workspace"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	// Start on the first workspace rather than its group header
	if len(items) > 1 {
		l.Select(1)
	}

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(workspaceItem); ok && item.entry.Resolved() {
				m.result = PickerResult{
					Action:    ActionEnter,
					Workspace: item.entry,
				}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit

		case "up", "down", "j", "k":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			if isHeaderSelected(&m.list) {
				skipHeaders(&m.list, navigationDirection(msg))
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Shell  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive workspace picker
func RunPicker(entries []workspace.Entry, fs system.FileSystem, exec system.CommandExecutor) (PickerResult, error) {
	if len(entries) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	m := NewPicker(entries, fs, exec)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists workspaces
func SimplePicker(entries []workspace.Entry, fs system.FileSystem, exec system.CommandExecutor) string {
	var sb strings.Builder

	sb.WriteString("gosandbox - Workspaces\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(entries) == 0 {
		sb.WriteString("No workspaces found.\n")
		sb.WriteString("Create one with: gosandbox <owner/name>\n")
		return sb.String()
	}

	for i, e := range entries {
		item := newItem(fs, exec, e)
		ref := e.Ref.String()
		if ref == "" {
			ref = "unresolved"
		}

		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon(item.status), e.Name, ref))
		path := e.Layout.PackageRoot
		if path == "" {
			path = e.Layout.RootDir
		}
		sb.WriteString(fmt.Sprintf("   Status: %s | Path: %s\n\n",
			item.status, truncatePath(path, 60)))
	}

	return sb.String()
}
