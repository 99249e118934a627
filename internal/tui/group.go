package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/gosandbox/internal/health"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// unresolvedGroup labels workspaces whose package root could not be found.
const unresolvedGroup = "(unresolved)"

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// groupKey returns the grouping key for a workspace: the provider host of
// its import path.
func groupKey(e workspace.Entry) string {
	if !e.Resolved() {
		return unresolvedGroup
	}
	host, _, _ := strings.Cut(e.Ref.ImportPath(), "/")
	return host
}

// newItem builds the list item for one workspace.
func newItem(fs system.FileSystem, exec system.CommandExecutor, e workspace.Entry) workspaceItem {
	result := health.Check(fs, exec, e.Layout)
	return workspaceItem{
		entry:  e,
		status: result.Summary(),
		vcs:    result.VCS,
		age:    result.Age,
	}
}

// buildGroupedItems groups workspaces by provider host and returns list
// items with headerItem separators.
func buildGroupedItems(entries []workspace.Entry, fs system.FileSystem, exec system.CommandExecutor) []list.Item {
	if len(entries) == 0 {
		return nil
	}

	// Group workspaces by key
	type group struct {
		key     string
		entries []workspace.Entry
	}
	groupMap := make(map[string]*group)
	for _, e := range entries {
		key := groupKey(e)
		g, ok := groupMap[key]
		if !ok {
			g = &group{key: key}
			groupMap[key] = g
		}
		g.entries = append(g.entries, e)
	}

	// Sort groups alphabetically, unresolved last
	groups := make([]*group, 0, len(groupMap))
	for _, g := range groupMap {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if (groups[i].key == unresolvedGroup) != (groups[j].key == unresolvedGroup) {
			return groups[j].key == unresolvedGroup
		}
		return groups[i].key < groups[j].key
	})

	// Build items with headers
	var items []list.Item
	for _, g := range groups {
		items = append(items, headerItem{label: g.key})
		for _, e := range g.entries {
			items = append(items, newItem(fs, exec, e))
		}
	}

	return items
}

// headerStyle is the style for group header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and workspaceItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

// newGroupedDelegate creates a groupedDelegate wrapping a configured DefaultDelegate.
func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}

	d.inner.Render(w, m, index, item)
}

// skipHeaders adjusts the cursor position to skip headerItem entries.
// direction should be 1 (down) or -1 (up).
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	// Try to move in the given direction first
	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	// Fall back to the opposite direction
	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}
}

// isHeaderSelected returns true if the currently selected item is a headerItem.
func isHeaderSelected(l *list.Model) bool {
	if item := l.SelectedItem(); item != nil {
		_, ok := item.(headerItem)
		return ok
	}
	return false
}

// navigationDirection returns 1 for down/j keys, -1 for up/k keys.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}
