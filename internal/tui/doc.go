// Package tui provides terminal user interface components for gosandbox.
//
// This package uses the Bubble Tea framework for the workspace picker
// behind --pick, and renders the plain listing behind --list.
//
// # Workspace Picker
//
// The picker displays discovered workspaces grouped by provider host:
//
//	result, err := tui.RunPicker(entries, fs, exec)
//	switch result.Action {
//	case tui.ActionEnter:
//	    // Launch a shell in result.Workspace
//	case tui.ActionQuit, tui.ActionNone:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists all workspaces grouped by host (github.com, labix.org, ...)
//   - Keyboard navigation (j/k or arrows), headers auto-skipped
//   - Quick actions: Enter (shell), / (filter), q or Esc (quit)
//   - Status indicators: ✓ cloned, ⚠ partial, ○ missing
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
