package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with glyph prefixes.
// These write to the user streams directly for CLI output,
// separate from the structured debug logging.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

var (
	infoGlyph    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("ℹ")
	successGlyph = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	warningGlyph = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠")
	errorGlyph   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

// SetUserOutput redirects user-facing output. A nil writer leaves the
// corresponding stream unchanged. Quiet mode points out at stderr so that
// stdout only carries text meant for eval.
func SetUserOutput(out, errOut io.Writer) {
	if out != nil {
		userOut = out
	}
	if errOut != nil {
		userErr = errOut
	}
}

// ResetUserOutput restores stdout/stderr as the user streams.
func ResetUserOutput() {
	userOut = os.Stdout
	userErr = os.Stderr
}

// UserInfo prints an info message to the user output stream.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, infoGlyph+" "+format+"\n", args...)
}

// UserSuccess prints a success message to the user output stream.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, successGlyph+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, warningGlyph+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(userErr, errorGlyph+" "+format+"\n", args...)
}
