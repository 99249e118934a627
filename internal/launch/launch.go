// Package launch hands a resolved workspace to the user: as shell setup
// text, as a one-off command, or as an interactive shell.
package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/logging"
	"github.com/firefly-engineering/gosandbox/internal/system"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// Mode selects how the workspace is handed over.
type Mode int

const (
	// ModeInteractive runs $SHELL in the package root.
	ModeInteractive Mode = iota
	// ModeQuiet prints shell setup text and spawns nothing.
	ModeQuiet
	// ModeCommand runs $SHELL -c <command> in the package root.
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeQuiet:
		return "quiet"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Environment is the process environment for a launched child.
type Environment struct {
	// Vars is a complete KEY=VALUE list.
	Vars []string

	// Dir is the working directory.
	Dir string
}

// NewEnvironment derives the child environment from environ without
// modifying it: GOPATH is the workspace root, its bin directory is
// prepended to PATH, and the working directory is the package root.
func NewEnvironment(environ []string, layout workspace.Layout) Environment {
	vars := system.SetEnv(environ, "GOPATH", layout.RootDir)

	path := layout.BinDir()
	if old := system.GetEnv(environ, "PATH"); old != "" {
		path += string(os.PathListSeparator) + old
	}
	vars = system.SetEnv(vars, "PATH", path)

	return Environment{Vars: vars, Dir: layout.PackageRoot}
}

// QuietScript returns the three shell lines that enter the workspace when
// evaluated by a POSIX shell.
func QuietScript(layout workspace.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export GOPATH=%s\n", shellquote.Join(layout.RootDir))
	fmt.Fprintf(&b, "export PATH=%s:\"$PATH\"\n", shellquote.Join(layout.BinDir()))
	fmt.Fprintf(&b, "cd %s\n", shellquote.Join(layout.PackageRoot))
	return b.String()
}

// Launcher starts processes inside a workspace.
type Launcher struct {
	Exec system.CommandExecutor

	// Shell is the interpreter for interactive and command modes.
	Shell string

	// Environ is the caller environment the child environment is derived from.
	Environ []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Launcher attached to the process's stdio.
func New(shell string) *Launcher {
	return &Launcher{
		Exec:    system.DefaultExecutor(),
		Shell:   shell,
		Environ: os.Environ(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Launch hands layout over in the given mode and returns the exit code the
// program should finish with. command is only used in ModeCommand.
//
// In ModeCommand the code is the command's own exit status. In
// ModeInteractive a shell that fails or exits non-zero is reported but the
// code is 0. An error is returned only when nothing could be started.
func (l *Launcher) Launch(ctx context.Context, layout workspace.Layout, mode Mode, command string) (int, error) {
	if mode == ModeQuiet {
		if _, err := io.WriteString(l.Stdout, QuietScript(layout)); err != nil {
			return errors.ExitLaunchFailed, errors.LaunchFailed("failed to write environment", err)
		}
		return 0, nil
	}

	if l.Shell == "" {
		return errors.ExitLaunchFailed, errors.LaunchFailed("SHELL is not set", nil)
	}

	env := NewEnvironment(l.Environ, layout)
	cmd := system.Command{
		Name:   l.Shell,
		Env:    env.Vars,
		Dir:    env.Dir,
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}

	switch mode {
	case ModeCommand:
		cmd.Args = []string{"-c", command}
		logging.Debug("running command", "shell", l.Shell, "command", command, "dir", env.Dir)
		return l.runCommand(ctx, cmd)

	case ModeInteractive:
		logging.Debug("starting shell", "shell", l.Shell, "dir", env.Dir)
		if err := l.Exec.Run(ctx, cmd); err != nil {
			logging.UserWarning("Shell exited: %v", err)
		}
		return 0, nil

	default:
		return errors.ExitLaunchFailed, errors.LaunchFailed(fmt.Sprintf("unknown launch mode %d", mode), nil)
	}
}

func (l *Launcher) runCommand(ctx context.Context, cmd system.Command) (int, error) {
	err := l.Exec.Run(ctx, cmd)
	if err == nil {
		return 0, nil
	}

	var coder system.ExitCoder
	if errors.As(err, &coder) {
		code := coder.ExitCode()
		// killed by a signal
		if code < 0 {
			code = 1
		}
		logging.Debug("command exited", "code", code)
		return code, nil
	}

	return errors.ExitLaunchFailed, errors.LaunchFailed(fmt.Sprintf("failed to run %s", cmd.Name), err)
}
