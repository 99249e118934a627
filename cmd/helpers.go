package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/launch"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// splitArgs separates the positional arguments from the command tokens
// given after "--".
func splitArgs(cmd *cobra.Command, args []string) (positional, command []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// launchMode picks the mode from the flags and the command tokens. -q wins
// over a command; "--" with nothing after it is interactive.
func launchMode(quiet bool, command []string) launch.Mode {
	switch {
	case quiet:
		return launch.ModeQuiet
	case len(command) > 0:
		return launch.ModeCommand
	default:
		return launch.ModeInteractive
	}
}

// validateArgs checks the positional arguments for the default mode.
func validateArgs(positional []string) error {
	switch len(positional) {
	case 0:
		return errors.UsageError("missing REPO argument")
	case 1:
		return nil
	default:
		return errors.UsageError(fmt.Sprintf("unexpected argument %q (put commands after --)", positional[1]))
	}
}

// launchIn hands layout to the launcher and converts the resulting exit
// code into an error for main. The launched process is not tied to the
// signal context: an interactive shell handles Ctrl-C itself.
func launchIn(ctx context.Context, a *app.App, cfg *config.Config, layout workspace.Layout, mode launch.Mode, command []string) error {
	code, err := a.Launcher(cfg).Launch(context.WithoutCancel(ctx), layout, mode, strings.Join(command, " "))
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Exit(code)
	}
	return nil
}
