package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/logging"
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	quiet      bool
	help       bool
	list       bool
	pick       bool
	verbose    bool
	jsonOutput bool
	configPath string
}

func newRootCmd(a *app.App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gosandbox [-q|-h] REPO [-- CMD ARGS...]",
		Short: "Isolated GOPATH workspaces per Go package",
		Long: `gosandbox gives every Go package its own GOPATH.

REPO is resolved to $WORKSPACE/gopath-<name>, fetched on first use, and a
shell is started in the package directory with GOPATH and PATH pointing at
the workspace.

REPO forms:
  owner/name                        GitHub shorthand
  git@github.com:owner/name.git     GitHub over SSH
  https://github.com/owner/name     GitHub over HTTPS
  labix.org/mgo.v1                  any go get path

Environment:
  WORKSPACE   base directory (default $HOME/workspace)
  FORCE_GIT   clone with git even when gh is installed
  SHELL       interpreter for the shell and for commands`,
		Example: `  gosandbox pkg/errors
  gosandbox labix.org/mgo.v1 -- go test ./...
  eval "$(gosandbox -q pkg/errors)"`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(opts.verbose, opts.jsonOutput, a.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, a, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print shell setup for eval instead of starting a shell")
	cmd.Flags().BoolVarP(&opts.help, "help", "h", false, "Show this help")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List existing workspaces")
	cmd.Flags().BoolVarP(&opts.pick, "pick", "p", false, "Pick an existing workspace interactively")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/gosandbox/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output logs in JSON format")
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.UsageError(fmt.Sprintf("%v (run '%s -h' for usage)", err, c.Name()))
	})

	return cmd
}

// Execute runs the command line against the default app. SIGINT and
// SIGTERM cancel an in-flight fetch.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, app.Default, os.Args[1:])
}

func execute(ctx context.Context, a *app.App, args []string) error {
	opts := &rootOptions{}
	cmd := newRootCmd(a, opts)
	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		return err
	}
	// -h prints usage and is still a non-zero exit
	if opts.help {
		return errors.Exit(errors.ExitUsage)
	}
	return nil
}
