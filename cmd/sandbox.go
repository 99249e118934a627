package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/logging"
	"github.com/firefly-engineering/gosandbox/internal/ref"
	"github.com/firefly-engineering/gosandbox/internal/workspace"
)

// runRoot is the main flow: classify, resolve, fetch if absent, launch.
func runRoot(cmd *cobra.Command, a *app.App, opts *rootOptions, args []string) error {
	positional, command := splitArgs(cmd, args)

	if opts.list || opts.pick {
		if len(positional) > 0 || len(command) > 0 {
			return errors.UsageError("--list and --pick take no arguments")
		}
	} else if err := validateArgs(positional); err != nil {
		return err
	}

	mode := launchMode(opts.quiet, command)
	if opts.quiet {
		// stdout carries only the setup lines
		logging.SetUserOutput(a.Stderr, a.Stderr)
	} else {
		logging.SetUserOutput(a.Stdout, a.Stderr)
	}

	cfg, err := a.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logging.Debug("config loaded", "workspace", cfg.Workspace, "client", cfg.Client(), "source", cfg.Source)

	switch {
	case opts.list:
		return runList(a, cfg)
	case opts.pick:
		return runPick(cmd.Context(), a, cfg)
	}

	d, err := ref.Classify(positional[0])
	if err != nil {
		return errors.ClassificationFailed(err)
	}
	layout := workspace.Resolve(d, cfg.Workspace)
	logging.Debug("resolved", "ref", d.String(), "kind", d.Kind.String(), "root", layout.RootDir, "package_root", layout.PackageRoot)

	if err := a.Ensurer(cfg).EnsurePresent(cmd.Context(), d, layout); err != nil {
		return err
	}

	logging.Debug("launching", "mode", mode.String())
	return launchIn(cmd.Context(), a, cfg, layout, mode, command)
}
