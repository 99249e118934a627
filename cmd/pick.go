package cmd

import (
	"context"
	"fmt"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/launch"
	"github.com/firefly-engineering/gosandbox/internal/logging"
	"github.com/firefly-engineering/gosandbox/internal/tui"
)

func runPick(ctx context.Context, a *app.App, cfg *config.Config) error {
	logging.Debug("picker mode started")

	entries, err := a.Discover(cfg)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	if len(entries) == 0 {
		logging.UserInfo("No workspaces found in %s. Create one with: gosandbox <owner/name>", cfg.Workspace)
		return nil
	}

	result, err := tui.RunPicker(entries, a.FS, a.Exec)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	if result.Action != tui.ActionEnter {
		return nil
	}
	return launchIn(ctx, a, cfg, result.Workspace.Layout, launch.ModeInteractive, nil)
}
