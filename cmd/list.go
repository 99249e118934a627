package cmd

import (
	"fmt"
	"io"

	"github.com/firefly-engineering/gosandbox/internal/app"
	"github.com/firefly-engineering/gosandbox/internal/config"
	"github.com/firefly-engineering/gosandbox/internal/tui"
)

func runList(a *app.App, cfg *config.Config) error {
	entries, err := a.Discover(cfg)
	if err != nil {
		return fmt.Errorf("failed to list workspaces: %w", err)
	}

	_, err = io.WriteString(a.Stdout, tui.SimplePicker(entries, a.FS, a.Exec))
	return err
}
