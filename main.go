package main

import (
	"os"

	"github.com/firefly-engineering/gosandbox/cmd"
	"github.com/firefly-engineering/gosandbox/internal/errors"
	"github.com/firefly-engineering/gosandbox/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.IsSilent(err) {
			logging.UserError("%v", err)
		}
		os.Exit(errors.GetExitCode(err))
	}
}
