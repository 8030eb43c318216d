package main

import (
	"fmt"
	"os"

	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/infrastructure/logger"
	"github.com/sangkips/label-bridge/pkg/printer"
)

func main() {
	cmd := newRootCommand(cliDeps{
		newDriver: func(cfg *config.Config) (printer.Driver, error) {
			return printer.NewDriverFromConfig(
				cfg.Printer.Driver,
				cfg.Printer.Name,
				cfg.Printer.DevicePath,
				cfg.Printer.Address,
			)
		},
		logger: logger.New(logger.DefaultConfig()),
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
