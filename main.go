package main

import (
	"context"
	"errors"
	"os"

	"github.com/iburimskiy/wavebg/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:    "wavebg",
		Usage:   "Animated wave background: window preview and headless PNG frames",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Theme name (overrides [render].theme)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrInvalidFlag) || errors.Is(err, shared.ErrUnknownTheme) {
			logger.Error("invalid arguments", "err", err)
			os.Exit(2)
		}
		logger.Fatalf("application error: %v", err)
	}
}
