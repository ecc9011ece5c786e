// Command docwatch is the CLI entry point for the documentation decay
// analyzer: thin urfave/cli/v2 glue over internal/analyzer, mirroring the
// teacher's cmd/lci/main.go App/Flag/Command shape.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/debug"
)

const appVersion = "0.1.0"

func main() {
	app := &cli.App{
		Name:                   "docwatch",
		Usage:                  "Find documentation that has decayed relative to the code it describes",
		Version:                appVersion,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Not read: the project config (watchdocs.kdl / pyproject.toml) is always loaded from DIR",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug and warning output to a log file instead of stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				path, err := debug.InitLogFile()
				if err != nil {
					return fmt.Errorf("init debug log: %w", err)
				}
				fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.Close()
		},
		Commands: []*cli.Command{
			analyzeCommand,
			statsCommand,
			diffCommand,
			watchCommand,
			mcpCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "docwatch: %v\n", err)
		os.Exit(1)
	}
}
