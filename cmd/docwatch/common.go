package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/analyzer"
	"github.com/jaimade/watch-docs/internal/config"
	"github.com/jaimade/watch-docs/internal/debug"
)

// loadProjectConfig loads and validates the project config rooted at dir,
// per internal/config's merge rules.
func loadProjectConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newAnalyzer builds an Analyzer configured from dir's project config, with
// fuzzyCutoff overriding the config's matcher tuning when non-zero, and
// runs AnalyzeDirectory against dir.
func newAnalyzer(dir string, fuzzyCutoff float64) (*analyzer.Analyzer, error) {
	cfg, err := loadProjectConfig(dir)
	if err != nil {
		return nil, err
	}

	cutoff := cfg.FuzzyCutoff
	if fuzzyCutoff > 0 {
		cutoff = fuzzyCutoff
	}

	sink := debug.StdSink{}
	a := analyzer.New(analyzer.Options{
		ScanOptions: cfg.ScannerOptions(sink),
		FuzzyCutoff: cutoff,
		Sink:        sink,
	})

	if err := a.AnalyzeDirectory(dir); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", dir, err)
	}
	return a, nil
}

// requireDirArg validates that exactly one positional DIR argument was
// given, returning it or a usage error.
func requireDirArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(fmt.Sprintf("%s: expected exactly one DIR argument, got %d", c.Command.Name, c.NArg()), 1)
	}
	return c.Args().Get(0), nil
}

func usageError(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), 1)
}
