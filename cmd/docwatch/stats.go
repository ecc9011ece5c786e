package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/scanner"
)

var statsCommand = &cli.Command{
	Name:      "stats",
	Usage:     "Report directory size, extension histogram, and documentation coverage for DIR",
	ArgsUsage: "DIR",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of largest files to list",
			Value: 10,
		},
	},
	Action: func(c *cli.Context) error {
		dir, err := requireDirArg(c)
		if err != nil {
			return err
		}

		cfg, err := loadProjectConfig(dir)
		if err != nil {
			return err
		}

		dirStats, err := scanner.ComputeDirectoryStats(dir, cfg.ScannerOptions(nil), c.Int("top"))
		if err != nil {
			return fmt.Errorf("compute directory stats: %w", err)
		}

		a, err := newAnalyzer(dir, 0)
		if err != nil {
			return err
		}
		covStats := a.Stats()

		fmt.Fprintf(c.App.Writer, "%d files, %d bytes\n", dirStats.TotalFiles, dirStats.TotalBytes)
		fmt.Fprintf(c.App.Writer, "coverage: %.1f%% (%d/%d entities documented, %d/%d references linked)\n\n",
			covStats.CoveragePercent(), covStats.DocumentedEntities, covStats.TotalEntities,
			covStats.LinkedReferences, covStats.TotalReferences)

		exts := make([]string, 0, len(dirStats.ExtensionCounts))
		for ext := range dirStats.ExtensionCounts {
			exts = append(exts, ext)
		}
		sort.Slice(exts, func(i, j int) bool { return dirStats.ExtensionCounts[exts[i]] > dirStats.ExtensionCounts[exts[j]] })

		fmt.Fprintln(c.App.Writer, "extensions:")
		for _, ext := range exts {
			fmt.Fprintf(c.App.Writer, "  %-12s %d\n", ext, dirStats.ExtensionCounts[ext])
		}

		if len(dirStats.LargestFiles) > 0 {
			fmt.Fprintln(c.App.Writer, "\nlargest files:")
			for _, f := range dirStats.LargestFiles {
				fmt.Fprintf(c.App.Writer, "  %10d  %s\n", f.Size, f.Path)
			}
		}

		return nil
	},
}
