package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/debug"
	"github.com/jaimade/watch-docs/internal/extract/pyast"
	"github.com/jaimade/watch-docs/internal/vcs"
	"github.com/jaimade/watch-docs/internal/vcsdiff"
)

// maxDiffCommits bounds GetChangesSince's commit count when --until is not
// given; git's -n flag takes an exact cap, not "unlimited," so a plain
// "since X" diff needs a generous ceiling rather than 0.
const maxDiffCommits = 1000

var diffCommand = &cli.Command{
	Name:      "diff",
	Usage:     "Report entity-level changes since a commit and their documentation impact",
	ArgsUsage: "DIR",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "since",
			Usage:    "Where to diff from (required): a commit reference when --until is given, otherwise a git date expression such as \"2 weeks ago\"",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Commit reference to diff to (defaults to HEAD)",
		},
	},
	Action: func(c *cli.Context) error {
		dir, err := requireDirArg(c)
		if err != nil {
			return err
		}

		a, err := newAnalyzer(dir, 0)
		if err != nil {
			return err
		}

		timeout := 30 * time.Second
		if cfg, err := loadProjectConfig(dir); err == nil && cfg.VCSTimeoutSeconds > 0 {
			timeout = time.Duration(cfg.VCSTimeoutSeconds) * time.Second
		}
		backend := vcs.New(dir, timeout)
		tracker := vcsdiff.NewTracker(backend, pyast.New(), debug.Warnf)

		ctx := context.Background()
		var commits []vcsdiff.AnalyzedCommit
		if until := c.String("until"); until != "" {
			commits, err = tracker.GetChangesBetween(ctx, c.String("since"), until, false)
		} else {
			commits, err = tracker.GetChangesSince(ctx, c.String("since"), maxDiffCommits, false)
		}
		if err != nil {
			return fmt.Errorf("diff: %w", err)
		}

		var changes []vcsdiff.EntityChange
		for _, commit := range commits {
			entityChanges, err := tracker.DetectEntityChanges(ctx, commit)
			if err != nil {
				return fmt.Errorf("diff: detect entity changes for %s: %w", commit.Commit.Hash, err)
			}
			changes = append(changes, entityChanges...)
		}

		if len(changes) == 0 {
			fmt.Fprintln(c.App.Writer, "no entity changes in range")
			return nil
		}

		impactAnalyzer := vcsdiff.NewImpactAnalyzer(a.Graph())
		impacts := impactAnalyzer.AnalyzeChanges(changes)

		fmt.Fprintf(c.App.Writer, "%d entity changes across %d commits\n\n", len(changes), len(commits))
		fmt.Fprintln(c.App.Writer, vcsdiff.RenderImpactReport(impacts))
		return nil
	},
}
