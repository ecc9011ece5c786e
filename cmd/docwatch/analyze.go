package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/analyzer"
)

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Usage:     "Scan DIR and report undocumented entities and broken references, ranked by priority",
	ArgsUsage: "DIR",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text or json",
			Value: "text",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Write output to FILE instead of stdout",
		},
		&cli.Float64Flag{
			Name:  "fuzzy-cutoff",
			Usage: "Jaro-Winkler cutoff for typo-detection in broken reference scoring (0-1)",
		},
	},
	Action: func(c *cli.Context) error {
		dir, err := requireDirArg(c)
		if err != nil {
			return err
		}
		format := c.String("format")
		if format != "text" && format != "json" {
			return usageError("analyze: --format must be \"text\" or \"json\", got %q", format)
		}

		a, err := newAnalyzer(dir, c.Float64("fuzzy-cutoff"))
		if err != nil {
			return err
		}

		var rendered string
		if format == "json" {
			rendered, err = renderAnalysisJSON(a)
		} else {
			rendered = renderAnalysisText(a)
		}
		if err != nil {
			return err
		}

		if out := c.String("out"); out != "" {
			if err := os.WriteFile(out, []byte(rendered), 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			return nil
		}
		fmt.Fprintln(c.App.Writer, rendered)
		return nil
	},
}

type jsonIssue struct {
	Kind     string  `json:"kind"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
	Name     string  `json:"name,omitempty"`
	Location string  `json:"location"`
}

type jsonAnalysis struct {
	Stats  jsonStats   `json:"stats"`
	Issues []jsonIssue `json:"priority_issues"`
}

type jsonStats struct {
	TotalEntities      int     `json:"total_entities"`
	DocumentedEntities int     `json:"documented_entities"`
	TotalReferences    int     `json:"total_references"`
	LinkedReferences   int     `json:"linked_references"`
	CoveragePercent    float64 `json:"coverage_percent"`
}

func toJSONIssues(issues []analyzer.PriorityIssue) []jsonIssue {
	out := make([]jsonIssue, 0, len(issues))
	for _, issue := range issues {
		ji := jsonIssue{Kind: string(issue.Kind), Score: issue.Score, Reason: issue.Reason}
		switch {
		case issue.Entity != nil:
			ji.Name = issue.Entity.DisplayName()
			ji.Location = issue.Entity.Location.Span()
		case issue.Reference != nil:
			ji.Name = issue.Reference.CleanText()
			ji.Location = issue.Reference.Location.Span()
		}
		out = append(out, ji)
	}
	return out
}

func renderAnalysisJSON(a *analyzer.Analyzer) (string, error) {
	stats := a.Stats()
	doc := jsonAnalysis{
		Stats: jsonStats{
			TotalEntities:      stats.TotalEntities,
			DocumentedEntities: stats.DocumentedEntities,
			TotalReferences:    stats.TotalReferences,
			LinkedReferences:   stats.LinkedReferences,
			CoveragePercent:    stats.CoveragePercent(),
		},
		Issues: toJSONIssues(a.PriorityIssues()),
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}
	return string(raw), nil
}

func renderAnalysisText(a *analyzer.Analyzer) string {
	stats := a.Stats()
	out := fmt.Sprintf(
		"coverage: %.1f%% (%d/%d entities documented, %d/%d references linked)\n",
		stats.CoveragePercent(), stats.DocumentedEntities, stats.TotalEntities,
		stats.LinkedReferences, stats.TotalReferences,
	)

	issues := a.PriorityIssues()
	if len(issues) == 0 {
		return out + "no priority issues found"
	}

	out += fmt.Sprintf("\n%d priority issues:\n", len(issues))
	for _, issue := range issues {
		switch {
		case issue.Entity != nil:
			out += fmt.Sprintf("  [%.2f] %s (%s) — %s\n", issue.Score, issue.Entity.DisplayName(), issue.Entity.Location.Span(), issue.Reason)
		case issue.Reference != nil:
			out += fmt.Sprintf("  [%.2f] %q (%s) — %s\n", issue.Score, issue.Reference.CleanText(), issue.Reference.Location.Span(), issue.Reason)
		}
	}
	return out
}
