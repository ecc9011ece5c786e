package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/analyzer"
)

var mcpCommand = &cli.Command{
	Name:  "mcp",
	Usage: "Serve analysis tools over MCP/stdio for editor and agent integration",
	Action: func(c *cli.Context) error {
		server := mcp.NewServer(&mcp.Implementation{
			Name:    "docwatch-mcp-server",
			Version: appVersion,
		}, nil)

		registerMCPTools(server)

		return server.Run(c.Context, &mcp.StdioTransport{})
	},
}

type dirParams struct {
	Dir         string  `json:"dir"`
	FuzzyCutoff float64 `json:"fuzzy_cutoff,omitempty"`
}

func registerMCPTools(server *mcp.Server) {
	server.AddTool(&mcp.Tool{
		Name:        "analyze",
		Description: "Scan a directory and return its documentation coverage stats and ranked priority issues",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"dir": {
					Type:        "string",
					Description: "Directory to analyze",
				},
				"fuzzy_cutoff": {
					Type:        "number",
					Description: "Jaro-Winkler cutoff for typo-detection scoring (0-1)",
				},
			},
			Required: []string{"dir"},
		},
	}, handleAnalyzeTool)

	server.AddTool(&mcp.Tool{
		Name:        "coverage",
		Description: "Return documentation coverage stats for a directory, without the priority issue list",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"dir": {
					Type:        "string",
					Description: "Directory to analyze",
				},
			},
			Required: []string{"dir"},
		},
	}, handleCoverageTool)

	server.AddTool(&mcp.Tool{
		Name:        "priority_issues",
		Description: "Return the ranked list of undocumented entities and broken references for a directory",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"dir": {
					Type:        "string",
					Description: "Directory to analyze",
				},
				"fuzzy_cutoff": {
					Type:        "number",
					Description: "Jaro-Winkler cutoff for typo-detection scoring (0-1)",
				},
			},
			Required: []string{"dir"},
		},
	}, handlePriorityIssuesTool)
}

func jsonToolResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}, nil
}

func parseDirParams(req *mcp.CallToolRequest) (dirParams, error) {
	var p dirParams
	if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
		return p, fmt.Errorf("invalid parameters: %w", err)
	}
	if p.Dir == "" {
		return p, fmt.Errorf("dir is required")
	}
	return p, nil
}

func handleAnalyzeTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parseDirParams(req)
	if err != nil {
		return toolError(err)
	}
	a, err := newAnalyzer(p.Dir, p.FuzzyCutoff)
	if err != nil {
		return toolError(err)
	}
	return jsonAnalysisResult(a)
}

func handleCoverageTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parseDirParams(req)
	if err != nil {
		return toolError(err)
	}
	a, err := newAnalyzer(p.Dir, 0)
	if err != nil {
		return toolError(err)
	}
	stats := a.Stats()
	return jsonToolResult(jsonStats{
		TotalEntities:      stats.TotalEntities,
		DocumentedEntities: stats.DocumentedEntities,
		TotalReferences:    stats.TotalReferences,
		LinkedReferences:   stats.LinkedReferences,
		CoveragePercent:    stats.CoveragePercent(),
	})
}

func handlePriorityIssuesTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := parseDirParams(req)
	if err != nil {
		return toolError(err)
	}
	a, err := newAnalyzer(p.Dir, p.FuzzyCutoff)
	if err != nil {
		return toolError(err)
	}
	return jsonToolResult(toJSONIssues(a.PriorityIssues()))
}

func jsonAnalysisResult(a *analyzer.Analyzer) (*mcp.CallToolResult, error) {
	stats := a.Stats()
	return jsonToolResult(jsonAnalysis{
		Stats: jsonStats{
			TotalEntities:      stats.TotalEntities,
			DocumentedEntities: stats.DocumentedEntities,
			TotalReferences:    stats.TotalReferences,
			LinkedReferences:   stats.LinkedReferences,
			CoveragePercent:    stats.CoveragePercent(),
		},
		Issues: toJSONIssues(a.PriorityIssues()),
	})
}
