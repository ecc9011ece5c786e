// Build artifact detection from language-specific configuration files:
// parses package.json, tsconfig.json, vite.config.*, Cargo.toml, and
// pyproject.toml to find custom build output directories a project has
// configured beyond the defaults (dist, build, target) the scanner already
// ignores.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DetectBuildOutputGlobs scans projectRoot for build configuration files and
// returns doublestar glob patterns for any custom output directories they
// declare.
func DetectBuildOutputGlobs(projectRoot string) []string {
	var patterns []string
	patterns = append(patterns, detectJavaScriptOutputs(projectRoot)...)
	patterns = append(patterns, detectRustOutputs(projectRoot)...)
	patterns = append(patterns, detectPythonOutputs(projectRoot)...)
	return patterns
}

func detectJavaScriptOutputs(root string) []string {
	var patterns []string

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkg map[string]any
		if json.Unmarshal(data, &pkg) == nil {
			if scripts, ok := pkg["scripts"].(map[string]any); ok {
				for _, script := range scripts {
					scriptStr, ok := script.(string)
					if !ok || !strings.Contains(scriptStr, "outDir") {
						continue
					}
					parts := strings.Fields(scriptStr)
					for i, part := range parts {
						if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
							outDir := strings.Trim(parts[i+1], "\"'")
							patterns = append(patterns, "**/"+outDir+"/**")
						}
					}
				}
			}
			if build, ok := pkg["build"].(map[string]any); ok {
				if outDir, ok := build["outDir"].(string); ok {
					patterns = append(patterns, "**/"+outDir+"/**")
				}
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, "tsconfig.json")); err == nil {
		var tsconfig map[string]any
		if json.Unmarshal(data, &tsconfig) == nil {
			if compilerOptions, ok := tsconfig["compilerOptions"].(map[string]any); ok {
				if outDir, ok := compilerOptions["outDir"].(string); ok {
					patterns = append(patterns, "**/"+outDir+"/**")
				}
			}
		}
	}

	for _, viteConfig := range []string{"vite.config.js", "vite.config.ts"} {
		data, err := os.ReadFile(filepath.Join(root, viteConfig))
		if err != nil {
			continue
		}
		if dir, ok := extractQuotedValueAfter(string(data), "outDir"); ok {
			patterns = append(patterns, "**/"+dir+"/**")
		}
	}

	return patterns
}

// extractQuotedValueAfter finds "key" followed by a colon and a quoted
// string, without a full JS parser — a simple heuristic good enough for
// typical vite.config.js/ts output declarations.
func extractQuotedValueAfter(content, key string) (string, bool) {
	idx := strings.Index(content, key)
	if idx == -1 {
		return "", false
	}
	rest := content[idx+len(key):]
	colon := strings.Index(rest, ":")
	if colon == -1 {
		return "", false
	}
	rest = rest[colon+1:]
	for _, quote := range []string{"'", "\""} {
		parts := strings.SplitN(rest, quote, 3)
		if len(parts) >= 3 {
			if v := strings.TrimSpace(parts[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func detectRustOutputs(root string) []string {
	var patterns []string
	data, err := os.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil
	}
	var cargo map[string]any
	if toml.Unmarshal(data, &cargo) != nil {
		return nil
	}
	if profile, ok := cargo["profile"].(map[string]any); ok {
		if release, ok := profile["release"].(map[string]any); ok {
			if targetDir, ok := release["target-dir"].(string); ok {
				patterns = append(patterns, "**/"+targetDir+"/**")
			}
		}
	}
	return patterns
}

func detectPythonOutputs(root string) []string {
	var patterns []string
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return nil
	}
	var pyproject map[string]any
	if toml.Unmarshal(data, &pyproject) != nil {
		return nil
	}
	if tool, ok := pyproject["tool"].(map[string]any); ok {
		if poetry, ok := tool["poetry"].(map[string]any); ok {
			if build, ok := poetry["build"].(map[string]any); ok {
				if targetDir, ok := build["target-dir"].(string); ok {
					patterns = append(patterns, "**/"+targetDir+"/**")
				}
			}
		}
	}
	return patterns
}
