package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// tomlDocument mirrors the [tool.watchdocs] table a pyproject.toml-style
// project file may carry, for repositories that keep all tool configuration
// in one file instead of a dedicated watchdocs.kdl.
type tomlDocument struct {
	Tool struct {
		WatchDocs struct {
			ScanRoots         []string `toml:"scan_roots"`
			IgnoreDirs        []string `toml:"ignore_dirs"`
			IgnoreGlobs       []string `toml:"ignore_globs"`
			CodeExtensions    []string `toml:"code_extensions"`
			DocExtensions     []string `toml:"doc_extensions"`
			RespectGitignore  *bool    `toml:"respect_gitignore"`
			FuzzyCutoff       float64  `toml:"fuzzy_cutoff"`
			VCSTimeoutSeconds int      `toml:"vcs_timeout_seconds"`
		} `toml:"watchdocs"`
	} `toml:"tool"`
}

// LoadTOML reads the [tool.watchdocs] table from projectRoot/pyproject.toml.
// A missing file, or a present file with no such table, returns (nil, nil).
func LoadTOML(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, "pyproject.toml")

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read pyproject.toml: %w", err)
	}

	var doc tomlDocument
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse pyproject.toml: %w", err)
	}

	section := doc.Tool.WatchDocs
	cfg := &Config{
		ScanRoots:         section.ScanRoots,
		IgnoreDirs:        section.IgnoreDirs,
		IgnoreGlobs:       section.IgnoreGlobs,
		CodeExtensions:    section.CodeExtensions,
		DocExtensions:     section.DocExtensions,
		FuzzyCutoff:       section.FuzzyCutoff,
		VCSTimeoutSeconds: section.VCSTimeoutSeconds,
	}
	if section.RespectGitignore != nil {
		cfg.RespectGitignore = *section.RespectGitignore
		cfg.respectGitignoreSet = true
	}

	return cfg, nil
}
