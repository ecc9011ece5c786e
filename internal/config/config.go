// Package config loads watch-docs project configuration from two optional
// sources — a primary KDL file (watchdocs.kdl) and a secondary
// pyproject.toml [tool.watchdocs] table — and merges them into the Options
// the scanner, matcher, and VCS backend actually consume. Neither file is
// required: with nothing on disk, Load returns sensible defaults.
package config

import (
	"github.com/jaimade/watch-docs/internal/scanner"
)

// Config is the project-level tuning surface spec.md leaves to the caller:
// scan roots, ignore-dir/glob additions, extension-classification additions,
// fuzzy-match tuning, and VCS timeouts. ScanRoots is loaded, merged and
// validated, but ScannerOptions does not carry it: each command walks only
// the directory it is given.
type Config struct {
	ScanRoots         []string
	IgnoreDirs        []string
	IgnoreGlobs       []string
	CodeExtensions    []string
	DocExtensions     []string
	RespectGitignore  bool
	FuzzyCutoff       float64
	VCSTimeoutSeconds int

	// respectGitignoreSet distinguishes "a loader explicitly set
	// RespectGitignore" from its zero value, since false is a meaningful
	// override of Default's true.
	respectGitignoreSet bool
}

// Default returns the zero-configuration project settings.
func Default() *Config {
	return &Config{
		ScanRoots:         []string{"."},
		RespectGitignore:  true,
		VCSTimeoutSeconds: 30,
	}
}

// Load reads watchdocs.kdl and pyproject.toml from projectRoot, merges them
// with the KDL file taking priority over the TOML table, layers in gitignore
// patterns and detected build-output directories, and falls back to Default
// for anything neither file sets.
func Load(projectRoot string) (*Config, error) {
	cfg := Default()

	if tomlCfg, err := LoadTOML(projectRoot); err != nil {
		return nil, err
	} else if tomlCfg != nil {
		mergeInto(cfg, tomlCfg)
	}

	if kdlCfg, err := LoadKDL(projectRoot); err != nil {
		return nil, err
	} else if kdlCfg != nil {
		mergeInto(cfg, kdlCfg)
	}

	if cfg.RespectGitignore {
		parser := NewGitignoreParser()
		if err := parser.LoadGitignore(projectRoot); err == nil {
			cfg.IgnoreGlobs = append(cfg.IgnoreGlobs, parser.GetExclusionPatterns()...)
		}
	}

	cfg.IgnoreGlobs = append(cfg.IgnoreGlobs, DetectBuildOutputGlobs(projectRoot)...)
	cfg.IgnoreGlobs = DeduplicatePatterns(cfg.IgnoreGlobs)

	return cfg, nil
}

// mergeInto overlays every non-zero field of overlay onto base, in place.
// Overlay wins field-by-field; it never clears a base value by omission.
func mergeInto(base, overlay *Config) {
	if len(overlay.ScanRoots) > 0 {
		base.ScanRoots = overlay.ScanRoots
	}
	base.IgnoreDirs = append(base.IgnoreDirs, overlay.IgnoreDirs...)
	base.IgnoreGlobs = append(base.IgnoreGlobs, overlay.IgnoreGlobs...)
	base.CodeExtensions = append(base.CodeExtensions, overlay.CodeExtensions...)
	base.DocExtensions = append(base.DocExtensions, overlay.DocExtensions...)
	if overlay.FuzzyCutoff > 0 {
		base.FuzzyCutoff = overlay.FuzzyCutoff
	}
	if overlay.VCSTimeoutSeconds > 0 {
		base.VCSTimeoutSeconds = overlay.VCSTimeoutSeconds
	}
	if overlay.respectGitignoreSet {
		base.RespectGitignore = overlay.RespectGitignore
	}
}

// ScannerOptions converts the merged config into scanner.Options, merging
// the configured extension additions on top of the scanner's fixed
// defaults rather than replacing them.
func (c *Config) ScannerOptions(sink scanner.Sink) scanner.Options {
	opts := scanner.Options{
		IgnoreGlobs: c.IgnoreGlobs,
		Sink:        sink,
	}

	if len(c.IgnoreDirs) > 0 {
		opts.IgnoreDirs = toSet(c.IgnoreDirs...)
	}
	if len(c.CodeExtensions) > 0 {
		merged := make(map[string]struct{}, len(scanner.CodeExtensions)+len(c.CodeExtensions))
		for ext := range scanner.CodeExtensions {
			merged[ext] = struct{}{}
		}
		for _, ext := range c.CodeExtensions {
			merged[ext] = struct{}{}
		}
		opts.CodeExtensions = merged
	}
	if len(c.DocExtensions) > 0 {
		merged := make(map[string]struct{}, len(scanner.DocExtensions)+len(c.DocExtensions))
		for ext := range scanner.DocExtensions {
			merged[ext] = struct{}{}
		}
		for _, ext := range c.DocExtensions {
			merged[ext] = struct{}{}
		}
		opts.DocExtensions = merged
	}

	return opts
}

func toSet(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

// DeduplicatePatterns removes duplicate glob patterns, preserving the first
// occurrence's order.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
