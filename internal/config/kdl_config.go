package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL reads watchdocs.kdl from projectRoot. A missing file is not an
// error — it returns (nil, nil) so the caller falls through to defaults.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, "watchdocs.kdl")

	content, err := os.ReadFile(kdlPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read watchdocs.kdl: %w", err)
	}

	return parseKDL(string(content))
}

// parseKDL walks the KDL document for the node shapes watchdocs.kdl
// supports:
//
//	scan { roots "." "docs" }
//	ignore { dirs "fixtures" "third_party"; globs "**/*.generated.go" }
//	extensions { code ".zig"; doc ".wiki" }
//	matcher { fuzzy_cutoff 0.75 }
//	vcs { timeout_seconds 45 }
//	respect_gitignore true
func parseKDL(content string) (*Config, error) {
	cfg := &Config{}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("config: parse watchdocs.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "scan":
			for _, cn := range n.Children {
				if nodeName(cn) == "roots" {
					cfg.ScanRoots = append(cfg.ScanRoots, collectStringArgs(cn)...)
				}
			}
		case "ignore":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "dirs":
					cfg.IgnoreDirs = append(cfg.IgnoreDirs, collectStringArgs(cn)...)
				case "globs":
					cfg.IgnoreGlobs = append(cfg.IgnoreGlobs, collectStringArgs(cn)...)
				}
			}
		case "extensions":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "code":
					cfg.CodeExtensions = append(cfg.CodeExtensions, collectStringArgs(cn)...)
				case "doc":
					cfg.DocExtensions = append(cfg.DocExtensions, collectStringArgs(cn)...)
				}
			}
		case "matcher":
			for _, cn := range n.Children {
				if nodeName(cn) == "fuzzy_cutoff" {
					if v, ok := firstFloatArg(cn); ok {
						cfg.FuzzyCutoff = v
					}
				}
			}
		case "vcs":
			for _, cn := range n.Children {
				if nodeName(cn) == "timeout_seconds" {
					if v, ok := firstIntArg(cn); ok {
						cfg.VCSTimeoutSeconds = v
					}
				}
			}
		case "respect_gitignore":
			if b, ok := firstBoolArg(n); ok {
				cfg.RespectGitignore = b
				cfg.respectGitignoreSet = true
			}
		}
	}

	return cfg, nil
}

// The helpers below read kdl-go's document.Node shape; they are generic to
// any KDL config and carry no watchdocs-specific meaning.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

// collectStringArgs reads string values either from a node's inline
// arguments ("roots \".\" \"docs\"") or, if none, from its children's node
// names (block form: "roots { \".\"; \"docs\" }").
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}

	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
