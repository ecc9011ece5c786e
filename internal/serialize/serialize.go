// Package serialize persists and restores analyzer state as JSON, matching
// spec section 6's on-disk schema. Loading validates the document's shape
// against a published schema, then validates every embedded file path
// against a base directory before any reconstruction happens — a malformed
// or hostile file can reject the whole load, but it can never produce a
// half-reconstructed analyzer.
package serialize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/jaimade/watch-docs/internal/analyzer"
	"github.com/jaimade/watch-docs/internal/errors"
	"github.com/jaimade/watch-docs/internal/model"
)

// AnalysisFileVersion is written to every saved document and is not
// currently used to gate loading — old documents load the same as new
// ones, since the schema hasn't changed shape since 1.0.
const AnalysisFileVersion = "1.0"

type envelope struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	CodeFiles []model.CodeFile    `json:"code_files"`
	DocFiles  []model.DocFile     `json:"doc_files"`
	Links     []model.CodeDocLink `json:"links"`
}

var analysisSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"version", "created_at", "code_files", "doc_files", "links"},
	Properties: map[string]*jsonschema.Schema{
		"version":    {Type: "string"},
		"created_at": {Type: "string"},
		"code_files": {Type: "array"},
		"doc_files":  {Type: "array"},
		"links":      {Type: "array"},
	},
}

var resolvedAnalysisSchema *jsonschema.Resolved

func init() {
	resolved, err := analysisSchema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("serialize: invalid embedded analysis schema: %v", err))
	}
	resolvedAnalysisSchema = resolved
}

// Save writes a's current analysis to filepath as indented JSON.
func Save(a *analyzer.Analyzer, path string) error {
	doc := envelope{
		Version:   AnalysisFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		CodeFiles: a.CodeFiles(),
		DocFiles:  a.DocFiles(),
		Links:     a.Links(),
	}
	if doc.CodeFiles == nil {
		doc.CodeFiles = []model.CodeFile{}
	}
	if doc.DocFiles == nil {
		doc.DocFiles = []model.DocFile{}
	}
	if doc.Links == nil {
		doc.Links = []model.CodeDocLink{}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("serialize: write %s: %w", path, err)
	}
	return nil
}

// Load reads a saved analysis from path, validates its shape and embedded
// file paths, and restores it into a. baseDir is the directory every
// embedded file path must resolve within; an empty baseDir defaults to
// path's parent directory. Passing validatePaths=false skips the
// containment check entirely, for trusted callers loading their own output.
func Load(path string, baseDir string, validatePaths bool, a *analyzer.Analyzer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("serialize: read %s: %w", path, err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("serialize: decode %s: %w", path, err)
	}
	if err := resolvedAnalysisSchema.Validate(generic); err != nil {
		return fmt.Errorf("serialize: %s does not match analysis schema: %w", path, err)
	}

	if validatePaths {
		effectiveBase := baseDir
		if effectiveBase == "" {
			effectiveBase = filepath.Dir(path)
		}
		if err := validatePathsInData(generic, effectiveBase); err != nil {
			return err
		}
	}

	var doc envelope
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("serialize: decode %s: %w", path, err)
	}

	a.LoadState(doc.CodeFiles, doc.DocFiles, doc.Links)
	return nil
}

// validatePath resolves pathStr against baseDir (or as-is if absolute) and
// rejects it with a PathTraversalError if the resolved path escapes
// baseDir.
func validatePath(pathStr, baseDir string) error {
	var resolved string
	if filepath.IsAbs(pathStr) {
		resolved = filepath.Clean(pathStr)
	} else {
		resolved = filepath.Clean(filepath.Join(baseDir, pathStr))
	}

	baseResolved, err := filepath.Abs(baseDir)
	if err != nil {
		return errors.NewPathTraversalError(pathStr, baseDir)
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return errors.NewPathTraversalError(pathStr, baseDir)
	}

	rel, err := filepath.Rel(baseResolved, absResolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.NewPathTraversalError(pathStr, baseDir)
	}
	return nil
}

// validatePathsInData walks the generically-decoded JSON document and
// validates every "file" key it finds under code_files/entities/locations,
// doc_files/references/locations, and links/entity+reference/locations,
// mirroring _validate_paths_in_data's traversal exactly.
func validatePathsInData(data any, baseDir string) error {
	root, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	for _, cf := range asSlice(root["code_files"]) {
		m := asMap(cf)
		if p, ok := m["path"].(string); ok {
			if err := validatePath(p, baseDir); err != nil {
				return err
			}
		}
		for _, entity := range asSlice(m["entities"]) {
			if err := validateLocationField(asMap(entity)["location"], baseDir); err != nil {
				return err
			}
		}
	}

	for _, df := range asSlice(root["doc_files"]) {
		m := asMap(df)
		if p, ok := m["path"].(string); ok {
			if err := validatePath(p, baseDir); err != nil {
				return err
			}
		}
		for _, ref := range asSlice(m["references"]) {
			if err := validateLocationField(asMap(ref)["location"], baseDir); err != nil {
				return err
			}
		}
	}

	for _, link := range asSlice(root["links"]) {
		m := asMap(link)
		if err := validateLocationField(asMap(m["entity"])["location"], baseDir); err != nil {
			return err
		}
		if err := validateLocationField(asMap(m["reference"])["location"], baseDir); err != nil {
			return err
		}
	}

	return nil
}

func validateLocationField(loc any, baseDir string) error {
	m := asMap(loc)
	file, ok := m["file"].(string)
	if !ok {
		return nil
	}
	return validatePath(file, baseDir)
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
