// Package graph holds the directed, labeled code-documentation graph: code
// files and doc files contain entities and references, and references can
// document entities. Node IDs use the pipe-delimited scheme from spec
// section 3 (file|PATH, entity|QUALIFIED_NAME, ref|PATH|LINE|CLEAN_TEXT),
// which supersedes the colon-delimited scheme of the original graph.
package graph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jaimade/watch-docs/internal/model"
)

// NodeKind is the closed set of graph node kinds.
type NodeKind string

const (
	NodeCodeFile  NodeKind = "code_file"
	NodeDocFile   NodeKind = "doc_file"
	NodeEntity    NodeKind = "entity"
	NodeReference NodeKind = "reference"
)

// Relation is the closed set of edge relations.
type Relation string

const (
	RelationContains  Relation = "contains"
	RelationDocuments Relation = "documents"
)

// Node is one graph node's stored attributes.
type Node struct {
	ID       string
	Kind     NodeKind
	Path     string
	Language model.Language
	Format   model.DocFormat
	Title    string
	Entity   *model.CodeEntity
	Ref      *model.DocReference
}

// Edge is one directed, labeled edge.
type Edge struct {
	Source, Target string
	Relation       Relation
	LinkKind       model.LinkKind
	Confidence     float64
}

// Graph is the documentation decay graph. Safe for concurrent use.
type Graph struct {
	mu sync.RWMutex

	nodes map[string]*Node
	out   map[string][]Edge
	in    map[string][]Edge
}

// New constructs an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string][]Edge),
		in:    make(map[string][]Edge),
	}
}

// FileNodeID builds the "file|PATH" node ID.
func FileNodeID(path string) string { return "file|" + path }

// EntityNodeID builds the "entity|QUALIFIED_NAME" node ID.
func EntityNodeID(qualifiedName string) string { return "entity|" + qualifiedName }

// ReferenceNodeID builds the "ref|PATH|LINE|CLEAN_TEXT" node ID.
func ReferenceNodeID(path string, line int, cleanText string) string {
	return fmt.Sprintf("ref|%s|%d|%s", path, line, cleanText)
}

// AddCodeFile registers a code file node, then each of its entities with a
// contains edge from the file. Returns the file's node ID.
func (g *Graph) AddCodeFile(cf model.CodeFile) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	fileID := FileNodeID(cf.Path)
	g.nodes[fileID] = &Node{ID: fileID, Kind: NodeCodeFile, Path: cf.Path, Language: cf.Language}

	for _, e := range cf.Entities {
		entityID := g.addEntityLocked(e)
		g.addEdgeLocked(fileID, entityID, Edge{Source: fileID, Target: entityID, Relation: RelationContains})
	}
	return fileID
}

// AddDocFile registers a doc file node, then each of its references with a
// contains edge from the file. Returns the file's node ID.
func (g *Graph) AddDocFile(df model.DocFile) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	fileID := FileNodeID(df.Path)
	g.nodes[fileID] = &Node{ID: fileID, Kind: NodeDocFile, Path: df.Path, Format: df.Format, Title: df.Title}

	for _, r := range df.References {
		refID := g.addReferenceLocked(r)
		g.addEdgeLocked(fileID, refID, Edge{Source: fileID, Target: refID, Relation: RelationContains})
	}
	return fileID
}

// AddEntity registers a single entity node and returns its node ID.
func (g *Graph) AddEntity(e model.CodeEntity) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEntityLocked(e)
}

func (g *Graph) addEntityLocked(e model.CodeEntity) string {
	id := EntityNodeID(e.QualifiedName())
	entity := e
	g.nodes[id] = &Node{ID: id, Kind: NodeEntity, Entity: &entity}
	return id
}

// AddReference registers a single reference node and returns its node ID.
func (g *Graph) AddReference(r model.DocReference) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addReferenceLocked(r)
}

func (g *Graph) addReferenceLocked(r model.DocReference) string {
	id := ReferenceNodeID(r.Location.File, r.Location.LineStart, r.CleanText())
	ref := r
	g.nodes[id] = &Node{ID: id, Kind: NodeReference, Ref: &ref}
	return id
}

// AddLink records a documents edge from an entity to a reference, provided
// both nodes already exist in the graph.
func (g *Graph) AddLink(link model.CodeDocLink) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entityID := EntityNodeID(link.Entity.QualifiedName())
	refID := ReferenceNodeID(link.Reference.Location.File, link.Reference.Location.LineStart, link.Reference.CleanText())

	if _, ok := g.nodes[entityID]; !ok {
		return
	}
	if _, ok := g.nodes[refID]; !ok {
		return
	}
	g.addEdgeLocked(entityID, refID, Edge{
		Source: entityID, Target: refID, Relation: RelationDocuments,
		LinkKind: link.Kind, Confidence: link.Confidence,
	})
}

func (g *Graph) addEdgeLocked(source, target string, e Edge) {
	g.out[source] = append(g.out[source], e)
	g.in[target] = append(g.in[target], e)
}

// Node returns a node's data by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Entities returns all entity node IDs.
func (g *Graph) Entities() []string {
	return g.nodeIDsOfKind(NodeEntity)
}

// References returns all reference node IDs.
func (g *Graph) References() []string {
	return g.nodeIDsOfKind(NodeReference)
}

func (g *Graph) nodeIDsOfKind(kind NodeKind) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for id, n := range g.nodes {
		if n.Kind == kind {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DocumentingRefs returns the reference node IDs that document an entity.
func (g *Graph) DocumentingRefs(entityID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, e := range g.out[entityID] {
		if e.Relation == RelationDocuments {
			out = append(out, e.Target)
		}
	}
	return out
}

// DocumentedEntity returns the entity node ID that a reference documents,
// if any.
func (g *Graph) DocumentedEntity(refID string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.in[refID] {
		if e.Relation == RelationDocuments {
			return e.Source, true
		}
	}
	return "", false
}

// IsEntityDocumented reports whether an entity has at least one documenting
// reference.
func (g *Graph) IsEntityDocumented(entityID string) bool {
	return len(g.DocumentingRefs(entityID)) > 0
}

// IsReferenceLinked reports whether a reference documents any entity.
func (g *Graph) IsReferenceLinked(refID string) bool {
	_, ok := g.DocumentedEntity(refID)
	return ok
}

// NodeCount returns the total number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, edges := range g.out {
		n += len(edges)
	}
	return n
}

// CountByKind counts nodes of a given kind.
func (g *Graph) CountByKind(kind NodeKind) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, node := range g.nodes {
		if node.Kind == kind {
			n++
		}
	}
	return n
}
