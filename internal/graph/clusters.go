package graph

import "sort"

// ConnectedFileClusters groups code and doc files that are connected
// through documents edges (a doc file's reference documents an entity
// owned by a code file) into weakly-connected components, keyed by file
// node ID, via union-find. Files with no cross-references of their own
// form singleton clusters.
func (g *Graph) ConnectedFileClusters() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	fileOf := map[string]string{} // entity/ref node ID -> owning file node ID

	for id, n := range g.nodes {
		if n.Kind == NodeCodeFile || n.Kind == NodeDocFile {
			parent[id] = id
		}
	}
	for fileID, edges := range g.out {
		n, ok := g.nodes[fileID]
		if !ok || (n.Kind != NodeCodeFile && n.Kind != NodeDocFile) {
			continue
		}
		for _, e := range edges {
			if e.Relation == RelationContains {
				fileOf[e.Target] = fileID
			}
		}
	}

	for _, edges := range g.out {
		for _, e := range edges {
			if e.Relation != RelationDocuments {
				continue
			}
			entityFile, okA := fileOf[e.Source]
			refFile, okB := fileOf[e.Target]
			if okA && okB {
				union(entityFile, refFile)
			}
		}
	}

	groups := map[string][]string{}
	for id := range parent {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	var clusters [][]string
	for _, members := range groups {
		sort.Strings(members)
		clusters = append(clusters, members)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}
