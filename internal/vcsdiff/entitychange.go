// Package vcsdiff layers commit-level classification and entity-level
// change detection on top of internal/vcs, then maps detected changes onto
// the documentation graph to report which docs a commit may have made
// stale, per spec sections 5 and 5.1.
package vcsdiff

import "github.com/jaimade/watch-docs/internal/model"

// ChangeType classifies how a single code entity changed between two
// versions of a file.
type ChangeType string

const (
	ChangeAdded            ChangeType = "added"
	ChangeDeleted          ChangeType = "deleted"
	ChangeSignatureChanged ChangeType = "signature_changed"
	ChangeDocstringChanged ChangeType = "docstring_changed"
	ChangeBodyChanged      ChangeType = "body_changed"
)

// entitySnapshot captures the fields of a CodeEntity that matter for
// before/after comparison; body changes are not detectable from the
// extractor's output (no body hash is recorded), so ChangeBodyChanged is
// never produced by compareEntities — it exists for API completeness and
// for a future extractor that captures a body digest.
type entitySnapshot struct {
	kind      model.EntityKind
	signature string
	docstring string
}

// EntityChange describes one entity's change between two commits.
type EntityChange struct {
	EntityName   string
	Kind         model.EntityKind
	FilePath     string
	ChangeType   ChangeType
	OldSignature string
	NewSignature string
	OldDocstring string
	NewDocstring string
}

// entityKey returns the map key used to match an entity across versions:
// "parent.name" for methods, bare "name" otherwise.
func entityKey(e model.CodeEntity) string {
	return e.DisplayName()
}

func snapshotEntities(entities []model.CodeEntity) map[string]entitySnapshot {
	out := make(map[string]entitySnapshot, len(entities))
	for _, e := range entities {
		out[entityKey(e)] = entitySnapshot{kind: e.Kind, signature: e.Signature, docstring: e.Docstring}
	}
	return out
}

// compareEntities diffs two name-keyed snapshots, per-file, emitting
// independent events for added/deleted entities and, for entities present
// in both, an event for each field that changed (an entity can therefore
// produce both a signature_changed and a docstring_changed event).
func compareEntities(oldEntities, newEntities map[string]entitySnapshot, filePath string) []EntityChange {
	var changes []EntityChange

	for name, n := range newEntities {
		if _, ok := oldEntities[name]; ok {
			continue
		}
		changes = append(changes, EntityChange{
			EntityName: name, Kind: n.kind, FilePath: filePath,
			ChangeType: ChangeAdded, NewSignature: n.signature, NewDocstring: n.docstring,
		})
	}

	for name, o := range oldEntities {
		if _, ok := newEntities[name]; ok {
			continue
		}
		changes = append(changes, EntityChange{
			EntityName: name, Kind: o.kind, FilePath: filePath,
			ChangeType: ChangeDeleted, OldSignature: o.signature, OldDocstring: o.docstring,
		})
	}

	for name, o := range oldEntities {
		n, ok := newEntities[name]
		if !ok {
			continue
		}

		if o.signature != n.signature {
			changes = append(changes, EntityChange{
				EntityName: name, Kind: n.kind, FilePath: filePath,
				ChangeType: ChangeSignatureChanged, OldSignature: o.signature, NewSignature: n.signature,
			})
		}
		if o.docstring != n.docstring {
			changes = append(changes, EntityChange{
				EntityName: name, Kind: n.kind, FilePath: filePath,
				ChangeType: ChangeDocstringChanged, OldDocstring: o.docstring, NewDocstring: n.docstring,
			})
		}
	}

	return changes
}
