package vcsdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaimade/watch-docs/internal/model"
)

func TestCompareEntitiesAddedAndDeleted(t *testing.T) {
	old := map[string]entitySnapshot{
		"removed_func": {kind: model.EntityFunction, signature: "def removed_func():"},
	}
	updated := map[string]entitySnapshot{
		"added_func": {kind: model.EntityFunction, signature: "def added_func():"},
	}

	changes := compareEntities(old, updated, "mod.py")
	if assert.Len(t, changes, 2) {
		byName := map[string]EntityChange{}
		for _, c := range changes {
			byName[c.EntityName] = c
		}
		assert.Equal(t, ChangeAdded, byName["added_func"].ChangeType)
		assert.Equal(t, ChangeDeleted, byName["removed_func"].ChangeType)
	}
}

func TestCompareEntitiesSignatureAndDocstringChanged(t *testing.T) {
	old := map[string]entitySnapshot{
		"f": {kind: model.EntityFunction, signature: "def f(a):", docstring: "old doc"},
	}
	updated := map[string]entitySnapshot{
		"f": {kind: model.EntityFunction, signature: "def f(a, b):", docstring: "new doc"},
	}

	changes := compareEntities(old, updated, "mod.py")
	assert.Len(t, changes, 2)

	var types []ChangeType
	for _, c := range changes {
		types = append(types, c.ChangeType)
	}
	assert.Contains(t, types, ChangeSignatureChanged)
	assert.Contains(t, types, ChangeDocstringChanged)
}

func TestCompareEntitiesUnchanged(t *testing.T) {
	snap := map[string]entitySnapshot{
		"f": {kind: model.EntityFunction, signature: "def f():", docstring: "doc"},
	}
	changes := compareEntities(snap, snap, "mod.py")
	assert.Empty(t, changes)
}

func TestEntityKeyUsesDisplayName(t *testing.T) {
	e := model.CodeEntity{Name: "bar", ParentName: "Foo"}
	assert.Equal(t, "Foo.bar", entityKey(e))
}

func TestSnapshotEntities(t *testing.T) {
	entities := []model.CodeEntity{
		{Name: "f", Kind: model.EntityFunction, Signature: "def f():", Docstring: "d"},
	}
	snaps := snapshotEntities(entities)
	assert.Equal(t, entitySnapshot{kind: model.EntityFunction, signature: "def f():", docstring: "d"}, snaps["f"])
}
