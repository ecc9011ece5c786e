package lineindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineAt(t *testing.T) {
	data := []byte("one\ntwo\nthree")
	idx := Build(data)

	assert.Equal(t, 1, idx.LineAt(0))
	assert.Equal(t, 1, idx.LineAt(2))
	assert.Equal(t, 2, idx.LineAt(4))
	assert.Equal(t, 3, idx.LineAt(9))
	assert.Equal(t, 3, idx.LineCount())
}

func TestLineAtEmpty(t *testing.T) {
	idx := Build(nil)
	assert.Equal(t, 1, idx.LineAt(0))
}
