package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkValidate(t *testing.T) {
	c := Chunk{Text: "hello", Index: 0}
	assert.NoError(t, c.Validate())
	assert.Equal(t, 5, c.Len())

	bad := Chunk{Text: "x", Index: -1}
	assert.Error(t, bad.Validate())
}

func TestChunkContentHash(t *testing.T) {
	a := Chunk{Text: "same"}
	b := Chunk{Text: "same"}
	c := Chunk{Text: "different"}

	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.NotEqual(t, a.ContentHash(), c.ContentHash())
}

func TestChunkSequence(t *testing.T) {
	seq := NewChunkSequence([]string{"one", "two", "three"})

	require.Equal(t, 3, seq.Len())
	assert.Equal(t, "one", seq.At(0))
	assert.Equal(t, "three", seq.At(2))
	assert.Equal(t, []string{"one", "two", "three"}, seq.Texts())
}

func TestChunkSequenceReplaceAt(t *testing.T) {
	seq := NewChunkSequence([]string{"one", "two"})

	require.NoError(t, seq.ReplaceAt(1, "replaced"))
	assert.Equal(t, "replaced", seq.At(1))

	err := seq.ReplaceAt(2, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, seq.ReplaceAt(-1, "nope"), ErrIndexOutOfRange)
}

func TestChunkSequenceReplacePair(t *testing.T) {
	seq := NewChunkSequence([]string{"left tail", "right", "untouched"})

	require.NoError(t, seq.ReplacePair(0, "left", "tail right"))
	assert.Equal(t, []string{"left", "tail right", "untouched"}, seq.Texts())

	// The pair index must leave room for i+1.
	assert.ErrorIs(t, seq.ReplacePair(2, "a", "b"), ErrIndexOutOfRange)
	assert.ErrorIs(t, seq.ReplacePair(-1, "a", "b"), ErrIndexOutOfRange)
}

func TestChunkSequenceTextsIsACopy(t *testing.T) {
	seq := NewChunkSequence([]string{"one", "two"})

	texts := seq.Texts()
	texts[0] = "mutated"

	assert.Equal(t, "one", seq.At(0))
}
