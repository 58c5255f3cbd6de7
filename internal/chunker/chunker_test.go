package chunker

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgkit/msgchunk-mcp/pkg/types"
)

var reFirstChunkPrefix = regexp.MustCompile(`^\[1/\d+\]`)

func TestChunkMessage_ShortInputPassesThroughExactly(t *testing.T) {
	c := New(nil)

	text := "A short message.\nWith a raw\nnewline before www.example.com"
	got, err := c.ChunkMessage(text, 2000)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0])
}

func TestChunkMessage_LongInputIsSplitAndNumbered(t *testing.T) {
	c := New(nil)

	text := strings.Repeat("This is sentence 1. ", 100)
	got, err := c.ChunkMessage(text, 500)

	require.NoError(t, err)
	require.Greater(t, len(got), 1)
	assert.Regexp(t, reFirstChunkPrefix, got[0])

	for i, chunk := range got {
		assert.LessOrEqual(t, len(chunk), 500, "chunk %d over bound", i)
		assert.Regexp(t, `^\[\d+/\d+\] `, chunk, "chunk %d missing prefix", i)
	}
}

func TestChunkMessage_LengthInvariant(t *testing.T) {
	c := New(nil)

	texts := []string{
		strings.Repeat("Sentence with some words in it. ", 200),
		strings.Repeat("word ", 2000),
		strings.Repeat("x", 5000),
	}
	for _, text := range texts {
		got, err := c.ChunkMessage(text, 400)
		require.NoError(t, err)
		for i, chunk := range got {
			assert.LessOrEqual(t, len(chunk), 400, "chunk %d over bound", i)
		}
	}
}

func TestChunkMessage_Reconstruction(t *testing.T) {
	c := New(nil)

	text := strings.TrimSpace(strings.Repeat("Alpha beta gamma delta. ", 120))
	got, err := c.ChunkMessage(text, 300)
	require.NoError(t, err)
	require.Greater(t, len(got), 1)

	var parts []string
	for _, chunk := range got {
		parts = append(parts, StripNumber(chunk))
	}
	normalize := func(in string) string { return strings.Join(strings.Fields(in), " ") }
	assert.Equal(t, normalize(text), normalize(strings.Join(parts, " ")))
}

func TestChunkMessage_MaxLengthBelowOverheadIsHardError(t *testing.T) {
	c := New(nil)

	_, err := c.ChunkMessage("some text", ReservedOverhead)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMaxLengthTooSmall))

	_, err = c.ChunkMessage("some text", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMaxLengthTooSmall))
}

func TestChunkMessage_DefaultMaxLength(t *testing.T) {
	c := New(nil)

	text := strings.Repeat("A reasonably long sentence for padding. ", 80) // ~3200 bytes
	got, err := c.ChunkMessage(text, 0)

	require.NoError(t, err)
	require.Greater(t, len(got), 1)
	for i, chunk := range got {
		assert.LessOrEqual(t, len(chunk), DefaultMaxLength, "chunk %d over bound", i)
	}
}

func TestChunkMessage_PreprocessesBeforeSplitting(t *testing.T) {
	c := New(nil)

	// Long enough to trigger the pipeline; the lone URL line must be
	// rejoined before splitting so it cannot start a chunk on its own.
	text := strings.Repeat("Padding sentence goes right here. ", 20) +
		"See the patch notes.\nhttps://fractalsoftworks.com/news\n\n" +
		strings.Repeat("Trailing sentence for padding. ", 20)
	got, err := c.ChunkMessage(text, 400)

	require.NoError(t, err)
	require.Greater(t, len(got), 1)
	for _, chunk := range got {
		assert.False(t, strings.HasPrefix(StripNumber(chunk), "https://"),
			"chunk should not start with a rejoined URL: %q", chunk)
	}
}

func TestNumber(t *testing.T) {
	assert.Nil(t, Number(nil))
	assert.Equal(t, []string{"solo"}, Number([]string{"solo"}))

	got := Number([]string{"first", "second", "third"})
	assert.Equal(t, []string{"[1/3] first", "[2/3] second", "[3/3] third"}, got)
}

func TestNumber_Idempotent(t *testing.T) {
	once := Number([]string{"first", "second"})
	twice := Number(once)

	assert.Equal(t, once, twice)
	for _, chunk := range twice {
		assert.Equal(t, 1, strings.Count(chunk, "/2] "), "double prefix in %q", chunk)
	}
}

func TestStripNumber(t *testing.T) {
	assert.Equal(t, "text", StripNumber("[1/2] text"))
	assert.Equal(t, "no prefix", StripNumber("no prefix"))
	assert.Equal(t, "[not/a] prefix", StripNumber("[not/a] prefix"))
}

func TestFixChunkBoundaries(t *testing.T) {
	c := New(nil)

	got := c.FixChunkBoundaries([]string{"Check out https://example.com", "for more information"}, 100)
	assert.Equal(t, []string{"Check out", "https://example.com for more information"}, got)

	got = c.FixChunkBoundaries([]string{"Visit fractalsoftworks.", "com/forum for updates"}, 100)
	assert.Equal(t, []string{"Visit", "fractalsoftworks.com/forum for updates"}, got)
}

func TestValidateChunkBoundaries(t *testing.T) {
	c := New(nil)

	assert.False(t, c.ValidateChunkBoundaries([]string{"This is an incomplete sentence", "that continues here."}))
	assert.True(t, c.ValidateChunkBoundaries([]string{"Question?", "Exclamation!"}))
}

func TestPreprocessMessage(t *testing.T) {
	c := New(nil)

	got := c.PreprocessMessage("1. First item\n\n2. Second item")
	assert.Equal(t, "1. First item\n2. Second item", got)
}

func TestChunkBatch(t *testing.T) {
	c := New(nil)

	texts := []string{
		"Short one.",
		strings.Repeat("This is sentence 1. ", 100),
		"Short two.",
	}
	got, err := c.ChunkBatch(context.Background(), texts, 500)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Short one."}, got[0])
	assert.Greater(t, len(got[1]), 1)
	assert.Equal(t, []string{"Short two."}, got[2])
}

func TestChunkBatch_ErrorPropagates(t *testing.T) {
	c := New(nil)

	_, err := c.ChunkBatch(context.Background(), []string{"a", "b"}, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMaxLengthTooSmall))
}
