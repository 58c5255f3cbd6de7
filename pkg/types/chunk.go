package types

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// Chunk represents one bounded-length segment of a longer message,
// destined for separate delivery by the transport layer.
type Chunk struct {
	// Text is the chunk content. Owned by the chunk; repair operations
	// reassign it wholesale rather than appending in place.
	Text string

	// Index is the zero-based position of the chunk in its sequence.
	Index int
}

// Len returns the length of the chunk text in bytes.
func (c *Chunk) Len() int {
	return len(c.Text)
}

// Validate checks basic chunk integrity.
func (c *Chunk) Validate() error {
	if c.Index < 0 {
		return errors.New("chunk index must be >= 0")
	}
	return nil
}

// ContentHash computes the SHA-256 hash of the chunk text.
func (c *Chunk) ContentHash() [32]byte {
	return sha256.Sum256([]byte(c.Text))
}

// ChunkSequence is an index-addressed arena of chunks for one source text.
// Repair operations act as explicit replace-at-index edits; the sequence
// never reorders its elements, so chunk order always matches the
// left-to-right order of the corresponding content in the source.
type ChunkSequence struct {
	chunks []Chunk
}

// NewChunkSequence builds a sequence from raw chunk texts, assigning
// positions in input order.
func NewChunkSequence(texts []string) *ChunkSequence {
	chunks := make([]Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = Chunk{Text: t, Index: i}
	}
	return &ChunkSequence{chunks: chunks}
}

// Len returns the number of chunks in the sequence.
func (s *ChunkSequence) Len() int {
	return len(s.chunks)
}

// At returns the chunk text at position i.
func (s *ChunkSequence) At(i int) string {
	return s.chunks[i].Text
}

// ReplaceAt overwrites the chunk text at position i.
func (s *ChunkSequence) ReplaceAt(i int, text string) error {
	if i < 0 || i >= len(s.chunks) {
		return fmt.Errorf("replace at %d: %w", i, ErrIndexOutOfRange)
	}
	s.chunks[i].Text = text
	return nil
}

// ReplacePair overwrites adjacent chunks i and i+1 in one operation.
// This is the shape every boundary repair takes: trim the left chunk to
// its safe portion and prepend the dangling fragment to the right chunk.
func (s *ChunkSequence) ReplacePair(i int, left, right string) error {
	if i < 0 || i+1 >= len(s.chunks) {
		return fmt.Errorf("replace pair at %d: %w", i, ErrIndexOutOfRange)
	}
	s.chunks[i].Text = left
	s.chunks[i+1].Text = right
	return nil
}

// Texts returns the chunk texts in order as a fresh slice.
func (s *ChunkSequence) Texts() []string {
	texts := make([]string, len(s.chunks))
	for i := range s.chunks {
		texts[i] = s.chunks[i].Text
	}
	return texts
}
