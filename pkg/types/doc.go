// Package types defines the shared data model for message chunking.
//
// The two central types are Chunk, one bounded-length segment of a longer
// message, and ChunkSequence, an index-addressed arena of chunks for a
// single source text.
//
// # Chunk Lifecycle
//
// Chunks are created by the primary splitter, edited in place (text
// reassigned, never appended) by the boundary repair engine, and frozen
// once validation runs:
//
//	seq := types.NewChunkSequence([]string{"First part", "second part."})
//	seq.ReplacePair(0, "First", "part second part.")
//	texts := seq.Texts()
//
// # Invariants
//
// After repair, every chunk satisfies len(chunk) <= effective max length,
// with one documented exception: a single sentence that alone exceeds the
// limit is hard-split at word boundaries. Concatenating all chunk texts
// (after stripping numbering prefixes and normalizing seam whitespace)
// reproduces every non-whitespace character of the original text in order.
//
// # Errors
//
// Domain sentinel errors live here so callers can test with errors.Is:
//
//	if errors.Is(err, types.ErrMaxLengthTooSmall) {
//	    // caller passed a max length below the reserved overhead
//	}
package types
