// Package chunker composes the message chunking pipeline.
//
// A single chunking call flows strictly left to right:
//
//	raw text → preprocess → split → boundary repair → numbering
//
// No stage re-invokes an earlier one, and all state is local to the call,
// so concurrent chunking needs no locking.
//
// # Basic Usage
//
//	c := chunker.New(report.NewFromEnv())
//	chunks, err := c.ChunkMessage(longText, 2000)
//	if err != nil {
//	    // the only hard failure: max length below the reserved overhead
//	}
//
// # Effective Max Length
//
// The caller's max length is reduced by ReservedOverhead before splitting:
// NumberingReserve keeps room for the "[i/N] " prefix (so numbering can
// never push a chunk over the bound) and SafetyMargin absorbs the single
// spaces inserted at repair seams.
//
// # Guarantees
//
//   - Text that fits in one chunk passes through unchanged and unnumbered.
//   - Every output chunk is at most maxLength bytes; the sole exception is
//     content with no word boundaries at all, which is sliced at rune
//     boundaries and still respects the bound.
//   - Chunk order always matches source order.
//   - Stripping prefixes and normalizing seam whitespace reconstructs
//     every non-whitespace character of the input, in order.
package chunker
