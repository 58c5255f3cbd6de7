// Package report provides the error-reporting collaborator used across the
// chunking pipeline.
//
// The pipeline's failure policy is deliberately asymmetric: the preprocessor
// and boundary repair engine fail open (cosmetic fixes should never block
// delivery), while the validator fails closed (a validation pass that hides
// its own failure would report false positives of correctness). Both sides
// surface what happened through this package rather than panicking or
// writing to stdout.
//
// # Usage
//
//	rep := report.NewFromEnv()
//	rep.Error(err, "boundary repair failed", map[string]interface{}{
//	    "chunk_count": len(chunks),
//	    "max_length":  safeMax,
//	})
//
// Debug output is gated by MSGCHUNK_LOG_LEVEL=debug.
package report
