package types

import "errors"

// Domain errors for chunking operations
var (
	// ErrMaxLengthTooSmall is returned when the requested max length does
	// not leave any room after subtracting the reserved overhead.
	// Surfaced as a hard failure: silently producing empty chunks would
	// corrupt downstream delivery.
	ErrMaxLengthTooSmall = errors.New("max length too small after reserved overhead")

	// ErrIndexOutOfRange is returned for an out-of-bounds sequence edit.
	ErrIndexOutOfRange = errors.New("chunk index out of range")
)
