// Package cache persists chunking results in SQLite so identical long
// messages are not re-chunked on every delivery.
//
// Keys combine the SHA-256 hash of the source text with the configured max
// length; the value is the final numbered chunk slice, JSON-encoded. The
// database runs in WAL mode with single-writer pool settings.
//
// Cache failures are always fail-open for the caller: on a read or write
// error the pipeline result is used directly and the error is reported.
//
// Two SQLite drivers are supported via build tags: the default pure Go
// modernc.org/sqlite build, and github.com/mattn/go-sqlite3 behind the
// cgo_sqlite tag. See build_purego.go and build_cgo.go.
package cache
