package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrNotFound is returned when no cached result exists for a key
	ErrNotFound = errors.New("not found")
)

// Stats summarizes cache effectiveness.
type Stats struct {
	Entries int64
	Hits    int64
	Misses  int64
}

// Store is a SQLite-backed cache of chunking results, keyed by the source
// text's SHA-256 hash and the configured max length. Identical long
// responses chunked repeatedly are served from disk instead of re-running
// the pipeline.
type Store struct {
	db     *sql.DB
	hits   atomic.Int64
	misses atomic.Int64
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// Open creates or opens a chunk cache at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a (text, maxLength) pair.
func Key(text string, maxLength int) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x:%d", sum, maxLength)
}

// Get returns the cached chunk slice for text at maxLength. ErrNotFound
// means the pipeline has to run; any other error is a cache failure the
// caller should treat as fail-open.
func (s *Store) Get(ctx context.Context, text string, maxLength int) ([]string, error) {
	key := Key(text, maxLength)

	var encoded string
	err := s.db.QueryRowContext(ctx,
		"SELECT chunks FROM chunk_cache WHERE cache_key = ?", key).Scan(&encoded)
	if err == sql.ErrNoRows {
		s.misses.Add(1)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache read: %w", err)
	}

	var chunks []string
	if err := json.Unmarshal([]byte(encoded), &chunks); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}

	s.hits.Add(1)
	_, _ = s.db.ExecContext(ctx,
		"UPDATE chunk_cache SET hit_count = hit_count + 1 WHERE cache_key = ?", key)
	return chunks, nil
}

// Put stores a chunking result.
func (s *Store) Put(ctx context.Context, text string, maxLength int, chunks []string) error {
	encoded, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	sum := sha256.Sum256([]byte(text))
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunk_cache (cache_key, text_hash, max_length, chunk_count, chunks)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			chunks = excluded.chunks,
			chunk_count = excluded.chunk_count`,
		Key(text, maxLength), sum[:], maxLength, len(chunks), string(encoded))
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Stats returns entry count plus in-process hit/miss counters.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var entries int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunk_cache").Scan(&entries); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return Stats{
		Entries: entries,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}, nil
}

// Prune deletes the oldest entries beyond keep rows.
func (s *Store) Prune(ctx context.Context, keep int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM chunk_cache WHERE cache_key NOT IN (
			SELECT cache_key FROM chunk_cache ORDER BY created_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return n, nil
}
