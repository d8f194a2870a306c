// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/divarvel/dhall-lang/lib/sqlitepool"
)

// ErrNotFound is returned by Get when no entry exists for the given
// digest.
var ErrNotFound = errors.New("cache: entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	digest      TEXT PRIMARY KEY,
	compression INTEGER NOT NULL,
	raw_size    INTEGER NOT NULL,
	data        BLOB NOT NULL,
	accessed_at INTEGER NOT NULL
);
`

// Config holds the parameters for opening a Cache.
type Config struct {
	// Directory holds the cache's SQLite database file, cache.db.
	Directory string

	// PoolSize is the number of pooled connections. Defaults to 4 if
	// zero or negative.
	PoolSize int

	// Compression is the algorithm Put uses for new entries. Existing
	// entries keep whatever tag they were stored with.
	Compression CompressionTag

	// Logger receives open/close/eviction messages and compression
	// size-mismatch warnings. Defaults to a no-op logger.
	Logger *slog.Logger
}

// Cache is a local content-addressed store mapping a semantic hash to
// the encoded bytes of a resolved, normalized Dhall expression.
type Cache struct {
	pool        *sqlitepool.Pool
	compression CompressionTag
	logger      *slog.Logger
}

// Open opens (creating if necessary) the cache database in
// cfg.Directory and returns a Cache backed by a pool of connections.
// The caller must call Close when done.
func Open(cfg Config) (*Cache, error) {
	if cfg.Directory == "" {
		return nil, fmt.Errorf("cache: Directory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", cfg.Directory, err)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Directory + "/cache.db",
		PoolSize: cfg.PoolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	return &Cache{
		pool:        pool,
		compression: cfg.Compression,
		logger:      logger,
	}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.pool.Close()
}

// Put stores the encoded bytes of a normalized expression under its
// semantic hash digest (as produced by semantichash.FormatDigest).
// Compresses per the cache's configured algorithm, falling back to
// storing the bytes uncompressed if compression does not shrink them.
func (c *Cache) Put(ctx context.Context, digest string, data []byte) error {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", digest, err)
	}
	defer c.pool.Put(conn)

	compressed, usedTag, err := compressChunk(data, c.compression)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", digest, err)
	}

	err = sqlitex.Execute(conn, `
		INSERT INTO cache_entries (digest, compression, raw_size, data, accessed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(digest) DO UPDATE SET
			compression = excluded.compression,
			raw_size    = excluded.raw_size,
			data        = excluded.data,
			accessed_at = excluded.accessed_at
	`, &sqlitex.ExecOptions{
		Args: []any{digest, int(usedTag), len(data), compressed, time.Now().Unix()},
	})
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", digest, err)
	}
	return nil
}

// Get retrieves and decompresses the entry stored under digest,
// updating its accessed_at timestamp. Returns ErrNotFound if no entry
// exists for digest.
func (c *Cache) Get(ctx context.Context, digest string) ([]byte, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", digest, err)
	}
	defer c.pool.Put(conn)

	var (
		found       bool
		compression CompressionTag
		rawSize     int
		compressed  []byte
	)
	err = sqlitex.Execute(conn, `
		SELECT compression, raw_size, data FROM cache_entries WHERE digest = ?
	`, &sqlitex.ExecOptions{
		Args: []any{digest},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			compression = CompressionTag(stmt.ColumnInt(0))
			rawSize = int(stmt.ColumnInt64(1))
			compressed = make([]byte, stmt.ColumnLen(2))
			stmt.ColumnBytes(2, compressed)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", digest, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	data, err := decompressChunk(compressed, compression, rawSize)
	if err != nil {
		c.logger.Warn("cache: decompression size mismatch", "digest", digest, "error", err)
		return nil, fmt.Errorf("cache: get %s: %w", digest, err)
	}

	if err := sqlitex.Execute(conn, `UPDATE cache_entries SET accessed_at = ? WHERE digest = ?`, &sqlitex.ExecOptions{
		Args: []any{time.Now().Unix(), digest},
	}); err != nil {
		return nil, fmt.Errorf("cache: get %s: updating accessed_at: %w", digest, err)
	}

	return data, nil
}

// Evict deletes entries whose accessed_at timestamp is older than
// olderThan, returning the number of rows removed. This is a simple
// LRU-by-age sweep, not a priority queue: entries here are small
// normalized expressions, not large artifact blobs, so cache sizes
// stay small enough that age-based eviction is sufficient.
func (c *Cache) Evict(ctx context.Context, olderThan time.Time) (int, error) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("cache: evict: %w", err)
	}
	defer c.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM cache_entries WHERE accessed_at < ?`, &sqlitex.ExecOptions{
		Args: []any{olderThan.Unix()},
	})
	if err != nil {
		return 0, fmt.Errorf("cache: evict: %w", err)
	}

	removed := conn.Changes()
	if removed > 0 {
		c.logger.Info("cache entries evicted", "count", removed, "older_than", olderThan)
	}
	return removed, nil
}
