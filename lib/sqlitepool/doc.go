// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides a small SQLite connection pool with a
// fixed set of pragmas tuned for a local content-addressed cache: a
// single writer, many readers, and durability that survives a process
// crash without paying fsync-per-commit cost.
//
// The pool wraps zombiezen.com/go/sqlite's sqlitex.Pool. Callers
// [Pool.Take] a connection, do their work, and [Pool.Put] it back.
// Connections are NOT safe for concurrent use — each goroutine must
// hold its own connection for the duration of its work.
//
// # Pragmas
//
// Every connection in the pool is initialized with:
//
//   - journal_mode=WAL: concurrent readers, a single writer, reads
//     never block writes and vice versa.
//   - synchronous=NORMAL: transactions survive process crashes but not
//     OS crashes or power loss — acceptable for a cache that can always
//     be rebuilt by re-encoding and re-hashing.
//   - busy_timeout=5000: wait up to 5 seconds for a write lock instead
//     of failing immediately under contention.
//   - foreign_keys=OFF: the cache schema has no foreign keys to enforce.
//   - cache_size=-8192, mmap_size=268435456, temp_store=MEMORY: read
//     performance tuning for a small, frequently-read database.
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:     "/var/cache/dhall-cbor/cache.db",
//	    PoolSize: 4,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// This package is intentionally thin: it applies pragmas and exposes
// the underlying zombiezen types directly, rather than inventing a
// query builder on top of SQLite.
package sqlitepool
