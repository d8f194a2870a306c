// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a local content-addressed store for encoded
// Dhall expressions.
//
// The cache maps a semantic hash (see lib/dhall/semantichash) to the
// CBOR-encoded bytes of the resolved, normalized expression that hash
// identifies. It exists to let an import resolver skip re-fetching and
// re-normalizing an expression it has already seen: compute the
// semantic hash, check the cache, and only fall back to the network
// and the normalizer on a miss.
//
// Entries are stored in a single SQLite table, accessed through a
// small connection pool (lib/sqlitepool). Each entry is optionally
// compressed — the cache does not care what compression algorithm an
// individual Put used, since the tag travels with the row and Get
// dispatches on it automatically.
//
// The cache is not part of the codec's bijection. It takes the
// caller's word that the bytes it is given are the encoding of a
// normalized expression; it does not decode, validate, or re-derive
// the hash of what it stores.
package cache
