// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package semantichash computes SHA-256 content hashes over encoded
// Dhall expressions.
//
// A semantic integrity check is the SHA-256 digest of the CBOR byte
// serialization of a fully resolved, alpha/beta-normalized expression.
// Because the codec's output is deterministic (RFC 8949 Core
// Deterministic Encoding), two normalized expressions that are
// semantically equal always serialize to the same bytes and therefore
// hash to the same digest, regardless of surface syntax or which
// imports contributed to the final form.
//
// This package does not normalize or resolve anything, and does not
// know about the CBOR codec or the AST — it hashes whatever bytes it
// is given, and formats/parses the resulting digest. Callers are
// responsible for passing it the encoded bytes of a normalized
// expression.
//
// The API surface is three functions:
//
//   - [Hash] -- SHA-256 digest of a byte slice
//   - [FormatDigest] -- canonical lowercase-hex digest string
//   - [ParseDigest] -- parses a hex digest string back to a [32]byte
package semantichash
