// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package cborvalue provides the CBOR value model the Dhall binary
// codec targets: a tagged union of the CBOR items an implementation
// needs to produce or consume to encode and decode Dhall expressions
// (RFC 8949).
//
// The model is deliberately narrow. It covers exactly: unsigned
// integers, negative integers, arbitrary-precision ("bignum")
// integers, byte strings, text strings, arrays, maps, booleans, null,
// floating point numbers, and tagged items. Nothing else — no CBOR
// simple values beyond true/false/null, no indefinite-length items,
// no streaming.
//
// Byte-level serialization is delegated to github.com/fxamacker/cbor,
// configured for RFC 8949 §4.2 Core Deterministic Encoding: sorted
// map keys, minimal integer width, shortest-form floats with the
// canonical NaN bit pattern, and a hard rejection of indefinite-length
// items. Given the same logical value, encoding is therefore
// byte-identical across runs and across processes — the property the
// Dhall semantic integrity check depends on.
//
// Values are represented as plain Go values (uint64, int64, *big.Int,
// float64, []byte, string, bool, nil, []Value, map[string]Value,
// cbor.Tag) so that the fxamacker/cbor encoder can serialize them
// directly without an intermediate reflection pass. The constructors
// in this package
// exist for clarity and to keep callers honest about which concrete
// representation a given CBOR item needs — they do not add a second
// layer of indirection over the wire.
package cborvalue
