// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborvalue

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// Value is a CBOR item in the model described in the package doc
// comment. It is always one of: uint64, int64, *big.Int, float64,
// []byte, string, bool, nil, []Value, map[string]Value, or cbor.Tag.
type Value = any

// Tag is a CBOR tagged item: a tag number together with the item it
// wraps. Re-exported so callers never need to import fxamacker/cbor
// directly to build or inspect tagged values.
type Tag = cbor.Tag

// Well-known tag numbers this codec uses or must recognize.
const (
	TagBignumPositive  uint64 = 2
	TagBignumNegative  uint64 = 3
	TagDecimalFraction uint64 = 4
	TagSelfDescribe    uint64 = 55799
)

// Uint constructs an unsigned integer item.
func Uint(n uint64) Value { return n }

// NegInt constructs a negative integer item. n must be strictly
// negative; non-negative values belong in Uint.
func NegInt(n int64) Value {
	if n >= 0 {
		panic(fmt.Sprintf("cborvalue.NegInt: %d is not negative", n))
	}
	return n
}

// Bytes constructs a byte string item.
func Bytes(b []byte) Value { return b }

// Text constructs a text string item.
func Text(s string) Value { return s }

// Bool constructs a boolean item.
func Bool(b bool) Value { return b }

// Null constructs the CBOR null item.
func Null() Value { return nil }

// Float constructs a floating point item. The encoder picks the
// shortest IEEE-754 width (half, single, double) that round-trips to
// f exactly, with the canonical NaN bit pattern 0x7e00.
func Float(f float64) Value { return f }

// Big constructs an arbitrary-precision integer item from n. The
// encoder emits the smallest of {compact unsigned, compact negative,
// positive bignum, negative bignum} that represents n, per RFC 8949
// Core Deterministic Encoding's bignum preferred-serialization rule.
func Big(n *big.Int) Value { return n }

// Array constructs an array item. Element order is preserved exactly
// as given.
func Array(items ...Value) Value {
	if items == nil {
		return []Value{}
	}
	return items
}

// Map constructs a map item from key/value pairs. The encoder sorts
// keys by bytewise lexicographic order of their UTF-8 encoding (equal
// to Unicode codepoint order) before writing them, so callers may pass
// entries in any order.
func Map(entries map[string]Value) Value {
	if entries == nil {
		return map[string]Value{}
	}
	return entries
}

// Tagged constructs a tagged item.
func Tagged(tag uint64, v Value) Value {
	return cbor.Tag{Number: tag, Content: v}
}

// StripSelfDescribe removes any number of nested CBOR tag 55799
// ("self-describe CBOR") wrappers around v, returning the first
// non-wrapper item. Per §4.10, a well-formed decoder input may be
// wrapped in this tag any number of times (including zero) and must
// decode identically either way.
func StripSelfDescribe(v Value) Value {
	for {
		tag, ok := v.(cbor.Tag)
		if !ok || tag.Number != TagSelfDescribe {
			return v
		}
		v = tag.Content
	}
}

// IsNull reports whether v is the CBOR null item.
func IsNull(v Value) bool { return v == nil }

// AsArray returns v as an array item, or ok=false if v is not an
// array (including the empty-array edge case, which this function
// still reports as ok=true with a zero-length slice).
func AsArray(v Value) (items []Value, ok bool) {
	items, ok = v.([]Value)
	return items, ok
}

// AsMap returns v as a map item, or ok=false if v is not a map.
func AsMap(v Value) (entries map[string]Value, ok bool) {
	entries, ok = v.(map[string]Value)
	return entries, ok
}

// AsText returns v as a text string item, or ok=false otherwise.
func AsText(v Value) (s string, ok bool) {
	s, ok = v.(string)
	return s, ok
}

// AsBytes returns v as a byte string item, or ok=false otherwise.
func AsBytes(v Value) (b []byte, ok bool) {
	b, ok = v.([]byte)
	return b, ok
}

// AsBool returns v as a boolean item, or ok=false otherwise.
func AsBool(v Value) (b bool, ok bool) {
	b, ok = v.(bool)
	return b, ok
}

// AsBigInt normalizes any of the integer representations this package
// decodes (uint64, int64, *big.Int) into a *big.Int, or returns
// ok=false if v is not an integer item. The returned value is always a
// fresh *big.Int safe for the caller to mutate.
func AsBigInt(v Value) (n *big.Int, ok bool) {
	switch value := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(value), true
	case int64:
		return big.NewInt(value), true
	case *big.Int:
		return new(big.Int).Set(value), true
	default:
		return nil, false
	}
}
