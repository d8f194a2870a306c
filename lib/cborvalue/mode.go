// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborvalue

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured for RFC 8949 §4.2 Core
// Deterministic Encoding: sorted map keys (bytewise lexicographic,
// which is codepoint order for UTF-8 text keys), smallest integer and
// bignum encoding, shortest-form floats with the canonical NaN bit
// pattern, and a hard rejection of indefinite-length items. Two
// processes encoding the same AST with this mode produce identical
// bytes — the property the Dhall semantic integrity check depends on.
var encMode cbor.EncMode

// decMode is the CBOR decoder used to turn wire bytes back into the
// Go-native value tree this package's constructors produce. Map
// destinations default to map[string]any (Dhall CBOR never uses
// non-text map keys), and tag-2/tag-3 bignums decode to *big.Int.
var decMode cbor.DecMode

func init() {
	encOptions := cbor.CoreDetEncOptions()
	var err error
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("cborvalue: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		BigIntDec:      cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("cborvalue: decoder initialization failed: " + err.Error())
	}
}

// EncodeBytes serializes v (built from this package's constructors)
// to deterministic CBOR bytes. Encoding a well-formed value never
// fails; the error return exists only because the underlying library
// surfaces encoding-time panics (e.g. unsupported Go types) as errors,
// which should never occur for values built from this package.
func EncodeBytes(v Value) ([]byte, error) {
	return encMode.Marshal(v)
}

// DecodeBytes parses data as a single CBOR item and returns it as a
// Go-native value tree: uint64, int64, *big.Int, float64, []byte,
// string, bool, nil, []any, map[string]any, or cbor.Tag. Callers
// inspect the result with the As* helpers in this package, or a type
// switch.
func DecodeBytes(data []byte) (Value, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Diagnose returns the RFC 8949 §8 Extended Diagnostic Notation for
// the entire contents of data. Used by operator tooling (cmd/dhall-cbor
// diag) to inspect wire bytes without decoding them as Dhall.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the diagnostic notation for the first CBOR
// item in data, along with the unconsumed remainder. Used to process a
// CBOR sequence (RFC 8742) one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
