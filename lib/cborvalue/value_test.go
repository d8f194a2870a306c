// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborvalue

import (
	"bytes"
	"math"
	"math/big"
	"testing"
)

func TestEncodeDecodeRoundtripScalars(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"uint", Uint(42)},
		{"negint", NegInt(-7)},
		{"bytes", Bytes([]byte{0x01, 0x02, 0x03})},
		{"text", Text("hello")},
		{"bool true", Bool(true)},
		{"bool false", Bool(false)},
		{"null", Null()},
		{"float", Float(3.5)},
		{"bignum", Big(new(big.Int).Lsh(big.NewInt(1), 64))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := EncodeBytes(tc.v)
			if err != nil {
				t.Fatalf("EncodeBytes: %v", err)
			}

			decoded, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes: %v", err)
			}

			redata, err := EncodeBytes(decoded)
			if err != nil {
				t.Fatalf("re-EncodeBytes: %v", err)
			}
			if !bytes.Equal(data, redata) {
				t.Errorf("roundtrip byte mismatch: %x != %x", data, redata)
			}
		})
	}
}

func TestMinimalIntegerWidth(t *testing.T) {
	// 255 fits in one additional byte (major type + 1-byte argument);
	// it must not be padded to a wider encoding.
	small, err := EncodeBytes(Uint(255))
	if err != nil {
		t.Fatal(err)
	}
	if len(small) != 2 {
		t.Errorf("Uint(255) encoded to %d bytes, want 2 (%x)", len(small), small)
	}

	large, err := EncodeBytes(Uint(1 << 32))
	if err != nil {
		t.Fatal(err)
	}
	if len(large) != 9 {
		t.Errorf("Uint(2^32) encoded to %d bytes, want 9 (%x)", len(large), large)
	}
}

func TestBignumShortestForm(t *testing.T) {
	// A big.Int that fits in a uint64 must encode as a compact
	// unsigned integer, not a tag-2 bignum, per RFC 8949 Core
	// Deterministic Encoding's preferred bignum serialization.
	small := new(big.Int).SetUint64(100)
	data, err := EncodeBytes(Big(small))
	if err != nil {
		t.Fatal(err)
	}
	// 100 fits the single-byte-argument form: 0x18 0x64.
	if len(data) != 2 {
		t.Errorf("small bignum encoded to %d bytes, want 2 (%x)", len(data), data)
	}

	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	hugeData, err := EncodeBytes(Big(huge))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeBytes(hugeData)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := AsBigInt(decoded)
	if !ok {
		t.Fatalf("decoded value is not an integer: %#v", decoded)
	}
	if got.Cmp(huge) != 0 {
		t.Errorf("bignum roundtrip: got %v, want %v", got, huge)
	}
}

func TestShortestFloatAndNaN(t *testing.T) {
	zero, err := EncodeBytes(Float(0.0))
	if err != nil {
		t.Fatal(err)
	}
	negZero, err := EncodeBytes(Float(math.Copysign(0, -1)))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(zero, negZero) {
		t.Error("0.0 and -0.0 encoded identically; sign must be preserved")
	}
	// Both must be the 3-byte half-float form: 0xf9 + 2 bytes.
	if len(zero) != 3 || len(negZero) != 3 {
		t.Errorf("zero encodings not minimal half floats: %x %x", zero, negZero)
	}

	nan, err := EncodeBytes(Float(math.NaN()))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xf9, 0x7e, 0x00}
	if !bytes.Equal(nan, want) {
		t.Errorf("NaN encoded as %x, want canonical half %x", nan, want)
	}
}

func TestMapKeysSortedOnEncode(t *testing.T) {
	data, err := EncodeBytes(Map(map[string]Value{
		"b": Uint(1),
		"a": Uint(2),
		"z": Uint(3),
	}))
	if err != nil {
		t.Fatal(err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatal(err)
	}
	// In diagnostic notation, "a" must appear before "b" and "z".
	aPos := indexOf(notation, `"a"`)
	bPos := indexOf(notation, `"b"`)
	zPos := indexOf(notation, `"z"`)
	if aPos < 0 || bPos < 0 || zPos < 0 {
		t.Fatalf("diagnostic notation missing expected keys: %s", notation)
	}
	if !(aPos < bPos && bPos < zPos) {
		t.Errorf("map keys not sorted ascending in %s", notation)
	}
}

func TestStripSelfDescribe(t *testing.T) {
	inner := Text("hi")
	wrapped := Tagged(TagSelfDescribe, Tagged(TagSelfDescribe, inner))

	stripped := StripSelfDescribe(wrapped)
	s, ok := AsText(stripped)
	if !ok || s != "hi" {
		t.Errorf("StripSelfDescribe = %#v, want \"hi\"", stripped)
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
