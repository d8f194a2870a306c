// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"math"
	"math/big"
	"testing"
)

func TestEqualScalars(t *testing.T) {
	a := &NaturalLiteral{Value: big.NewInt(42)}
	b := &NaturalLiteral{Value: new(big.Int).SetInt64(42)}
	if !Equal(a, b) {
		t.Error("equal Naturals built from distinct *big.Int values compared unequal")
	}

	c := &NaturalLiteral{Value: big.NewInt(43)}
	if Equal(a, c) {
		t.Error("distinct Naturals compared equal")
	}

	if !Equal(nil, nil) {
		t.Error("nil, nil should be equal")
	}
	if Equal(a, nil) || Equal(nil, a) {
		t.Error("non-nil and nil should not be equal")
	}
}

func TestEqualDoubleNaN(t *testing.T) {
	nan1 := &DoubleLiteral{Value: math.NaN()}
	nan2 := &DoubleLiteral{Value: math.NaN()}
	if !Equal(nan1, nan2) {
		t.Error("two NaN DoubleLiterals should compare equal for round-trip purposes")
	}
}

func TestEqualDistinctVariants(t *testing.T) {
	if Equal(&BoolLiteral{Value: true}, &NaturalLiteral{Value: big.NewInt(1)}) {
		t.Error("expressions of different variants should never compare equal")
	}
}

func TestEqualRecordFieldsOrderIndependent(t *testing.T) {
	a := &RecordLiteral{Fields: map[string]Expr{
		"a": &BoolLiteral{Value: true},
		"b": &BoolLiteral{Value: false},
	}}
	b := &RecordLiteral{Fields: map[string]Expr{
		"b": &BoolLiteral{Value: false},
		"a": &BoolLiteral{Value: true},
	}}
	if !Equal(a, b) {
		t.Error("RecordLiteral equality must not depend on map iteration order")
	}
}

func TestBuiltinAndConstantConstructors(t *testing.T) {
	if _, ok := NewBuiltin("List/length"); !ok {
		t.Error("List/length should be a recognized builtin")
	}
	if _, ok := NewBuiltin("NotABuiltin"); ok {
		t.Error("NotABuiltin should not be recognized")
	}
	if _, ok := NewConstant("Type"); !ok {
		t.Error("Type should be a recognized constant")
	}
	if _, ok := NewConstant("Natural"); ok {
		t.Error("Natural is a builtin, not a constant")
	}
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]Expr{
		"z": &BoolLiteral{Value: true},
		"a": &BoolLiteral{Value: true},
		"m": &BoolLiteral{Value: true},
	})
	want := []string{"a", "m", "z"}
	if len(keys) != len(want) {
		t.Fatalf("sortedKeys returned %d keys, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if k != want[i] {
			t.Errorf("sortedKeys[%d] = %q, want %q", i, k, want[i])
		}
	}
}
