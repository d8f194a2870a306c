// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborcodec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

func decodeDiagnostic(t *testing.T, v cborvalue.Value) (ast.Expr, error) {
	t.Helper()
	return Decode(v)
}

func TestDecodeUnderscoreVariable(t *testing.T) {
	expr, err := decodeDiagnostic(t, cborvalue.Uint(2))
	if err != nil {
		t.Fatal(err)
	}
	v, ok := expr.(*ast.Variable)
	if !ok || v.Name != "_" || v.Index.Int64() != 2 {
		t.Errorf("got %#v, want Variable{_, 2}", expr)
	}
}

func TestDecodeNamedVariable(t *testing.T) {
	expr, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Text("x"), cborvalue.Uint(0)))
	if err != nil {
		t.Fatal(err)
	}
	v, ok := expr.(*ast.Variable)
	if !ok || v.Name != "x" || v.Index.Sign() != 0 {
		t.Errorf("got %#v, want Variable{x, 0}", expr)
	}
}

func TestDecodeRejectsExplicitUnderscoreVariable(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Text("_"), cborvalue.Uint(0)))
	assertKind(t, err, KindReservedName)
}

func TestDecodeRejectsExplicitUnderscoreLambda(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(
		cborvalue.Uint(1), cborvalue.Text("_"), cborvalue.Text("Natural"), cborvalue.Uint(0),
	))
	assertKind(t, err, KindReservedName)
}

func TestDecodeRejectsEmptyApplication(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Uint(0), cborvalue.Text("Natural/fold")))
	assertKind(t, err, KindEmptyApplication)
}

func TestDecodeRejectsLegacyLabels(t *testing.T) {
	for _, label := range []uint64{12, 13} {
		_, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Uint(label)))
		assertKind(t, err, KindMalformedUnionLegacy)
	}
}

func TestDecodeRejectsUnknownLabel(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Uint(99), cborvalue.Uint(1)))
	assertKind(t, err, KindUnknownLabel)
}

func TestDecodeRejectsUnknownBuiltin(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Text("NotAThing"))
	assertKind(t, err, KindUnknownBuiltin)
}

func TestDecodeRejectsMalformedTextArity(t *testing.T) {
	// Even number of trailing elements after the label is invalid.
	_, err := decodeDiagnostic(t, cborvalue.Array(cborvalue.Uint(18), cborvalue.Text("a"), cborvalue.Text("b")))
	assertKind(t, err, KindMalformedText)
}

func TestDecodeRejectsBadMultihash(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(
		cborvalue.Uint(24), cborvalue.Bytes([]byte{0x01, 0x02}), cborvalue.Uint(0), cborvalue.Uint(7),
	))
	assertKind(t, err, KindBadMultihash)
}

func TestDecodeRejectsUnknownImportScheme(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Array(
		cborvalue.Uint(24), cborvalue.Null(), cborvalue.Uint(0), cborvalue.Uint(42),
	))
	assertKind(t, err, KindBadImportScheme)
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	_, err := decodeDiagnostic(t, cborvalue.Tagged(999, cborvalue.Uint(1)))
	assertKind(t, err, KindUnknownTag)
}

func TestDecodeAcceptsSelfDescribeWrapper(t *testing.T) {
	wrapped := cborvalue.Tagged(cborvalue.TagSelfDescribe, cborvalue.Tagged(cborvalue.TagSelfDescribe, cborvalue.Text("Natural")))
	expr, err := decodeDiagnostic(t, wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := expr.(*ast.Builtin); !ok {
		t.Errorf("got %#v, want *ast.Builtin", expr)
	}
}

func TestDecodeAcceptsNonMinimalBignumVariableIndex(t *testing.T) {
	// A variable index encoded as a bignum even though it fits a
	// uint64 must still decode, per the "decoders accept non-minimal
	// forms" property.
	expr, err := decodeDiagnostic(t, cborvalue.Big(big.NewInt(5)))
	if err != nil {
		t.Fatal(err)
	}
	v, ok := expr.(*ast.Variable)
	if !ok || v.Index.Int64() != 5 {
		t.Errorf("got %#v, want Variable{_, 5}", expr)
	}
}

func TestDecodeLetReconstructsRightNestedChain(t *testing.T) {
	wire := cborvalue.Array(
		cborvalue.Uint(25),
		cborvalue.Text("x"), cborvalue.Text("Natural"), cborvalue.Array(cborvalue.Uint(15), cborvalue.Uint(1)),
		cborvalue.Text("y"), cborvalue.Null(), cborvalue.Array(cborvalue.Uint(15), cborvalue.Uint(2)),
		cborvalue.Array(cborvalue.Text("x"), cborvalue.Uint(0)),
	)
	expr, err := decodeDiagnostic(t, wire)
	if err != nil {
		t.Fatal(err)
	}
	outer, ok := expr.(*ast.Let)
	if !ok || len(outer.Bindings) != 1 || outer.Bindings[0].Name != "x" {
		t.Fatalf("outer = %#v, want single-binding Let named x", expr)
	}
	inner, ok := outer.Body.(*ast.Let)
	if !ok || len(inner.Bindings) != 1 || inner.Bindings[0].Name != "y" {
		t.Fatalf("inner = %#v, want single-binding Let named y", outer.Body)
	}
	if _, ok := inner.Body.(*ast.Variable); !ok {
		t.Errorf("innermost body = %#v, want *ast.Variable", inner.Body)
	}
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want Kind=%s", want)
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v (%T), want *DecodeError", err, err)
	}
	if decErr.Kind != want {
		t.Errorf("Kind = %s, want %s", decErr.Kind, want)
	}
}
