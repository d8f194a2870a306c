// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborcodec

import (
	"math/big"
	"testing"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

func nat(n int64) *ast.NaturalLiteral { return &ast.NaturalLiteral{Value: big.NewInt(n)} }

// roundtrip encodes v, decodes the bytes back through cborvalue (not
// through the Dhall decoder), and returns the resulting value tree —
// useful for asserting on wire shape without depending on the exact
// text of RFC 8949 diagnostic notation.
func roundtrip(t *testing.T, v cborvalue.Value) cborvalue.Value {
	t.Helper()
	data, err := cborvalue.EncodeBytes(v)
	if err != nil {
		t.Fatalf("EncodeBytes: %v", err)
	}
	decoded, err := cborvalue.DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	return decoded
}

func wantArray(t *testing.T, v cborvalue.Value) []cborvalue.Value {
	t.Helper()
	arr, ok := cborvalue.AsArray(v)
	if !ok {
		t.Fatalf("value %#v is not an array", v)
	}
	return arr
}

func TestEncodeUnderscoreVariableIsNakedInt(t *testing.T) {
	got := roundtrip(t, Encode(&ast.Variable{Name: "_", Index: big.NewInt(2)}))
	n, ok := cborvalue.AsBigInt(got)
	if !ok || n.Int64() != 2 {
		t.Errorf("got %#v, want naked int 2", got)
	}
}

func TestEncodeNamedVariable(t *testing.T) {
	arr := wantArray(t, roundtrip(t, Encode(&ast.Variable{Name: "x", Index: big.NewInt(0)})))
	if len(arr) != 2 {
		t.Fatalf("len = %d, want 2", len(arr))
	}
	name, ok := cborvalue.AsText(arr[0])
	if !ok || name != "x" {
		t.Errorf("name = %#v, want \"x\"", arr[0])
	}
	idx, ok := cborvalue.AsBigInt(arr[1])
	if !ok || idx.Sign() != 0 {
		t.Errorf("index = %#v, want 0", arr[1])
	}
}

func TestEncodeBuiltinIsNakedText(t *testing.T) {
	got := roundtrip(t, Encode(&ast.Builtin{Name: "Natural/fold"}))
	s, ok := cborvalue.AsText(got)
	if !ok || s != "Natural/fold" {
		t.Errorf("got %#v, want \"Natural/fold\"", got)
	}
}

func TestEncodeLambdaUnderscoreBinder(t *testing.T) {
	expr := &ast.Lambda{Name: "_", Domain: &ast.Builtin{Name: "Natural"}, Body: &ast.Variable{Name: "_", Index: big.NewInt(0)}}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	if len(arr) != 3 {
		t.Fatalf("len = %d, want 3", len(arr))
	}
	label, _ := cborvalue.AsBigInt(arr[0])
	if label.Int64() != 1 {
		t.Errorf("label = %v, want 1", label)
	}
	domain, ok := cborvalue.AsText(arr[1])
	if !ok || domain != "Natural" {
		t.Errorf("domain = %#v, want \"Natural\"", arr[1])
	}
}

func TestEncodeFlattenedApplication(t *testing.T) {
	expr := &ast.Application{
		Function:  &ast.Variable{Name: "f", Index: big.NewInt(0)},
		Arguments: []ast.Expr{nat(1), nat(2)},
	}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	// [0, ["f", 0], [15, 1], [15, 2]]
	if len(arr) != 4 {
		t.Fatalf("len = %d, want 4", len(arr))
	}
	label, _ := cborvalue.AsBigInt(arr[0])
	if label.Int64() != 0 {
		t.Errorf("label = %v, want 0", label)
	}
	fn := wantArray(t, arr[1])
	fnName, _ := cborvalue.AsText(fn[0])
	if fnName != "f" {
		t.Errorf("function name = %q, want \"f\"", fnName)
	}
	for i, want := range []int64{1, 2} {
		arg := wantArray(t, arr[2+i])
		n, _ := cborvalue.AsBigInt(arg[1])
		if n.Int64() != want {
			t.Errorf("argument %d = %v, want %d", i, n, want)
		}
	}
}

func TestEncodeNestedApplicationFlattensOnSpine(t *testing.T) {
	// Simulate an Application built without pre-flattening: f applied
	// to a, then the result applied to b — encode must still produce
	// a single flattened array.
	inner := &ast.Application{Function: &ast.Variable{Name: "f", Index: big.NewInt(0)}, Arguments: []ast.Expr{nat(1)}}
	outer := &ast.Application{Function: inner, Arguments: []ast.Expr{nat(2)}}
	arr := wantArray(t, roundtrip(t, Encode(outer)))
	if len(arr) != 4 {
		t.Fatalf("len = %d, want 4 (flattened), got shape %#v", len(arr), arr)
	}
}

func TestEncodeDateLiteral(t *testing.T) {
	arr := wantArray(t, roundtrip(t, Encode(&ast.DateLiteral{Year: 2020, Month: 1, Day: 2})))
	want := []int64{30, 2020, 1, 2}
	if len(arr) != len(want) {
		t.Fatalf("len = %d, want %d", len(arr), len(want))
	}
	for i, w := range want {
		n, ok := cborvalue.AsBigInt(arr[i])
		if !ok || n.Int64() != w {
			t.Errorf("arr[%d] = %#v, want %d", i, arr[i], w)
		}
	}
}

func TestEncodeTimeZonePositiveOffset(t *testing.T) {
	arr := wantArray(t, roundtrip(t, Encode(&ast.TimeZoneLiteral{Minutes: 330})))
	if len(arr) != 4 {
		t.Fatalf("len = %d, want 4", len(arr))
	}
	label, _ := cborvalue.AsBigInt(arr[0])
	if label.Int64() != 32 {
		t.Errorf("label = %v, want 32", label)
	}
	sign, ok := cborvalue.AsBool(arr[1])
	if !ok || !sign {
		t.Errorf("sign = %#v, want true", arr[1])
	}
	hh, _ := cborvalue.AsBigInt(arr[2])
	mm, _ := cborvalue.AsBigInt(arr[3])
	if hh.Int64() != 5 || mm.Int64() != 30 {
		t.Errorf("hh:mm = %v:%v, want 5:30", hh, mm)
	}
}

func TestEncodeTimeZoneNegativeOffset(t *testing.T) {
	arr := wantArray(t, roundtrip(t, Encode(&ast.TimeZoneLiteral{Minutes: -90})))
	sign, _ := cborvalue.AsBool(arr[1])
	hh, _ := cborvalue.AsBigInt(arr[2])
	mm, _ := cborvalue.AsBigInt(arr[3])
	if sign {
		t.Error("sign = true, want false for a negative offset")
	}
	if hh.Int64() != 1 || mm.Int64() != 30 {
		t.Errorf("hh:mm = %v:%v, want 1:30", hh, mm)
	}
}

func TestEncodeRecordLiteralSortsFields(t *testing.T) {
	expr := &ast.RecordLiteral{Fields: map[string]ast.Expr{
		"b": nat(1),
		"a": nat(2),
	}}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	fields, ok := cborvalue.AsMap(arr[1])
	if !ok || len(fields) != 2 {
		t.Fatalf("fields = %#v", arr[1])
	}
	aField := wantArray(t, fields["a"])
	bField := wantArray(t, fields["b"])
	aVal, _ := cborvalue.AsBigInt(aField[1])
	bVal, _ := cborvalue.AsBigInt(bField[1])
	if aVal.Int64() != 2 || bVal.Int64() != 1 {
		t.Errorf("a=%v b=%v, want a=2 b=1", aVal, bVal)
	}

	data, err := cborvalue.EncodeBytes(Encode(expr))
	if err != nil {
		t.Fatal(err)
	}
	notation, err := cborvalue.Diagnose(data)
	if err != nil {
		t.Fatal(err)
	}
	aPos, bPos := indexOfSubstr(notation, `"a"`), indexOfSubstr(notation, `"b"`)
	if aPos < 0 || bPos < 0 || aPos > bPos {
		t.Errorf("expected \"a\" to appear before \"b\" in %s", notation)
	}
}

func TestEncodeEmptyListAnnotatedWithList(t *testing.T) {
	expr := &ast.EmptyList{ElementType: &ast.Application{
		Function:  &ast.Builtin{Name: "List"},
		Arguments: []ast.Expr{&ast.Builtin{Name: "Natural"}},
	}}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	if len(arr) != 2 {
		t.Fatalf("len = %d, want 2 (label 4 form)", len(arr))
	}
	label, _ := cborvalue.AsBigInt(arr[0])
	if label.Int64() != 4 {
		t.Errorf("label = %v, want 4", label)
	}
	elem, ok := cborvalue.AsText(arr[1])
	if !ok || elem != "Natural" {
		t.Errorf("element type = %#v, want \"Natural\"", arr[1])
	}
}

func TestEncodeEmptyListOtherAnnotation(t *testing.T) {
	expr := &ast.EmptyList{ElementType: &ast.Builtin{Name: "Natural"}}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	label, _ := cborvalue.AsBigInt(arr[0])
	if label.Int64() != 28 {
		t.Errorf("label = %v, want 28", label)
	}
}

func TestEncodeLetFlattensChain(t *testing.T) {
	inner := &ast.Let{
		Bindings: []ast.LetBinding{{Name: "y", Value: nat(2)}},
		Body:     &ast.Variable{Name: "x", Index: big.NewInt(0)},
	}
	outer := &ast.Let{
		Bindings: []ast.LetBinding{{Name: "x", Type: &ast.Builtin{Name: "Natural"}, Value: nat(1)}},
		Body:     inner,
	}
	arr := wantArray(t, roundtrip(t, Encode(outer)))
	// [25, "x", "Natural", [15,1], "y", null, [15,2], ["x",0]]
	if len(arr) != 8 {
		t.Fatalf("len = %d, want 8, shape %#v", len(arr), arr)
	}
	name1, _ := cborvalue.AsText(arr[1])
	name2, _ := cborvalue.AsText(arr[4])
	if name1 != "x" || name2 != "y" {
		t.Errorf("binding names = %q, %q, want x, y", name1, name2)
	}
	if !cborvalue.IsNull(arr[5]) {
		t.Errorf("second binding's type slot = %#v, want null", arr[5])
	}
}

func TestEncodeWithDescendOptional(t *testing.T) {
	expr := &ast.With{
		Subject: &ast.Variable{Name: "e", Index: big.NewInt(0)},
		Path:    []ast.PathKey{ast.DescendOptionalKey(), ast.LabelKey("foo")},
		Value:   &ast.Variable{Name: "v", Index: big.NewInt(0)},
	}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	pathArr := wantArray(t, arr[2])
	if len(pathArr) != 2 {
		t.Fatalf("path len = %d, want 2", len(pathArr))
	}
	n, ok := cborvalue.AsBigInt(pathArr[0])
	if !ok || n.Sign() != 0 {
		t.Errorf("first path key = %#v, want 0", pathArr[0])
	}
	label, ok := cborvalue.AsText(pathArr[1])
	if !ok || label != "foo" {
		t.Errorf("second path key = %#v, want \"foo\"", pathArr[1])
	}
}

func TestEncodeTimeDecimalFraction(t *testing.T) {
	expr := &ast.TimeLiteral{
		Hour:   12,
		Minute: 30,
		Seconds: ast.DecimalSeconds{
			Precision: 2,
			Mantissa:  big.NewInt(1525),
		},
	}
	arr := wantArray(t, roundtrip(t, Encode(expr)))
	tag, ok := arr[3].(cborvalue.Tag)
	if !ok || tag.Number != cborvalue.TagDecimalFraction {
		t.Fatalf("seconds = %#v, want tag 4", arr[3])
	}
	content := wantArray(t, tag.Content)
	exponent, _ := cborvalue.AsBigInt(content[0])
	mantissa, _ := cborvalue.AsBigInt(content[1])
	if exponent.Int64() != -2 || mantissa.Int64() != 1525 {
		t.Errorf("decimal fraction = (%v, %v), want (-2, 1525)", exponent, mantissa)
	}
}

func TestEncodeBignumNatural(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 64)
	arr := wantArray(t, roundtrip(t, Encode(&ast.NaturalLiteral{Value: huge})))
	n, ok := cborvalue.AsBigInt(arr[1])
	if !ok || n.Cmp(huge) != 0 {
		t.Errorf("decoded natural = %v, want %v", n, huge)
	}
}

func indexOfSubstr(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
