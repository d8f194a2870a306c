// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborcodec

import (
	"math"
	"math/big"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

// Decode converts a CBOR value model item back into a Dhall
// expression, or returns a *DecodeError describing exactly where and
// why the input does not conform to the bijection's wire format.
func Decode(v cborvalue.Value) (ast.Expr, error) {
	return decodeExpr(v, rootPath)
}

func decodeExpr(v cborvalue.Value, p path) (ast.Expr, error) {
	v = cborvalue.StripSelfDescribe(v)

	switch val := v.(type) {
	case uint64:
		return &ast.Variable{Name: "_", Index: new(big.Int).SetUint64(val)}, nil
	case int64:
		if val < 0 {
			return nil, errf(p, KindTypeMismatch, "negative naked integer is not a valid expression")
		}
		return &ast.Variable{Name: "_", Index: big.NewInt(val)}, nil
	case *big.Int:
		if val.Sign() < 0 {
			return nil, errf(p, KindTypeMismatch, "negative naked integer is not a valid expression")
		}
		return &ast.Variable{Name: "_", Index: new(big.Int).Set(val)}, nil
	case float64:
		return &ast.DoubleLiteral{Value: val}, nil
	case string:
		return decodeIdentifier(val, p)
	case bool:
		return &ast.BoolLiteral{Value: val}, nil
	case []cborvalue.Value:
		return decodeArray(val, p)
	case cborvalue.Tag:
		return nil, errf(p, KindUnknownTag, "unexpected tag %d", val.Number)
	default:
		return nil, errf(p, KindTypeMismatch, "unsupported CBOR item %T", val)
	}
}

func decodeIdentifier(s string, p path) (ast.Expr, error) {
	if c, ok := ast.NewConstant(s); ok {
		return c, nil
	}
	if b, ok := ast.NewBuiltin(s); ok {
		return b, nil
	}
	return nil, errf(p, KindUnknownBuiltin, "unrecognized identifier %q", s)
}

func decodeArray(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) == 0 {
		return nil, errf(p, KindWrongArity, "empty array is not a valid expression")
	}

	// A two-element array whose first item is text is the long form of
	// a Variable: ["x", n]. Every label-prefixed construct's first
	// element is always an integer, so this check cannot misfire on
	// well-formed input.
	if len(items) == 2 {
		if name, ok := cborvalue.AsText(items[0]); ok {
			return decodeVariable(name, items[1], p)
		}
	}

	label, ok := decodeLabelInt(items[0])
	if !ok {
		return nil, errf(p.index(0), KindTypeMismatch, "array label is not an integer")
	}

	switch label {
	case 0:
		return decodeApplication(items, p)
	case 1:
		return decodeBinder(items, p, "Lambda")
	case 2:
		return decodeBinder(items, p, "Forall")
	case 3:
		return decodeOperator(items, p)
	case 4:
		return decodeList(items, p)
	case 5:
		return decodeSome(items, p)
	case 6:
		return decodeMerge(items, p)
	case 7:
		return decodeRecord(items, p, "RecordType")
	case 8:
		return decodeRecord(items, p, "RecordLiteral")
	case 9:
		return decodeField(items, p)
	case 10:
		return decodeProject(items, p)
	case 11:
		return decodeUnionType(items, p)
	case 12, 13:
		return nil, errf(p.index(0), KindMalformedUnionLegacy, "legacy label %d is not supported", label)
	case 14:
		return decodeIf(items, p)
	case 15:
		return decodeNatural(items, p)
	case 16:
		return decodeInteger(items, p)
	case 18:
		return decodeText(items, p)
	case 19:
		return decodeAssert(items, p)
	case 24:
		return decodeImport(items, p)
	case 25:
		return decodeLet(items, p)
	case 26:
		return decodeAnnotation(items, p)
	case 27:
		return decodeToMap(items, p)
	case 28:
		return decodeEmptyListOther(items, p)
	case 29:
		return decodeWith(items, p)
	case 30:
		return decodeDate(items, p)
	case 31:
		return decodeTime(items, p)
	case 32:
		return decodeTimeZone(items, p)
	case 33:
		return decodeBytes(items, p)
	case 34:
		return decodeShowConstructor(items, p)
	default:
		return nil, errf(p.index(0), KindUnknownLabel, "unknown label %d", label)
	}
}

// --- small-integer helpers ---

func intOf(v cborvalue.Value) (*big.Int, bool) {
	switch t := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(t), true
	case int64:
		return big.NewInt(t), true
	case *big.Int:
		return new(big.Int).Set(t), true
	default:
		return nil, false
	}
}

func decodeLabelInt(v cborvalue.Value) (int, bool) {
	n, ok := intOf(v)
	if !ok || !n.IsInt64() {
		return 0, false
	}
	i64 := n.Int64()
	if i64 < math.MinInt32 || i64 > math.MaxInt32 {
		return 0, false
	}
	return int(i64), true
}

// decodeNonNeg decodes v as a non-negative arbitrary-precision
// integer: variable indices and Natural literals.
func decodeNonNeg(v cborvalue.Value, p path) (*big.Int, error) {
	n, ok := intOf(v)
	if !ok {
		return nil, errf(p, KindTypeMismatch, "expected integer, got %T", v)
	}
	if n.Sign() < 0 {
		return nil, errf(p, KindTypeMismatch, "expected non-negative integer")
	}
	return n, nil
}

// decodeSigned decodes v as an arbitrary-precision integer of either
// sign: Integer literals and decimal-fraction mantissas.
func decodeSigned(v cborvalue.Value, p path) (*big.Int, error) {
	n, ok := intOf(v)
	if !ok {
		return nil, errf(p, KindTypeMismatch, "expected integer, got %T", v)
	}
	return n, nil
}

func decodeSmallUint(v cborvalue.Value, p path) (int, error) {
	n, err := decodeNonNeg(v, p)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, errf(p, KindTypeMismatch, "integer out of supported range")
	}
	return int(n.Int64()), nil
}

func decodeSmallInt(v cborvalue.Value, p path) (int64, error) {
	n, ok := intOf(v)
	if !ok {
		return 0, errf(p, KindTypeMismatch, "expected integer, got %T", v)
	}
	if !n.IsInt64() {
		return 0, errf(p, KindTypeMismatch, "integer out of supported range")
	}
	return n.Int64(), nil
}

// --- variants ---

func decodeVariable(name string, idxVal cborvalue.Value, p path) (ast.Expr, error) {
	if name == "_" {
		return nil, errf(p, KindReservedName, "variable \"_\" must use the naked-integer form, not [\"_\", n]")
	}
	idx, err := decodeNonNeg(idxVal, p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Name: name, Index: idx}, nil
}

func decodeApplication(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) < 2 {
		return nil, errf(p, KindWrongArity, "Application requires a function")
	}
	if len(items) == 2 {
		return nil, errf(p, KindEmptyApplication, "Application requires at least one argument")
	}
	fn, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expr, 0, len(items)-2)
	for i := 2; i < len(items); i++ {
		a, err := decodeExpr(items[i], p.index(i))
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return &ast.Application{Function: fn, Arguments: args}, nil
}

// decodeBinder decodes the shared Lambda/Forall wire shape. which
// names the node kind only for error messages.
func decodeBinder(items []cborvalue.Value, p path, which string) (ast.Expr, error) {
	switch len(items) {
	case 3:
		domain, err := decodeExpr(items[1], p.index(1))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(items[2], p.index(2))
		if err != nil {
			return nil, err
		}
		return buildBinder(which, "_", domain, body), nil
	case 4:
		name, ok := cborvalue.AsText(items[1])
		if !ok {
			return nil, errf(p.index(1), KindTypeMismatch, "%s name must be text", which)
		}
		if name == "_" {
			return nil, errf(p, KindReservedName, "%s must use the 3-element form for \"_\", not the explicit name form", which)
		}
		domain, err := decodeExpr(items[2], p.index(2))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(items[3], p.index(3))
		if err != nil {
			return nil, err
		}
		return buildBinder(which, name, domain, body), nil
	default:
		return nil, errf(p, KindWrongArity, "%s requires 3 or 4 elements, got %d", which, len(items))
	}
}

func buildBinder(which, name string, domain, body ast.Expr) ast.Expr {
	if which == "Lambda" {
		return &ast.Lambda{Name: name, Domain: domain, Body: body}
	}
	return &ast.Forall{Name: name, Domain: domain, Codomain: body}
}

func decodeOperator(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindWrongArity, "Operator requires 4 elements, got %d", len(items))
	}
	code, ok := decodeLabelInt(items[1])
	if !ok {
		return nil, errf(p.index(1), KindBadOperator, "operator code is not an integer")
	}
	left, err := decodeExpr(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	right, err := decodeExpr(items[3], p.index(3))
	if err != nil {
		return nil, err
	}
	if code == opCompletion {
		return &ast.Completion{Left: left, Right: right}, nil
	}
	if code < 0 || code > 12 {
		return nil, errf(p.index(1), KindBadOperator, "unknown operator code %d", code)
	}
	return &ast.Operator{Left: left, Op: ast.OperatorCode(code), Right: right}, nil
}

func decodeList(items []cborvalue.Value, p path) (ast.Expr, error) {
	switch {
	case len(items) == 2:
		elem, err := decodeExpr(items[1], p.index(1))
		if err != nil {
			return nil, err
		}
		return &ast.EmptyList{ElementType: &ast.Application{
			Function:  &ast.Builtin{Name: "List"},
			Arguments: []ast.Expr{elem},
		}}, nil
	case len(items) >= 3:
		if !cborvalue.IsNull(items[1]) {
			return nil, errf(p.index(1), KindTypeMismatch, "non-empty List literal must have null in second position")
		}
		elements := make([]ast.Expr, 0, len(items)-2)
		for i := 2; i < len(items); i++ {
			e, err := decodeExpr(items[i], p.index(i))
			if err != nil {
				return nil, err
			}
			elements = append(elements, e)
		}
		return &ast.NonEmptyList{Elements: elements}, nil
	default:
		return nil, errf(p, KindWrongArity, "List requires at least 2 elements, got %d", len(items))
	}
}

func decodeEmptyListOther(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "label 28 requires 2 elements, got %d", len(items))
	}
	typ, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.EmptyList{ElementType: typ}, nil
}

func decodeSome(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 3 {
		return nil, errf(p, KindWrongArity, "Some requires 3 elements, got %d", len(items))
	}
	if !cborvalue.IsNull(items[1]) {
		return nil, errf(p.index(1), KindTypeMismatch, "Some's second element must be null")
	}
	value, err := decodeExpr(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	return &ast.Some{Value: value}, nil
}

func decodeMerge(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 3 && len(items) != 4 {
		return nil, errf(p, KindWrongArity, "Merge requires 3 or 4 elements, got %d", len(items))
	}
	handler, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	union, err := decodeExpr(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	var annotation ast.Expr
	if len(items) == 4 {
		annotation, err = decodeExpr(items[3], p.index(3))
		if err != nil {
			return nil, err
		}
	}
	return &ast.Merge{Handler: handler, Union: union, Annotation: annotation}, nil
}

func decodeToMap(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 && len(items) != 3 {
		return nil, errf(p, KindWrongArity, "ToMap requires 2 or 3 elements, got %d", len(items))
	}
	record, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	var annotation ast.Expr
	if len(items) == 3 {
		annotation, err = decodeExpr(items[2], p.index(2))
		if err != nil {
			return nil, err
		}
	}
	return &ast.ToMap{Record: record, Annotation: annotation}, nil
}

func decodeShowConstructor(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "ShowConstructor requires 2 elements, got %d", len(items))
	}
	arg, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.ShowConstructor{Argument: arg}, nil
}

func decodeRecord(items []cborvalue.Value, p path, which string) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "%s requires 2 elements, got %d", which, len(items))
	}
	entries, ok := cborvalue.AsMap(items[1])
	if !ok {
		return nil, errf(p.index(1), KindTypeMismatch, "%s fields must be a map", which)
	}
	fields := make(map[string]ast.Expr, len(entries))
	for key, val := range entries {
		expr, err := decodeExpr(val, p.index(1).key(key))
		if err != nil {
			return nil, err
		}
		fields[key] = expr
	}
	if which == "RecordType" {
		return &ast.RecordType{Fields: fields}, nil
	}
	return &ast.RecordLiteral{Fields: fields}, nil
}

func decodeField(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 3 {
		return nil, errf(p, KindWrongArity, "Field requires 3 elements, got %d", len(items))
	}
	record, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	label, ok := cborvalue.AsText(items[2])
	if !ok {
		return nil, errf(p.index(2), KindTypeMismatch, "Field label must be text")
	}
	return &ast.Field{Record: record, Label: label}, nil
}

func decodeProject(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) < 2 {
		return nil, errf(p, KindWrongArity, "Project requires at least 2 elements, got %d", len(items))
	}
	record, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	if len(items) == 3 {
		if arr, ok := cborvalue.AsArray(items[2]); ok {
			if len(arr) != 1 {
				return nil, errf(p.index(2), KindWrongArity, "ProjectByType requires exactly one type, got %d", len(arr))
			}
			typ, err := decodeExpr(arr[0], p.index(2).index(0))
			if err != nil {
				return nil, err
			}
			return &ast.ProjectByType{Record: record, Type: typ}, nil
		}
	}
	labels := make([]string, 0, len(items)-2)
	for i := 2; i < len(items); i++ {
		s, ok := cborvalue.AsText(items[i])
		if !ok {
			return nil, errf(p.index(i), KindTypeMismatch, "ProjectByLabels label must be text")
		}
		labels = append(labels, s)
	}
	return &ast.ProjectByLabels{Record: record, Labels: labels}, nil
}

func decodeUnionType(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "UnionType requires 2 elements, got %d", len(items))
	}
	entries, ok := cborvalue.AsMap(items[1])
	if !ok {
		return nil, errf(p.index(1), KindTypeMismatch, "UnionType alternatives must be a map")
	}
	alts := make(map[string]ast.Expr, len(entries))
	for key, val := range entries {
		if cborvalue.IsNull(val) {
			alts[key] = nil
			continue
		}
		expr, err := decodeExpr(val, p.index(1).key(key))
		if err != nil {
			return nil, err
		}
		alts[key] = expr
	}
	return &ast.UnionType{Alternatives: alts}, nil
}

func decodeIf(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindWrongArity, "If requires 4 elements, got %d", len(items))
	}
	cond, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	then, err := decodeExpr(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	els, err := decodeExpr(items[3], p.index(3))
	if err != nil {
		return nil, err
	}
	return &ast.If{Condition: cond, Then: then, Else: els}, nil
}

func decodeNatural(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "NaturalLiteral requires 2 elements, got %d", len(items))
	}
	n, err := decodeNonNeg(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.NaturalLiteral{Value: n}, nil
}

func decodeInteger(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "IntegerLiteral requires 2 elements, got %d", len(items))
	}
	n, err := decodeSigned(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.IntegerLiteral{Value: n}, nil
}

func decodeText(items []cborvalue.Value, p path) (ast.Expr, error) {
	trailing := items[1:]
	if len(trailing) == 0 || len(trailing)%2 == 0 {
		return nil, errf(p, KindMalformedText, "TextLiteral must have an odd number of trailing elements, got %d", len(trailing))
	}
	n := (len(trailing) - 1) / 2
	chunks := make([]ast.TextChunk, 0, n)
	for k := 0; k < n; k++ {
		prefix, ok := cborvalue.AsText(trailing[2*k])
		if !ok {
			return nil, errf(p.index(2*k+1), KindTypeMismatch, "TextLiteral chunk prefix must be text")
		}
		expr, err := decodeExpr(trailing[2*k+1], p.index(2*k+2))
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, ast.TextChunk{Prefix: prefix, Expr: expr})
	}
	suffix, ok := cborvalue.AsText(trailing[len(trailing)-1])
	if !ok {
		return nil, errf(p.index(len(items)-1), KindTypeMismatch, "TextLiteral suffix must be text")
	}
	return &ast.TextLiteral{Chunks: chunks, Suffix: suffix}, nil
}

func decodeBytes(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "BytesLiteral requires 2 elements, got %d", len(items))
	}
	b, ok := cborvalue.AsBytes(items[1])
	if !ok {
		return nil, errf(p.index(1), KindTypeMismatch, "BytesLiteral payload must be a byte string")
	}
	return &ast.BytesLiteral{Value: b}, nil
}

func decodeAssert(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 2 {
		return nil, errf(p, KindWrongArity, "Assert requires 2 elements, got %d", len(items))
	}
	typ, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	return &ast.Assert{Type: typ}, nil
}

func decodeAnnotation(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 3 {
		return nil, errf(p, KindWrongArity, "Annotation requires 3 elements, got %d", len(items))
	}
	value, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	typ, err := decodeExpr(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	return &ast.Annotation{Value: value, Type: typ}, nil
}

func decodeLet(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) < 5 {
		return nil, errf(p, KindWrongArity, "Let requires at least 5 elements, got %d", len(items))
	}
	rest := len(items) - 2
	if rest%3 != 0 {
		return nil, errf(p, KindWrongArity, "Let binding elements must come in groups of 3, got %d", rest)
	}
	k := rest / 3
	bindings := make([]ast.LetBinding, 0, k)
	for i := 0; i < k; i++ {
		base := 1 + 3*i
		name, ok := cborvalue.AsText(items[base])
		if !ok {
			return nil, errf(p.index(base), KindTypeMismatch, "Let binding name must be text")
		}
		var typ ast.Expr
		if !cborvalue.IsNull(items[base+1]) {
			var err error
			typ, err = decodeExpr(items[base+1], p.index(base+1))
			if err != nil {
				return nil, err
			}
		}
		value, err := decodeExpr(items[base+2], p.index(base+2))
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.LetBinding{Name: name, Type: typ, Value: value})
	}

	body, err := decodeExpr(items[len(items)-1], p.index(len(items)-1))
	if err != nil {
		return nil, err
	}

	// Reconstruct the right-associated chain of single-binding Lets
	// the flattened wire form represents, innermost binding first.
	for i := k - 1; i >= 0; i-- {
		body = &ast.Let{Bindings: []ast.LetBinding{bindings[i]}, Body: body}
	}
	return body, nil
}

func decodeWith(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindWrongArity, "With requires 4 elements, got %d", len(items))
	}
	subject, err := decodeExpr(items[1], p.index(1))
	if err != nil {
		return nil, err
	}
	pathItems, ok := cborvalue.AsArray(items[2])
	if !ok || len(pathItems) == 0 {
		return nil, errf(p.index(2), KindWrongArity, "With path must be a non-empty array")
	}
	keys := make([]ast.PathKey, 0, len(pathItems))
	for i, pv := range pathItems {
		if n, ok := decodeLabelInt(pv); ok {
			if n != 0 {
				return nil, errf(p.index(2).index(i), KindTypeMismatch, "With path integer key must be 0")
			}
			keys = append(keys, ast.DescendOptionalKey())
			continue
		}
		s, ok := cborvalue.AsText(pv)
		if !ok {
			return nil, errf(p.index(2).index(i), KindTypeMismatch, "With path key must be 0 or text")
		}
		keys = append(keys, ast.LabelKey(s))
	}
	value, err := decodeExpr(items[3], p.index(3))
	if err != nil {
		return nil, err
	}
	return &ast.With{Subject: subject, Path: keys, Value: value}, nil
}

func decodeDate(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindMalformedDate, "Date requires 4 elements, got %d", len(items))
	}
	year, err := decodeSmallUint(items[1], p.index(1))
	if err != nil {
		return nil, errf(p.index(1), KindMalformedDate, "Date year: %v", err)
	}
	month, err := decodeSmallUint(items[2], p.index(2))
	if err != nil {
		return nil, errf(p.index(2), KindMalformedDate, "Date month: %v", err)
	}
	day, err := decodeSmallUint(items[3], p.index(3))
	if err != nil {
		return nil, errf(p.index(3), KindMalformedDate, "Date day: %v", err)
	}
	return &ast.DateLiteral{Year: year, Month: month, Day: day}, nil
}

func decodeTime(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindMalformedTime, "Time requires 4 elements, got %d", len(items))
	}
	hour, err := decodeSmallUint(items[1], p.index(1))
	if err != nil {
		return nil, errf(p.index(1), KindMalformedTime, "Time hour: %v", err)
	}
	minute, err := decodeSmallUint(items[2], p.index(2))
	if err != nil {
		return nil, errf(p.index(2), KindMalformedTime, "Time minute: %v", err)
	}

	tag, ok := items[3].(cborvalue.Tag)
	if !ok || tag.Number != cborvalue.TagDecimalFraction {
		return nil, errf(p.index(3), KindMalformedTime, "Time seconds must be a tag 4 decimal fraction")
	}
	content, ok := cborvalue.AsArray(tag.Content)
	if !ok || len(content) != 2 {
		return nil, errf(p.index(3), KindMalformedTime, "decimal fraction must be a 2-element array")
	}
	exponent, err := decodeSmallInt(content[0], p.index(3))
	if err != nil {
		return nil, errf(p.index(3), KindMalformedTime, "decimal fraction exponent: %v", err)
	}
	if exponent > 0 {
		return nil, errf(p.index(3), KindMalformedTime, "decimal fraction exponent must not be positive")
	}
	mantissa, err := decodeSigned(content[1], p.index(3))
	if err != nil {
		return nil, errf(p.index(3), KindMalformedTime, "decimal fraction mantissa: %v", err)
	}

	return &ast.TimeLiteral{
		Hour:   hour,
		Minute: minute,
		Seconds: ast.DecimalSeconds{
			Precision: uint32(-exponent),
			Mantissa:  mantissa,
		},
	}, nil
}

func decodeTimeZone(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) != 4 {
		return nil, errf(p, KindMalformedTime, "TimeZone requires 4 elements, got %d", len(items))
	}
	sign, ok := cborvalue.AsBool(items[1])
	if !ok {
		return nil, errf(p.index(1), KindTypeMismatch, "TimeZone sign must be a bool")
	}
	hh, err := decodeSmallUint(items[2], p.index(2))
	if err != nil {
		return nil, err
	}
	mm, err := decodeSmallUint(items[3], p.index(3))
	if err != nil {
		return nil, err
	}
	minutes := hh*60 + mm
	if !sign {
		minutes = -minutes
	}
	return &ast.TimeZoneLiteral{Minutes: minutes}, nil
}

func decodeImport(items []cborvalue.Value, p path) (ast.Expr, error) {
	if len(items) < 4 {
		return nil, errf(p, KindWrongArity, "Import requires at least 4 elements, got %d", len(items))
	}

	var hashBytes []byte
	if !cborvalue.IsNull(items[1]) {
		raw, ok := cborvalue.AsBytes(items[1])
		if !ok || len(raw) != 34 || raw[0] != 0x12 || raw[1] != 0x20 {
			return nil, errf(p.index(1), KindBadMultihash, "import hash must be a 34-byte sha2-256 multihash")
		}
		hashBytes = append([]byte{}, raw[2:]...)
	}

	modeVal, ok := decodeLabelInt(items[2])
	if !ok || modeVal < 0 || modeVal > 3 {
		return nil, errf(p.index(2), KindBadMode, "unknown import mode")
	}
	mode := ast.ImportMode(modeVal)

	scheme, ok := decodeLabelInt(items[3])
	if !ok {
		return nil, errf(p.index(3), KindBadImportScheme, "import scheme discriminator is not an integer")
	}

	switch scheme {
	case 0, 1:
		return decodeRemoteImport(items, p, hashBytes, mode, scheme)
	case 2, 3, 4, 5:
		return decodePathImport(items, p, hashBytes, mode, scheme)
	case 6:
		if len(items) != 5 {
			return nil, errf(p, KindWrongArity, "env import requires 5 elements, got %d", len(items))
		}
		name, ok := cborvalue.AsText(items[4])
		if !ok {
			return nil, errf(p.index(4), KindTypeMismatch, "env import name must be text")
		}
		return &ast.Import{Hash: hashBytes, Mode: mode, Type: &ast.EnvImport{Name: name}}, nil
	case 7:
		if len(items) != 4 {
			return nil, errf(p, KindWrongArity, "missing import requires 4 elements, got %d", len(items))
		}
		return &ast.Import{Hash: hashBytes, Mode: mode, Type: &ast.MissingImport{}}, nil
	default:
		return nil, errf(p.index(3), KindBadImportScheme, "unknown import scheme discriminator %d", scheme)
	}
}

func decodeRemoteImport(items []cborvalue.Value, p path, hash []byte, mode ast.ImportMode, scheme int) (ast.Expr, error) {
	if len(items) < 9 {
		return nil, errf(p, KindWrongArity, "remote import requires at least 9 elements, got %d", len(items))
	}
	var headers ast.Expr
	if !cborvalue.IsNull(items[4]) {
		var err error
		headers, err = decodeExpr(items[4], p.index(4))
		if err != nil {
			return nil, err
		}
	}
	authority, ok := cborvalue.AsText(items[5])
	if !ok {
		return nil, errf(p.index(5), KindTypeMismatch, "remote import authority must be text")
	}
	directoryItems := items[6 : len(items)-2]
	directory := make([]string, 0, len(directoryItems))
	for i, dv := range directoryItems {
		s, ok := cborvalue.AsText(dv)
		if !ok {
			return nil, errf(p.index(6+i), KindTypeMismatch, "remote import path component must be text")
		}
		directory = append(directory, s)
	}
	file, ok := cborvalue.AsText(items[len(items)-2])
	if !ok {
		return nil, errf(p.index(len(items)-2), KindTypeMismatch, "remote import file must be text")
	}
	var query *string
	if !cborvalue.IsNull(items[len(items)-1]) {
		s, ok := cborvalue.AsText(items[len(items)-1])
		if !ok {
			return nil, errf(p.index(len(items)-1), KindTypeMismatch, "remote import query must be text")
		}
		query = &s
	}
	remoteScheme := ast.SchemeHTTP
	if scheme == 1 {
		remoteScheme = ast.SchemeHTTPS
	}
	return &ast.Import{Hash: hash, Mode: mode, Type: &ast.RemoteImport{
		Scheme:    remoteScheme,
		Headers:   headers,
		Authority: authority,
		Directory: directory,
		File:      file,
		Query:     query,
	}}, nil
}

func decodePathImport(items []cborvalue.Value, p path, hash []byte, mode ast.ImportMode, scheme int) (ast.Expr, error) {
	if len(items) < 5 {
		return nil, errf(p, KindWrongArity, "path import requires at least 5 elements, got %d", len(items))
	}
	directoryItems := items[4 : len(items)-1]
	directory := make([]string, 0, len(directoryItems))
	for i, dv := range directoryItems {
		s, ok := cborvalue.AsText(dv)
		if !ok {
			return nil, errf(p.index(4+i), KindTypeMismatch, "path import path component must be text")
		}
		directory = append(directory, s)
	}
	file, ok := cborvalue.AsText(items[len(items)-1])
	if !ok {
		return nil, errf(p.index(len(items)-1), KindTypeMismatch, "path import file must be text")
	}
	return &ast.Import{Hash: hash, Mode: mode, Type: &ast.PathImport{
		Prefix:    ast.PathPrefix(scheme),
		Directory: directory,
		File:      file,
	}}, nil
}
