// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cborcodec

import (
	"fmt"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

// Encode converts a Dhall expression to its CBOR value model
// representation. It never fails: every well-formed Expr has a
// well-defined encoding.
func Encode(e ast.Expr) cborvalue.Value {
	switch n := e.(type) {
	case *ast.Variable:
		return encodeVariable(n)
	case *ast.Builtin:
		return cborvalue.Text(n.Name)
	case *ast.Constant:
		return cborvalue.Text(string(n.Name))
	case *ast.Lambda:
		return encodeBinder(1, n.Name, n.Domain, n.Body)
	case *ast.Forall:
		return encodeBinder(2, n.Name, n.Domain, n.Codomain)
	case *ast.Application:
		return encodeApplication(n)
	case *ast.Operator:
		return cborvalue.Array(cborvalue.Uint(3), cborvalue.Uint(uint64(n.Op)), Encode(n.Left), Encode(n.Right))
	case *ast.Completion:
		return cborvalue.Array(cborvalue.Uint(3), cborvalue.Uint(uint64(opCompletion)), Encode(n.Left), Encode(n.Right))
	case *ast.EmptyList:
		return encodeEmptyList(n)
	case *ast.NonEmptyList:
		items := make([]cborvalue.Value, 0, len(n.Elements)+2)
		items = append(items, cborvalue.Uint(4), cborvalue.Null())
		for _, el := range n.Elements {
			items = append(items, Encode(el))
		}
		return cborvalue.Array(items...)
	case *ast.Some:
		return cborvalue.Array(cborvalue.Uint(5), cborvalue.Null(), Encode(n.Value))
	case *ast.Merge:
		if n.Annotation == nil {
			return cborvalue.Array(cborvalue.Uint(6), Encode(n.Handler), Encode(n.Union))
		}
		return cborvalue.Array(cborvalue.Uint(6), Encode(n.Handler), Encode(n.Union), Encode(n.Annotation))
	case *ast.ToMap:
		if n.Annotation == nil {
			return cborvalue.Array(cborvalue.Uint(27), Encode(n.Record))
		}
		return cborvalue.Array(cborvalue.Uint(27), Encode(n.Record), Encode(n.Annotation))
	case *ast.ShowConstructor:
		return cborvalue.Array(cborvalue.Uint(34), Encode(n.Argument))
	case *ast.RecordType:
		return cborvalue.Array(cborvalue.Uint(7), encodeExprMap(n.Fields))
	case *ast.RecordLiteral:
		return cborvalue.Array(cborvalue.Uint(8), encodeExprMap(n.Fields))
	case *ast.Field:
		return cborvalue.Array(cborvalue.Uint(9), Encode(n.Record), cborvalue.Text(n.Label))
	case *ast.ProjectByLabels:
		items := make([]cborvalue.Value, 0, len(n.Labels)+2)
		items = append(items, cborvalue.Uint(10), Encode(n.Record))
		for _, label := range n.Labels {
			items = append(items, cborvalue.Text(label))
		}
		return cborvalue.Array(items...)
	case *ast.ProjectByType:
		return cborvalue.Array(cborvalue.Uint(10), Encode(n.Record), cborvalue.Array(Encode(n.Type)))
	case *ast.UnionType:
		alts := make(map[string]cborvalue.Value, len(n.Alternatives))
		for label, typ := range n.Alternatives {
			if typ == nil {
				alts[label] = cborvalue.Null()
				continue
			}
			alts[label] = Encode(typ)
		}
		return cborvalue.Array(cborvalue.Uint(11), cborvalue.Map(alts))
	case *ast.If:
		return cborvalue.Array(cborvalue.Uint(14), Encode(n.Condition), Encode(n.Then), Encode(n.Else))
	case *ast.BoolLiteral:
		return cborvalue.Bool(n.Value)
	case *ast.NaturalLiteral:
		return cborvalue.Array(cborvalue.Uint(15), cborvalue.Big(n.Value))
	case *ast.IntegerLiteral:
		return cborvalue.Array(cborvalue.Uint(16), cborvalue.Big(n.Value))
	case *ast.DoubleLiteral:
		return cborvalue.Float(n.Value)
	case *ast.TextLiteral:
		return encodeTextLiteral(n)
	case *ast.BytesLiteral:
		return cborvalue.Array(cborvalue.Uint(33), cborvalue.Bytes(n.Value))
	case *ast.Assert:
		return cborvalue.Array(cborvalue.Uint(19), Encode(n.Type))
	case *ast.Import:
		return encodeImport(n)
	case *ast.Let:
		return encodeLet(n)
	case *ast.Annotation:
		return cborvalue.Array(cborvalue.Uint(26), Encode(n.Value), Encode(n.Type))
	case *ast.With:
		return encodeWith(n)
	case *ast.DateLiteral:
		return cborvalue.Array(cborvalue.Uint(30), cborvalue.Uint(uint64(n.Year)), cborvalue.Uint(uint64(n.Month)), cborvalue.Uint(uint64(n.Day)))
	case *ast.TimeLiteral:
		return encodeTime(n)
	case *ast.TimeZoneLiteral:
		return encodeTimeZone(n)
	default:
		panic(fmt.Sprintf("cborcodec: Encode: unhandled expression type %T", e))
	}
}

func encodeVariable(v *ast.Variable) cborvalue.Value {
	if v.Name == "_" {
		return cborvalue.Big(v.Index)
	}
	return cborvalue.Array(cborvalue.Text(v.Name), cborvalue.Big(v.Index))
}

// encodeBinder encodes the shared Lambda/Forall wire shape: label,
// optional name (omitted when "_"), domain, codomain/body.
func encodeBinder(label uint64, name string, domain, codomainOrBody ast.Expr) cborvalue.Value {
	if name == "_" {
		return cborvalue.Array(cborvalue.Uint(label), Encode(domain), Encode(codomainOrBody))
	}
	return cborvalue.Array(cborvalue.Uint(label), cborvalue.Text(name), Encode(domain), Encode(codomainOrBody))
}

func encodeExprMap(fields map[string]ast.Expr) cborvalue.Value {
	out := make(map[string]cborvalue.Value, len(fields))
	for label, expr := range fields {
		out[label] = Encode(expr)
	}
	return cborvalue.Map(out)
}

// flattenApplication walks the left spine of a (possibly
// already-flattened) Application chain with an explicit loop, so
// encoding a deeply curried application does not recurse once per
// argument.
func flattenApplication(app *ast.Application) (fn ast.Expr, args []ast.Expr) {
	args = append([]ast.Expr{}, app.Arguments...)
	fn = app.Function
	for {
		next, ok := fn.(*ast.Application)
		if !ok {
			return fn, args
		}
		args = append(append([]ast.Expr{}, next.Arguments...), args...)
		fn = next.Function
	}
}

func encodeApplication(app *ast.Application) cborvalue.Value {
	fn, args := flattenApplication(app)
	items := make([]cborvalue.Value, 0, len(args)+2)
	items = append(items, cborvalue.Uint(0), Encode(fn))
	for _, a := range args {
		items = append(items, Encode(a))
	}
	return cborvalue.Array(items...)
}

// listBuiltinArgument reports whether t is the application `List A`,
// returning A. Used to tell apart EmptyList's two wire forms: a bare
// `List A` annotation encodes with label 4 and stores only A, while
// any other annotation shape encodes with label 28 and stores the
// whole annotation.
func listBuiltinArgument(t ast.Expr) (ast.Expr, bool) {
	app, ok := t.(*ast.Application)
	if !ok || len(app.Arguments) != 1 {
		return nil, false
	}
	b, ok := app.Function.(*ast.Builtin)
	if !ok || b.Name != "List" {
		return nil, false
	}
	return app.Arguments[0], true
}

func encodeEmptyList(n *ast.EmptyList) cborvalue.Value {
	if elem, ok := listBuiltinArgument(n.ElementType); ok {
		return cborvalue.Array(cborvalue.Uint(4), Encode(elem))
	}
	return cborvalue.Array(cborvalue.Uint(28), Encode(n.ElementType))
}

func encodeTextLiteral(t *ast.TextLiteral) cborvalue.Value {
	items := make([]cborvalue.Value, 0, 2*len(t.Chunks)+2)
	items = append(items, cborvalue.Uint(18))
	for _, chunk := range t.Chunks {
		items = append(items, cborvalue.Text(chunk.Prefix), Encode(chunk.Expr))
	}
	items = append(items, cborvalue.Text(t.Suffix))
	return cborvalue.Array(items...)
}

// flattenLet walks a (possibly already-flattened) chain of nested
// Lets with an explicit loop, collecting every binding in source
// order along with the innermost non-Let body.
func flattenLet(l *ast.Let) (bindings []ast.LetBinding, body ast.Expr) {
	bindings = append([]ast.LetBinding{}, l.Bindings...)
	body = l.Body
	for {
		next, ok := body.(*ast.Let)
		if !ok {
			return bindings, body
		}
		bindings = append(bindings, next.Bindings...)
		body = next.Body
	}
}

func encodeLet(l *ast.Let) cborvalue.Value {
	bindings, body := flattenLet(l)
	items := make([]cborvalue.Value, 0, 3*len(bindings)+2)
	items = append(items, cborvalue.Uint(25))
	for _, b := range bindings {
		typ := cborvalue.Null()
		if b.Type != nil {
			typ = Encode(b.Type)
		}
		items = append(items, cborvalue.Text(b.Name), typ, Encode(b.Value))
	}
	items = append(items, Encode(body))
	return cborvalue.Array(items...)
}

func encodeWith(w *ast.With) cborvalue.Value {
	path := make([]cborvalue.Value, 0, len(w.Path))
	for _, key := range w.Path {
		if key.DescendOptional {
			path = append(path, cborvalue.Uint(0))
			continue
		}
		path = append(path, cborvalue.Text(key.Label))
	}
	return cborvalue.Array(cborvalue.Uint(29), Encode(w.Subject), cborvalue.Array(path...), Encode(w.Value))
}

func encodeSignedSmall(n int64) cborvalue.Value {
	if n < 0 {
		return cborvalue.NegInt(n)
	}
	return cborvalue.Uint(uint64(n))
}

func encodeTime(t *ast.TimeLiteral) cborvalue.Value {
	exponent := -int64(t.Seconds.Precision)
	seconds := cborvalue.Tagged(cborvalue.TagDecimalFraction, cborvalue.Array(encodeSignedSmall(exponent), cborvalue.Big(t.Seconds.Mantissa)))
	return cborvalue.Array(cborvalue.Uint(31), cborvalue.Uint(uint64(t.Hour)), cborvalue.Uint(uint64(t.Minute)), seconds)
}

func encodeTimeZone(tz *ast.TimeZoneLiteral) cborvalue.Value {
	minutes := tz.Minutes
	sign := minutes >= 0
	if !sign {
		minutes = -minutes
	}
	return cborvalue.Array(cborvalue.Uint(32), cborvalue.Bool(sign), cborvalue.Uint(uint64(minutes/60)), cborvalue.Uint(uint64(minutes%60)))
}

func encodeImport(imp *ast.Import) cborvalue.Value {
	hash := cborvalue.Null()
	if imp.Hash != nil {
		multihash := make([]byte, 0, 2+len(imp.Hash))
		multihash = append(multihash, 0x12, 0x20)
		multihash = append(multihash, imp.Hash...)
		hash = cborvalue.Bytes(multihash)
	}
	mode := cborvalue.Uint(uint64(imp.Mode))

	switch t := imp.Type.(type) {
	case *ast.RemoteImport:
		headers := cborvalue.Null()
		if t.Headers != nil {
			headers = Encode(t.Headers)
		}
		query := cborvalue.Null()
		if t.Query != nil {
			query = cborvalue.Text(*t.Query)
		}
		items := []cborvalue.Value{cborvalue.Uint(24), hash, mode, cborvalue.Uint(uint64(t.Scheme)), headers, cborvalue.Text(t.Authority)}
		for _, d := range t.Directory {
			items = append(items, cborvalue.Text(d))
		}
		items = append(items, cborvalue.Text(t.File), query)
		return cborvalue.Array(items...)

	case *ast.PathImport:
		items := []cborvalue.Value{cborvalue.Uint(24), hash, mode, cborvalue.Uint(uint64(t.Prefix))}
		for _, d := range t.Directory {
			items = append(items, cborvalue.Text(d))
		}
		items = append(items, cborvalue.Text(t.File))
		return cborvalue.Array(items...)

	case *ast.EnvImport:
		return cborvalue.Array(cborvalue.Uint(24), hash, mode, cborvalue.Uint(6), cborvalue.Text(t.Name))

	case *ast.MissingImport:
		return cborvalue.Array(cborvalue.Uint(24), hash, mode, cborvalue.Uint(7))

	default:
		panic(fmt.Sprintf("cborcodec: Encode: unhandled import type %T", imp.Type))
	}
}

// opCompletion mirrors ast.opCompletion; duplicated here (rather than
// exported from ast) because it is purely a wire-encoding detail, not
// part of the AST's public shape.
const opCompletion = 13
