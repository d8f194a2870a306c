// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"math"
	"sort"
)

// Equal reports whether a and b are the same expression, under the
// round-trip equivalence the codec's test suite checks (spec §8
// property 1): Natural/Integer literals compare by numeric value
// rather than by the particular *big.Int pointer, and Double literals
// compare by IEEE bit pattern, except that any two NaNs compare equal
// whatever their payload bits, rather than using Go's
// NaN-is-never-equal float comparison.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.Name == bv.Name && av.Index.Cmp(bv.Index) == 0

	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av.Name == bv.Name

	case *Constant:
		bv, ok := b.(*Constant)
		return ok && av.Name == bv.Name

	case *Lambda:
		bv, ok := b.(*Lambda)
		return ok && av.Name == bv.Name && Equal(av.Domain, bv.Domain) && Equal(av.Body, bv.Body)

	case *Forall:
		bv, ok := b.(*Forall)
		return ok && av.Name == bv.Name && Equal(av.Domain, bv.Domain) && Equal(av.Codomain, bv.Codomain)

	case *Application:
		bv, ok := b.(*Application)
		return ok && Equal(av.Function, bv.Function) && equalExprSlices(av.Arguments, bv.Arguments)

	case *Operator:
		bv, ok := b.(*Operator)
		return ok && av.Op == bv.Op && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)

	case *Completion:
		bv, ok := b.(*Completion)
		return ok && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)

	case *EmptyList:
		bv, ok := b.(*EmptyList)
		return ok && Equal(av.ElementType, bv.ElementType)

	case *NonEmptyList:
		bv, ok := b.(*NonEmptyList)
		return ok && equalExprSlices(av.Elements, bv.Elements)

	case *Some:
		bv, ok := b.(*Some)
		return ok && Equal(av.Value, bv.Value)

	case *Merge:
		bv, ok := b.(*Merge)
		return ok && Equal(av.Handler, bv.Handler) && Equal(av.Union, bv.Union) && Equal(av.Annotation, bv.Annotation)

	case *ToMap:
		bv, ok := b.(*ToMap)
		return ok && Equal(av.Record, bv.Record) && Equal(av.Annotation, bv.Annotation)

	case *ShowConstructor:
		bv, ok := b.(*ShowConstructor)
		return ok && Equal(av.Argument, bv.Argument)

	case *RecordType:
		bv, ok := b.(*RecordType)
		return ok && equalExprMaps(av.Fields, bv.Fields)

	case *RecordLiteral:
		bv, ok := b.(*RecordLiteral)
		return ok && equalExprMaps(av.Fields, bv.Fields)

	case *Field:
		bv, ok := b.(*Field)
		return ok && av.Label == bv.Label && Equal(av.Record, bv.Record)

	case *ProjectByLabels:
		bv, ok := b.(*ProjectByLabels)
		return ok && equalStringSlices(av.Labels, bv.Labels) && Equal(av.Record, bv.Record)

	case *ProjectByType:
		bv, ok := b.(*ProjectByType)
		return ok && Equal(av.Type, bv.Type) && Equal(av.Record, bv.Record)

	case *UnionType:
		bv, ok := b.(*UnionType)
		return ok && equalExprMaps(av.Alternatives, bv.Alternatives)

	case *If:
		bv, ok := b.(*If)
		return ok && Equal(av.Condition, bv.Condition) && Equal(av.Then, bv.Then) && Equal(av.Else, bv.Else)

	case *BoolLiteral:
		bv, ok := b.(*BoolLiteral)
		return ok && av.Value == bv.Value

	case *NaturalLiteral:
		bv, ok := b.(*NaturalLiteral)
		return ok && av.Value.Cmp(bv.Value) == 0

	case *IntegerLiteral:
		bv, ok := b.(*IntegerLiteral)
		return ok && av.Value.Cmp(bv.Value) == 0

	case *DoubleLiteral:
		bv, ok := b.(*DoubleLiteral)
		if !ok {
			return false
		}
		if math.IsNaN(av.Value) || math.IsNaN(bv.Value) {
			return math.IsNaN(av.Value) && math.IsNaN(bv.Value)
		}
		return math.Float64bits(av.Value) == math.Float64bits(bv.Value)

	case *TextLiteral:
		bv, ok := b.(*TextLiteral)
		if !ok || av.Suffix != bv.Suffix || len(av.Chunks) != len(bv.Chunks) {
			return false
		}
		for i, chunk := range av.Chunks {
			other := bv.Chunks[i]
			if chunk.Prefix != other.Prefix || !Equal(chunk.Expr, other.Expr) {
				return false
			}
		}
		return true

	case *BytesLiteral:
		bv, ok := b.(*BytesLiteral)
		return ok && string(av.Value) == string(bv.Value)

	case *Assert:
		bv, ok := b.(*Assert)
		return ok && Equal(av.Type, bv.Type)

	case *Import:
		bv, ok := b.(*Import)
		return ok && equalImport(av, bv)

	case *Let:
		bv, ok := b.(*Let)
		if !ok || len(av.Bindings) != len(bv.Bindings) || !Equal(av.Body, bv.Body) {
			return false
		}
		for i, binding := range av.Bindings {
			other := bv.Bindings[i]
			if binding.Name != other.Name || !Equal(binding.Type, other.Type) || !Equal(binding.Value, other.Value) {
				return false
			}
		}
		return true

	case *Annotation:
		bv, ok := b.(*Annotation)
		return ok && Equal(av.Value, bv.Value) && Equal(av.Type, bv.Type)

	case *With:
		bv, ok := b.(*With)
		if !ok || len(av.Path) != len(bv.Path) || !Equal(av.Subject, bv.Subject) || !Equal(av.Value, bv.Value) {
			return false
		}
		for i, key := range av.Path {
			if key != bv.Path[i] {
				return false
			}
		}
		return true

	case *DateLiteral:
		bv, ok := b.(*DateLiteral)
		return ok && av.Year == bv.Year && av.Month == bv.Month && av.Day == bv.Day

	case *TimeLiteral:
		bv, ok := b.(*TimeLiteral)
		return ok && av.Hour == bv.Hour && av.Minute == bv.Minute &&
			av.Seconds.Precision == bv.Seconds.Precision &&
			av.Seconds.Mantissa.Cmp(bv.Seconds.Mantissa) == 0

	case *TimeZoneLiteral:
		bv, ok := b.(*TimeZoneLiteral)
		return ok && av.Minutes == bv.Minutes

	default:
		return false
	}
}

func equalExprSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalExprMaps(a, b map[string]Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for key, value := range a {
		other, ok := b[key]
		if !ok || !Equal(value, other) {
			return false
		}
	}
	return true
}

func equalImport(a, b *Import) bool {
	if a.Mode != b.Mode || string(a.Hash) != string(b.Hash) {
		return false
	}
	switch at := a.Type.(type) {
	case *RemoteImport:
		bt, ok := b.Type.(*RemoteImport)
		if !ok || at.Scheme != bt.Scheme || at.Authority != bt.Authority || at.File != bt.File {
			return false
		}
		if !equalStringSlices(at.Directory, bt.Directory) {
			return false
		}
		if (at.Query == nil) != (bt.Query == nil) {
			return false
		}
		if at.Query != nil && *at.Query != *bt.Query {
			return false
		}
		return Equal(at.Headers, bt.Headers)

	case *PathImport:
		bt, ok := b.Type.(*PathImport)
		return ok && at.Prefix == bt.Prefix && at.File == bt.File && equalStringSlices(at.Directory, bt.Directory)

	case *EnvImport:
		bt, ok := b.Type.(*EnvImport)
		return ok && at.Name == bt.Name

	case *MissingImport:
		_, ok := b.Type.(*MissingImport)
		return ok

	default:
		return false
	}
}

// sortedKeys returns the keys of fields sorted ascending by Unicode
// codepoint sequence (equal to byte order for UTF-8 text), the order
// §4.4 requires record/union fields to be emitted in.
func sortedKeys(fields map[string]Expr) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
