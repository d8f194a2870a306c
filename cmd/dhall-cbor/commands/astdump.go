// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

// dumpExpr converts a decoded AST into a JSON-friendly value for the
// "decode" subcommand's debug dump. Every node becomes an object with
// a "type" discriminant naming the Go variant, plus its fields.
// big.Int values are rendered as decimal strings (JSON numbers lose
// precision above 2^53), and byte strings as lowercase hex, since
// neither has a native lossless JSON representation.
func dumpExpr(e ast.Expr) any {
	if e == nil {
		return nil
	}

	switch v := e.(type) {
	case *ast.Variable:
		return obj("Variable", "name", v.Name, "index", v.Index.String())
	case *ast.Builtin:
		return obj("Builtin", "name", v.Name)
	case *ast.Constant:
		return obj("Constant", "name", string(v.Name))
	case *ast.Lambda:
		return obj("Lambda", "name", v.Name, "domain", dumpExpr(v.Domain), "body", dumpExpr(v.Body))
	case *ast.Forall:
		return obj("Forall", "name", v.Name, "domain", dumpExpr(v.Domain), "codomain", dumpExpr(v.Codomain))
	case *ast.Application:
		return obj("Application", "function", dumpExpr(v.Function), "arguments", dumpExprs(v.Arguments))
	case *ast.Operator:
		return obj("Operator", "op", int(v.Op), "left", dumpExpr(v.Left), "right", dumpExpr(v.Right))
	case *ast.Completion:
		return obj("Completion", "left", dumpExpr(v.Left), "right", dumpExpr(v.Right))
	case *ast.EmptyList:
		return obj("EmptyList", "elementType", dumpExpr(v.ElementType))
	case *ast.NonEmptyList:
		return obj("NonEmptyList", "elements", dumpExprs(v.Elements))
	case *ast.Some:
		return obj("Some", "value", dumpExpr(v.Value))
	case *ast.Merge:
		return obj("Merge", "handler", dumpExpr(v.Handler), "union", dumpExpr(v.Union), "annotation", dumpExpr(v.Annotation))
	case *ast.ToMap:
		return obj("ToMap", "record", dumpExpr(v.Record), "annotation", dumpExpr(v.Annotation))
	case *ast.ShowConstructor:
		return obj("ShowConstructor", "argument", dumpExpr(v.Argument))
	case *ast.RecordType:
		return obj("RecordType", "fields", dumpExprMap(v.Fields))
	case *ast.RecordLiteral:
		return obj("RecordLiteral", "fields", dumpExprMap(v.Fields))
	case *ast.Field:
		return obj("Field", "record", dumpExpr(v.Record), "label", v.Label)
	case *ast.ProjectByLabels:
		return obj("ProjectByLabels", "record", dumpExpr(v.Record), "labels", v.Labels)
	case *ast.ProjectByType:
		return obj("ProjectByType", "record", dumpExpr(v.Record), "type", dumpExpr(v.Type))
	case *ast.UnionType:
		return obj("UnionType", "alternatives", dumpExprMap(v.Alternatives))
	case *ast.If:
		return obj("If", "condition", dumpExpr(v.Condition), "then", dumpExpr(v.Then), "else", dumpExpr(v.Else))
	case *ast.BoolLiteral:
		return obj("BoolLiteral", "value", v.Value)
	case *ast.NaturalLiteral:
		return obj("NaturalLiteral", "value", v.Value.String())
	case *ast.IntegerLiteral:
		return obj("IntegerLiteral", "value", v.Value.String())
	case *ast.DoubleLiteral:
		return obj("DoubleLiteral", "value", v.Value)
	case *ast.TextLiteral:
		chunks := make([]any, len(v.Chunks))
		for i, chunk := range v.Chunks {
			chunks[i] = obj("", "prefix", chunk.Prefix, "expr", dumpExpr(chunk.Expr))
		}
		return obj("TextLiteral", "chunks", chunks, "suffix", v.Suffix)
	case *ast.BytesLiteral:
		return obj("BytesLiteral", "value", hex.EncodeToString(v.Value))
	case *ast.Assert:
		return obj("Assert", "type", dumpExpr(v.Type))
	case *ast.Import:
		return obj("Import", "importType", dumpImportType(v.Type), "mode", int(v.Mode), "hash", dumpHash(v.Hash))
	case *ast.Let:
		bindings := make([]any, len(v.Bindings))
		for i, b := range v.Bindings {
			bindings[i] = obj("", "name", b.Name, "type", dumpExpr(b.Type), "value", dumpExpr(b.Value))
		}
		return obj("Let", "bindings", bindings, "body", dumpExpr(v.Body))
	case *ast.Annotation:
		return obj("Annotation", "value", dumpExpr(v.Value), "type", dumpExpr(v.Type))
	case *ast.With:
		path := make([]any, len(v.Path))
		for i, step := range v.Path {
			if step.DescendOptional {
				path[i] = "?"
			} else {
				path[i] = step.Label
			}
		}
		return obj("With", "subject", dumpExpr(v.Subject), "path", path, "value", dumpExpr(v.Value))
	case *ast.DateLiteral:
		return obj("DateLiteral", "year", v.Year, "month", v.Month, "day", v.Day)
	case *ast.TimeLiteral:
		return obj("TimeLiteral", "hour", v.Hour, "minute", v.Minute,
			"seconds", fmt.Sprintf("%sE-%d", v.Seconds.Mantissa.String(), v.Seconds.Precision))
	case *ast.TimeZoneLiteral:
		return obj("TimeZoneLiteral", "minutes", v.Minutes)
	default:
		return obj("Unknown", "goType", fmt.Sprintf("%T", v))
	}
}

func dumpExprs(exprs []ast.Expr) []any {
	result := make([]any, len(exprs))
	for i, e := range exprs {
		result[i] = dumpExpr(e)
	}
	return result
}

func dumpExprMap(fields map[string]ast.Expr) map[string]any {
	result := make(map[string]any, len(fields))
	for label, e := range fields {
		result[label] = dumpExpr(e)
	}
	return result
}

func dumpHash(hash []byte) any {
	if hash == nil {
		return nil
	}
	return hex.EncodeToString(hash)
}

func dumpImportType(t ast.ImportType) any {
	switch v := t.(type) {
	case *ast.RemoteImport:
		return obj("RemoteImport", "scheme", int(v.Scheme), "authority", v.Authority,
			"directory", v.Directory, "file", v.File, "query", ptrOrNil(v.Query), "headers", dumpExpr(v.Headers))
	case *ast.PathImport:
		return obj("PathImport", "prefix", int(v.Prefix), "directory", v.Directory, "file", v.File)
	case *ast.EnvImport:
		return obj("EnvImport", "name", v.Name)
	case *ast.MissingImport:
		return obj("MissingImport")
	default:
		return obj("Unknown", "goType", fmt.Sprintf("%T", v))
	}
}

func ptrOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// obj builds a map with a "type" key (omitted when empty, for the
// anonymous TextChunk/LetBinding helper objects) followed by
// alternating key/value pairs.
func obj(typeName string, kv ...any) map[string]any {
	result := make(map[string]any, len(kv)/2+1)
	if typeName != "" {
		result["type"] = typeName
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		result[key] = kv[i+1]
	}
	return result
}
