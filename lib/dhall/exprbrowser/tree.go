// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package exprbrowser

import (
	"fmt"
	"sort"

	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

// node is one entry in the static tree built from a decoded AST. id is
// assigned in DFS order and is stable for a given tree, so it can key
// a collapsed-state map across re-flattens.
type node struct {
	id       int
	label    string // How this node is reached from its parent: "body", "arguments[2]", "fields[\"x\"]".
	summary  string // Node kind plus any inline scalar value: "NaturalLiteral 42".
	category string // One of "literal", "keyword", "label", "builtin", "faint", "" (default text).
	children []*node
}

// treeBuilder assigns DFS-ordered ids while walking an AST.
type treeBuilder struct {
	nextID int
}

// alloc reserves the next id for a synthetic row that has no
// corresponding expression of its own (let bindings, nil-payload union
// alternatives).
func (b *treeBuilder) alloc() int {
	id := b.nextID
	b.nextID++
	return id
}

// build allocates an id for expr, reached from its parent via label,
// and recursively fills in its children.
func (b *treeBuilder) build(label string, expr ast.Expr) *node {
	n := &node{id: b.alloc(), label: label}
	fillNode(n, expr, b)
	return n
}

// buildTree converts a decoded AST into a displayable tree, assigning
// DFS-ordered ids as it goes.
func buildTree(root ast.Expr) *node {
	b := &treeBuilder{}
	return b.build("root", root)
}

// fillNode sets n.summary, n.category, and n.children for expr,
// recursing into child expressions through b.build. Kept as one
// exhaustive type switch over every ast.Expr variant, mirroring the
// codec's own Encode switch and cmd/dhall-cbor/commands/astdump.go's
// dumpExpr — a third rendering of the same closed sum type, this one
// for an interactive tree rather than a one-shot JSON dump.
func fillNode(n *node, expr ast.Expr, b *treeBuilder) {
	switch v := expr.(type) {
	case *ast.Variable:
		n.summary = fmt.Sprintf("Variable %s@%s", v.Name, v.Index.String())
		n.category = "label"

	case *ast.Builtin:
		n.summary = fmt.Sprintf("Builtin %s", v.Name)
		n.category = "builtin"

	case *ast.Constant:
		n.summary = fmt.Sprintf("Constant %s", v.Name)
		n.category = "builtin"

	case *ast.Lambda:
		n.summary = fmt.Sprintf("Lambda %s", v.Name)
		n.category = "keyword"
		n.children = []*node{b.build("domain", v.Domain), b.build("body", v.Body)}

	case *ast.Forall:
		n.summary = fmt.Sprintf("Forall %s", v.Name)
		n.category = "keyword"
		n.children = []*node{b.build("domain", v.Domain), b.build("codomain", v.Codomain)}

	case *ast.Application:
		n.summary = fmt.Sprintf("Application (%d argument(s))", len(v.Arguments))
		n.category = "keyword"
		n.children = append(n.children, b.build("function", v.Function))
		for i, arg := range v.Arguments {
			n.children = append(n.children, b.build(fmt.Sprintf("arguments[%d]", i), arg))
		}

	case *ast.Operator:
		n.summary = fmt.Sprintf("Operator %s", operatorSymbol(v.Op))
		n.category = "keyword"
		n.children = []*node{b.build("left", v.Left), b.build("right", v.Right)}

	case *ast.Completion:
		n.summary = "Completion ::"
		n.category = "keyword"
		n.children = []*node{b.build("left", v.Left), b.build("right", v.Right)}

	case *ast.EmptyList:
		n.summary = "EmptyList"
		n.category = "keyword"
		n.children = []*node{b.build("elementType", v.ElementType)}

	case *ast.NonEmptyList:
		n.summary = fmt.Sprintf("NonEmptyList (%d element(s))", len(v.Elements))
		n.category = "keyword"
		for i, element := range v.Elements {
			n.children = append(n.children, b.build(fmt.Sprintf("elements[%d]", i), element))
		}

	case *ast.Some:
		n.summary = "Some"
		n.category = "keyword"
		n.children = []*node{b.build("value", v.Value)}

	case *ast.Merge:
		n.summary = "Merge"
		n.category = "keyword"
		n.children = []*node{b.build("handler", v.Handler), b.build("union", v.Union)}
		if v.Annotation != nil {
			n.children = append(n.children, b.build("annotation", v.Annotation))
		}

	case *ast.ToMap:
		n.summary = "ToMap"
		n.category = "keyword"
		n.children = []*node{b.build("record", v.Record)}
		if v.Annotation != nil {
			n.children = append(n.children, b.build("annotation", v.Annotation))
		}

	case *ast.ShowConstructor:
		n.summary = "ShowConstructor"
		n.category = "keyword"
		n.children = []*node{b.build("argument", v.Argument)}

	case *ast.RecordType:
		n.summary = fmt.Sprintf("RecordType (%d field(s))", len(v.Fields))
		n.category = "keyword"
		for _, label := range sortedKeys(v.Fields) {
			n.children = append(n.children, b.build(fmt.Sprintf("fields[%q]", label), v.Fields[label]))
		}

	case *ast.RecordLiteral:
		n.summary = fmt.Sprintf("RecordLiteral (%d field(s))", len(v.Fields))
		n.category = "keyword"
		for _, label := range sortedKeys(v.Fields) {
			n.children = append(n.children, b.build(fmt.Sprintf("fields[%q]", label), v.Fields[label]))
		}

	case *ast.Field:
		n.summary = fmt.Sprintf("Field .%s", v.Label)
		n.category = "label"
		n.children = []*node{b.build("record", v.Record)}

	case *ast.ProjectByLabels:
		n.summary = fmt.Sprintf("ProjectByLabels %v", v.Labels)
		n.category = "label"
		n.children = []*node{b.build("record", v.Record)}

	case *ast.ProjectByType:
		n.summary = "ProjectByType"
		n.category = "keyword"
		n.children = []*node{b.build("record", v.Record), b.build("type", v.Type)}

	case *ast.UnionType:
		n.summary = fmt.Sprintf("UnionType (%d alternative(s))", len(v.Alternatives))
		n.category = "keyword"
		for _, label := range sortedKeys(v.Alternatives) {
			payload := v.Alternatives[label]
			if payload == nil {
				n.children = append(n.children, &node{
					id:       b.alloc(),
					label:    fmt.Sprintf("alternatives[%q]", label),
					summary:  "(no payload)",
					category: "faint",
				})
				continue
			}
			n.children = append(n.children, b.build(fmt.Sprintf("alternatives[%q]", label), payload))
		}

	case *ast.If:
		n.summary = "If"
		n.category = "keyword"
		n.children = []*node{b.build("condition", v.Condition), b.build("then", v.Then), b.build("else", v.Else)}

	case *ast.BoolLiteral:
		n.summary = fmt.Sprintf("BoolLiteral %t", v.Value)
		n.category = "literal"

	case *ast.NaturalLiteral:
		n.summary = fmt.Sprintf("NaturalLiteral %s", v.Value.String())
		n.category = "literal"

	case *ast.IntegerLiteral:
		n.summary = fmt.Sprintf("IntegerLiteral %s", v.Value.String())
		n.category = "literal"

	case *ast.DoubleLiteral:
		n.summary = fmt.Sprintf("DoubleLiteral %v", v.Value)
		n.category = "literal"

	case *ast.TextLiteral:
		n.summary = fmt.Sprintf("TextLiteral (%d chunk(s)) suffix=%q", len(v.Chunks), v.Suffix)
		n.category = "literal"
		for i, chunk := range v.Chunks {
			n.children = append(n.children, b.build(fmt.Sprintf("chunks[%d] prefix=%q", i, chunk.Prefix), chunk.Expr))
		}

	case *ast.BytesLiteral:
		n.summary = fmt.Sprintf("BytesLiteral %x", v.Value)
		n.category = "literal"

	case *ast.Assert:
		n.summary = "Assert"
		n.category = "keyword"
		n.children = []*node{b.build("type", v.Type)}

	case *ast.Import:
		n.summary = fmt.Sprintf("Import mode=%s %s", importModeName(v.Mode), importTypeSummary(v.Type))
		n.category = "builtin"
		if remote, ok := v.Type.(*ast.RemoteImport); ok && remote.Headers != nil {
			n.children = append(n.children, b.build("headers", remote.Headers))
		}

	case *ast.Let:
		n.summary = fmt.Sprintf("Let (%d binding(s))", len(v.Bindings))
		n.category = "keyword"
		for i, binding := range v.Bindings {
			bindingNode := &node{
				id:       b.alloc(),
				label:    fmt.Sprintf("bindings[%d] %s", i, binding.Name),
				summary:  fmt.Sprintf("LetBinding %s", binding.Name),
				category: "label",
			}
			if binding.Type != nil {
				bindingNode.children = append(bindingNode.children, b.build("type", binding.Type))
			}
			bindingNode.children = append(bindingNode.children, b.build("value", binding.Value))
			n.children = append(n.children, bindingNode)
		}
		n.children = append(n.children, b.build("body", v.Body))

	case *ast.Annotation:
		n.summary = "Annotation"
		n.category = "keyword"
		n.children = []*node{b.build("value", v.Value), b.build("type", v.Type)}

	case *ast.With:
		n.summary = fmt.Sprintf("With %s", pathSummary(v.Path))
		n.category = "keyword"
		n.children = []*node{b.build("subject", v.Subject), b.build("value", v.Value)}

	case *ast.DateLiteral:
		n.summary = fmt.Sprintf("DateLiteral %04d-%02d-%02d", v.Year, v.Month, v.Day)
		n.category = "literal"

	case *ast.TimeLiteral:
		n.summary = fmt.Sprintf("TimeLiteral %02d:%02d:%sE-%d", v.Hour, v.Minute, v.Seconds.Mantissa.String(), v.Seconds.Precision)
		n.category = "literal"

	case *ast.TimeZoneLiteral:
		n.summary = fmt.Sprintf("TimeZoneLiteral %+d minutes", v.Minutes)
		n.category = "literal"

	default:
		n.summary = fmt.Sprintf("Unknown (%T)", expr)
		n.category = "faint"
	}
}

func sortedKeys(fields map[string]ast.Expr) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func pathSummary(path []ast.PathKey) string {
	result := ""
	for _, step := range path {
		if step.DescendOptional {
			result += ".?"
			continue
		}
		result += "." + step.Label
	}
	return result
}

func importModeName(mode ast.ImportMode) string {
	switch mode {
	case ast.ImportModeCode:
		return "Code"
	case ast.ImportModeRawText:
		return "RawText"
	case ast.ImportModeLocation:
		return "Location"
	case ast.ImportModeRawBytes:
		return "RawBytes"
	default:
		return fmt.Sprintf("Unknown(%d)", int(mode))
	}
}

func importTypeSummary(t ast.ImportType) string {
	switch v := t.(type) {
	case *ast.RemoteImport:
		scheme := "http"
		if v.Scheme == ast.SchemeHTTPS {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s", scheme, v.Authority, v.File)
	case *ast.PathImport:
		return fmt.Sprintf("path(prefix=%d)/%s", int(v.Prefix), v.File)
	case *ast.EnvImport:
		return fmt.Sprintf("env:%s", v.Name)
	case *ast.MissingImport:
		return "missing"
	default:
		return fmt.Sprintf("Unknown(%T)", t)
	}
}

func operatorSymbol(op ast.OperatorCode) string {
	switch op {
	case ast.OpOr:
		return "||"
	case ast.OpAnd:
		return "&&"
	case ast.OpEqual:
		return "=="
	case ast.OpNotEqual:
		return "!="
	case ast.OpPlus:
		return "+"
	case ast.OpTimes:
		return "*"
	case ast.OpTextAppend:
		return "++"
	case ast.OpListAppend:
		return "#"
	case ast.OpRecordMerge:
		return "∧"
	case ast.OpRecordBiasedMerge:
		return "⫽"
	case ast.OpRecordTypeMerge:
		return "⩓"
	case ast.OpImportAlt:
		return "?"
	case ast.OpEquivalent:
		return "==="
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}
