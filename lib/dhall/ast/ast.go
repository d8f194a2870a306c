// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package ast

import "math/big"

// Expr is any Dhall expression node.
type Expr interface {
	exprNode()
}

// Variable is a bound or free variable reference: name@index.
type Variable struct {
	Name  string
	Index *big.Int
}

func (*Variable) exprNode() {}

// NewVariable constructs a Variable with a non-negative index.
func NewVariable(name string, index *big.Int) *Variable {
	return &Variable{Name: name, Index: index}
}

// Builtin is a reference to one of the closed set of built-in
// identifiers enumerated in builtin.go (Natural/fold, List/build,
// Bool, and so on).
type Builtin struct {
	Name string
}

func (*Builtin) exprNode() {}

// ConstantName is one of the three universe constants.
type ConstantName string

const (
	ConstantType ConstantName = "Type"
	ConstantKind ConstantName = "Kind"
	ConstantSort ConstantName = "Sort"
)

// Constant is a reference to a universe constant (Type, Kind, Sort).
type Constant struct {
	Name ConstantName
}

func (*Constant) exprNode() {}

// Lambda is a function literal: λ(Name : Domain) → Body.
type Lambda struct {
	Name   string
	Domain Expr
	Body   Expr
}

func (*Lambda) exprNode() {}

// Forall is a function type (dependent or not): ∀(Name : Domain) → Codomain.
type Forall struct {
	Name     string
	Domain   Expr
	Codomain Expr
}

func (*Forall) exprNode() {}

// Application is a function applied to one or more arguments. The
// codec flattens left-spine application chains (f a b c) into a
// single node with Arguments = [a, b, c] rather than nesting.
type Application struct {
	Function  Expr
	Arguments []Expr
}

func (*Application) exprNode() {}

// OperatorCode identifies one of the thirteen binary operators that
// share CBOR label 3. Completion (Dhall's `::`) shares the same wire
// slot (op code 13) but is represented by the separate Completion node
// below, not by Operator.
type OperatorCode int

const (
	OpOr                OperatorCode = 0  // ||
	OpAnd               OperatorCode = 1  // &&
	OpEqual             OperatorCode = 2  // ==
	OpNotEqual          OperatorCode = 3  // !=
	OpPlus              OperatorCode = 4  // +
	OpTimes             OperatorCode = 5  // *
	OpTextAppend        OperatorCode = 6  // ++
	OpListAppend        OperatorCode = 7  // #
	OpRecordMerge       OperatorCode = 8  // ∧
	OpRecordBiasedMerge OperatorCode = 9  // ⫽
	OpRecordTypeMerge   OperatorCode = 10 // ⩓
	OpImportAlt         OperatorCode = 11 // ?
	OpEquivalent        OperatorCode = 12 // ===
	// opCompletion is the op code that encode.go/decode.go translate
	// to and from the Completion node rather than Operator; it is not
	// a valid OperatorCode for an Operator node.
	opCompletion OperatorCode = 13
)

// Operator is a binary operator application.
type Operator struct {
	Left  Expr
	Op    OperatorCode
	Right Expr
}

func (*Operator) exprNode() {}

// Completion is Dhall's record completion expression `Left::Right`. It
// shares Operator's CBOR slot (label 3, op code 13) but is its own AST
// node because it is not a true binary operator: the left operand must
// be a record type with a default/Type split.
type Completion struct {
	Left  Expr
	Right Expr
}

func (*Completion) exprNode() {}

// EmptyList is `[] : T` for some list or non-list annotation T.
type EmptyList struct {
	ElementType Expr
}

func (*EmptyList) exprNode() {}

// NonEmptyList is a list literal with at least one element.
type NonEmptyList struct {
	Elements []Expr
}

func (*NonEmptyList) exprNode() {}

// Some is `Some value`.
type Some struct {
	Value Expr
}

func (*Some) exprNode() {}

// Merge is `merge Handler Union [: Annotation]`. Annotation is nil
// when absent.
type Merge struct {
	Handler    Expr
	Union      Expr
	Annotation Expr
}

func (*Merge) exprNode() {}

// ToMap is `toMap Record [: Annotation]`. Annotation is nil when absent.
type ToMap struct {
	Record     Expr
	Annotation Expr
}

func (*ToMap) exprNode() {}

// ShowConstructor is `showConstructor Argument`.
type ShowConstructor struct {
	Argument Expr
}

func (*ShowConstructor) exprNode() {}

// RecordType is `{ field : Type, ... }`. Field order is not
// significant; the CBOR serializer writes the labels ascending by
// codepoint.
type RecordType struct {
	Fields map[string]Expr
}

func (*RecordType) exprNode() {}

// RecordLiteral is `{ field = value, ... }`.
type RecordLiteral struct {
	Fields map[string]Expr
}

func (*RecordLiteral) exprNode() {}

// Field is `Record.Label`.
type Field struct {
	Record Expr
	Label  string
}

func (*Field) exprNode() {}

// ProjectByLabels is `Record.{ label, ... }`. Labels keep source order
// (they are not sorted, unlike record fields).
type ProjectByLabels struct {
	Record Expr
	Labels []string
}

func (*ProjectByLabels) exprNode() {}

// ProjectByType is `Record.(Type)`.
type ProjectByType struct {
	Record Expr
	Type   Expr
}

func (*ProjectByType) exprNode() {}

// UnionType is `< Alt : Type | Alt2 | ... >`. A nil value for an
// alternative means that alternative carries no payload.
type UnionType struct {
	Alternatives map[string]Expr
}

func (*UnionType) exprNode() {}

// If is `if Condition then Then else Else`.
type If struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

func (*If) exprNode() {}

// BoolLiteral is `True` or `False`.
type BoolLiteral struct {
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NaturalLiteral is a non-negative integer literal with the Natural type.
type NaturalLiteral struct {
	Value *big.Int
}

func (*NaturalLiteral) exprNode() {}

// IntegerLiteral is a signed integer literal with the Integer type.
type IntegerLiteral struct {
	Value *big.Int
}

func (*IntegerLiteral) exprNode() {}

// DoubleLiteral is an IEEE-754 double-precision literal. NaN payloads
// are not distinguished on the wire — every NaN input encodes as the
// canonical half-float NaN 0x7e00 — so two DoubleLiteral NaNs compare
// equal for round-trip purposes regardless of their in-memory bit
// pattern.
type DoubleLiteral struct {
	Value float64
}

func (*DoubleLiteral) exprNode() {}

// TextChunk is one interpolated expression inside a TextLiteral,
// together with the literal text immediately preceding it.
type TextChunk struct {
	Prefix string
	Expr   Expr
}

// TextLiteral is a (possibly interpolated) text literal: alternating
// literal prefixes and interpolated expressions, ending in Suffix.
type TextLiteral struct {
	Chunks []TextChunk
	Suffix string
}

func (*TextLiteral) exprNode() {}

// BytesLiteral is a `0x"..."` octet string literal.
type BytesLiteral struct {
	Value []byte
}

func (*BytesLiteral) exprNode() {}

// Assert is `assert : Type`.
type Assert struct {
	Type Expr
}

func (*Assert) exprNode() {}

// Scheme identifies whether a RemoteImport uses HTTP or HTTPS.
type Scheme int

const (
	SchemeHTTP  Scheme = 0
	SchemeHTTPS Scheme = 1
)

// PathPrefix identifies the anchor of a local filesystem import.
type PathPrefix int

const (
	PathAbsolute PathPrefix = 2
	PathHere     PathPrefix = 3
	PathParent   PathPrefix = 4
	PathHome     PathPrefix = 5
)

// ImportType is the closed set of places a Dhall import can come from.
type ImportType interface {
	importTypeNode()
}

// RemoteImport is an http:// or https:// import. Directory is
// root-first (the first element is the path component closest to the
// authority). Query is nil when the URL has no query string; Headers
// is nil when the import has no `using` clause.
type RemoteImport struct {
	Scheme    Scheme
	Headers   Expr
	Authority string
	Directory []string
	File      string
	Query     *string
}

func (*RemoteImport) importTypeNode() {}

// PathImport is a local filesystem import anchored at Prefix.
// Directory is root-first.
type PathImport struct {
	Prefix    PathPrefix
	Directory []string
	File      string
}

func (*PathImport) importTypeNode() {}

// EnvImport is an environment-variable import: `env:NAME`.
type EnvImport struct {
	Name string
}

func (*EnvImport) importTypeNode() {}

// MissingImport is the `missing` import, which always fails to resolve.
type MissingImport struct{}

func (*MissingImport) importTypeNode() {}

// ImportMode selects how an import's resolved content is interpreted.
// The numeric values match the CBOR wire encoding in §4.6 exactly —
// they are not assigned in declaration order.
type ImportMode int

const (
	ImportModeCode     ImportMode = 0
	ImportModeRawText  ImportMode = 1
	ImportModeLocation ImportMode = 2
	ImportModeRawBytes ImportMode = 3
)

// Import is a reference to another Dhall expression, resolved
// out-of-band by an upstream import-resolution pass. Hash is nil when
// the import carries no integrity check, or else the 32-byte raw
// SHA-256 digest (the two-byte multihash prefix is a wire-format
// detail, not part of the AST).
type Import struct {
	Type ImportType
	Mode ImportMode
	Hash []byte
}

func (*Import) exprNode() {}

// LetBinding is one `let Name [: Type] = Value` clause. Type is nil
// when the binding carries no type annotation.
type LetBinding struct {
	Name  string
	Type  Expr
	Value Expr
}

// Let is a (possibly multi-binding) let-expression. The codec flattens
// contiguous nested lets into one node with multiple Bindings on
// encode, and reconstructs the equivalent right-nested chain of
// single-binding lets on decode.
type Let struct {
	Bindings []LetBinding
	Body     Expr
}

func (*Let) exprNode() {}

// Annotation is `Value : Type`.
type Annotation struct {
	Value Expr
	Type  Expr
}

func (*Annotation) exprNode() {}

// PathKey is one step of a With expression's update path: either the
// literal label of a record field, or the `?` marker that descends
// through an Optional.
type PathKey struct {
	DescendOptional bool
	Label           string
}

// DescendOptionalKey returns the `?` path step.
func DescendOptionalKey() PathKey { return PathKey{DescendOptional: true} }

// LabelKey returns a record-field path step.
func LabelKey(label string) PathKey { return PathKey{Label: label} }

// With is `Subject with Path = Value`. Path is never empty.
type With struct {
	Subject Expr
	Path    []PathKey
	Value   Expr
}

func (*With) exprNode() {}

// DateLiteral is a calendar date, `YYYY-MM-DD`.
type DateLiteral struct {
	Year  int
	Month int
	Day   int
}

func (*DateLiteral) exprNode() {}

// DecimalSeconds is a seconds-of-minute value with explicit decimal
// precision: the represented value is Mantissa * 10^-Precision.
// Precision is the number of digits the user wrote after the decimal
// point (0 for whole seconds), preserved exactly rather than
// normalized away, because the CBOR wire format (a tag 4 decimal
// fraction) carries it explicitly.
type DecimalSeconds struct {
	Precision uint32
	Mantissa  *big.Int
}

// TimeLiteral is a time-of-day value, `HH:MM:SS[.fff]`.
type TimeLiteral struct {
	Hour    int
	Minute  int
	Seconds DecimalSeconds
}

func (*TimeLiteral) exprNode() {}

// TimeZoneLiteral is a fixed UTC offset in minutes, positive east of UTC.
type TimeZoneLiteral struct {
	Minutes int
}

func (*TimeZoneLiteral) exprNode() {}
