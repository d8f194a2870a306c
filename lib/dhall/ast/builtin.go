// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package ast

// builtinNames is the closed set of identifiers that encode/decode as
// naked CBOR text strings per §6.1. Any other naked string is a
// decoding error (UnknownBuiltin).
var builtinNames = map[string]struct{}{
	"Natural/build":      {},
	"Natural/fold":       {},
	"Natural/isZero":     {},
	"Natural/even":       {},
	"Natural/odd":        {},
	"Natural/toInteger":  {},
	"Natural/show":       {},
	"Natural/subtract":   {},
	"Integer/toDouble":   {},
	"Integer/show":       {},
	"Integer/negate":     {},
	"Integer/clamp":      {},
	"Double/show":        {},
	"List/build":         {},
	"List/fold":          {},
	"List/length":        {},
	"List/head":          {},
	"List/last":          {},
	"List/indexed":       {},
	"List/reverse":       {},
	"Text/show":          {},
	"Text/replace":       {},
	"Date/show":          {},
	"Time/show":          {},
	"TimeZone/show":      {},
	"Bool":     {},
	"Optional": {},
	"None":     {},
	"Natural":  {},
	"Integer":  {},
	"Double":   {},
	"Text":     {},
	"Bytes":    {},
	"List":     {},
	"Date":     {},
	"Time":     {},
	"TimeZone": {},
}

// IsBuiltinName reports whether name is one of the closed set of
// builtin identifiers enumerated above.
func IsBuiltinName(name string) bool {
	_, ok := builtinNames[name]
	return ok
}

// NewBuiltin constructs a Builtin, or returns ok=false if name is not
// in the closed vocabulary.
func NewBuiltin(name string) (*Builtin, bool) {
	if !IsBuiltinName(name) {
		return nil, false
	}
	return &Builtin{Name: name}, true
}

// IsConstantName reports whether name is one of the three universe
// constants (Type, Kind, Sort).
func IsConstantName(name string) bool {
	switch ConstantName(name) {
	case ConstantType, ConstantKind, ConstantSort:
		return true
	default:
		return false
	}
}

// NewConstant constructs a Constant, or returns ok=false if name is
// not Type, Kind, or Sort.
func NewConstant(name string) (*Constant, bool) {
	if !IsConstantName(name) {
		return nil, false
	}
	return &Constant{Name: ConstantName(name)}, true
}
