// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the Dhall expression abstract syntax tree that
// lib/dhall/cborcodec encodes to and decodes from CBOR.
//
// Expr is a closed sum type, implemented the way the retrieval pack's
// malphas-lang/internal/ast package implements its own closed node
// families: an interface with an unexported marker method, and one
// pointer-receiver struct per variant. There is no reflection in the
// codec's dispatch path — every switch on Expr is a type switch over
// this fixed set of concrete types.
//
// Nodes are immutable once constructed and own none of their siblings'
// memory beyond the ordinary Go reference graph: building an Expr tree
// never mutates an already-built subtree, and the decoder always
// produces a fresh tree rather than aliasing into the CBOR input.
//
// This package intentionally carries no parsing, type-checking, or
// normalization logic — it is pure data. Those concerns live upstream
// of the codec, per spec.
package ast
