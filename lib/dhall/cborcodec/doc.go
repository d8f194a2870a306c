// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package cborcodec implements the bijection between lib/dhall/ast
// expressions and the lib/cborvalue model: Encode is total, Decode is
// partial and reports a structured *DecodeError on malformed input.
//
// Both directions are pure, synchronous tree transforms with no I/O
// and no shared state — callers may run any number of encodes and
// decodes concurrently over disjoint trees without coordination. The
// Application and Let spines are walked with explicit loops rather
// than recursion so stack use stays proportional to tree depth rather
// than argument or binding count; everything else is ordinary
// recursive descent, which is fine because Dhall ASTs are shallow
// relative to their node count.
package cborcodec
