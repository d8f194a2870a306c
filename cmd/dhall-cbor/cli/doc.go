// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the small command dispatcher shared by
// dhall-cbor's subcommands.
//
// The central type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in
// cmd/dhall-cbor/main.go and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and help output.
//
// Unlike the multi-level plugin-discovered command trees this package
// is modeled on, dhall-cbor's tree is two levels deep at most (the
// root command and its direct subcommands, plus "cache put"/"cache
// get" nested one level further) and fully known at compile time.
//
// When a user types an unknown subcommand or flag, suggest.go computes
// Levenshtein edit distance against the known names and suggests the
// closest match (threshold: distance <= 3).
package cli
