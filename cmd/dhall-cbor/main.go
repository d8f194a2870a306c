// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Command dhall-cbor inspects, verifies, hashes, and caches the CBOR
// encoding of Dhall expressions.
package main

import (
	"fmt"
	"os"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/commands"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "dhall-cbor",
		Summary: "Inspect, verify, hash, and cache Dhall's CBOR binary encoding",
		Description: `Tools for working with the CBOR encoding of Dhall expressions from the
command line.

Dhall's semantic-integrity hashing and import caching use CBOR with
Core Deterministic Encoding (RFC 8949 §4.2) as the wire format for a
resolved, normalized expression's canonical byte representation. This
tool provides ergonomic access to that representation: diagnostic
inspection, AST decoding, round-trip verification, digest computation,
and a local cache keyed by that digest.`,
		Subcommands: []*cli.Command{
			commands.DiagCommand(),
			commands.DecodeCommand(),
			commands.VerifyCommand(),
			commands.HashCommand(),
			commands.CacheCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Inspect the wire structure of an encoded expression",
				Command:     "dhall-cbor diag < expr.cbor",
			},
			{
				Description: "Decode to a JSON debug dump of the AST",
				Command:     "dhall-cbor decode < expr.cbor",
			},
			{
				Description: "Check that an expression round-trips byte-for-byte",
				Command:     "dhall-cbor verify expr.cbor",
			},
			{
				Description: "Print the semantic hash of an encoded expression",
				Command:     "dhall-cbor hash expr.cbor",
			},
			{
				Description: "Store and retrieve an expression by its semantic hash",
				Command:     "dhall-cbor cache put expr.cbor && dhall-cbor cache get sha256:<digest>",
			},
		},
	}
}

func main() {
	if err := rootCommand().Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "dhall-cbor:", err)
		os.Exit(1)
	}
}
