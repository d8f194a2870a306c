// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/lib/dhall/semantichash"
)

func HashCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the semantic hash of a CBOR file's encoded bytes",
		Description: `Read CBOR data and print its semantic hash: the SHA-256 digest of the
exact bytes given, formatted as "sha256:<hex>".

This hashes whatever bytes it is handed — it does not decode,
normalize, or resolve imports first. Callers are responsible for
ensuring the input is the encoding of a resolved, normalized
expression before hashing it for cache or import-integrity purposes.`,
		Usage: "dhall-cbor hash [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Print the semantic hash of an encoded expression",
				Command:     "dhall-cbor hash expr.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			fs.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return fs
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("hash takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if len(data) == 0 {
				return fmt.Errorf("empty input: expected CBOR data")
			}

			digest := semantichash.Hash(data)
			fmt.Fprintf(os.Stdout, "sha256:%s\n", semantichash.FormatDigest(digest))
			return nil
		},
	}
}
