// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/lib/cborvalue"
)

func DiagCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR on stdin to diagnostic notation",
		Description: `Read CBOR from stdin (or a file argument) and write RFC 8949
Extended Diagnostic Notation (EDN) to stdout.

Unlike "decode", diagnostic notation preserves the exact CBOR wire
shape — label arrays, integer map keys, and tagged values — rather
than the AST decode would produce. This is useful for inspecting the
raw encoding a Dhall implementation actually wrote.`,
		Usage: "dhall-cbor diag [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for an encoded expression",
				Command:     "dhall-cbor diag < expr.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			fs.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return fs
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagCBOR(data, os.Stdout)
		},
	}
}

func diagCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := cborvalue.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return fmt.Errorf("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}

	return nil
}
