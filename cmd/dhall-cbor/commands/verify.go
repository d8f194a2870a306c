// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/cborcodec"
)

func VerifyCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "verify",
		Summary: "Decode a CBOR file and re-encode it, checking for byte-identical output",
		Description: `Read CBOR data, decode it to a Dhall AST, re-encode that AST, and
compare the re-encoded bytes against the original.

This exercises the round-trip identity and deterministic-output
properties the codec is required to hold against real input, not just
against the test suite's seed expressions. Exits with an error
describing the first differing byte if the bytes do not match.`,
		Usage: "dhall-cbor verify [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Verify that an encoded expression round-trips byte-for-byte",
				Command:     "dhall-cbor verify expr.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			fs.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return fs
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("verify takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return verifyRoundTrip(data)
		},
	}
}

func verifyRoundTrip(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	value, err := cborvalue.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	expr, err := cborcodec.Decode(value)
	if err != nil {
		return fmt.Errorf("decode AST: %w", err)
	}

	reencoded, err := cborvalue.EncodeBytes(cborcodec.Encode(expr))
	if err != nil {
		return fmt.Errorf("re-encode CBOR: %w", err)
	}

	if bytes.Equal(data, reencoded) {
		fmt.Fprintln(os.Stdout, "ok: round-trip is byte-identical")
		return nil
	}

	return describeMismatch(data, reencoded)
}

func describeMismatch(original, reencoded []byte) error {
	minLength := min(len(original), len(reencoded))
	offset := 0
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}

	return fmt.Errorf("round-trip mismatch: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		offset, len(original), len(reencoded))
}
