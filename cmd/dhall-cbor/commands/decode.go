// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/cborcodec"
)

func DecodeCommand() *cli.Command {
	var (
		compact  bool
		hexInput bool
		color    string
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode CBOR on stdin to a JSON debug dump of the AST",
		Description: `Read CBOR data from stdin (or a file argument), decode it as a Dhall
expression, and write a JSON representation of the resulting AST to
stdout.

This is a debug dump, not a serialization format: big.Int values
(variable indices, Natural/Integer literals) are rendered as decimal
strings, and byte strings as lowercase hex, since JSON numbers cannot
losslessly hold arbitrary precision integers.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output.

--color controls syntax highlighting: "auto" (the default) colors the
output when stdout is a terminal, "always" forces it (e.g. when piping
to a pager that understands ANSI), and "never" disables it.`,
		Usage: "dhall-cbor decode [-c] [-x] [--color auto|always|never] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode an encoded expression to a JSON debug dump",
				Command:     "dhall-cbor decode < expr.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			fs.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			fs.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			fs.StringVar(&color, "color", "auto", "colorize output: auto, always, or never")
			return fs
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			colorize, err := resolveColor(color)
			if err != nil {
				return err
			}
			return decodeToJSON(data, os.Stdout, compact, colorize)
		},
	}
}

// resolveColor interprets the --color flag against whether stdout is
// a terminal, the same auto-detection cli.NewCommandLogger applies to
// stderr.
func resolveColor(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return term.IsTerminal(int(os.Stdout.Fd())), nil
	default:
		return false, fmt.Errorf("--color must be one of auto/always/never, got %q", mode)
	}
}

func decodeToJSON(data []byte, w io.Writer, compact, colorize bool) error {
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

	dump := dumpExpr(expr)

	var output []byte
	if compact {
		output, err = json.Marshal(dump)
	} else {
		output, err = json.MarshalIndent(dump, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if colorize {
		if err := quick.Highlight(w, string(output), "json", "terminal16m", "monokai"); err != nil {
			return fmt.Errorf("highlight JSON: %w", err)
		}
		_, err = fmt.Fprintln(w)
		return err
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
