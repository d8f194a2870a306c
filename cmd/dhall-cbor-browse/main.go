// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// dhall-cbor-browse is a standalone terminal viewer for a decoded
// Dhall AST. It loads a CBOR file (or stdin), decodes it, and presents
// an indented, collapsible tree an operator can scroll and expand with
// the keyboard.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/spf13/pflag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/divarvel/dhall-lang/lib/cborvalue"
	"github.com/divarvel/dhall-lang/lib/dhall/cborcodec"
	"github.com/divarvel/dhall-lang/lib/dhall/exprbrowser"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dhall-cbor-browse:", err)
		os.Exit(1)
	}
}

func run() error {
	var hexMode bool

	flagSet := pflag.NewFlagSet("dhall-cbor-browse", pflag.ContinueOnError)
	flagSet.BoolVarP(&hexMode, "hex", "x", false, "decode input as hex-encoded text instead of raw CBOR bytes")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	data, err := readInput(flagSet.Args(), hexMode)
	if err != nil {
		return err
	}

	value, err := cborvalue.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}
	expr, err := cborcodec.Decode(value)
	if err != nil {
		return fmt.Errorf("decode AST: %w", err)
	}

	model := exprbrowser.New(expr)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `dhall-cbor-browse — interactive terminal tree viewer for a decoded Dhall AST.

Reads a CBOR-encoded Dhall expression from a file argument or stdin,
decodes it, and displays it as a collapsible tree.

Usage:
  dhall-cbor-browse [flags] [file]

Examples:
  dhall-cbor-browse expr.dhallb
  dhall-cbor encode expr.json | dhall-cbor-browse --hex

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// readInput resolves the expression bytes to browse: the last
// positional argument if it names a regular file, stdin otherwise.
func readInput(args []string, hexMode bool) ([]byte, error) {
	var data []byte

	if len(args) > 0 {
		candidate := args[len(args)-1]
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			fileData, err := os.ReadFile(candidate)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			data = fileData
		}
	}

	if data == nil {
		stdinData, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = stdinData
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
