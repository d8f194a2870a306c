// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/divarvel/dhall-lang/cmd/dhall-cbor/cli"
	"github.com/divarvel/dhall-lang/lib/dhall/cache"
	"github.com/divarvel/dhall-lang/lib/dhall/config"
	"github.com/divarvel/dhall-lang/lib/dhall/semantichash"
)

func CacheCommand() *cli.Command {
	return &cli.Command{
		Name:    "cache",
		Summary: "Store and retrieve encoded expressions in the local cache",
		Description: `Subcommands for the local content-addressed cache of encoded Dhall
expressions, keyed by semantic hash.`,
		Subcommands: []*cli.Command{
			cachePutCommand(),
			cacheGetCommand(),
		},
	}
}

// openCache loads the configuration (from --config or
// DHALL_CBOR_CONFIG) and opens the cache it describes.
func openCache(configPath string) (*cache.Cache, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	compression, err := cache.ParseCompressionTag(cfg.Cache.Compression)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cache.Open(cache.Config{
		Directory:   cfg.Cache.Directory,
		PoolSize:    cfg.Cache.PoolSize,
		Compression: compression,
	})
}

func cachePutCommand() *cli.Command {
	var (
		hexInput   bool
		configPath string
	)

	return &cli.Command{
		Name:    "put",
		Summary: "Store encoded bytes in the cache under their semantic hash",
		Description: `Read CBOR data (stdin or a file argument), compute its semantic hash,
store the bytes in the local cache under that digest, and print the
digest as "sha256:<hex>".

This takes the caller's word that the bytes given are the encoding of
a resolved, normalized expression — it does not decode or validate
them first.`,
		Usage: "dhall-cbor cache put [-x] [--config path] [file]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("cache put", pflag.ContinueOnError)
			fs.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			fs.StringVar(&configPath, "config", "", "path to dhall-cbor.yaml (defaults to DHALL_CBOR_CONFIG)")
			return fs
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("cache put takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			if len(data) == 0 {
				return fmt.Errorf("empty input: expected CBOR data")
			}

			c, err := openCache(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			digest := semantichash.Hash(data)
			hexDigest := semantichash.FormatDigest(digest)
			if err := c.Put(context.Background(), hexDigest, data); err != nil {
				return fmt.Errorf("cache put: %w", err)
			}

			fmt.Fprintf(os.Stdout, "sha256:%s\n", hexDigest)
			return nil
		},
	}
}

func cacheGetCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "get",
		Summary: "Retrieve the encoded bytes stored under a semantic hash",
		Description: `Look up digest (a "sha256:<hex>" or bare hex digest) in the local cache
and write its stored bytes to stdout.`,
		Usage: "dhall-cbor cache get [--config path] <digest>",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("cache get", pflag.ContinueOnError)
			fs.StringVar(&configPath, "config", "", "path to dhall-cbor.yaml (defaults to DHALL_CBOR_CONFIG)")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("cache get requires exactly one argument, the digest to look up")
			}

			hexDigest, err := normalizeDigestArg(args[0])
			if err != nil {
				return err
			}

			c, err := openCache(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			data, err := c.Get(context.Background(), hexDigest)
			if err != nil {
				return fmt.Errorf("cache get: %w", err)
			}

			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

// normalizeDigestArg accepts either a bare hex digest or one prefixed
// with "sha256:" and validates it parses as a 32-byte digest.
func normalizeDigestArg(arg string) (string, error) {
	hexDigest := arg
	const prefix = "sha256:"
	if len(arg) > len(prefix) && arg[:len(prefix)] == prefix {
		hexDigest = arg[len(prefix):]
	}
	if _, err := semantichash.ParseDigest(hexDigest); err != nil {
		return "", fmt.Errorf("invalid digest %q: %w", arg, err)
	}
	return hexDigest, nil
}
