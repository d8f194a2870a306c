// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the "dhall-cbor" subcommands for
// inspecting, verifying, hashing, and caching the CBOR encoding of
// Dhall expressions from the command line.
//
// Subcommands:
//
//   - diag: convert CBOR to RFC 8949 Extended Diagnostic Notation.
//   - decode: convert CBOR to a JSON debug dump of the decoded AST.
//   - verify: decode a CBOR file and re-encode it, failing if the
//     bytes differ from the original.
//   - hash: print the semantic hash of a CBOR file's bytes.
//   - cache put / cache get: store or retrieve an encoded expression
//     in the local cache, keyed by its semantic hash.
//
// All subcommands accept input from stdin or from a trailing file path
// argument. The --hex flag treats input as hex-encoded CBOR, for
// inspecting wire dumps pasted from logs or test vectors.
package commands
