// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for dhall-cbor
// components, as YAML or as JSON with comments (by file extension).
//
// Configuration is loaded from a single file specified by either the
// DHALL_CBOR_CONFIG environment variable (via [Load]) or an explicit
// path (via [LoadFile], used by the CLI's --config flag). There are no
// fallbacks and no automatic file search. This keeps configuration
// deterministic and auditable.
//
// Key exports:
//
//   - [Config] -- master struct with a Cache section and a LogLevel field
//   - [Default] -- returns a Config with development-friendly defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other dhall-cbor packages.
package config
