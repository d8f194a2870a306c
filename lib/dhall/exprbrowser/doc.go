// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

// Package exprbrowser implements the interactive terminal tree viewer
// behind cmd/dhall-cbor-browse: flattening a decoded AST into an
// indented, collapsible line list, driving a bubbles/viewport through
// it, and fuzzy-filtering rows by label or summary text on "/".
//
// The package is kept independent of cmd/dhall-cbor-browse's flag
// parsing and input handling, the same separation the ticket viewer
// draws between its thin cmd/bureau-viewer binary and lib/ticketui.
package exprbrowser
