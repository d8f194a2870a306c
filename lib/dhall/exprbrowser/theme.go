// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package exprbrowser

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the tree browser. A pared-down
// version of the ticket viewer's Theme: this tool has no priorities or
// statuses to color, only tree chrome and a couple of node categories
// worth distinguishing at a glance.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	LiteralText  lipgloss.Color // Scalar leaves: Bool/Natural/Integer/Double/Bytes/Text.
	KeywordText  lipgloss.Color // Structural keywords: Lambda, Let, Merge, If, and so on.
	LabelText    lipgloss.Color // Field/alternative/binding names.
	BuiltinText  lipgloss.Color // Builtin and Constant references.

	HeaderForeground lipgloss.Color
	BorderColor       lipgloss.Color
	HelpText          lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	LiteralText: lipgloss.Color("114"), // green
	KeywordText: lipgloss.Color("220"), // amber
	LabelText:   lipgloss.Color("75"),  // blue
	BuiltinText: lipgloss.Color("141"), // light purple

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:       lipgloss.Color("240"),
	HelpText:          lipgloss.Color("241"),
}
