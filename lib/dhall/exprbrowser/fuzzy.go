// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package exprbrowser

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of scoring one row's text against a
// search pattern: a relevance score (zero means no match) and the
// matched rune positions, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch scores text against pattern using fzf's matching
// algorithm, case-insensitively in both directions — a pattern typed
// while browsing a tree is rarely case-exact. A nil slab skips scratch
// buffer reuse; recomputeSearchMatches passes a shared one so a single
// filter pass over every visible row reuses its allocations.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowerPattern := make([]rune, len(pattern))
	for i, r := range pattern {
		lowerPattern[i] = unicode.ToLower(r)
	}

	chars := util.RunesToChars([]rune(toLowerRunes(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowerPattern, true, slab)
	if result.Score == 0 || positions == nil {
		return FuzzyResult{}
	}
	return FuzzyResult{Score: int(result.Score), Positions: *positions}
}

func toLowerRunes(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return string(runes)
}
