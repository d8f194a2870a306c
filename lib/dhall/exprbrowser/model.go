// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package exprbrowser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/divarvel/dhall-lang/lib/dhall/ast"
)

// Model is the top-level bubbletea model for the expression tree
// browser. Rendered rows live in a bubbles/viewport; cursor movement
// scrolls the viewport just far enough to keep the cursor's row within
// its visible window.
type Model struct {
	theme Theme
	keys  KeyMap

	root      *node
	collapsed map[int]bool
	rows      []Row
	cursor    int

	// searching is true while the fuzzy-filter prompt is accepting
	// keystrokes; searchQuery holds the pattern typed so far.
	// searchMatches holds the indices (into rows) of every row whose
	// label or summary matches, in row order, recomputed on every
	// keystroke. searchSlab is fzf's reusable scratch buffer, shared
	// across a single filter pass to avoid reallocating per row.
	searching     bool
	searchQuery   []rune
	searchMatches []int
	searchSlab    *util.Slab

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// headerHeight and helpHeight are the fixed chrome lines surrounding
// the scrollable viewport: one header line, one separator, one help
// line.
const (
	headerHeight = 1
	helpHeight   = 2
)

// New builds a Model for browsing the given decoded AST.
func New(root ast.Expr) Model {
	model := Model{
		theme:     DefaultTheme,
		keys:      DefaultKeyMap,
		root:      buildTree(root),
		collapsed: make(map[int]bool),
		// 100KiB/2048 are fzf's own scratch-buffer defaults (see its
		// cmd/fzf entry point); a single tree's row count never
		// approaches the sizes that would make that too small.
		searchSlab: util.MakeSlab(100*1024, 2048),
	}
	model.rebuildRows()
	return model
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.viewport.Width = model.width
		model.viewport.Height = model.bodyHeight()
		model.ready = true
		model.renderViewport()
		return model, nil

	case tea.KeyMsg:
		if model.searching {
			model.updateSearchInput(message)
			return model, nil
		}
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Up):
			model.moveCursor(-1)
		case key.Matches(message, model.keys.Down):
			model.moveCursor(1)
		case key.Matches(message, model.keys.PageUp):
			model.moveCursor(-model.viewport.Height)
		case key.Matches(message, model.keys.PageDown):
			model.moveCursor(model.viewport.Height)
		case key.Matches(message, model.keys.Home):
			model.setCursor(0)
		case key.Matches(message, model.keys.End):
			model.setCursor(len(model.rows) - 1)
		case key.Matches(message, model.keys.Toggle):
			model.toggleCollapse(model.currentRow().ID)
		case key.Matches(message, model.keys.Left):
			model.collapseOrGoToParent()
		case key.Matches(message, model.keys.Right):
			model.expandOrEnterFirstChild()
		case key.Matches(message, model.keys.Search):
			model.startSearch()
		case key.Matches(message, model.keys.Next):
			model.jumpToNextMatch()
		}
		return model, nil
	}
	return model, nil
}

// updateSearchInput handles a keystroke while the fuzzy-filter prompt
// is open, following the same raw tea.KeyMsg.Type dispatch the note
// editor uses for single-line text entry.
func (model *Model) updateSearchInput(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		model.searchQuery = append(model.searchQuery, message.Runes...)
		model.recomputeSearchMatches()
	case tea.KeyBackspace:
		if len(model.searchQuery) > 0 {
			model.searchQuery = model.searchQuery[:len(model.searchQuery)-1]
			model.recomputeSearchMatches()
		}
	case tea.KeyEnter:
		model.searching = false
		model.jumpToNextMatch()
	case tea.KeyEsc:
		model.searching = false
		model.searchQuery = nil
		model.searchMatches = nil
		model.renderViewport()
	}
}

func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	status := fmt.Sprintf("dhall-cbor-browse — %d node(s), row %d/%d", len(model.rows), model.cursor+1, len(model.rows))
	if model.searching {
		status = fmt.Sprintf("/%s (%d match(es))", string(model.searchQuery), len(model.searchMatches))
	} else if len(model.searchQuery) > 0 {
		status = fmt.Sprintf("%s — filter %q: %d match(es)", status, string(model.searchQuery), len(model.searchMatches))
	}
	header := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render(status)

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	body := lipgloss.JoinHorizontal(lipgloss.Top, model.viewport.View(), model.renderScrollbarColumn())

	help := lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render("↑/↓ move  ←/→ collapse/expand  enter toggle  / filter  n next match  g/G top/bottom  q quit")

	return strings.Join([]string{header, body, separator, help}, "\n")
}

func (model Model) bodyHeight() int {
	result := model.height - headerHeight - helpHeight - 1 // -1 for the separator line.
	if result < 1 {
		result = 1
	}
	return result
}

func (model Model) renderScrollbarColumn() string {
	return renderScrollbar(model.theme, model.viewport.Height, len(model.rows), model.viewport.Height, model.viewport.YOffset)
}

func (model Model) currentRow() Row {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return Row{}
	}
	return model.rows[model.cursor]
}

// rebuildRows recomputes the visible rows after a collapse/expand
// change, preserving the id under the cursor when it is still visible.
func (model *Model) rebuildRows() {
	previousID := -1
	if model.cursor >= 0 && model.cursor < len(model.rows) {
		previousID = model.rows[model.cursor].ID
	}
	model.rows = flatten(model.root, model.collapsed)
	if previousID >= 0 {
		if index := findRow(model.rows, previousID); index != -1 {
			model.cursor = index
		}
	}
	model.clampCursor()
	model.renderViewport()
}

func (model *Model) clampCursor() {
	if model.cursor >= len(model.rows) {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model *Model) setCursor(index int) {
	model.cursor = index
	model.clampCursor()
	model.scrollToCursor()
	model.renderViewport()
}

func (model *Model) moveCursor(delta int) {
	model.setCursor(model.cursor + delta)
}

// scrollToCursor keeps the cursor's line within the viewport's visible
// window, scrolling only as far as needed; it does not center the
// cursor.
func (model *Model) scrollToCursor() {
	if model.cursor < model.viewport.YOffset {
		model.viewport.SetYOffset(model.cursor)
		return
	}
	bottom := model.viewport.YOffset + model.viewport.Height - 1
	if model.cursor > bottom {
		model.viewport.SetYOffset(model.cursor - model.viewport.Height + 1)
	}
}

func (model *Model) toggleCollapse(id int) {
	model.collapsed[id] = !model.collapsed[id]
	model.rebuildRows()
}

// startSearch opens the fuzzy-filter prompt, clearing any previous
// query.
func (model *Model) startSearch() {
	model.searching = true
	model.searchQuery = nil
	model.searchMatches = nil
	model.renderViewport()
}

// recomputeSearchMatches re-scores every visible row's label and
// summary against the current query, keeping the matches in row
// order. Matching considers only currently visible rows, the same way
// collapsing a subtree hides it from cursor movement.
func (model *Model) recomputeSearchMatches() {
	model.searchMatches = model.searchMatches[:0]
	if len(model.searchQuery) == 0 {
		model.renderViewport()
		return
	}
	for index, row := range model.rows {
		text := row.Label + " " + row.Summary
		if fuzzyMatch(text, model.searchQuery, model.searchSlab).Score > 0 {
			model.searchMatches = append(model.searchMatches, index)
		}
	}
	model.renderViewport()
}

// jumpToNextMatch moves the cursor to the next search match after the
// current row, wrapping around to the first match.
func (model *Model) jumpToNextMatch() {
	if len(model.searchMatches) == 0 {
		return
	}
	for _, index := range model.searchMatches {
		if index > model.cursor {
			model.setCursor(index)
			return
		}
	}
	model.setCursor(model.searchMatches[0])
}

// isSearchMatch reports whether rowIndex is one of the current search
// matches.
func (model *Model) isSearchMatch(rowIndex int) bool {
	for _, index := range model.searchMatches {
		if index == rowIndex {
			return true
		}
	}
	return false
}

// collapseOrGoToParent collapses the current node if it has visible
// children, or moves the cursor to its parent if already collapsed or
// a leaf.
func (model *Model) collapseOrGoToParent() {
	row := model.currentRow()
	if row.HasChildren && !row.Collapsed {
		model.collapsed[row.ID] = true
		model.rebuildRows()
		return
	}
	if parentID := parentOf(model.root, row.ID); parentID != -1 {
		if index := findRow(model.rows, parentID); index != -1 {
			model.setCursor(index)
		}
	}
}

// expandOrEnterFirstChild expands the current node if collapsed, or
// moves the cursor to its first child if already expanded.
func (model *Model) expandOrEnterFirstChild() {
	row := model.currentRow()
	if !row.HasChildren {
		return
	}
	if row.Collapsed {
		model.collapsed[row.ID] = false
		model.rebuildRows()
		return
	}
	if model.cursor+1 < len(model.rows) {
		model.setCursor(model.cursor + 1)
	}
}

// renderViewport re-renders the row list into the viewport's content,
// styling the cursor row and each node's category.
func (model *Model) renderViewport() {
	lines := make([]string, len(model.rows))
	for index, row := range model.rows {
		lines[index] = model.renderRow(row, index == model.cursor, model.isSearchMatch(index))
	}
	model.viewport.SetContent(strings.Join(lines, "\n"))
	model.viewport.SetYOffset(model.viewport.YOffset) // Re-clamp after content length changes.
}

func (model Model) renderRow(row Row, selected, matched bool) string {
	indent := strings.Repeat("  ", row.Depth)

	marker := " "
	if row.HasChildren {
		if row.Collapsed {
			marker = "▸"
		} else {
			marker = "▾"
		}
	}

	label := ""
	if row.Label != "" && row.Label != "root" {
		label = row.Label + ": "
	}

	text := fmt.Sprintf("%s%s %s%s", indent, marker, label, row.Summary)

	style := lipgloss.NewStyle().Foreground(model.categoryColor(row.Category))
	if matched {
		style = style.Underline(true)
	}
	if selected {
		style = style.Background(model.theme.SelectedBackground).Foreground(model.theme.SelectedForeground)
	}
	return style.Render(text)
}

func (model Model) categoryColor(category string) lipgloss.Color {
	switch category {
	case "literal":
		return model.theme.LiteralText
	case "keyword":
		return model.theme.KeywordText
	case "label":
		return model.theme.LabelText
	case "builtin":
		return model.theme.BuiltinText
	case "faint":
		return model.theme.FaintText
	default:
		return model.theme.NormalText
	}
}
