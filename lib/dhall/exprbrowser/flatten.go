// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package exprbrowser

// Row is one visible line of the flattened tree.
type Row struct {
	ID          int
	Depth       int
	Label       string
	Summary     string
	Category    string
	HasChildren bool
	Collapsed   bool
}

// flatten walks root in DFS order, skipping the children of any node
// whose id is present (and true) in collapsed, and returns the
// resulting visible rows.
func flatten(root *node, collapsed map[int]bool) []Row {
	var rows []Row
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		isCollapsed := collapsed[n.id]
		rows = append(rows, Row{
			ID:          n.id,
			Depth:       depth,
			Label:       n.label,
			Summary:     n.summary,
			Category:    n.category,
			HasChildren: len(n.children) > 0,
			Collapsed:   isCollapsed,
		})
		if isCollapsed {
			return
		}
		for _, child := range n.children {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

// findRow returns the index of the row with the given id within rows,
// or -1 if absent (it may be hidden behind a collapsed ancestor).
func findRow(rows []Row, id int) int {
	for index, row := range rows {
		if row.ID == id {
			return index
		}
	}
	return -1
}

// parentOf returns the id of targetID's parent within root, or -1 if
// targetID is root itself or not found.
func parentOf(root *node, targetID int) int {
	if root.id == targetID {
		return -1
	}
	for _, child := range root.children {
		if child.id == targetID {
			return root.id
		}
		if found := parentOf(child, targetID); found != -1 {
			return found
		}
	}
	return -1
}
