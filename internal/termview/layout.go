// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termview/layout.go
// Summary: Maps dom nodes to terminal anchor cells.
// Notes: Text nodes directly under the body stack vertically around the screen
//        centre. A node without text shares its previous sibling's anchor, and
//        descendants share their parent's, so particle containers sit on the
//        element they decorate.

package termview

import (
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/hotcold/dom"
)

type cell struct{ x, y int }

func layout(doc *dom.Document, width, height int) map[*dom.Node]cell {
	top := doc.Body().Children()
	rows := 0
	for _, n := range top {
		if n.Text() != "" {
			rows++
		}
	}
	out := make(map[*dom.Node]cell)
	centre := cell{x: width / 2, y: height/2 - rows/2}
	prev := centre
	row := centre.y
	for _, n := range top {
		at := prev
		if n.Text() != "" {
			at = cell{x: centre.x, y: row}
			row++
		}
		out[n] = at
		prev = at
	}
	doc.Walk(func(n *dom.Node, depth int) bool {
		if depth < 2 {
			return true
		}
		out[n] = out[n.Parent()]
		return true
	})
	return out
}

// textStart returns the column where text centred on x begins.
func textStart(x int, text string) int {
	return x - runewidth.StringWidth(text)/2
}
