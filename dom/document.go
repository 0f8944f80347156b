// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dom/document.go
// Summary: Headless presentation tree implementing anim.Element.
// Usage: Player and tests drive it; the terminal view renders it.
// Notes: An animation restarts only when its class or name is re-applied after
//        a layout read, matching the forced-reflow contract the engine relies on.

// Package dom is an in-memory presentation tree. It is not safe for
// concurrent use; drive it from one event loop.
package dom

import (
	"github.com/framegrace/hotcold/anim"
)

// Document owns a tree of nodes and the global reflow counter.
type Document struct {
	body    *Node
	reflows int
}

// NewDocument creates an empty document whose body is width pixels wide.
func NewDocument(width float64) *Document {
	d := &Document{}
	d.body = d.newNode("body", "", "")
	d.body.width = width
	d.body.attached = true
	return d
}

// Body returns the root node.
func (d *Document) Body() *Node { return d.body }

// Reflows reports how many forced layout reads happened.
func (d *Document) Reflows() int { return d.reflows }

// Walk visits attached nodes depth first. Returning false from fn skips the
// node's subtree.
func (d *Document) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(d.body, 0)
}

// Count returns the number of attached nodes carrying class.
func (d *Document) Count(class string) int {
	n := 0
	d.Walk(func(node *Node, _ int) bool {
		if node.HasClass(class) {
			n++
		}
		return true
	})
	return n
}

// Size returns the number of attached nodes, body included.
func (d *Document) Size() int {
	n := 0
	d.Walk(func(*Node, int) bool { n++; return true })
	return n
}

// FindByID returns the first attached node with id.
func (d *Document) FindByID(id string) *Node {
	var found *Node
	d.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (d *Document) newNode(id, class, text string) *Node {
	n := &Node{
		doc:          d,
		id:           id,
		text:         text,
		style:        make(map[string]string),
		classAdds:    make(map[string]int),
		classRemoves: make(map[string]int),
	}
	if class != "" {
		n.classes = append(n.classes, class)
	}
	return n
}

var _ anim.Element = (*Node)(nil)
